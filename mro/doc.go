// Package mro models the martian stage-interface declaration language and
// renders stage definitions into the deterministic, column-aligned text the
// pipeline scheduler parses.
//
// The package is built from a small closed type system (PrimaryType, Type),
// a capability-based mapping from native Go types onto it (TypeOf,
// PrimaryTypeOf), validated fields (Field), the optional resource block
// (Using), and the stage aggregator (StageMro). Every renderable entity
// implements MroDisplay so that heterogeneous entities sharing a table can
// be padded to one common column width.
//
// Rendering is pure: the same models always produce byte-identical text,
// which keeps generated declaration files diffable across builds.
package mro
