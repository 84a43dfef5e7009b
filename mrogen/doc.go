// Package mrogen loads the optional HCL configuration of a declaration
// generation run: where the generated file goes, whether an existing file
// may be replaced, and per-stage overrides for the using section.
package mrogen
