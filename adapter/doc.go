// Package adapter is the stage-side runtime boundary toward the martian
// scheduler. It parses the invocation arguments, exchanges metadata through
// the scheduler-owned files, wires stage logging to the reserved log file
// descriptor, dispatches split/main/join, and reports failures over the
// reserved error descriptor.
//
// The adapter never touches the declaration rendering in package mro; it
// only makes a compiled stage binary runnable inside a pipeline.
package adapter
