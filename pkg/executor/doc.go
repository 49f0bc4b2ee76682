// Package executor runs Python and Java source through the locally
// installed interpreter or compiler and captures what the program prints.
//
// Execute is the synchronous contract: it writes the source into the
// work directory, invokes the toolchain under a wall-clock timeout and
// returns a RunResult. Infrastructure failures never surface as Go
// errors; they become results with status "error". Only input problems
// (an unknown language, Java source without a public class) are
// returned as errors, before any file is written.
//
// Orchestrator wraps Execute in a Task with a progress channel and a
// completion signal. It owns a single run slot because every run of a
// language writes to the same file in the work directory.
package executor
