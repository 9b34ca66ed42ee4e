// Package daemon coordinates the long-running Lectern process.
//
// It wires configuration, the episode store, and the workflow manager into a
// single lifecycle with flock-based locking so only one consumer instance
// pulls from the queue at a time. Orchestration logic belongs here; the
// individual processing steps live in their own packages.
package daemon
