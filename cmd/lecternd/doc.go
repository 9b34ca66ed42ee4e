// Command lecternd runs the Lectern queue consumer as a long-lived process.
//
// It loads configuration from the default locations, acquires the
// single-instance lock, and polls the message queue until it receives SIGINT
// or SIGTERM. The interactive counterpart lives in cmd/lectern.
package main
