// Package queue persists pipeline bookkeeping in SQLite: published episodes
// and the set of already-processed raw messages. The store is the source of
// truth for feed generation and for consumer idempotence.
package queue
