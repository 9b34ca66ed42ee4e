// Package storage reads and writes the pipeline's objects in an
// S3-compatible bucket: inbound raw messages, synthesized episode audio, and
// podcast feed XML.
package storage
