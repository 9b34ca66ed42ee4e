// Package processor assembles the email-to-speech engine: message decoding,
// content selection, markup cleaning, whitespace normalization, and footnote
// inlining combined into a single Result record.
package processor
