// Package speechtext turns newsletter HTML into text suitable for speech
// synthesis.
//
// The pipeline is CleanHTML, then Normalize, then InlineFootnotes: markup is
// pruned and linearized, whitespace artifacts are collapsed into canonical
// spacing, and footnote cross-references become inline spoken asides. Each
// step owns its text buffer; nothing here holds state across calls.
package speechtext
