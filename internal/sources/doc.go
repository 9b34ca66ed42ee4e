// Package sources maps inbound route tags to newsletter presets and adapts
// per-source quirks: episode title shape, body scrubbing, and recovery of the
// canonical article URL from tracking-laden mail.
package sources
