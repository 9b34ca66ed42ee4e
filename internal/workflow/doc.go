// Package workflow coordinates the newsletter-to-podcast pipeline.
//
// The Pipeline turns one raw message into a published episode: normalize the
// email to speech text, synthesize audio, upload it, record the episode, and
// regenerate the RSS feeds. The Manager wraps the Pipeline in a queue consume
// loop with at-least-once semantics: successful and permanently failed
// messages are acknowledged, transient failures are left leased so the queue
// redelivers them.
package workflow
