// Package tts converts normalized newsletter text into MP3 audio through the
// OpenAI speech API, splitting long texts into request-sized chunks and
// joining the returned segments.
package tts
