// Package tts synthesizes flashcard speech through the OpenAI audio API.
package tts

import (
	"context"
	"errors"
)

// Common errors for speech synthesis.
var (
	// ErrSynthesisUnavailable wraps every failure to produce audio. It is
	// recoverable: the caller decides whether to continue without voice.
	ErrSynthesisUnavailable = errors.New("speech synthesis unavailable")

	// ErrMissingAPIKey is returned when no API credential is present.
	ErrMissingAPIKey = errors.New("OPENAI_API_KEY environment variable is not set")

	// ErrInvalidVoice is returned for a voice outside the known voice list.
	ErrInvalidVoice = errors.New("invalid voice")

	// ErrInvalidLanguage is returned for a language without an instruction entry.
	ErrInvalidLanguage = errors.New("invalid language")

	// ErrEmptyText is returned when there is nothing to speak.
	ErrEmptyText = errors.New("text cannot be empty")
)

// Synthesizer converts text to raw audio bytes.
type Synthesizer interface {
	// Synthesize returns audio for the given text in the synthesizer's
	// configured voice and language.
	Synthesize(ctx context.Context, text string) ([]byte, error)

	// Close releases resources held by the synthesizer.
	Close() error
}
