package main

import (
	"context"
	"fmt"

	"github.com/dgnsrekt/flash/internal/audio"
	"github.com/dgnsrekt/flash/internal/cache"
	"github.com/dgnsrekt/flash/internal/session"
	"github.com/dgnsrekt/flash/internal/tts"
)

// cardSpeaker implements session.Speaker by resolving audio through the
// disk cache and handing the clip to the player. Synthesis only happens
// on a cache miss.
type cardSpeaker struct {
	cache  *cache.DiskCache
	engine *tts.OpenAIEngine
	player audio.Player
}

func (s *cardSpeaker) Speak(ctx context.Context, text string) error {
	key := cache.Key{
		Text:         text,
		Voice:        s.engine.Voice(),
		Instructions: s.engine.Instructions(),
	}

	handle, err := s.cache.GetOrCreate(ctx, key, s.engine)
	if err != nil {
		return err
	}

	clip, err := handle.Bytes()
	if err != nil {
		return fmt.Errorf("%w: %w", tts.ErrSynthesisUnavailable, err)
	}

	if err := s.player.Play(clip); err != nil {
		return fmt.Errorf("%w: %w", tts.ErrSynthesisUnavailable, err)
	}
	return nil
}

// Ensure cardSpeaker implements the session.Speaker interface
var _ session.Speaker = (*cardSpeaker)(nil)
