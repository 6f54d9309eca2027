// Package audio plays raw PCM audio through the system audio device.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ebitengine/oto/v3"
)

// Common errors for audio playback.
var (
	// ErrContextNotReady is returned when the audio device never becomes ready.
	ErrContextNotReady = errors.New("audio context not ready")

	// ErrPlayerClosed is returned for playback on a closed player.
	ErrPlayerClosed = errors.New("audio player is closed")

	// ErrNothingToPlay is returned for empty audio.
	ErrNothingToPlay = errors.New("no audio to play")
)

// Player plays PCM audio clips.
type Player interface {
	// Play starts playback of the clip without blocking; the clip keeps
	// playing while the caller prompts for the next answer.
	Play(pcm []byte) error

	// Close stops playback and releases the audio device.
	Close() error
}

// OtoPlayer implements Player on top of an oto audio context.
type OtoPlayer struct {
	context *oto.Context

	mu      sync.Mutex
	playing []*oto.Player
	closed  bool
}

// NewOtoPlayer opens the system audio device for the given PCM format
// (16-bit signed little-endian samples).
func NewOtoPlayer(sampleRate, channels int) (*OtoPlayer, error) {
	options := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	}

	// Platform-specific buffer size adjustments
	switch runtime.GOOS {
	case "darwin":
		// macOS benefits from larger buffers
		options.BufferSize = time.Millisecond * 100
	case "windows":
		options.BufferSize = time.Millisecond * 80
	default:
		// Linux ALSA and others
		options.BufferSize = time.Millisecond * 50
	}

	context, readyChan, err := oto.NewContext(options)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio context: %w", err)
	}

	select {
	case <-readyChan:
	case <-time.After(5 * time.Second):
		// Context has no Close in oto v3; it will be garbage collected
		return nil, fmt.Errorf("%w: initialization timeout", ErrContextNotReady)
	}

	log.Debug("Audio context initialized", "sample_rate", sampleRate, "channels", channels)

	return &OtoPlayer{context: context}, nil
}

// Play starts background playback of a PCM clip.
func (p *OtoPlayer) Play(pcm []byte) error {
	if len(pcm) == 0 {
		return ErrNothingToPlay
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPlayerClosed
	}

	// Clean up players that finished since the last clip
	p.reapLocked()

	player := p.context.NewPlayer(bytes.NewReader(pcm))
	player.Play()
	p.playing = append(p.playing, player)

	return nil
}

// reapLocked closes finished players. Callers hold p.mu.
func (p *OtoPlayer) reapLocked() {
	active := p.playing[:0]
	for _, pl := range p.playing {
		if pl.IsPlaying() {
			active = append(active, pl)
			continue
		}
		_ = pl.Close()
	}
	p.playing = active
}

// Close stops all playback and releases the players. The oto context
// itself has no Close and is reclaimed by the garbage collector.
func (p *OtoPlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	var firstErr error
	for _, pl := range p.playing {
		if err := pl.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	p.playing = nil
	return firstErr
}

// Ensure OtoPlayer implements the Player interface
var _ Player = (*OtoPlayer)(nil)
