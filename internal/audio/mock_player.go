package audio

import "sync"

// MockPlayer is a Player for tests. It records played clips and can be
// configured to fail.
type MockPlayer struct {
	mu      sync.Mutex
	clips   [][]byte
	closed  bool
	failErr error
}

// NewMockPlayer creates a mock player.
func NewMockPlayer() *MockPlayer {
	return &MockPlayer{}
}

// FailWith makes subsequent Play calls return err.
func (m *MockPlayer) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failErr = err
}

// Play records the clip.
func (m *MockPlayer) Play(pcm []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrPlayerClosed
	}
	if m.failErr != nil {
		return m.failErr
	}
	if len(pcm) == 0 {
		return ErrNothingToPlay
	}

	clip := make([]byte, len(pcm))
	copy(clip, pcm)
	m.clips = append(m.clips, clip)
	return nil
}

// Played returns the clips played so far.
func (m *MockPlayer) Played() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([][]byte, len(m.clips))
	copy(out, m.clips)
	return out
}

// Close marks the player closed.
func (m *MockPlayer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Ensure MockPlayer implements the Player interface
var _ Player = (*MockPlayer)(nil)
