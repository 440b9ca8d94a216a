package application

import (
	"slices"
	"sync"

	"github.com/bnema/steambooster/internal/domain"
	"github.com/bnema/steambooster/internal/ports"
)

// PlayStateManager owns the set of app ids currently signaled as "in play".
// All mutations go through one gate so a stop and a concurrent set can never
// interleave into an inconsistent outbound notification.
type PlayStateManager struct {
	transport ports.Transport
	log       ports.Logger

	mu      sync.Mutex
	current []uint32
}

func NewPlayStateManager(transport ports.Transport, log ports.Logger) *PlayStateManager {
	return &PlayStateManager{transport: transport, log: log}
}

// SetPlaying replaces the played set. Input is deduplicated with order
// preserved; when the result matches the currently applied set, no
// notification is sent.
func (m *PlayStateManager) SetPlaying(gameIDs []uint32) {
	normalized := domain.DedupeGames(gameIDs)

	m.mu.Lock()
	defer m.mu.Unlock()

	if slices.Equal(normalized, m.current) {
		return
	}

	m.log.Debug("sending games played update: %d app(s)", len(normalized))
	m.transport.SetGamesPlayed(normalized)
	m.current = normalized
}

// StopPlaying clears the played set, short-circuiting without a notification
// when nothing is playing.
func (m *PlayStateManager) StopPlaying() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.current) == 0 {
		return
	}

	m.log.Debug("sending games played update: 0 app(s)")
	m.transport.SetGamesPlayed(nil)
	m.current = nil
}

func (m *PlayStateManager) IsPlaying() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.current) > 0
}
