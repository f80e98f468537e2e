package memory

import (
	"context"
	"sync"
	"time"
)

const actionTTL = time.Hour

// ActionGuard is the in-process counterpart of the Redis action guard.
type ActionGuard struct {
	mu      sync.Mutex
	claimed map[string]time.Time
	now     func() time.Time
}

func NewActionGuard() *ActionGuard {
	return &ActionGuard{claimed: make(map[string]time.Time), now: time.Now}
}

// Claim marks actionID as submitted. It returns false when the action was
// claimed less than an hour ago.
func (g *ActionGuard) Claim(_ context.Context, actionID string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	for id, at := range g.claimed {
		if now.Sub(at) >= actionTTL {
			delete(g.claimed, id)
		}
	}
	if _, ok := g.claimed[actionID]; ok {
		return false, nil
	}
	g.claimed[actionID] = now
	return true, nil
}
