package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const actionTTL = time.Hour

// ActionGuard records which try-on actions have already been submitted so a
// double-submitted action reaches the image service only once.
// Key format: tryon:action:<action_id>
type ActionGuard struct {
	client *redis.Client
}

// NewActionGuard creates an ActionGuard wrapping the given Redis client.
func NewActionGuard(client *redis.Client) *ActionGuard {
	return &ActionGuard{client: client}
}

// Claim marks actionID as submitted. It returns false when the action was
// already claimed (expires after actionTTL).
func (g *ActionGuard) Claim(ctx context.Context, actionID string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(actionID), "1", actionTTL).Result()
	if err != nil {
		return false, fmt.Errorf("claim action: %w", err)
	}
	return ok, nil
}

func (g *ActionGuard) key(actionID string) string {
	return "tryon:action:" + actionID
}
