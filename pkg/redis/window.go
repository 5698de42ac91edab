package redis

import (
	"context"
	"fmt"
	"time"
)

// FixedWindowAllow counts one hit against scope and reports whether the
// count is still within limit for the current window.
//
// The counter is created with SETNX carrying the window TTL before INCR, so
// a key can never outlive its window even if the process dies between calls.
func (c *Client) FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error) {
	if c == nil || c.cmd == nil {
		return false, 0, errNotInitialized
	}
	if window <= 0 {
		return false, 0, fmt.Errorf("rate window must be positive, got %s", window)
	}

	key := c.WindowKey(scope)
	if err := c.cmd.SetNX(ctx, key, 0, window).Err(); err != nil {
		return false, 0, fmt.Errorf("open window %s: %w", key, err)
	}
	count, err := c.cmd.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, fmt.Errorf("count window %s: %w", key, err)
	}
	return count <= limit, count, nil
}
