// Package feeds provides the simulated weather, news and quote sources the
// dashboard refreshes from. Each waits a configurable delay to stand in for
// network latency; no call leaves the process.
package feeds

import (
	"context"
	"time"
)

// wait blocks for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
