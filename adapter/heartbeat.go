package adapter

import (
	"context"
	"time"
)

// heartbeatInterval matches the scheduler's liveness polling cadence.
const heartbeatInterval = 2 * time.Minute

// heartbeatLoop journals a heartbeat until the stage phase finishes, so the
// scheduler can tell a long-running stage from a dead one.
func (md *Metadata) heartbeatLoop(ctx context.Context) {
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = md.UpdateJournal("heartbeat")
		}
	}
}
