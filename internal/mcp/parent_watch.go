package mcp

import (
	"context"
	"os"
	"time"

	"fnol/internal/logging"
)

// WatchParent cancels the server when its parent process goes away, so an
// editor restart does not leave orphaned stdio servers behind. It never
// reads stdin; the stdio transport owns it.
func WatchParent(ctx context.Context, cancelFn context.CancelFunc) {
	watchParent(ctx, cancelFn, 2*time.Second)
}

func watchParent(ctx context.Context, cancelFn context.CancelFunc, every time.Duration) {
	ppid := os.Getppid()
	logger := logging.New("mcp")
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if os.Getppid() != ppid {
					logger.Warn("parent process exited, shutting down", "parent_pid", ppid)
					cancelFn()
					return
				}
			}
		}
	}()
}
