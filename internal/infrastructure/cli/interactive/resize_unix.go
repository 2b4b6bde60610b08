//go:build !windows

package interactive

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// WatchResize emits an event whenever the controlling terminal is resized.
func WatchResize(ctx context.Context, _ int) <-chan struct{} {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGWINCH)

	events := make(chan struct{}, 1)
	go func() {
		defer signal.Stop(sig)
		for {
			select {
			case <-ctx.Done():
				return
			case <-sig:
				select {
				case events <- struct{}{}:
				default:
				}
			}
		}
	}()
	return events
}
