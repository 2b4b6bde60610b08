//go:build windows

package interactive

import (
	"context"
	"time"

	"golang.org/x/term"
)

const resizePollInterval = 500 * time.Millisecond

// WatchResize polls the console size; Windows has no SIGWINCH.
func WatchResize(ctx context.Context, fd int) <-chan struct{} {
	events := make(chan struct{}, 1)
	go func() {
		ticker := time.NewTicker(resizePollInterval)
		defer ticker.Stop()
		lastCols, lastRows, _ := term.GetSize(fd)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cols, rows, err := term.GetSize(fd)
				if err != nil || (cols == lastCols && rows == lastRows) {
					continue
				}
				lastCols, lastRows = cols, rows
				select {
				case events <- struct{}{}:
				default:
				}
			}
		}
	}()
	return events
}
