package session

import "sync"

// outputBuffer accumulates PTY output between drains.
type outputBuffer struct {
	mu   sync.Mutex
	data []byte
}

func (b *outputBuffer) append(p []byte) {
	b.mu.Lock()
	b.data = append(b.data, p...)
	b.mu.Unlock()
}

// drain returns everything buffered and leaves the buffer empty.
func (b *outputBuffer) drain() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.data) == 0 {
		return nil
	}
	out := b.data
	b.data = nil
	return out
}

func (b *outputBuffer) pending() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.data) > 0
}
