package session

import (
	"errors"
	"io"
	"os"
	"syscall"
	"time"

	"github.com/doeshing/shai-term/internal/ports"
)

const readBufferSize = 4096

// pump copies PTY output into the shared buffer until done is closed.
// End-of-stream and would-block are treated as transient and retried.
type pump struct {
	src  io.Reader
	dst  *outputBuffer
	done <-chan struct{}
	log  ports.Logger

	eofDelay        time.Duration
	wouldBlockDelay time.Duration
	errorDelay      time.Duration
}

func newPump(src io.Reader, dst *outputBuffer, done <-chan struct{}, log ports.Logger) *pump {
	return &pump{
		src:             src,
		dst:             dst,
		done:            done,
		log:             log,
		eofDelay:        100 * time.Millisecond,
		wouldBlockDelay: 10 * time.Millisecond,
		errorDelay:      100 * time.Millisecond,
	}
}

func (p *pump) run() {
	buf := make([]byte, readBufferSize)
	failing := false

	for {
		select {
		case <-p.done:
			return
		default:
		}

		n, err := p.src.Read(buf)
		if n > 0 {
			p.dst.append(buf[:n])
			failing = false
		}

		switch {
		case err == nil:
			continue
		case errors.Is(err, io.EOF):
			p.sleep(p.eofDelay)
		case isWouldBlock(err):
			p.sleep(p.wouldBlockDelay)
		default:
			if p.closed() {
				return
			}
			if !failing {
				p.log.Warn("pty read failed, backing off", map[string]interface{}{"error": err.Error()})
				failing = true
			}
			p.sleep(p.errorDelay)
		}
	}
}

// sleep waits for d unless the session is closed first.
func (p *pump) sleep(d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-p.done:
	case <-timer.C:
	}
}

func (p *pump) closed() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

func isWouldBlock(err error) bool {
	return errors.Is(err, syscall.EAGAIN) || errors.Is(err, os.ErrDeadlineExceeded)
}
