// Package session hosts a single interactive shell inside a pseudo-terminal.
//
// A background pump copies PTY output into a shared buffer which foreground
// callers drain with Read. Writes, resizes and drains may run concurrently.
package session

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/creack/pty"
	"github.com/google/uuid"

	"github.com/doeshing/shai-term/internal/domain"
	"github.com/doeshing/shai-term/internal/pkg/filesystem"
	"github.com/doeshing/shai-term/internal/ports"
)

// Options controls how the shell is spawned. Zero values select defaults.
type Options struct {
	Shell string
	Dir   string
	Cols  uint16
	Rows  uint16
	Env   []string
}

func (o Options) withDefaults() Options {
	if o.Shell == "" {
		o.Shell = DefaultShell()
	}
	if o.Dir == "" {
		o.Dir = filesystem.UserHomeDir()
	}
	if o.Cols == 0 {
		o.Cols = domain.DefaultCols
	}
	if o.Rows == 0 {
		o.Rows = domain.DefaultRows
	}
	return o
}

// Session is one shell process attached to a PTY.
type Session struct {
	id        string
	shell     string
	startedAt time.Time

	cmd  *exec.Cmd
	ptmx *os.File
	log  ports.Logger

	writeMu sync.Mutex
	out     outputBuffer

	cwdMu sync.RWMutex
	cwd   string

	sizeMu sync.Mutex
	cols   uint16
	rows   uint16

	done      chan struct{}
	closeOnce sync.Once
	exitCh    chan struct{}
	exited    atomic.Bool
}

// Start spawns the shell and its output pump. PTY allocation and spawn
// failures are returned as-is; there is no retry.
func Start(opts Options, log ports.Logger) (*Session, error) {
	opts = opts.withDefaults()

	cmd := exec.Command(opts.Shell, shellArgs(opts.Shell)...)
	cmd.Dir = opts.Dir
	cmd.Env = shellEnv(opts.Shell, opts.Env)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: opts.Rows, Cols: opts.Cols})
	if err != nil {
		return nil, fmt.Errorf("start pty: %w", err)
	}

	s := &Session{
		id:        uuid.NewString(),
		shell:     opts.Shell,
		startedAt: time.Now(),
		cmd:       cmd,
		ptmx:      ptmx,
		log:       log,
		cwd:       opts.Dir,
		cols:      opts.Cols,
		rows:      opts.Rows,
		done:      make(chan struct{}),
		exitCh:    make(chan struct{}),
	}

	go s.wait()
	go newPump(ptmx, &s.out, s.done, log).run()

	log.Info("shell session started", map[string]interface{}{
		"id":    s.id,
		"shell": s.shell,
		"dir":   opts.Dir,
		"pid":   cmd.Process.Pid,
	})
	return s, nil
}

func (s *Session) wait() {
	err := s.cmd.Wait()
	s.exited.Store(true)
	close(s.exitCh)

	fields := map[string]interface{}{"id": s.id}
	if err != nil {
		fields["error"] = err.Error()
	}
	s.log.Debug("shell process exited", fields)
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Exited is closed once the shell process has terminated.
func (s *Session) Exited() <-chan struct{} { return s.exitCh }

// Write forwards input to the shell.
func (s *Session) Write(p []byte) error {
	if s.isClosed() {
		return domain.ErrSessionClosed
	}
	if s.exited.Load() {
		return domain.ErrSessionExited
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if _, err := s.ptmx.Write(p); err != nil {
		return fmt.Errorf("write to pty: %w", err)
	}
	return nil
}

// Read drains all pending output as text. Invalid UTF-8 is replaced with
// U+FFFD. It returns "" when nothing is pending.
func (s *Session) Read() string {
	data := s.out.drain()
	if len(data) == 0 {
		return ""
	}
	text := strings.ToValidUTF8(string(data), "\uFFFD")

	if dir, ok := inferCwd(text); ok {
		s.cwdMu.Lock()
		s.cwd = dir
		s.cwdMu.Unlock()
	}
	return text
}

// HasPendingOutput reports whether Read would return data, without draining.
func (s *Session) HasPendingOutput() bool {
	return s.out.pending()
}

// Resize changes the PTY window size.
func (s *Session) Resize(cols, rows uint16) error {
	if s.isClosed() {
		return domain.ErrSessionClosed
	}
	if err := pty.Setsize(s.ptmx, &pty.Winsize{Rows: rows, Cols: cols}); err != nil {
		return fmt.Errorf("resize pty: %w", err)
	}
	s.sizeMu.Lock()
	s.cols, s.rows = cols, rows
	s.sizeMu.Unlock()
	return nil
}

// Cwd returns the last inferred working directory.
func (s *Session) Cwd() string {
	s.cwdMu.RLock()
	defer s.cwdMu.RUnlock()
	return s.cwd
}

// Info returns a snapshot for display.
func (s *Session) Info() domain.SessionInfo {
	s.sizeMu.Lock()
	cols, rows := s.cols, s.rows
	s.sizeMu.Unlock()

	return domain.SessionInfo{
		ID:        s.id,
		Shell:     s.shell,
		Cwd:       s.Cwd(),
		Cols:      cols,
		Rows:      rows,
		StartedAt: s.startedAt,
		Active:    !s.isClosed() && !s.exited.Load(),
	}
}

// Close kills the shell, closes the PTY and stops the pump. Safe to call twice.
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		if s.cmd.Process != nil && !s.exited.Load() {
			_ = s.cmd.Process.Kill()
		}
		if cerr := s.ptmx.Close(); cerr != nil {
			err = fmt.Errorf("close pty: %w", cerr)
		}
		s.log.Info("shell session closed", map[string]interface{}{"id": s.id})
	})
	return err
}

func (s *Session) isClosed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}
