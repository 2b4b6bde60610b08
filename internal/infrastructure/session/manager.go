package session

import (
	"os"
	"sync"

	"github.com/doeshing/shai-term/internal/domain"
	"github.com/doeshing/shai-term/internal/ports"
)

// Manager owns at most one Session for the lifetime of the application.
// Its lock only guards the session pointer; I/O happens outside it.
type Manager struct {
	mu      sync.Mutex
	session *Session
	opts    Options
	log     ports.Logger
}

// NewManager creates a manager that spawns shells with opts.
func NewManager(opts Options, log ports.Logger) *Manager {
	return &Manager{opts: opts, log: log}
}

// Create spawns the shell on first use and returns the existing session afterwards.
func (m *Manager) Create() (domain.SessionInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session != nil {
		return m.session.Info(), nil
	}
	s, err := Start(m.opts, m.log)
	if err != nil {
		return domain.SessionInfo{}, err
	}
	m.session = s
	return s.Info(), nil
}

func (m *Manager) current() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// Write forwards input to the shell.
func (m *Manager) Write(p []byte) error {
	s := m.current()
	if s == nil {
		return domain.ErrNoSession
	}
	return s.Write(p)
}

// Read drains pending output; "" when nothing is pending or no session exists.
func (m *Manager) Read() string {
	s := m.current()
	if s == nil {
		return ""
	}
	return s.Read()
}

// Resize changes the PTY window size.
func (m *Manager) Resize(cols, rows uint16) error {
	s := m.current()
	if s == nil {
		return domain.ErrNoSession
	}
	return s.Resize(cols, rows)
}

// Cwd returns the shell's inferred working directory, or the process working
// directory before a session exists.
func (m *Manager) Cwd() string {
	if s := m.current(); s != nil {
		return s.Cwd()
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// HasPendingOutput is a cheap non-consuming poll.
func (m *Manager) HasPendingOutput() bool {
	s := m.current()
	return s != nil && s.HasPendingOutput()
}

// Info reports the current session, if any.
func (m *Manager) Info() (domain.SessionInfo, bool) {
	s := m.current()
	if s == nil {
		return domain.SessionInfo{}, false
	}
	return s.Info(), true
}

// Exited is closed when the shell terminates. Nil without a session.
func (m *Manager) Exited() <-chan struct{} {
	s := m.current()
	if s == nil {
		return nil
	}
	return s.Exited()
}

// Close tears the session down. A later Create spawns a new shell.
func (m *Manager) Close() error {
	m.mu.Lock()
	s := m.session
	m.session = nil
	m.mu.Unlock()

	if s == nil {
		return nil
	}
	return s.Close()
}

var _ ports.CwdSource = (*Manager)(nil)
