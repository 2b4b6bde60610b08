package assistant

import (
	"strings"
	"time"

	"github.com/doeshing/shai-term/internal/application/prompt"
	"github.com/doeshing/shai-term/internal/domain"
)

// AddToHistory appends a command, dropping the oldest beyond MaxCommandHistory.
func (s *Service) AddToHistory(command string) {
	command = strings.TrimSpace(command)
	if command == "" {
		return
	}

	s.histMu.Lock()
	defer s.histMu.Unlock()
	s.history = append(s.history, command)
	if over := len(s.history) - domain.MaxCommandHistory; over > 0 {
		s.history = append([]string(nil), s.history[over:]...)
	}
}

// History returns the in-memory command history, oldest first.
func (s *Service) History() []string {
	return s.recentHistory(0)
}

// recentHistory returns the last n entries, or all of them when n <= 0.
func (s *Service) recentHistory(n int) []string {
	s.histMu.Lock()
	defer s.histMu.Unlock()

	start := 0
	if n > 0 && len(s.history) > n {
		start = len(s.history) - n
	}
	return append([]string(nil), s.history[start:]...)
}

// RecordCommandResult remembers the outcome of the last command and appends
// it to the persistent command log. Output is capped at MaxErrorOutputBytes.
func (s *Service) RecordCommandResult(command string, exitCode int, output string) {
	output = prompt.CutRunes(output, domain.MaxErrorOutputBytes)
	cwd := s.cwd()

	ec := domain.ErrorContext{
		Command:  command,
		ExitCode: exitCode,
		Output:   output,
		Cwd:      cwd,
		History:  s.recentHistory(s.Config().MaxHistoryCommands),
	}

	s.lastMu.Lock()
	s.last = &ec
	s.lastMu.Unlock()

	if s.deps.CommandLog == nil {
		return
	}

	record := domain.CommandRecord{
		Timestamp: time.Now(),
		Command:   command,
		Cwd:       cwd,
		ExitCode:  exitCode,
		Output:    output,
	}
	if match := s.CheckSafeguard(command); match.IsDangerous {
		record.RiskLevel = match.Severity
	}
	if err := s.deps.CommandLog.Save(record); err != nil {
		s.deps.Logger.Warn("command log save failed", map[string]interface{}{"error": err.Error()})
	}
}

// LastFailure returns the last recorded command when it exited non-zero.
func (s *Service) LastFailure() (domain.ErrorContext, bool) {
	s.lastMu.Lock()
	defer s.lastMu.Unlock()

	if s.last == nil || s.last.ExitCode == 0 {
		return domain.ErrorContext{}, false
	}
	ec := *s.last
	ec.History = append([]string(nil), s.last.History...)
	return ec, true
}
