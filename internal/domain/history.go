package domain

import "time"

// CommandRecord captures an executed command for the persistent command log.
type CommandRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Command   string    `json:"command"`
	Cwd       string    `json:"cwd"`
	ExitCode  int       `json:"exit_code"`
	Output    string    `json:"output"`
	RiskLevel Severity  `json:"risk_level,omitempty"`
}

// Failed reports whether the command exited non-zero.
func (r CommandRecord) Failed() bool {
	return r.ExitCode != 0
}

// SessionInfo is the public view of the shell session.
type SessionInfo struct {
	ID        string    `json:"id"`
	Shell     string    `json:"shell"`
	Cwd       string    `json:"cwd"`
	Cols      uint16    `json:"cols"`
	Rows      uint16    `json:"rows"`
	StartedAt time.Time `json:"started_at"`
	Active    bool      `json:"active"`
}
