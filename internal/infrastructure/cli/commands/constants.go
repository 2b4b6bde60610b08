package commands

// Defaults for list-style commands
const (
	DefaultHistoryLimit       = 20
	DefaultHistorySearchLimit = 50
)

// Error messages
const (
	ErrNotATerminal  = "the interactive shell needs a terminal on stdin"
	ErrNoFailedCmd   = "no failed command recorded yet; run one with `shai-term run`"
	ErrCommandDenied = "command cancelled"
)

// Success messages
const (
	MsgNoHistoryRecorded = "No history recorded yet."
	MsgNoSuggestion      = "No suggestion."
	MsgCommandSafe       = "No safeguard rule matched."
	MsgNotHarmful        = "The assistant found nothing harmful."
)
