package domain

// Suggestion is an inline completion for the text typed so far.
type Suggestion struct {
	Completion  string  `json:"completion"`
	Explanation *string `json:"explanation"`
}

// FixSuggestion is the AI's proposed correction for a failed command.
type FixSuggestion struct {
	FixedCommand string `json:"fixed_command"`
	Explanation  string `json:"explanation"`
	Confidence   string `json:"confidence"`
}

// NoConfidentFix is returned whenever a fix cannot be obtained.
func NoConfidentFix() FixSuggestion {
	return FixSuggestion{
		Explanation: "Unable to suggest a fix.",
		Confidence:  "low",
	}
}

// ErrorContext describes a command that exited with a failure.
type ErrorContext struct {
	Command  string   `json:"command"`
	ExitCode int      `json:"exit_code"`
	Output   string   `json:"output"`
	Cwd      string   `json:"cwd"`
	History  []string `json:"history"`
}

// ExecutionResult wraps details from the command executor.
type ExecutionResult struct {
	Ran        bool
	Output     string
	ExitCode   int
	DurationMS int64
	Err        error
}
