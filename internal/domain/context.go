package domain

// TerminalContext is the situational data handed to prompt builders.
type TerminalContext struct {
	CurrentInput   string
	CommandHistory []string
	Cwd            string
	Shell          string
	OS             string
	GitBranch      string
	// EnvVarNames holds variable names only, never values.
	EnvVarNames []string
}
