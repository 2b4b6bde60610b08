package session

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const windowsPowerShell = `C:\Windows\System32\WindowsPowerShell\v1.0\powershell.exe`

// DefaultShell picks the user's shell, falling back per platform.
func DefaultShell() string {
	if runtime.GOOS == "windows" {
		if _, err := os.Stat(windowsPowerShell); err == nil {
			return windowsPowerShell
		}
		if comspec := os.Getenv("COMSPEC"); comspec != "" {
			return comspec
		}
		return `C:\Windows\System32\cmd.exe`
	}
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}
	switch runtime.GOOS {
	case "darwin":
		return "/bin/zsh"
	case "linux":
		return "/bin/bash"
	default:
		return "/bin/sh"
	}
}

// shellArgs returns the flags that make the shell behave interactively.
func shellArgs(shell string) []string {
	name := strings.ToLower(filepath.Base(shell))
	switch {
	case strings.Contains(name, "powershell"):
		return []string{"-NoLogo", "-NoExit"}
	case strings.Contains(name, "bash"), strings.Contains(name, "zsh"):
		return []string{"-i"}
	default:
		return nil
	}
}

// shellEnv appends the terminal capability variables to the inherited environment.
func shellEnv(shell string, extra []string) []string {
	env := append(os.Environ(),
		"TERM=xterm-256color",
		"COLORTERM=truecolor",
		"TERM_PROGRAM=shai-term",
	)
	if strings.Contains(strings.ToLower(shell), "powershell") {
		env = append(env, "VIRTUAL_TERMINAL_LEVEL=1")
	}
	return append(env, extra...)
}
