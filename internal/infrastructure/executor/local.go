// Package executor runs one-off commands outside the interactive session.
package executor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/doeshing/shai-term/internal/domain"
	"github.com/doeshing/shai-term/internal/ports"
)

// LocalExecutor runs commands on the host shell.
type LocalExecutor struct {
	shell string
	dir   string
}

// NewLocalExecutor builds a new executor, shell defaults to $SHELL then /bin/sh.
func NewLocalExecutor(shell, dir string) *LocalExecutor {
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		if runtime.GOOS == "windows" {
			shell = "cmd.exe"
		} else {
			shell = "/bin/sh"
		}
	}
	return &LocalExecutor{shell: shell, dir: dir}
}

// Execute implements ports.CommandExecutor. A non-zero exit is reported in the
// result, not as an error; the error is reserved for commands that could not run.
func (e *LocalExecutor) Execute(ctx context.Context, command string) (domain.ExecutionResult, error) {
	c := exec.CommandContext(ctx, e.shell, commandArgs(e.shell, command)...)
	if e.dir != "" {
		c.Dir = e.dir
	}
	var output bytes.Buffer
	c.Stdout = &output
	c.Stderr = &output

	start := time.Now()
	err := c.Run()

	result := domain.ExecutionResult{
		Ran:        true,
		Output:     output.String(),
		DurationMS: time.Since(start).Milliseconds(),
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		result.Err = err
		return result, nil
	}
	if err != nil {
		result.Ran = false
		result.ExitCode = -1
		result.Err = err
		return result, err
	}
	return result, nil
}

func commandArgs(shell, command string) []string {
	switch strings.ToLower(strings.TrimSuffix(filepath.Base(shell), filepath.Ext(shell))) {
	case "cmd":
		return []string{"/C", command}
	case "powershell", "pwsh":
		return []string{"-NoProfile", "-Command", command}
	default:
		return []string{"-c", command}
	}
}

var _ ports.CommandExecutor = (*LocalExecutor)(nil)
