// Package contextcollector gathers the terminal state that goes into prompts.
package contextcollector

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/doeshing/shai-term/internal/domain"
	"github.com/doeshing/shai-term/internal/ports"
)

const gitTimeout = 2 * time.Second

// Collector implements ports.ContextCollector from the shell session and host.
type Collector struct {
	cwd     ports.CwdSource
	environ func() []string
}

// NewCollector reads the working directory from cwd; nil falls back to the process directory.
func NewCollector(cwd ports.CwdSource) *Collector {
	return &Collector{cwd: cwd, environ: os.Environ}
}

// Collect gathers context data. It never fails; missing pieces stay empty.
func (c *Collector) Collect(ctx context.Context, input string, history []string) (domain.TerminalContext, error) {
	wd := c.workingDir()

	return domain.TerminalContext{
		CurrentInput:   input,
		CommandHistory: history,
		Cwd:            wd,
		Shell:          detectShell(),
		OS:             runtime.GOOS,
		GitBranch:      gitBranch(ctx, wd),
		EnvVarNames:    envNames(c.environ()),
	}, nil
}

func (c *Collector) workingDir() string {
	if c.cwd != nil {
		if wd := c.cwd.Cwd(); wd != "" {
			return wd
		}
	}
	wd, _ := os.Getwd()
	return wd
}

func detectShell() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		return filepath.Base(shell)
	}
	if runtime.GOOS == "windows" {
		return "powershell"
	}
	return ""
}

// envNames returns variable names only. Values never leave the process.
func envNames(environ []string) []string {
	names := make([]string, 0, len(environ))
	for _, kv := range environ {
		name, _, _ := strings.Cut(kv, "=")
		if name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// insideGitRepo walks up from dir looking for a .git entry.
func insideGitRepo(dir string) bool {
	if dir == "" {
		return false
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return false
		}
		dir = parent
	}
}

func gitBranch(ctx context.Context, dir string) string {
	if !insideGitRepo(dir) {
		return ""
	}
	branch := strings.TrimSpace(runCmd(ctx, dir, "git", "rev-parse", "--abbrev-ref", "HEAD"))
	if branch == "HEAD" {
		return ""
	}
	return branch
}

func runCmd(ctx context.Context, dir string, name string, args ...string) string {
	cctx, cancel := context.WithTimeout(ctx, gitTimeout)
	defer cancel()
	cmd := exec.CommandContext(cctx, name, args...)
	if dir != "" {
		cmd.Dir = dir
	}
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	return string(out)
}

var _ ports.ContextCollector = (*Collector)(nil)
