// Package interactive runs the PTY passthrough loop of `shai-term shell`.
//
// Keystrokes are forwarded to the shell as they arrive. Enter is held back
// while the typed command goes through the safeguard matcher and the AI harm
// check; a flagged command runs only when Enter is pressed a second time.
// Ctrl-G asks the assistant for a completion of the current line.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/doeshing/shai-term/internal/domain"
	"github.com/doeshing/shai-term/internal/infrastructure/cli/ui"
	"github.com/doeshing/shai-term/internal/ports"
)

// pollInterval is how often pending shell output is drained.
const pollInterval = 15 * time.Millisecond

// Shell is the subset of the session manager the loop drives.
type Shell interface {
	Write(p []byte) error
	Read() string
	HasPendingOutput() bool
	Resize(cols, rows uint16) error
	Exited() <-chan struct{}
}

// Assistant is the subset of the orchestrator the loop calls.
type Assistant interface {
	CheckSafeguard(command string) domain.MatchResult
	ClassifyHarm(ctx context.Context, command string) domain.HarmResult
	Suggest(ctx context.Context, input string) (domain.Suggestion, error)
	AddToHistory(command string)
}

// Loop couples the user's terminal to the shell session.
type Loop struct {
	shell     Shell
	assistant Assistant
	in        io.Reader
	out       io.Writer
	log       ports.Logger

	// Size reports the user's terminal size; Resize events re-read it.
	Size   func() (cols, rows int, err error)
	Resize <-chan struct{}

	line    lineEditor
	confirm string
}

// New builds a loop reading keys from in and writing shell output to out.
func New(shell Shell, assistant Assistant, in io.Reader, out io.Writer, log ports.Logger) *Loop {
	return &Loop{shell: shell, assistant: assistant, in: in, out: out, log: log}
}

// Run blocks until the shell exits, input ends or ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	input := make(chan []byte)
	readErr := make(chan error, 1)
	go l.readInput(input, readErr)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	l.syncSize()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.shell.Exited():
			return l.drain()
		case chunk := <-input:
			if err := l.handle(ctx, chunk); err != nil {
				return err
			}
		case err := <-readErr:
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		case <-l.Resize:
			l.syncSize()
		case <-ticker.C:
			if err := l.drain(); err != nil {
				return err
			}
		}
	}
}

// readInput never returns while stdin stays open; the goroutine ends with the process.
func (l *Loop) readInput(input chan<- []byte, readErr chan<- error) {
	buf := make([]byte, 1024)
	for {
		n, err := l.in.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			input <- chunk
		}
		if err != nil {
			readErr <- err
			return
		}
	}
}

func (l *Loop) drain() error {
	if !l.shell.HasPendingOutput() {
		return nil
	}
	_, err := io.WriteString(l.out, l.shell.Read())
	return err
}

func (l *Loop) syncSize() {
	if l.Size == nil {
		return
	}
	cols, rows, err := l.Size()
	if err != nil || cols <= 0 || rows <= 0 {
		return
	}
	if err := l.shell.Resize(uint16(cols), uint16(rows)); err != nil {
		l.log.Debug("resize failed", map[string]interface{}{"error": err.Error()})
	}
}

// handle processes one chunk of keyboard input.
func (l *Loop) handle(ctx context.Context, chunk []byte) error {
	var pass []byte
	flush := func() error {
		if len(pass) == 0 {
			return nil
		}
		err := l.shell.Write(pass)
		pass = pass[:0]
		return err
	}

	for _, b := range chunk {
		switch b {
		case '\r', '\n':
			if err := flush(); err != nil {
				return err
			}
			if err := l.submit(ctx, b); err != nil {
				return err
			}
		case keyCtrlG:
			if err := flush(); err != nil {
				return err
			}
			if err := l.complete(ctx); err != nil {
				return err
			}
		default:
			l.confirm = ""
			l.line.feed(b)
			pass = append(pass, b)
		}
	}
	return flush()
}

// submit gates Enter on the safeguard and harm checks.
func (l *Loop) submit(ctx context.Context, enter byte) error {
	command, known := l.line.text()
	command = strings.TrimSpace(command)

	if known && command != "" && l.confirm != command {
		if warning := l.assess(ctx, command); warning != "" {
			l.confirm = command
			return l.notify(warning + "\r\n" + ui.Dim("Press Enter again to run it, Ctrl-C to cancel."))
		}
	}
	if !known {
		l.log.Debug("line edited with keys that cannot be tracked, skipping checks", nil)
	}

	l.confirm = ""
	l.line.reset()
	if command != "" && known {
		l.assistant.AddToHistory(command)
	}
	return l.shell.Write([]byte{enter})
}

// assess returns a warning for a dangerous command, "" otherwise.
func (l *Loop) assess(ctx context.Context, command string) string {
	if match := l.assistant.CheckSafeguard(command); match.IsDangerous {
		return ui.MatchWarning(match)
	}
	if harm := l.assistant.ClassifyHarm(ctx, command); harm.IsHarmful {
		return ui.HarmWarning(harm)
	}
	return ""
}

// complete inserts the assistant's completion as if it had been typed.
func (l *Loop) complete(ctx context.Context) error {
	input, known := l.line.text()
	if !known {
		return nil
	}
	suggestion, err := l.assistant.Suggest(ctx, input)
	if err != nil {
		return l.notify(ui.Dim(err.Error()))
	}
	if suggestion.Completion == "" {
		return nil
	}
	l.confirm = ""
	l.line.insert(suggestion.Completion)
	return l.shell.Write([]byte(suggestion.Completion))
}

// notify prints a message on its own line; the shell redraws its prompt
// on the next keystroke.
func (l *Loop) notify(message string) error {
	_, err := fmt.Fprintf(l.out, "\r\n%s\r\n", message)
	return err
}
