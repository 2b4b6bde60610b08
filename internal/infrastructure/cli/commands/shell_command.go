package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/doeshing/shai-term/internal/app"
	appconfig "github.com/doeshing/shai-term/internal/application/config"
	"github.com/doeshing/shai-term/internal/domain"
	"github.com/doeshing/shai-term/internal/infrastructure/cli/interactive"
	"github.com/doeshing/shai-term/internal/infrastructure/cli/ui"
	"github.com/doeshing/shai-term/internal/infrastructure/config"
)

// NewShellCommand creates the interactive shell command
func NewShellCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an AI-assisted shell (Enter is checked, Ctrl-G completes)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunShell(cmd.Context(), container)
		},
	}
}

// RunShell hosts the user's shell in a PTY until it exits.
func RunShell(ctx context.Context, container *app.Container) error {
	inFd := int(os.Stdin.Fd())
	outFd := int(os.Stdout.Fd())
	if !term.IsTerminal(inFd) {
		return errors.New(ErrNotATerminal)
	}

	info, err := container.Sessions.Create()
	if err != nil {
		return fmt.Errorf("start shell: %w", err)
	}
	defer container.Sessions.Close()

	fmt.Fprintf(os.Stdout, "%s %s\r\n", ui.Title("shai-term"), ui.Dim(info.Shell+"  Ctrl-G: complete"))

	state, err := term.MakeRaw(inFd)
	if err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	defer term.Restore(inFd, state)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := config.Watch(ctx, container.ConfigLoader, reloadConfig(container), container.Logger); err != nil {
		container.Logger.Warn("config reload disabled", map[string]interface{}{"error": err.Error()})
	}

	loop := interactive.New(container.Sessions, container.Assistant, os.Stdin, os.Stdout, container.Logger)
	loop.Size = func() (int, int, error) { return term.GetSize(outFd) }
	loop.Resize = interactive.WatchResize(ctx, outFd)
	return loop.Run(ctx)
}

// reloadConfig applies a changed config file. Switching provider or model
// drops cached answers from the previous backend.
func reloadConfig(container *app.Container) func(domain.AppConfig) {
	return func(cfg domain.AppConfig) {
		if err := appconfig.Validate(cfg); err != nil {
			container.Logger.Warn("reloaded config rejected", map[string]interface{}{"error": err.Error()})
			return
		}
		previous := container.Assistant.Config()
		container.Assistant.ApplyConfig(cfg)
		if previous.Provider != cfg.Provider || previous.Model != cfg.Model {
			container.Assistant.ClearCaches()
		}
	}
}
