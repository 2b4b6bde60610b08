package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/doeshing/shai-term/assets"
	"github.com/doeshing/shai-term/internal/app"
	"github.com/doeshing/shai-term/internal/domain"
	"github.com/doeshing/shai-term/internal/pkg/filesystem"
)

// defaultRulesFile is where `guardrail init` writes the template.
const defaultRulesFile = "safeguard.yaml"

// NewGuardrailCommand creates the guardrail command with enable/disable subcommands
func NewGuardrailCommand(container *app.Container) *cobra.Command {
	guardrailCmd := &cobra.Command{
		Use:   "guardrail",
		Short: "Manage the safeguard matcher and the AI harm check",
	}

	guardrailCmd.AddCommand(
		newGuardrailToggleCommand(container, "enable", true),
		newGuardrailToggleCommand(container, "disable", false),
		newGuardrailStatusCommand(container),
		newGuardrailInitCommand(container),
	)

	return guardrailCmd
}

// newGuardrailToggleCommand enables or disables a guardrail
func newGuardrailToggleCommand(container *app.Container, use string, enabled bool) *cobra.Command {
	var ai bool

	cmd := &cobra.Command{
		Use:   use,
		Short: fmt.Sprintf("%s the safeguard rules (--ai: the AI harm check)", use),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setGuardrailState(cmd.Context(), cmd.OutOrStdout(), container, ai, enabled)
		},
	}

	cmd.Flags().BoolVar(&ai, "ai", false, "Toggle the AI harm check instead of the rule matcher")
	return cmd
}

// newGuardrailStatusCommand shows current guardrail status
func newGuardrailStatusCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show guardrail status",
		RunE: func(cmd *cobra.Command, args []string) error {
			showGuardrailStatus(cmd.OutOrStdout(), container.Assistant.Config(), len(container.Assistant.Rules()))
			return nil
		},
	}
}

// newGuardrailInitCommand writes an example user rules file
func newGuardrailInitCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write an example user rules file and point the config at it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initRulesFile(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}
}

// setGuardrailState enables or disables a guardrail
func setGuardrailState(ctx context.Context, out io.Writer, container *app.Container, ai, enabled bool) error {
	var err error
	name := "Safeguard rules"
	if ai {
		name = "AI harm check"
		err = container.Assistant.SetHarmDetectionEnabled(ctx, enabled)
	} else {
		err = container.Assistant.SetSafeguardsEnabled(ctx, enabled)
	}
	if err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Fprintf(out, "%s %s.\n", name, statusWord(enabled))
	return nil
}

// showGuardrailStatus displays the current guardrail status
func showGuardrailStatus(out io.Writer, cfg domain.AppConfig, ruleCount int) {
	fmt.Fprintf(out, "Safeguard rules: %s (%d rules)\n", statusWord(cfg.SafeguardsEnabled), ruleCount)
	fmt.Fprintf(out, "AI harm check:   %s\n", statusWord(cfg.HarmDetectionEnabled))
	if cfg.Safeguard.RulesFile != "" {
		fmt.Fprintf(out, "User rules file: %s\n", filesystem.ResolvePath(cfg.Safeguard.RulesFile))
	}
}

func initRulesFile(ctx context.Context, out io.Writer, container *app.Container) error {
	cfg := container.Assistant.Config()
	if cfg.Safeguard.RulesFile == "" {
		cfg.Safeguard.RulesFile = defaultRulesFile
	}
	path := filesystem.ResolvePath(cfg.Safeguard.RulesFile)

	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(out, "Rules file already exists: %s\n", path)
	} else if errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
			return err
		}
		if err := os.WriteFile(path, assets.SafeguardRulesTemplate, domain.SecureFilePermissions); err != nil {
			return fmt.Errorf("write rules file: %w", err)
		}
		fmt.Fprintf(out, "Wrote example rules to %s\n", path)
	} else {
		return err
	}

	if err := container.Assistant.UpdateConfig(ctx, cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	fmt.Fprintln(out, "User rules apply from the next start.")
	return nil
}

func statusWord(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
