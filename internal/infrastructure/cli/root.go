package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/doeshing/shai-term/internal/app"
	"github.com/doeshing/shai-term/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
	LogFile string
}

// NewRootCmd wires the cobra root command. Without a subcommand it starts
// the interactive shell.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, app.Options{Verbose: opts.Verbose, LogFile: opts.LogFile})
	if err != nil {
		return nil, err
	}
	cobra.OnFinalize(func() { _ = container.Close() })

	root := &cobra.Command{
		Use:   "shai-term",
		Short: "shai-term - AI-assisted terminal",
		Long: "shai-term hosts your shell in a pseudo-terminal, completes commands with an AI model\n" +
			"and warns before dangerous commands run.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunShell(cmd.Context(), container)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		commands.NewShellCommand(container),
		commands.NewSuggestCommand(container),
		commands.NewCheckCommand(container),
		commands.NewRulesCommand(container),
		commands.NewRunCommand(container),
		commands.NewFixCommand(container),
		commands.NewGuardrailCommand(container),
		commands.NewConfigCommand(container),
		commands.NewUsageCommand(container),
		commands.NewHistoryCommand(container),
		commands.NewCacheCommand(container),
		commands.NewDoctorCommand(container),
		commands.NewVersionCommand(),
	)
	return root, nil
}
