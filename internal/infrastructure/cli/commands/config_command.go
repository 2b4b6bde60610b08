package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/shai-term/internal/app"
	"github.com/doeshing/shai-term/internal/domain"
)

// NewConfigCommand creates the config command with all subcommands
func NewConfigCommand(container *app.Container) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect shai-term configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.OutOrStdout(), container.Assistant.Config())
		},
	}

	configCmd.AddCommand(
		newConfigShowCommand(container),
		newConfigPathCommand(container),
		newConfigSetCommand(container),
	)

	return configCmd
}

// newConfigShowCommand creates the 'config show' subcommand
func newConfigShowCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show full configuration (API key masked)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.OutOrStdout(), container.Assistant.Config())
		},
	}
}

// newConfigPathCommand creates the 'config path' subcommand
func newConfigPathCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), container.ConfigLoader.Path())
			return nil
		},
	}
}

// newConfigSetCommand creates the 'config set' subcommand
func newConfigSetCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value, e.g. `config set provider anthropic`",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigValue(cmd.Context(), cmd.OutOrStdout(), container, args[0], strings.Join(args[1:], " "))
		},
	}
}

func showConfig(out io.Writer, cfg domain.AppConfig) error {
	cfg.APIKey = cfg.MaskedAPIKey()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Fprint(out, string(data))
	return nil
}

func setConfigValue(ctx context.Context, out io.Writer, container *app.Container, key, value string) error {
	cfg := container.Assistant.Config()
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := container.Assistant.UpdateConfig(ctx, cfg); err != nil {
		return err
	}
	if strings.EqualFold(key, "api_key") {
		value = cfg.MaskedAPIKey()
	}
	fmt.Fprintf(out, "%s = %s\n", key, value)
	return nil
}
