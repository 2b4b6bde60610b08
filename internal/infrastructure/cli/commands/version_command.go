package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/doeshing/shai-term/internal/version"
)

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show shai-term version and build information",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Current()
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), info.Version)
				return nil
			}
			renderVersion(cmd.OutOrStdout(), info)
			return nil
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")
	return cmd
}

func renderVersion(out io.Writer, info version.BuildInfo) {
	fmt.Fprintf(out, "shai-term %s (%s, %s)\n", info.Version, info.Platform, info.GoVersion)
	if info.Commit != "" {
		commit := info.Commit
		if info.Modified {
			commit += "-dirty"
		}
		fmt.Fprintf(out, "Commit: %s\n", commit)
	}
	if info.BuildDate != "" {
		fmt.Fprintf(out, "Built:  %s\n", info.BuildDate)
	}
}
