package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/shai-term/internal/app"
	"github.com/doeshing/shai-term/internal/domain"
	"github.com/doeshing/shai-term/internal/infrastructure/cli/ui"
)

// NewSuggestCommand creates the suggest command
func NewSuggestCommand(container *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest <partial command>",
		Short: "Complete a partially typed command",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := strings.Join(args, " ")

			spinner := ui.NewSpinner(os.Stderr, "thinking")
			spinner.Start()
			suggestion, err := container.Assistant.Suggest(cmd.Context(), input)
			spinner.Stop()
			if err != nil {
				return err
			}
			renderSuggestion(cmd.OutOrStdout(), input, suggestion)
			return nil
		},
	}

	// Words after the first argument belong to the partial command.
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func renderSuggestion(out io.Writer, input string, s domain.Suggestion) {
	if s.Completion == "" {
		fmt.Fprintln(out, MsgNoSuggestion)
		return
	}
	fmt.Fprintf(out, "%s%s\n", input, ui.Command(s.Completion))
	if s.Explanation != nil {
		fmt.Fprintln(out, ui.Dim(*s.Explanation))
	}
}
