package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/shai-term/internal/app"
	"github.com/doeshing/shai-term/internal/domain"
	"github.com/doeshing/shai-term/internal/infrastructure/cli/ui"
)

// NewCheckCommand creates the check command
func NewCheckCommand(container *app.Container) *cobra.Command {
	var withAI bool

	cmd := &cobra.Command{
		Use:   "check <command>",
		Short: "Check a command against the safeguard rules",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			command := strings.Join(args, " ")
			out := cmd.OutOrStdout()

			renderMatch(out, container.Assistant.CheckSafeguard(command))
			if withAI {
				renderHarm(out, container.Assistant.ClassifyHarm(cmd.Context(), command))
			}
			return nil
		},
	}

	cmd.Flags().SetInterspersed(false)
	cmd.Flags().BoolVar(&withAI, "ai", false, "Also ask the AI harm check")
	return cmd
}

// NewRulesCommand creates the rules command
func NewRulesCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the safeguard rules in match order",
		RunE: func(cmd *cobra.Command, args []string) error {
			renderRules(cmd.OutOrStdout(), container.Assistant.Rules())
			return nil
		},
	}
}

func renderMatch(out io.Writer, m domain.MatchResult) {
	if !m.IsDangerous {
		fmt.Fprintln(out, ui.Success(MsgCommandSafe))
		return
	}
	fmt.Fprintln(out, ui.MatchWarning(m))
}

func renderHarm(out io.Writer, h domain.HarmResult) {
	if !h.IsHarmful {
		fmt.Fprintln(out, ui.Success(MsgNotHarmful))
		return
	}
	fmt.Fprintln(out, ui.HarmWarning(h))
}

func renderRules(out io.Writer, rules []domain.PatternRule) {
	for i, r := range rules {
		fmt.Fprintf(out, "%3d %-10s %-28q %s\n", i+1, strings.ToUpper(string(r.Severity)), r.Pattern, r.Description)
	}
}
