package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/shai-term/internal/app"
	"github.com/doeshing/shai-term/internal/domain"
	"github.com/doeshing/shai-term/internal/infrastructure/cli/ui"
)

// NewRunCommand creates the run command
func NewRunCommand(container *app.Container) *cobra.Command {
	var yes bool
	var noFix bool

	cmd := &cobra.Command{
		Use:   "run <command>",
		Short: "Run a command after safety checks and suggest a fix if it fails",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			command := strings.Join(args, " ")
			out := cmd.OutOrStdout()

			if !yes {
				ok, err := confirmCommand(cmd, container, command)
				if err != nil {
					return err
				}
				if !ok {
					return errors.New(ErrCommandDenied)
				}
			}

			result, err := container.Executor.Execute(cmd.Context(), command)
			if err != nil {
				return fmt.Errorf("run command: %w", err)
			}
			fmt.Fprint(out, result.Output)

			container.Assistant.AddToHistory(command)
			container.Assistant.RecordCommandResult(command, result.ExitCode, result.Output)

			if result.ExitCode == 0 || noFix {
				return nil
			}
			fmt.Fprintf(out, "\n%s\n", ui.Dim(fmt.Sprintf("exit code %d", result.ExitCode)))
			if ec, ok := container.Assistant.LastFailure(); ok {
				renderFix(out, suggestFix(cmd, container, ec))
			}
			return nil
		},
	}

	cmd.Flags().SetInterspersed(false)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation for flagged commands")
	cmd.Flags().BoolVar(&noFix, "no-fix", false, "Do not ask for a fix when the command fails")
	return cmd
}

// NewFixCommand creates the fix command
func NewFixCommand(container *app.Container) *cobra.Command {
	var exitCode int
	var output string

	cmd := &cobra.Command{
		Use:   "fix [command]",
		Short: "Suggest a fix for the last failed command, or for the given one",
		RunE: func(cmd *cobra.Command, args []string) error {
			var ec domain.ErrorContext
			if len(args) > 0 {
				ec = domain.ErrorContext{Command: strings.Join(args, " "), ExitCode: exitCode, Output: output}
			} else {
				last, err := lastFailedRecord(container)
				if err != nil {
					return err
				}
				ec = domain.ErrorContext{Command: last.Command, ExitCode: last.ExitCode, Output: last.Output, Cwd: last.Cwd}
			}
			renderFix(cmd.OutOrStdout(), suggestFix(cmd, container, ec))
			return nil
		},
	}

	cmd.Flags().SetInterspersed(false)
	cmd.Flags().IntVar(&exitCode, "exit-code", 1, "Exit code of the given command")
	cmd.Flags().StringVar(&output, "output", "", "Output of the given command")
	return cmd
}

// confirmCommand runs both checks and asks the user when either flags the command.
func confirmCommand(cmd *cobra.Command, container *app.Container, command string) (bool, error) {
	var warning string
	var severity domain.Severity

	if match := container.Assistant.CheckSafeguard(command); match.IsDangerous {
		warning, severity = ui.MatchWarning(match), match.Severity
	} else if harm := container.Assistant.ClassifyHarm(cmd.Context(), command); harm.IsHarmful {
		warning, severity = ui.HarmWarning(harm), harm.Severity
	} else {
		return true, nil
	}

	prompter := NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	return prompter.Confirm(warning, severity, command)
}

func lastFailedRecord(container *app.Container) (domain.CommandRecord, error) {
	records, err := container.CommandLog.Records(DefaultHistorySearchLimit)
	if err != nil {
		return domain.CommandRecord{}, fmt.Errorf("read history: %w", err)
	}
	for _, rec := range records {
		if rec.Failed() {
			return rec, nil
		}
	}
	return domain.CommandRecord{}, errors.New(ErrNoFailedCmd)
}

func suggestFix(cmd *cobra.Command, container *app.Container, ec domain.ErrorContext) domain.FixSuggestion {
	spinner := ui.NewSpinner(os.Stderr, "looking for a fix")
	spinner.Start()
	defer spinner.Stop()
	return container.Assistant.SuggestFix(cmd.Context(), ec)
}

func renderFix(out io.Writer, fix domain.FixSuggestion) {
	if fix.FixedCommand == "" {
		fmt.Fprintln(out, ui.Dim(fix.Explanation))
		return
	}
	fmt.Fprintf(out, "%s %s\n", ui.Title("fix"), ui.Command(fix.FixedCommand))
	if fix.Explanation != "" {
		fmt.Fprintln(out, fix.Explanation)
	}
	fmt.Fprintln(out, ui.Dim("confidence: "+fix.Confidence))
}
