package commands

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/doeshing/shai-term/internal/app"
	"github.com/doeshing/shai-term/internal/domain"
)

// NewUsageCommand creates the usage command
func NewUsageCommand(container *app.Container) *cobra.Command {
	usageCmd := &cobra.Command{
		Use:   "usage",
		Short: "Show token usage and estimated cost",
		RunE: func(cmd *cobra.Command, args []string) error {
			renderUsage(cmd.OutOrStdout(), container.Usage.Stats())
			return nil
		},
	}

	usageCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show usage statistics",
			RunE: func(cmd *cobra.Command, args []string) error {
				renderUsage(cmd.OutOrStdout(), container.Usage.Stats())
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Reset usage statistics",
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := container.Usage.Reset(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Usage statistics cleared.")
				return nil
			},
		},
	)

	return usageCmd
}

func renderUsage(out io.Writer, stats domain.UsageStats) {
	fmt.Fprintf(out, "Requests:          %d\n", stats.TotalRequests)
	fmt.Fprintf(out, "Prompt tokens:     %d\n", stats.TotalPromptTokens)
	fmt.Fprintf(out, "Completion tokens: %d\n", stats.TotalCompletionTokens)
	fmt.Fprintf(out, "Estimated cost:    $%.4f (avg $%.6f/request)\n", stats.TotalCost, stats.AverageCostPerRequest())
	fmt.Fprintf(out, "Cache hit rate:    %.1f%% (%d hits, %d misses)\n", stats.CacheHitRate()*100, stats.CacheHits, stats.CacheMisses)

	providers := make([]string, 0, len(stats.ByProvider))
	for name := range stats.ByProvider {
		providers = append(providers, name)
	}
	sort.Strings(providers)
	for _, name := range providers {
		p := stats.ByProvider[name]
		fmt.Fprintf(out, "  %-10s %6d requests %9d tokens  $%.4f\n", name, p.RequestCount, p.PromptTokens+p.CompletionTokens, p.TotalCost)
	}
}
