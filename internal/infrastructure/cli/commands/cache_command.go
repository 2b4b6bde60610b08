package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/shai-term/internal/app"
	"github.com/doeshing/shai-term/internal/domain"
)

// NewCacheCommand creates the cache command
func NewCacheCommand(container *app.Container) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the in-memory answer caches",
	}

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show cache limits and hit rate",
		RunE: func(cmd *cobra.Command, args []string) error {
			renderCacheStats(cmd.OutOrStdout(), container.Usage.Stats())
			return nil
		},
	})

	return cacheCmd
}

func renderCacheStats(out io.Writer, stats domain.UsageStats) {
	fmt.Fprintf(out, "Suggestions: up to %d entries for %s\n", domain.DefaultMaxCacheEntries, domain.SuggestionCacheTTL)
	fmt.Fprintf(out, "Harm checks: up to %d entries for %s\n", domain.DefaultMaxCacheEntries, domain.HarmCacheTTL.Round(time.Minute))
	fmt.Fprintf(out, "Hit rate:    %.1f%% (%d hits, %d misses)\n", stats.CacheHitRate()*100, stats.CacheHits, stats.CacheMisses)
	fmt.Fprintln(out, "Caches live in memory and are dropped when the shell session ends.")
}
