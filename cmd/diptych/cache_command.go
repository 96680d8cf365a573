package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"diptych/internal/hashcache"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the fingerprint cache",
	}

	cacheCmd.AddCommand(newCacheStatsCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))

	return cacheCmd
}

func newCacheStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show fingerprint cache contents",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !cfg.FingerprintCache.Enabled {
				fmt.Fprintln(out, "Fingerprint cache is disabled (set fingerprint_cache.enabled = true)")
			}

			store, err := hashcache.Open(cfg.FingerprintCachePath())
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer store.Close()

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Cache: %s\n", store.Path())
			fmt.Fprintf(out, "Entries: %d\n", stats.Total)
			if stats.Total == 0 {
				return nil
			}

			algorithms := make([]string, 0, len(stats.PerAlgorithm))
			for algorithm := range stats.PerAlgorithm {
				algorithms = append(algorithms, algorithm)
			}
			sort.Strings(algorithms)

			rows := make([][]string, 0, len(algorithms))
			for _, algorithm := range algorithms {
				rows = append(rows, []string{algorithm, strconv.FormatInt(stats.PerAlgorithm[algorithm], 10)})
			}
			fmt.Fprintln(out, renderTable([]string{"Algorithm", "Entries"}, rows, 1))
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached fingerprints",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := hashcache.Open(cfg.FingerprintCachePath())
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer store.Close()

			deleted, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached fingerprints\n", deleted)
			return nil
		},
	}
}
