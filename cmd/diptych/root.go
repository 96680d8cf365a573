package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"diptych/internal/logging"
	"diptych/internal/workflow"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:   "diptych FOLDER",
		Short: "Merge keyword metadata between near-duplicate images",
		Long: `diptych scans one folder for images, fingerprints them with a perceptual
hash, and merges the Keywords, Subject, and HierarchicalSubject fields of
every near-duplicate pair so both copies carry the combined values.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return fmt.Errorf("%w\n\n%s", err, cmd.UsageString())
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return applyFlagOverrides(cmd, cfg)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("init logging: %w", err)
			}
			runner, err := workflow.NewRunner(cfg, logger)
			if err != nil {
				return err
			}

			summary, runErr := runner.Run(cmd.Context(), args[0])
			if summary != nil {
				printRunSummary(cmd, summary)
			}
			return runErr
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().Int("threshold", 0, "Maximum fingerprint distance treated as a match")
	rootCmd.PersistentFlags().String("algorithm", "", "Hash algorithm: average, difference, or perception")

	rootCmd.AddCommand(newScanCommand(ctx))
	rootCmd.AddCommand(newShowCommand(ctx))
	rootCmd.AddCommand(newCacheCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
