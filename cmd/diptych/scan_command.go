package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"diptych/internal/logging"
	"diptych/internal/workflow"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "scan FOLDER",
		Short: "Fingerprint a folder and report matches without writing metadata",
		Args:  cobra.ExactArgs(1),
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

			report, err := runner.Scan(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, report)
			}
			printScanReport(cmd, report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the report as JSON")
	return cmd
}
