package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var lines int

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display recent run logs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			logPath := filepath.Join(cfg.Paths.LogDir, "diptych.log")
			data, err := os.ReadFile(logPath)
			if os.IsNotExist(err) {
				fmt.Fprintln(cmd.OutOrStdout(), "No log entries available")
				return nil
			}
			if err != nil {
				return fmt.Errorf("read log file: %w", err)
			}

			entries := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
			if lines > 0 && len(entries) > lines {
				entries = entries[len(entries)-lines:]
			}
			out := cmd.OutOrStdout()
			for _, entry := range entries {
				fmt.Fprintln(out, entry)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 10, "Number of lines to show (0 for all)")
	return cmd
}
