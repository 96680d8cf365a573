package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"diptych/internal/workflow"
)

func printRunSummary(cmd *cobra.Command, summary *workflow.RunSummary) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Folder: %s\n", summary.Folder)
	fmt.Fprintf(out, "Algorithm: %s (threshold %d)\n", summary.Algorithm, summary.Threshold)
	fmt.Fprintf(out, "Images scanned: %d\n", summary.Scanned)
	if summary.CacheHits > 0 {
		fmt.Fprintf(out, "Fingerprints from cache: %d\n", summary.CacheHits)
	}
	if len(summary.SkippedFiles) > 0 {
		fmt.Fprintf(out, "Undecodable files skipped: %d\n", len(summary.SkippedFiles))
		for _, path := range summary.SkippedFiles {
			fmt.Fprintf(out, "  %s\n", filepath.Base(path))
		}
	}
	fmt.Fprintf(out, "Pairs matched: %d\n", summary.Matched)

	if len(summary.Merged) > 0 {
		rows := make([][]string, 0, len(summary.Merged))
		for _, result := range summary.Merged {
			rows = append(rows, []string{
				filepath.Base(result.Pair.A),
				filepath.Base(result.Pair.B),
				strconv.Itoa(result.Pair.Distance),
				strconv.Itoa(result.AddedA),
				strconv.Itoa(result.AddedB),
			})
		}
		fmt.Fprintln(out, renderTable(
			[]string{"Image A", "Image B", "Distance", "Added to A", "Added to B"},
			rows, 2, 3, 4,
		))
		fmt.Fprintf(out, "Metadata values added: %d\n", summary.ValuesAdded())
	}

	colorize := shouldColorize(out)
	for _, skipped := range summary.SkippedPairs {
		label := filepath.Base(skipped.Pair.A) + " / " + filepath.Base(skipped.Pair.B)
		fmt.Fprintln(out, renderStatusLine(label, statusWarn, skipped.Err.Error(), colorize))
	}
	for _, failed := range summary.FailedPairs {
		label := filepath.Base(failed.Pair.A) + " / " + filepath.Base(failed.Pair.B)
		fmt.Fprintln(out, renderStatusLine(label, statusError, failed.Err.Error(), colorize))
	}

	fmt.Fprintf(out, "Completed in %s\n", summary.Duration.Round(time.Millisecond))
}

func printScanReport(cmd *cobra.Command, report *workflow.ScanReport) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Folder: %s\n", report.Folder)
	fmt.Fprintf(out, "Algorithm: %s (threshold %d)\n", report.Algorithm, report.Threshold)

	if len(report.Images) == 0 {
		fmt.Fprintln(out, "No supported images found")
		return
	}

	rows := make([][]string, 0, len(report.Images))
	for _, img := range report.Images {
		rows = append(rows, []string{filepath.Base(img.Path), img.Hash})
	}
	fmt.Fprintln(out, renderTable([]string{"Image", "Fingerprint"}, rows))

	if len(report.SkippedFiles) > 0 {
		fmt.Fprintf(out, "Undecodable files skipped: %d\n", len(report.SkippedFiles))
	}

	if len(report.Pairs) == 0 {
		fmt.Fprintln(out, "No pairs within threshold")
		return
	}
	pairRows := make([][]string, 0, len(report.Pairs))
	for _, pair := range report.Pairs {
		pairRows = append(pairRows, []string{
			filepath.Base(pair.A),
			filepath.Base(pair.B),
			strconv.Itoa(pair.Distance),
		})
	}
	fmt.Fprintln(out, renderTable([]string{"Image A", "Image B", "Distance"}, pairRows, 2))
}
