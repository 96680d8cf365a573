package workflow

import (
	"time"

	"diptych/internal/fingerprint"
	"diptych/internal/match"
	"diptych/internal/merge"
)

// PairFailure records a pair whose merge could not be completed and why.
type PairFailure struct {
	Pair match.Pair
	Err  error
}

// RunSummary aggregates the outcome of one merge run.
type RunSummary struct {
	RunID     string
	Folder    string
	Algorithm fingerprint.Algorithm
	Threshold int

	Scanned      int
	Fingerprints int
	CacheHits    int
	SkippedFiles []string

	Matched      int
	Merged       []merge.Result
	SkippedPairs []PairFailure
	FailedPairs  []PairFailure

	Duration time.Duration
}

// ValuesAdded sums the metadata values written across all merged pairs.
func (s *RunSummary) ValuesAdded() int {
	total := 0
	for _, result := range s.Merged {
		total += result.AddedA + result.AddedB
	}
	return total
}

// ImageFingerprint pairs an image path with its rendered hash.
type ImageFingerprint struct {
	Path string
	Hash string
}

// ScanReport aggregates the outcome of a read-only scan.
type ScanReport struct {
	Folder    string
	Algorithm fingerprint.Algorithm
	Threshold int

	Images       []ImageFingerprint
	CacheHits    int
	SkippedFiles []string
	Pairs        []match.Pair

	Duration time.Duration
}
