// Package match enumerates near-duplicate image pairs from a set of
// fingerprints.
package match

import (
	"fmt"
	"sort"

	"diptych/internal/fingerprint"
)

// Pair identifies two images whose fingerprints are within the match
// threshold. A is always lexicographically smaller than B, which makes each
// unordered pair appear exactly once.
type Pair struct {
	A        string
	B        string
	Distance int
}

// Find compares every unique pair of fingerprints and returns those within
// the inclusive threshold. Results are ordered by (A, B) so runs over the
// same folder are deterministic.
func Find(prints map[string]*fingerprint.Fingerprint, threshold int) ([]Pair, error) {
	paths := make([]string, 0, len(prints))
	for path := range prints {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var pairs []Pair
	for i := 0; i < len(paths); i++ {
		for j := i + 1; j < len(paths); j++ {
			a, b := paths[i], paths[j]
			distance, err := prints[a].Distance(prints[b])
			if err != nil {
				return nil, fmt.Errorf("compare %s and %s: %w", a, b, err)
			}
			if distance <= threshold {
				pairs = append(pairs, Pair{A: a, B: b, Distance: distance})
			}
		}
	}
	return pairs, nil
}
