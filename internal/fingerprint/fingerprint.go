package fingerprint

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/corona10/goimagehash"
)

// ErrDecode marks files that could not be decoded as images.
var ErrDecode = errors.New("decode image")

// Algorithm selects the perceptual hash function applied to an image.
type Algorithm string

const (
	AlgorithmAverage    Algorithm = "average"
	AlgorithmDifference Algorithm = "difference"
	AlgorithmPerception Algorithm = "perception"
)

// Algorithms lists the supported algorithm names in display order.
func Algorithms() []Algorithm {
	return []Algorithm{AlgorithmAverage, AlgorithmDifference, AlgorithmPerception}
}

// ParseAlgorithm maps a config or flag value to an Algorithm. The empty
// string selects the default average hash.
func ParseAlgorithm(value string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(AlgorithmAverage):
		return AlgorithmAverage, nil
	case string(AlgorithmDifference):
		return AlgorithmDifference, nil
	case string(AlgorithmPerception):
		return AlgorithmPerception, nil
	default:
		return "", fmt.Errorf("unknown hash algorithm %q", value)
	}
}

var supportedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

// IsSupported reports whether path carries one of the image extensions the
// scanner picks up.
func IsSupported(path string) bool {
	_, ok := supportedExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Fingerprint is a 64-bit perceptual hash of one image tagged with the
// algorithm that produced it.
type Fingerprint struct {
	hash      *goimagehash.ImageHash
	algorithm Algorithm
}

// Compute decodes the image at path and hashes it with the given algorithm.
// Decode failures are tagged with ErrDecode so callers can distinguish a
// broken file from an I/O or hashing problem.
func Compute(path string, alg Algorithm) (*Fingerprint, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}

	hash, err := hashImage(img, alg)
	if err != nil {
		return nil, fmt.Errorf("hash %s: %w", path, err)
	}
	return &Fingerprint{hash: hash, algorithm: alg}, nil
}

// FromBits reconstructs a fingerprint from its packed hash value, as stored
// by the fingerprint cache.
func FromBits(bits uint64, alg Algorithm) *Fingerprint {
	return &Fingerprint{hash: goimagehash.NewImageHash(bits, alg.kind()), algorithm: alg}
}

// Algorithm returns the algorithm that produced the fingerprint.
func (f *Fingerprint) Algorithm() Algorithm { return f.algorithm }

// Bits returns the packed 64-bit hash value.
func (f *Fingerprint) Bits() uint64 { return f.hash.GetHash() }

// String renders the hash in goimagehash notation, a kind prefix plus hex.
func (f *Fingerprint) String() string { return f.hash.ToString() }

// Distance returns the Hamming distance between two fingerprints. Both must
// come from the same algorithm.
func (f *Fingerprint) Distance(other *Fingerprint) (int, error) {
	if other == nil {
		return 0, errors.New("compare fingerprints: nil operand")
	}
	if f.algorithm != other.algorithm {
		return 0, fmt.Errorf("compare fingerprints: algorithm mismatch (%s vs %s)", f.algorithm, other.algorithm)
	}
	return f.hash.Distance(other.hash)
}

func hashImage(img image.Image, alg Algorithm) (*goimagehash.ImageHash, error) {
	switch alg {
	case AlgorithmDifference:
		return goimagehash.DifferenceHash(img)
	case AlgorithmPerception:
		return goimagehash.PerceptionHash(img)
	default:
		return goimagehash.AverageHash(img)
	}
}

func (a Algorithm) kind() goimagehash.Kind {
	switch a {
	case AlgorithmDifference:
		return goimagehash.DHash
	case AlgorithmPerception:
		return goimagehash.PHash
	default:
		return goimagehash.AHash
	}
}
