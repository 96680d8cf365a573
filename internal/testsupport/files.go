package testsupport

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// SolidImage returns a uniform grayscale image of the given dimensions.
func SolidImage(width, height int, shade uint8) image.Image {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetGray(x, y, color.Gray{Y: shade})
		}
	}
	return img
}

// GradientImage returns a luminance ramp. Horizontal and vertical ramps hash
// far apart under every supported algorithm, which makes them reliable
// "different picture" fixtures.
func GradientImage(width, height int, horizontal bool) image.Image {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pos := y
			span := height
			if horizontal {
				pos = x
				span = width
			}
			shade := uint8(pos * 255 / max(span-1, 1))
			img.SetGray(x, y, color.Gray{Y: shade})
		}
	}
	return img
}

// WritePNG encodes img to path, creating parent directories as needed.
func WritePNG(t testing.TB, path string, img image.Image) {
	t.Helper()
	writeImage(t, path, func(f *os.File) error {
		return png.Encode(f, img)
	})
}

// WriteJPEG encodes img to path, creating parent directories as needed.
func WriteJPEG(t testing.TB, path string, img image.Image) {
	t.Helper()
	writeImage(t, path, func(f *os.File) error {
		return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
	})
}

// WriteBrokenImage writes non-image bytes under an image extension so decode
// failures can be exercised.
func WriteBrokenImage(t testing.TB, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte("not an image at all"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// CopyFile duplicates src to dst byte for byte. Identical bytes guarantee
// identical fingerprints, which makes copied files reliable match fixtures.
func CopyFile(t testing.TB, src, dst string) {
	t.Helper()
	in, err := os.Open(src)
	if err != nil {
		t.Fatalf("open %s: %v", src, err)
	}
	defer in.Close()
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", dst, err)
	}
	out, err := os.Create(dst)
	if err != nil {
		t.Fatalf("create %s: %v", dst, err)
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		t.Fatalf("copy %s to %s: %v", src, dst, err)
	}
}

func writeImage(t testing.TB, path string, encode func(*os.File) error) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := encode(f); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}
