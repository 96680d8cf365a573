package exiftool

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Charsets accepted for exiftool filename and value encoding.
const (
	CharsetCP1252 = "cp1252"
	CharsetUTF8   = "utf8"
)

// NormalizeCharset maps a config value to a canonical charset name.
func NormalizeCharset(value string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", CharsetCP1252, "windows-1252":
		return CharsetCP1252, nil
	case CharsetUTF8, "utf-8":
		return CharsetUTF8, nil
	default:
		return "", fmt.Errorf("unsupported charset %q", value)
	}
}

// decodeOutput converts raw exiftool output to UTF-8. With -L exiftool emits
// cp1252 bytes; every byte decodes, so this cannot fail.
func (c *Client) decodeOutput(raw []byte) string {
	if c.charset == CharsetUTF8 {
		return string(raw)
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}

// encodeValue converts a UTF-8 tag value to the byte form exiftool expects
// on its command line. Runes outside cp1252 become the substitution byte
// rather than failing the whole write.
func (c *Client) encodeValue(value string) string {
	if c.charset == CharsetUTF8 {
		return value
	}
	encoded, err := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()).String(value)
	if err != nil {
		return value
	}
	return encoded
}
