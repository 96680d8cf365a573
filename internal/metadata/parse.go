package metadata

import "strings"

// ParseFields extracts the merged fields from exiftool's default key/value
// output. Lines without the ": " separator are ignored, as are keys outside
// the merged field set; a field absent from the output yields an empty set.
func ParseFields(output string) FieldSet {
	fields := NewFieldSet()
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSuffix(line, "\r")
		key, value, ok := strings.Cut(line, ": ")
		if !ok {
			continue
		}
		if set := fields.Field(canonicalField(key)); set != nil {
			set.AddSet(ParseList(value))
		}
	}
	return fields
}

// canonicalField maps an output key to its argument spelling. exiftool prints
// human-readable descriptions ("Hierarchical Subject") padded to a column, so
// spaces and case are ignored.
func canonicalField(key string) string {
	normalized := strings.ReplaceAll(strings.TrimSpace(key), " ", "")
	for _, name := range FieldNames() {
		if strings.EqualFold(normalized, name) {
			return name
		}
	}
	return ""
}
