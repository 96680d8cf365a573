// Package metadata models the keyword fields diptych merges between images
// and parses them out of exiftool output.
package metadata

import (
	"sort"
	"strings"
)

// Field names, spelled the way exiftool expects them in arguments.
const (
	FieldKeywords            = "Keywords"
	FieldSubject             = "Subject"
	FieldHierarchicalSubject = "HierarchicalSubject"
)

// FieldNames returns the merged field names in canonical order.
func FieldNames() []string {
	return []string{FieldKeywords, FieldSubject, FieldHierarchicalSubject}
}

const listSeparator = ", "

// TagSet is an unordered set of tag values.
type TagSet map[string]struct{}

// NewTagSet builds a set from the given values, dropping empty strings.
func NewTagSet(values ...string) TagSet {
	set := make(TagSet, len(values))
	for _, value := range values {
		set.Add(value)
	}
	return set
}

// ParseList splits an exiftool list rendering ("cat, pet, holiday") into a
// set. Empty elements are dropped.
func ParseList(raw string) TagSet {
	if raw == "" {
		return NewTagSet()
	}
	return NewTagSet(strings.Split(raw, listSeparator)...)
}

// Add inserts a value, ignoring empty strings.
func (s TagSet) Add(value string) {
	if value == "" {
		return
	}
	s[value] = struct{}{}
}

// AddSet inserts every value of other.
func (s TagSet) AddSet(other TagSet) {
	for value := range other {
		s[value] = struct{}{}
	}
}

// Has reports whether value is present.
func (s TagSet) Has(value string) bool {
	_, ok := s[value]
	return ok
}

// Len returns the number of values.
func (s TagSet) Len() int { return len(s) }

// Values returns the values in sorted order.
func (s TagSet) Values() []string {
	values := make([]string, 0, len(s))
	for value := range s {
		values = append(values, value)
	}
	sort.Strings(values)
	return values
}

// Join renders the set in exiftool list notation.
func (s TagSet) Join() string {
	return strings.Join(s.Values(), listSeparator)
}

// Union returns a new set holding the values of both sets.
func (s TagSet) Union(other TagSet) TagSet {
	union := make(TagSet, len(s)+len(other))
	union.AddSet(s)
	union.AddSet(other)
	return union
}

// Diff returns a new set holding the values of s that other lacks.
func (s TagSet) Diff(other TagSet) TagSet {
	diff := make(TagSet)
	for value := range s {
		if !other.Has(value) {
			diff[value] = struct{}{}
		}
	}
	return diff
}

// FieldSet holds the tag values of the three merged fields for one image.
type FieldSet struct {
	Keywords            TagSet
	Subject             TagSet
	HierarchicalSubject TagSet
}

// NewFieldSet returns a FieldSet with empty, non-nil sets.
func NewFieldSet() FieldSet {
	return FieldSet{
		Keywords:            NewTagSet(),
		Subject:             NewTagSet(),
		HierarchicalSubject: NewTagSet(),
	}
}

// Field returns the set for a canonical field name, or nil for unknown names.
func (f FieldSet) Field(name string) TagSet {
	switch name {
	case FieldKeywords:
		return f.Keywords
	case FieldSubject:
		return f.Subject
	case FieldHierarchicalSubject:
		return f.HierarchicalSubject
	default:
		return nil
	}
}

// Union returns a new FieldSet holding the field-wise union of both sets.
func (f FieldSet) Union(other FieldSet) FieldSet {
	return FieldSet{
		Keywords:            f.Keywords.Union(other.Keywords),
		Subject:             f.Subject.Union(other.Subject),
		HierarchicalSubject: f.HierarchicalSubject.Union(other.HierarchicalSubject),
	}
}

// Diff returns a new FieldSet holding the values of f that other lacks.
func (f FieldSet) Diff(other FieldSet) FieldSet {
	return FieldSet{
		Keywords:            f.Keywords.Diff(other.Keywords),
		Subject:             f.Subject.Diff(other.Subject),
		HierarchicalSubject: f.HierarchicalSubject.Diff(other.HierarchicalSubject),
	}
}

// IsEmpty reports whether every field is empty.
func (f FieldSet) IsEmpty() bool {
	return f.Count() == 0
}

// Count returns the total number of values across all fields.
func (f FieldSet) Count() int {
	return f.Keywords.Len() + f.Subject.Len() + f.HierarchicalSubject.Len()
}
