package metadata_test

import (
	"reflect"
	"testing"

	"diptych/internal/metadata"
)

func TestParseListSplitsAndDeduplicates(t *testing.T) {
	set := metadata.ParseList("cat, pet, cat, holiday")
	if set.Len() != 3 {
		t.Fatalf("expected 3 values, got %d: %v", set.Len(), set.Values())
	}
	if !set.Has("cat") || !set.Has("pet") || !set.Has("holiday") {
		t.Fatalf("missing values: %v", set.Values())
	}
}

func TestParseListDropsEmptyElements(t *testing.T) {
	if set := metadata.ParseList(""); set.Len() != 0 {
		t.Fatalf("empty input should yield empty set, got %v", set.Values())
	}
	set := metadata.ParseList("a, , b")
	if !reflect.DeepEqual(set.Values(), []string{"a", "b"}) {
		t.Fatalf("expected empty elements dropped, got %v", set.Values())
	}
}

func TestParseListKeepsUnspacedCommasIntact(t *testing.T) {
	// Only ", " separates values; a bare comma belongs to the value.
	set := metadata.ParseList("rock,paper, scissors")
	if !reflect.DeepEqual(set.Values(), []string{"rock,paper", "scissors"}) {
		t.Fatalf("unexpected split: %v", set.Values())
	}
}

func TestTagSetUnionAndDiff(t *testing.T) {
	a := metadata.NewTagSet("cat", "pet")
	b := metadata.NewTagSet("pet", "holiday")

	union := a.Union(b)
	if !reflect.DeepEqual(union.Values(), []string{"cat", "holiday", "pet"}) {
		t.Fatalf("unexpected union: %v", union.Values())
	}
	if a.Len() != 2 || b.Len() != 2 {
		t.Fatal("union should not mutate operands")
	}

	missing := union.Diff(a)
	if !reflect.DeepEqual(missing.Values(), []string{"holiday"}) {
		t.Fatalf("unexpected diff: %v", missing.Values())
	}
	if diff := a.Diff(union); diff.Len() != 0 {
		t.Fatalf("expected empty diff, got %v", diff.Values())
	}
}

func TestTagSetJoinIsSorted(t *testing.T) {
	set := metadata.NewTagSet("pet", "cat")
	if got := set.Join(); got != "cat, pet" {
		t.Fatalf("unexpected join: %q", got)
	}
}

func TestFieldSetUnionAndDiff(t *testing.T) {
	a := metadata.NewFieldSet()
	a.Keywords.Add("cat")
	a.Subject.Add("cat")

	b := metadata.NewFieldSet()
	b.Keywords.Add("pet")
	b.HierarchicalSubject.Add("Animals|Cat")

	union := a.Union(b)
	if union.Count() != 4 {
		t.Fatalf("expected 4 values in union, got %d", union.Count())
	}

	missingFromA := union.Diff(a)
	if missingFromA.Count() != 2 {
		t.Fatalf("expected 2 missing values, got %d", missingFromA.Count())
	}
	if !missingFromA.Keywords.Has("pet") {
		t.Fatalf("expected pet missing from a: %v", missingFromA.Keywords.Values())
	}
	if !missingFromA.HierarchicalSubject.Has("Animals|Cat") {
		t.Fatalf("expected hierarchical subject missing from a")
	}
}

func TestFieldSetAccessors(t *testing.T) {
	fields := metadata.NewFieldSet()
	if !fields.IsEmpty() {
		t.Fatal("new field set should be empty")
	}
	for _, name := range metadata.FieldNames() {
		if fields.Field(name) == nil {
			t.Fatalf("expected set for field %s", name)
		}
	}
	if fields.Field("Rating") != nil {
		t.Fatal("unknown field should return nil")
	}

	fields.Field(metadata.FieldKeywords).Add("cat")
	if fields.IsEmpty() || fields.Count() != 1 {
		t.Fatalf("expected one value, got count %d", fields.Count())
	}
}
