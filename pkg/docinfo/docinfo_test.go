package docinfo

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDeepUpdateMergesNestedMaps(t *testing.T) {
	original := map[string]any{
		"name": "Pluto",
		"details": map[string]any{
			"tail":  true,
			"color": "orange",
		},
	}
	update := map[string]any{
		"name": "Pluutoo",
		"details": map[string]any{
			"color": "blue",
		},
	}

	want := map[string]any{
		"name": "Pluutoo",
		"details": map[string]any{
			"tail":  true,
			"color": "blue",
		},
	}

	got := DeepUpdate(original, update)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected merge result (-want +got):\n%s", diff)
	}

	if original["name"] != "Pluto" {
		t.Fatalf("original map was mutated: %v", original)
	}
	details, ok := original["details"].(map[string]any)
	if !ok || details["color"] != "orange" {
		t.Fatalf("original nested map was mutated: %v", original)
	}
}

func TestDeepUpdatePreservesKeysOnlyInOriginal(t *testing.T) {
	got := DeepUpdate(
		map[string]any{"a": 1, "nested": map[string]any{"keep": "yes"}},
		map[string]any{"b": 2},
	)
	want := map[string]any{
		"a":      1,
		"b":      2,
		"nested": map[string]any{"keep": "yes"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected merge result (-want +got):\n%s", diff)
	}
}

func TestDeepUpdateReplacesMapWithScalar(t *testing.T) {
	got := DeepUpdate(
		map[string]any{"k": map[string]any{"x": 1}},
		map[string]any{"k": "scalar"},
	)
	if got["k"] != "scalar" {
		t.Fatalf("expected scalar override, got %v", got["k"])
	}
}

func TestLoadInfoEmptyInput(t *testing.T) {
	if got := LoadInfo(""); !got.Empty() {
		t.Fatalf("expected empty info, got %+v", got)
	}
	if got := LoadInfo("\n        "); !got.Empty() {
		t.Fatalf("expected empty info for whitespace input, got %+v", got)
	}
}

func TestLoadInfoSummaryOnly(t *testing.T) {
	got := LoadInfo("Summary")
	if got.Summary != "Summary" {
		t.Fatalf("unexpected summary: %q", got.Summary)
	}
	if got.Description != "" {
		t.Fatalf("expected no description, got %q", got.Description)
	}
}

func TestLoadInfoSummaryAndDescription(t *testing.T) {
	doc := `Summary
        Two-line summary is possible.

        Long description
        Really long description
        ---
        Ignore this.
        `

	want := Info{
		Summary:     "Summary\nTwo-line summary is possible.",
		Description: "Long description\nReally long description",
	}
	if diff := cmp.Diff(want, LoadInfo(doc)); diff != "" {
		t.Fatalf("unexpected info (-want +got):\n%s", diff)
	}
}

func TestLoadInfoWithoutSeparator(t *testing.T) {
	doc := `Summary

        Long description

        Section
        -------
        Also included
        `

	want := Info{
		Summary:     "Summary",
		Description: "Long description\n\nSection\n-------\nAlso included",
	}
	if diff := cmp.Diff(want, LoadInfo(doc, WithoutSeparator())); diff != "" {
		t.Fatalf("unexpected info (-want +got):\n%s", diff)
	}
}

func TestLoadInfoCustomSeparator(t *testing.T) {
	doc := `Summary

        Some description.

        Section
        -------
        foo

        ~~~

        Ignored.
        `

	want := Info{
		Summary:     "Summary",
		Description: "Some description.\n\nSection\n-------\nfoo",
	}
	if diff := cmp.Diff(want, LoadInfo(doc, WithSeparator("~~~"))); diff != "" {
		t.Fatalf("unexpected info (-want +got):\n%s", diff)
	}
}

func TestLoadInfoDefaultSeparatorCutsSectionUnderline(t *testing.T) {
	doc := `Summary

        Some description.

        Section
        -------
        Ignored
        `

	want := Info{
		Summary:     "Summary",
		Description: "Some description.\n\nSection",
	}
	if diff := cmp.Diff(want, LoadInfo(doc, WithSeparator("---"))); diff != "" {
		t.Fatalf("unexpected info (-want +got):\n%s", diff)
	}
}
