// Package docinfo provides small helpers shared by the spec assembly
// pipeline: recursive option-map merging and summary/description extraction
// from handler documentation text.
package docinfo

// DeepUpdate merges update into original recursively and returns the result.
// Leaf values present in update override the value at the same key path in
// original; key paths present only in original are preserved. Nested
// string-keyed maps are merged rather than replaced wholesale. Neither input
// map is mutated.
func DeepUpdate(original, update map[string]any) map[string]any {
	if original == nil && update == nil {
		return nil
	}

	merged := make(map[string]any, len(original)+len(update))
	for key, value := range original {
		merged[key] = value
	}
	for key, value := range update {
		nested, ok := value.(map[string]any)
		if !ok {
			merged[key] = value
			continue
		}
		existing, ok := merged[key].(map[string]any)
		if !ok {
			merged[key] = DeepUpdate(nil, nested)
			continue
		}
		merged[key] = DeepUpdate(existing, nested)
	}
	return merged
}
