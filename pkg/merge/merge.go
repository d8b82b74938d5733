package merge

import "maps"

// Dedup returns values with duplicates removed, keeping the first occurrence of
// each element. The result is never nil, so it always serialises as a list.
func Dedup(values []string) []string {
	result := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))

	for _, value := range values {
		if _, ok := seen[value]; ok {
			continue
		}

		seen[value] = struct{}{}
		result = append(result, value)
	}

	return result
}

// Union concatenates the given lists in order and deduplicates the result.
func Union(lists ...[]string) []string {
	total := 0
	for _, list := range lists {
		total += len(list)
	}

	combined := make([]string, 0, total)
	for _, list := range lists {
		combined = append(combined, list...)
	}

	return Dedup(combined)
}

// UnionOrNil behaves like Union but returns nil when the union is empty.
// Callers use it for optional sections that are pruned when empty.
func UnionOrNil(lists ...[]string) []string {
	result := Union(lists...)
	if len(result) == 0 {
		return nil
	}

	return result
}

// Shallow spreads over onto a copy of base. Keys present in over win.
// It returns nil only when both inputs are nil.
func Shallow[V any](base, over map[string]V) map[string]V {
	if base == nil && over == nil {
		return nil
	}

	result := make(map[string]V, len(base)+len(over))
	maps.Copy(result, base)
	maps.Copy(result, over)

	return result
}

// Strings returns a copy of values, preserving nil.
func Strings(values []string) []string {
	if values == nil {
		return nil
	}

	return append([]string(nil), values...)
}

// DeepCopy copies a JSON-like value tree (maps of string keys, slices of any,
// and scalars). Values of any other type are returned as they are.
func DeepCopy(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		if typed == nil {
			return typed
		}

		copied := make(map[string]any, len(typed))
		for key, item := range typed {
			copied[key] = DeepCopy(item)
		}

		return copied
	case []any:
		if typed == nil {
			return typed
		}

		copied := make([]any, len(typed))
		for index, item := range typed {
			copied[index] = DeepCopy(item)
		}

		return copied
	case []string:
		return Strings(typed)
	default:
		return value
	}
}

// DeepCopyMap is DeepCopy for a map of JSON-like values, preserving nil.
func DeepCopyMap(values map[string]any) map[string]any {
	if values == nil {
		return nil
	}

	copied, _ := DeepCopy(values).(map[string]any)

	return copied
}
