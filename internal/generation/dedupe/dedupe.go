// Package dedupe removes repeated records while keeping first-seen order.
package dedupe

import "strings"

// By returns items with every element dropped whose non-empty keys include one
// already seen. Keys are compared exactly; normalize them in keys.
func By[T any](items []T, keys func(T) []string) []T {
	seen := make(map[string]struct{}, len(items))
	out := make([]T, 0, len(items))

	for _, item := range items {
		ks := keys(item)
		dup := false
		for _, k := range ks {
			if k == "" {
				continue
			}
			if _, ok := seen[k]; ok {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		for _, k := range ks {
			if k != "" {
				seen[k] = struct{}{}
			}
		}
		out = append(out, item)
	}
	return out
}

// Strings deduplicates exact values, dropping empty ones.
func Strings(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, s := range items {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// TitleKey lower-cases s and keeps only ASCII letters and digits.
func TitleKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
