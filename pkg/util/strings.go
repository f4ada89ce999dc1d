package util

import "strings"

// SplitCommaSeparated splits a comma-separated string and trims whitespace from each element.
// Empty elements are dropped; empty input returns nil.
func SplitCommaSeparated(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// LastField returns the last whitespace-separated token of line, or "".
func LastField(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// HasFieldPrefix reports whether the whitespace-separated tokens of line
// start with the given keywords.
func HasFieldPrefix(line string, keywords ...string) bool {
	fields := strings.Fields(line)
	if len(fields) < len(keywords) {
		return false
	}
	for i, kw := range keywords {
		if !strings.EqualFold(fields[i], kw) {
			return false
		}
	}
	return true
}
