package util

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// VLAN tag space (802.1Q)
const (
	MinVLANID = 1
	MaxVLANID = 4094
)

// MaxRangeValue is the highest value ExpandRange accepts
const MaxRangeValue = 65535

// ExpandRange expands a range specification into individual values
// Supports formats like:
//   - "1-5" -> [1, 2, 3, 4, 5]
//   - "1,3,5" -> [1, 3, 5]
//   - "1-3,5,7-9" -> [1, 2, 3, 5, 7, 8, 9]
//
// The result is sorted and de-duplicated. Values must lie in
// 1-MaxRangeValue since both VLAN IDs and switch port numbers start at 1.
func ExpandRange(spec string) ([]int, error) {
	return ExpandBoundedRange(spec, MaxRangeValue)
}

// ExpandBoundedRange is ExpandRange with every bound checked against
// 1-max before any range is expanded.
func ExpandBoundedRange(spec string, max int) ([]int, error) {
	var result []int

	for _, part := range SplitCommaSeparated(spec) {
		if strings.Contains(part, "-") {
			// Range: "1-5"
			rangeParts := strings.SplitN(part, "-", 2)

			start, err := parseRangeValue(part, rangeParts[0], max)
			if err != nil {
				return nil, err
			}
			end, err := parseRangeValue(part, rangeParts[1], max)
			if err != nil {
				return nil, err
			}

			if start > end {
				return nil, NewParseError(part, fmt.Sprintf("start value %d greater than end value %d", start, end))
			}

			for i := start; i <= end; i++ {
				result = append(result, i)
			}
		} else {
			val, err := parseRangeValue(part, part, max)
			if err != nil {
				return nil, err
			}
			result = append(result, val)
		}
	}

	sort.Ints(result)
	return dedupInts(result), nil
}

func parseRangeValue(token, s string, max int) (int, error) {
	val, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, NewParseError(token, fmt.Sprintf("invalid value %q", strings.TrimSpace(s)))
	}
	if val < 1 || val > max {
		return 0, NewParseError(token, fmt.Sprintf("value %d out of range 1-%d", val, max))
	}
	return val, nil
}

// ExpandVLANRange expands VLAN range notation, rejecting any bound outside
// the 802.1Q tag space.
// "100-105,200" -> [100, 101, 102, 103, 104, 105, 200]
func ExpandVLANRange(spec string) ([]int, error) {
	return ExpandBoundedRange(spec, MaxVLANID)
}

// ParseVLANID parses a single VLAN ID.
func ParseVLANID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, NewParseError(s, "VLAN ID is not a number")
	}
	if err := ValidateVLANID(id); err != nil {
		return 0, NewParseError(s, err.Error())
	}
	return id, nil
}

// ValidateVLANID checks that id lies in 1-4094.
func ValidateVLANID(id int) error {
	if id < MinVLANID || id > MaxVLANID {
		return fmt.Errorf("VLAN ID %d out of range %d-%d", id, MinVLANID, MaxVLANID)
	}
	return nil
}

// CompactRange compacts a list of integers into range notation
// [1, 2, 3, 5, 7, 8, 9] -> "1-3,5,7-9"
func CompactRange(values []int) string {
	if len(values) == 0 {
		return ""
	}

	sorted := SortedUnique(values)

	var parts []string
	start := sorted[0]
	end := sorted[0]

	for i := 1; i < len(sorted); i++ {
		if sorted[i] == end+1 {
			end = sorted[i]
		} else {
			parts = append(parts, formatRange(start, end))
			start = sorted[i]
			end = sorted[i]
		}
	}
	parts = append(parts, formatRange(start, end))

	return strings.Join(parts, ",")
}

func formatRange(start, end int) string {
	if start == end {
		return strconv.Itoa(start)
	}
	return fmt.Sprintf("%d-%d", start, end)
}

// SortedUnique returns a sorted, de-duplicated copy of values.
func SortedUnique(values []int) []int {
	if len(values) == 0 {
		return nil
	}
	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)
	return dedupInts(sorted)
}

func dedupInts(sorted []int) []int {
	if len(sorted) == 0 {
		return sorted
	}
	result := []int{sorted[0]}
	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[i-1] {
			result = append(result, sorted[i])
		}
	}
	return result
}

// ChunkInts splits values into consecutive chunks of at most size elements.
// A non-positive size yields a single chunk.
func ChunkInts(values []int, size int) [][]int {
	if len(values) == 0 {
		return nil
	}
	if size <= 0 || len(values) <= size {
		return [][]int{values}
	}

	chunks := make([][]int, 0, (len(values)+size-1)/size)
	for start := 0; start < len(values); start += size {
		end := start + size
		if end > len(values) {
			end = len(values)
		}
		chunks = append(chunks, values[start:end])
	}
	return chunks
}

// IntersectInts returns the ascending intersection of two value lists.
func IntersectInts(a, b []int) []int {
	in := make(map[int]bool, len(a))
	for _, v := range a {
		in[v] = true
	}
	var result []int
	for _, v := range b {
		if in[v] {
			result = append(result, v)
			in[v] = false
		}
	}
	sort.Ints(result)
	return result
}
