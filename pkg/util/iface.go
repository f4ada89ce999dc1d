package util

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var numberRunRegexp = regexp.MustCompile(`\d+`)

// NormalizeInterfaceName lowercases name and collapses inner whitespace so
// "Port-Channel  1" and "port-channel 1" compare equal.
func NormalizeInterfaceName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// CompareInterfaceNames orders interface names naturally: the text around
// numbers is compared as text and each run of digits as a number, so
// "gigaethernet 1/1/2" sorts before "gigaethernet 1/1/10" and port "9"
// before port "24".
func CompareInterfaceNames(a, b string) int {
	ka, kb := splitNatural(a), splitNatural(b)
	for i := 0; i < len(ka) && i < len(kb); i++ {
		x, y := ka[i], kb[i]
		if x.isNum && y.isNum {
			if x.num != y.num {
				if x.num < y.num {
					return -1
				}
				return 1
			}
			continue
		}
		if x.text != y.text {
			if x.text < y.text {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(ka) < len(kb):
		return -1
	case len(ka) > len(kb):
		return 1
	}
	return strings.Compare(a, b)
}

// SortInterfaceNames sorts names in place using CompareInterfaceNames.
func SortInterfaceNames(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		return CompareInterfaceNames(names[i], names[j]) < 0
	})
}

type naturalPart struct {
	text  string
	num   int
	isNum bool
}

func splitNatural(s string) []naturalPart {
	var parts []naturalPart
	last := 0
	for _, loc := range numberRunRegexp.FindAllStringIndex(s, -1) {
		if loc[0] > last {
			parts = append(parts, naturalPart{text: s[last:loc[0]]})
		}
		n, err := strconv.Atoi(s[loc[0]:loc[1]])
		if err != nil {
			// Digit run too long for int; fall back to text ordering.
			parts = append(parts, naturalPart{text: s[loc[0]:loc[1]]})
		} else {
			parts = append(parts, naturalPart{text: s[loc[0]:loc[1]], num: n, isNum: true})
		}
		last = loc[1]
	}
	if last < len(s) {
		parts = append(parts, naturalPart{text: s[last:]})
	}
	return parts
}
