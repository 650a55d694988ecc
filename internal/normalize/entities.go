package normalize

import (
	"regexp"
	"strconv"
)

var (
	namedEntityPattern   = regexp.MustCompile(`&(nbsp|amp|quot|lt|gt);`)
	numericEntityPattern = regexp.MustCompile(`&#(\d+);`)

	namedEntities = map[string]string{
		"nbsp": " ",
		"amp":  "&",
		"quot": `"`,
		"lt":   "<",
		"gt":   ">",
	}
)

// DecodeEntities resolves the named entities nbsp, amp, quot, lt and gt in a
// first pass, then decimal character references in a second one.
func DecodeEntities(s string) string {
	s = namedEntityPattern.ReplaceAllStringFunc(s, func(m string) string {
		return namedEntities[m[1:len(m)-1]]
	})
	return numericEntityPattern.ReplaceAllStringFunc(s, func(m string) string {
		n, err := strconv.Atoi(m[2 : len(m)-1])
		if err != nil || n <= 0 || n > 0x10FFFF {
			return m
		}
		return string(rune(n))
	})
}
