package ewkt

import (
	"strconv"
	"strings"
	"unicode"
)

const sridPrefix = "SRID="

// splitSRID strips a leading "SRID=<int>;" from input. Whitespace inside the
// prefix is ignored and the keyword is matched without regard to case. When
// the text before the first ';' is not exactly a well-formed prefix the input
// is returned untouched with srid -1.
func splitSRID(input string) (srid int, body string) {
	end := strings.IndexByte(input, ';')
	if end < 0 {
		return -1, input
	}
	prefix := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, input[:end])
	if len(prefix) <= len(sridPrefix) || !strings.EqualFold(prefix[:len(sridPrefix)], sridPrefix) {
		return -1, input
	}
	digits := prefix[len(sridPrefix):]
	if digits[0] == '+' || digits[0] == '-' {
		digits = digits[1:]
	}
	if digits == "" {
		return -1, input
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return -1, input
		}
	}
	n, err := strconv.ParseInt(prefix[len(sridPrefix):], 10, 32)
	if err != nil {
		return -1, input
	}
	return int(n), input[end+1:]
}
