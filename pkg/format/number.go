package format

import (
	"strconv"
	"strings"
)

// Digit grouping defaults.
const (
	DefaultGroup     = 3
	DefaultDelimiter = ","
)

// FormatNumber inserts delim between every group digits, counted from the
// right of each run of digits in s. Non-digit text is left alone, so signs,
// units and decimal points pass through. A group below 1 uses DefaultGroup
// and an empty delim uses DefaultDelimiter.
func FormatNumber(s string, group int, delim string) string {
	if s == "" {
		return s
	}
	if group < 1 {
		group = DefaultGroup
	}
	if delim == "" {
		delim = DefaultDelimiter
	}

	var b strings.Builder
	b.Grow(len(s) + len(s)/group*len(delim))
	for i := 0; i < len(s); {
		if !isDigit(s[i]) {
			b.WriteByte(s[i])
			i++
			continue
		}
		j := i
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		for k := i; k < j; k++ {
			if k > i && (j-k)%group == 0 {
				b.WriteString(delim)
			}
			b.WriteByte(s[k])
		}
		i = j
	}
	return b.String()
}

// FormatInt groups the decimal digits of n.
func FormatInt(n int64, group int, delim string) string {
	return FormatNumber(strconv.FormatInt(n, 10), group, delim)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
