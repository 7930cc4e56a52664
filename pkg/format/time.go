package format

import (
	"strconv"
	"strings"
	"time"
)

// DefaultLayout is used when a layout is empty.
const DefaultLayout = "YYYY-MM-DD HH:mm:ss"

// FormatTime formats a Unix millisecond timestamp in local time. A zero
// timestamp formats as "".
func FormatTime(ms int64, layout string) string {
	return FormatTimeIn(ms, layout, time.Local)
}

// FormatTimeIn is FormatTime in loc.
func FormatTimeIn(ms int64, layout string, loc *time.Location) string {
	if ms == 0 {
		return ""
	}
	if loc == nil {
		loc = time.Local
	}
	return Layout(time.UnixMilli(ms).In(loc), layout)
}

// Layout formats t with a token layout.
func Layout(t time.Time, layout string) string {
	if layout == "" {
		layout = DefaultLayout
	}

	year := strconv.Itoa(t.Year())
	out := replaceRun(layout, 'Y', func(n int) string {
		if n >= len(year) {
			return year
		}
		return year[len(year)-n:]
	})

	fields := []struct {
		token byte
		value int
	}{
		{'M', int(t.Month())},
		{'D', t.Day()},
		{'H', t.Hour()},
		{'m', t.Minute()},
		{'s', t.Second()},
	}
	for _, f := range fields {
		v := f.value
		out = replaceRun(out, f.token, func(n int) string {
			if n == 1 {
				return strconv.Itoa(v)
			}
			return pad2(v)
		})
	}
	return out
}

// FormatRange formats each time with layout. It returns nil for fewer than
// two times, since a range needs both ends.
func FormatRange(times []time.Time, layout string) []string {
	if len(times) < 2 {
		return nil
	}
	out := make([]string, len(times))
	for i, t := range times {
		out[i] = Layout(t, layout)
	}
	return out
}

// TimesFromMillis converts Unix millisecond timestamps to times. It returns
// nil for fewer than two timestamps.
func TimesFromMillis(ms []int64) []time.Time {
	if len(ms) < 2 {
		return nil
	}
	out := make([]time.Time, len(ms))
	for i, v := range ms {
		out[i] = time.UnixMilli(v)
	}
	return out
}

// replaceRun replaces the first run of c in s with repl(run length).
func replaceRun(s string, c byte, repl func(n int) string) string {
	i := strings.IndexByte(s, c)
	if i < 0 {
		return s
	}
	j := i
	for j < len(s) && s[j] == c {
		j++
	}
	return s[:i] + repl(j-i) + s[j:]
}

func pad2(v int) string {
	if v < 10 {
		return "0" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}
