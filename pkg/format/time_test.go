package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// 2024-03-05 08:04:09.123 UTC
var stamp = time.Date(2024, 3, 5, 8, 4, 9, 123e6, time.UTC)

func TestFormatTimeIn(t *testing.T) {
	ms := stamp.UnixMilli()

	tests := []struct {
		name   string
		ms     int64
		layout string
		want   string
	}{
		{"default layout", ms, "", "2024-03-05 08:04:09"},
		{"explicit default", ms, DefaultLayout, "2024-03-05 08:04:09"},
		{"single letters unpadded", ms, "Y/M/D H:m:s", "4/3/5 8:4:9"},
		{"two digit year", ms, "YY.MM.DD", "24.03.05"},
		{"long year run", ms, "YYYYY", "2024"},
		{"date only", ms, "YYYY-MM-DD", "2024-03-05"},
		{"time only", ms, "HH:mm", "08:04"},
		{"first run only", ms, "MM-MM", "03-MM"},
		{"literal text kept", ms, "at HH h", "at 08 h"},
		{"zero timestamp", 0, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTimeIn(tt.ms, tt.layout, time.UTC))
		})
	}
}

func TestFormatTimeInLocation(t *testing.T) {
	shanghai := time.FixedZone("CST", 8*60*60)
	assert.Equal(t, "2024-03-05 16:04:09", FormatTimeIn(stamp.UnixMilli(), "", shanghai))
	assert.Equal(t, FormatTimeIn(stamp.UnixMilli(), "", time.Local), FormatTime(stamp.UnixMilli(), ""))
	assert.Equal(t, FormatTimeIn(stamp.UnixMilli(), "", time.Local), FormatTimeIn(stamp.UnixMilli(), "", nil))
}

func TestLayoutPadsTwoDigitValues(t *testing.T) {
	late := time.Date(1999, 12, 31, 23, 59, 58, 0, time.UTC)
	assert.Equal(t, "1999-12-31 23:59:58", Layout(late, ""))
	assert.Equal(t, "12/31 23", Layout(late, "M/D H"))
}

func TestFormatRange(t *testing.T) {
	end := stamp.Add(36 * time.Hour)

	assert.Nil(t, FormatRange(nil, ""))
	assert.Nil(t, FormatRange([]time.Time{stamp}, ""))
	assert.Equal(t,
		[]string{"2024-03-05", "2024-03-06"},
		FormatRange([]time.Time{stamp, end}, "YYYY-MM-DD"))
}

func TestTimesFromMillis(t *testing.T) {
	assert.Nil(t, TimesFromMillis([]int64{1}))

	got := TimesFromMillis([]int64{stamp.UnixMilli(), stamp.UnixMilli() + 1000})
	if assert.Len(t, got, 2) {
		assert.True(t, got[0].Equal(stamp))
		assert.Equal(t, time.Second, got[1].Sub(got[0]))
	}
}
