package srt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// millis converts seconds to whole milliseconds. The value is rounded to the
// microsecond first and the milliseconds are then truncated, so 1.001 stays
// 1001 and 1.0019 becomes 1001.
func millis(seconds float64) int64 {
	if math.IsNaN(seconds) || seconds <= 0 {
		return 0
	}
	micros := int64(math.RoundToEven(seconds * 1e6))
	return micros / 1000
}

func formatClock(seconds float64, sep byte) string {
	ms := millis(seconds)
	hours := ms / 3_600_000
	ms %= 3_600_000
	minutes := ms / 60_000
	ms %= 60_000
	secs := ms / 1_000
	ms %= 1_000
	return fmt.Sprintf("%02d:%02d:%02d%c%03d", hours, minutes, secs, sep, ms)
}

// FormatTimestamp renders seconds as HH:MM:SS,mmm. Hours grow past two digits
// when needed.
func FormatTimestamp(seconds float64) string {
	return formatClock(seconds, ',')
}

// FormatVTTTimestamp renders seconds as HH:MM:SS.mmm.
func FormatVTTTimestamp(seconds float64) string {
	return formatClock(seconds, '.')
}

// ParseTimestamp reads HH:MM:SS,mmm (a period separator is also accepted).
func ParseTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	clock, frac, ok := strings.Cut(value, ",")
	if !ok || frac == "" || strings.Contains(frac, ",") {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(clock, ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	secs, errS := strconv.Atoi(hms[2])
	ms, errMS := strconv.Atoi(frac)
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	if hours < 0 || minutes < 0 || minutes > 59 || secs < 0 || secs > 59 || ms < 0 || ms > 999 {
		return 0, fmt.Errorf("timestamp %q out of range", value)
	}
	return float64(hours*3600+minutes*60+secs) + float64(ms)/1000, nil
}
