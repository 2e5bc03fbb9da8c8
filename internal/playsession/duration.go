package playsession

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	msPerSecond int64 = 1000
	msPerMinute       = 60 * msPerSecond
	msPerHour         = 60 * msPerMinute
	msPerDay          = 24 * msPerHour
)

// Duration is a millisecond delta decomposed into whole units.
type Duration struct {
	Days         int64
	Hours        int64
	Minutes      int64
	Seconds      int64
	Millis       int64
}

// Decompose splits a non-negative millisecond count into whole days,
// hours, minutes, seconds and a millisecond remainder. The
// decomposition is exact: Milliseconds() reconstructs the input.
func Decompose(deltaMS int64) Duration {
	if deltaMS < 0 {
		deltaMS = -deltaMS
	}

	d := Duration{}
	d.Days = deltaMS / msPerDay
	rem := deltaMS % msPerDay
	d.Hours = rem / msPerHour
	rem %= msPerHour
	d.Minutes = rem / msPerMinute
	rem %= msPerMinute
	d.Seconds = rem / msPerSecond
	d.Millis = rem % msPerSecond
	return d
}

// Milliseconds reconstructs the original delta.
func (d Duration) Milliseconds() int64 {
	return d.Days*msPerDay + d.Hours*msPerHour + d.Minutes*msPerMinute + d.Seconds*msPerSecond + d.Millis
}

// Format renders the fixed-width zero-padded session time string,
// e.g. "00d:00h:01m:30s:500ms".
func (d Duration) Format() string {
	return fmt.Sprintf("%02dd:%02dh:%02dm:%02ds:%03dms",
		d.Days, d.Hours, d.Minutes, d.Seconds, d.Millis)
}

// FormatElapsed formats the absolute difference between two instants.
func FormatElapsed(start, stop time.Time) string {
	delta := stop.Sub(start).Milliseconds()
	return Decompose(delta).Format()
}

// ParseFormatted reads a formatted session time string back into its
// millisecond delta.
func ParseFormatted(s string) (int64, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 5 {
		return 0, fmt.Errorf("playsession: malformed session time %q", s)
	}

	units := []string{"d", "h", "m", "s", "ms"}
	values := make([]int64, 5)
	for i, part := range parts {
		suffix := units[i]
		if !strings.HasSuffix(part, suffix) {
			return 0, fmt.Errorf("playsession: malformed session time %q", s)
		}
		n, err := strconv.ParseInt(strings.TrimSuffix(part, suffix), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("playsession: malformed session time %q: %w", s, err)
		}
		if n < 0 {
			return 0, fmt.Errorf("playsession: negative component in session time %q", s)
		}
		values[i] = n
	}

	d := Duration{
		Days:         values[0],
		Hours:        values[1],
		Minutes:      values[2],
		Seconds:      values[3],
		Millis:       values[4],
	}
	return d.Milliseconds(), nil
}
