package units

import (
	"strconv"
	"strings"
)

const (
	msPerSecond = 1000
	secsPerHour = 3600
	secsPerDay  = 86400
	// Calendar approximations used when rendering long ETAs.
	secsPerYear  = 31_557_600
	secsPerMonth = 2_630_016
)

// ParseHMS converts a "[days.]hours:minutes:seconds" string into milliseconds.
// Fields are separated by ':' or '.'. Anything other than three or four
// unsigned integer fields, including an empty field, yields 0.
func ParseHMS(value string) uint64 {
	fields := strings.Split(strings.ReplaceAll(strings.TrimSpace(value), ".", ":"), ":")
	if len(fields) < 3 || len(fields) > 4 {
		return 0
	}
	nums := make([]uint64, len(fields))
	for i, field := range fields {
		n, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			return 0
		}
		nums[i] = n
	}

	var days, hours, minutes, seconds uint64
	if len(nums) == 4 {
		days, hours, minutes, seconds = nums[0], nums[1], nums[2], nums[3]
	} else {
		hours, minutes, seconds = nums[0], nums[1], nums[2]
	}
	return ((days*24+hours)*secsPerHour + minutes*60 + seconds) * msPerSecond
}

// FormatETA renders milliseconds as a duration such as "1day 2h 5m". Zero,
// the platform's value for an unknown estimate, renders as "Infinite".
func FormatETA(ms uint64) string {
	if ms == 0 {
		return "Infinite"
	}
	secs := ms / msPerSecond
	millis := ms % msPerSecond

	years := secs / secsPerYear
	rest := secs % secsPerYear
	months := rest / secsPerMonth
	rest %= secsPerMonth
	days := rest / secsPerDay
	rest %= secsPerDay
	hours := rest / secsPerHour
	minutes := rest % secsPerHour / 60
	seconds := rest % 60

	parts := make([]string, 0, 7)
	parts = appendUnit(parts, years, "year", "years")
	parts = appendUnit(parts, months, "month", "months")
	parts = appendUnit(parts, days, "day", "days")
	parts = appendUnit(parts, hours, "h", "h")
	parts = appendUnit(parts, minutes, "m", "m")
	parts = appendUnit(parts, seconds, "s", "s")
	parts = appendUnit(parts, millis, "ms", "ms")
	return strings.Join(parts, " ")
}

func appendUnit(parts []string, n uint64, singular, plural string) []string {
	if n == 0 {
		return parts
	}
	unit := plural
	if n == 1 {
		unit = singular
	}
	return append(parts, strconv.FormatUint(n, 10)+unit)
}
