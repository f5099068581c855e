package sources

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Indonesian month names, full and abbreviated, mapped to time.Month.
var indonesianMonths = map[string]time.Month{
	"januari": time.January, "jan": time.January,
	"februari": time.February, "feb": time.February,
	"maret": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"mei":  time.May,
	"juni": time.June, "jun": time.June,
	"juli": time.July, "jul": time.July,
	"agustus": time.August, "agu": time.August, "ags": time.August,
	"september": time.September, "sep": time.September,
	"oktober": time.October, "okt": time.October,
	"november": time.November, "nov": time.November,
	"desember": time.December, "des": time.December,
}

// Indonesian zone abbreviations and their UTC offsets in hours.
var indonesianZones = map[string]int{
	"wib":  7,
	"wita": 8,
	"wit":  9,
}

var (
	dayNamePrefix = regexp.MustCompile(`(?i)^(senin|selasa|rabu|kamis|jum'?at|sabtu|minggu|ahad)\s*,?\s*`)
	wordDate      = regexp.MustCompile(`(?i)^(\d{1,2})\s+([a-z]+)\s+(\d{4})(?:\s*,?\s*(\d{1,2})[:.](\d{2})(?:[:.](\d{2}))?)?\s*([a-z]*)`)
	numericDate   = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{4})(?:\s+(\d{1,2})[:.](\d{2}))?`)
)

// ParseDate parses the publish-date strings Indonesian news sites use.
//
// Accepted shapes include "Senin, 12 Mei 2025 14:30 WIB", "12 Mei 2025",
// "12/05/2025 08:15", ISO 8601, and RFC 1123. Times without a zone are
// taken as WIB (UTC+7), which is where all supported publishers sit.
func ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}

	// Machine formats first: meta tags often carry ISO 8601. Layouts that
	// name a zone keep it; zoneless ones are taken as WIB.
	for _, layout := range []string{
		time.RFC3339,
		time.RFC1123Z,
		time.RFC1123,
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	wib := time.FixedZone("WIB", 7*3600)
	for _, layout := range []string{
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	} {
		if t, err := time.ParseInLocation(layout, s, wib); err == nil {
			return t, nil
		}
	}

	s = strings.ToLower(s)
	s = dayNamePrefix.ReplaceAllString(s, "")
	s = strings.TrimSpace(strings.Trim(s, "-|"))

	if m := wordDate.FindStringSubmatch(s); m != nil {
		month, ok := indonesianMonths[m[2]]
		if !ok {
			return time.Time{}, fmt.Errorf("unknown month %q in %q", m[2], raw)
		}
		return buildDate(m[3], m[1], month, m[4], m[5], m[6], m[7])
	}

	if m := numericDate.FindStringSubmatch(s); m != nil {
		month := time.Month(atoi(m[2]))
		if month < time.January || month > time.December {
			return time.Time{}, fmt.Errorf("invalid month in %q", raw)
		}
		return buildDate(m[3], m[1], month, m[4], m[5], "", "")
	}

	return time.Time{}, fmt.Errorf("unrecognized date format %q", raw)
}

func buildDate(year, day string, month time.Month, hour, minute, second, zone string) (time.Time, error) {
	h, m, sec := atoi(hour), atoi(minute), atoi(second)
	if h > 23 || m > 59 || sec > 59 {
		return time.Time{}, fmt.Errorf("invalid time %s:%s:%s", hour, minute, second)
	}

	offset, ok := indonesianZones[zone]
	if !ok {
		offset = 7 // default WIB
	}
	loc := time.FixedZone(strings.ToUpper(zone), offset*3600)
	if zone == "" {
		loc = time.FixedZone("WIB", 7*3600)
	}

	d := atoi(day)
	y := atoi(year)
	if d < 1 || d > 31 {
		return time.Time{}, fmt.Errorf("invalid day %q", day)
	}

	return time.Date(y, month, d, h, m, sec, 0, loc), nil
}

func atoi(s string) int {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int(c-'0')
	}
	return n
}
