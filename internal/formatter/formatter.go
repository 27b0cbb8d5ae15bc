// package formatter provides display formatting for video metadata: ISO-8601
// durations, view counts and relative publication dates.
package formatter

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var durationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// ParseDuration converts an ISO-8601 duration ("PT1H2M3S") to "MM:SS".
// Hours are folded into the minute component ("PT1H2M3S" -> "62:03").
// A string that does not match the pattern yields "00:00"; missing
// components default to zero.
func ParseDuration(duration string) string {
	match := durationPattern.FindStringSubmatch(duration)
	if match == nil {
		return "00:00"
	}

	hours := atoiOrZero(match[1])
	minutes := atoiOrZero(match[2])
	seconds := atoiOrZero(match[3])

	totalMinutes := hours*60 + minutes
	return fmt.Sprintf("%02d:%02d", totalMinutes, seconds)
}

// FormatViews renders a view count with spaces as thousands separators,
// matching the French convention ("1 234 567").
func FormatViews(count int64) string {
	digits := strconv.FormatInt(count, 10)
	if count < 0 {
		return digits
	}

	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ' ')
		}
		out = append(out, d)
	}
	return string(out)
}

// FormatDate renders a publication timestamp relative to now
// ("Aujourd'hui", "Il y a 3 jours", "Il y a 2 semaines", ...). Buckets use
// floor division; the plural "s" only appears above 1 ("mois" is invariant).
// A zero publication time yields an empty string.
func FormatDate(published, now time.Time) string {
	if published.IsZero() {
		return ""
	}

	days := int(now.Sub(published).Hours() / 24)
	switch {
	case days <= 0:
		return "Aujourd'hui"
	case days < 7:
		return fmt.Sprintf("Il y a %d jour%s", days, plural(days))
	case days < 30:
		weeks := days / 7
		return fmt.Sprintf("Il y a %d semaine%s", weeks, plural(weeks))
	case days < 365:
		return fmt.Sprintf("Il y a %d mois", days/30)
	default:
		years := days / 365
		return fmt.Sprintf("Il y a %d an%s", years, plural(years))
	}
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}

func atoiOrZero(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
