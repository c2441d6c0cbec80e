// Package reloj provides the facility wall clock and HH:MM:SS arithmetic.
// All recorded times are local to the plant, which sits in a zone without
// daylight saving, so a fixed offset is a safe fallback when the tzdata
// entry is unavailable.
package reloj

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const zoneName = "America/El_Salvador"

var facilityZone = loadZone()

func loadZone() *time.Location {
	loc, err := time.LoadLocation(zoneName)
	if err != nil {
		return time.FixedZone("CST", -6*60*60)
	}
	return loc
}

var timePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d:[0-5]\d$`)

// Valid reports whether s is a complete HH:MM:SS clock time.
// The empty string is not valid; callers treat it as "unset".
func Valid(s string) bool {
	return timePattern.MatchString(s)
}

// Now returns the current facility-local time as HH:MM:SS.
func Now() string {
	return time.Now().In(facilityZone).Format("15:04:05")
}

// NowStamp returns the current facility-local date and time, used for
// draft headers.
func NowStamp() string {
	return time.Now().In(facilityZone).Format("2006-01-02 15:04:05")
}

// FormatDigits applies the progressive time mask to raw keyboard input.
// Non-digits are stripped, the rest truncated to six digits and rendered
// as HH, HH:MM or HH:MM:SS depending on how much has been typed. Partial
// input is passed through untouched beyond the reformat; validation is
// deferred to submission.
func FormatDigits(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			if b.Len() == 6 {
				break
			}
		}
	}
	d := b.String()

	switch {
	case len(d) <= 2:
		return d
	case len(d) <= 4:
		return d[:2] + ":" + d[2:]
	default:
		return d[:2] + ":" + d[2:4] + ":" + d[4:]
	}
}

// Seconds converts a valid HH:MM:SS string to seconds since midnight.
func Seconds(s string) (int, error) {
	if !Valid(s) {
		return 0, fmt.Errorf("invalid time %q", s)
	}

	var h, m, sec int
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec); err != nil {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	return h*3600 + m*60 + sec, nil
}

// Diff returns the elapsed time between start and end as HH:MM:SS,
// clamped to 00:00:00 when end precedes start. A negative span is a
// data-entry error that callers signal at input time; the clamp keeps
// derived values well-formed regardless.
func Diff(start, end string) (string, error) {
	s, err := Seconds(start)
	if err != nil {
		return "", err
	}
	e, err := Seconds(end)
	if err != nil {
		return "", err
	}

	if e <= s {
		return "00:00:00", nil
	}

	d := e - s
	return fmt.Sprintf("%02d:%02d:%02d", d/3600, (d%3600)/60, d%60), nil
}
