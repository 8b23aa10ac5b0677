// Package timefmt normalizes reservation times for display.
package timefmt

import (
	"fmt"
	"strconv"
	"strings"
)

// Format turns a 24-hour "HH:MM" string into the 12-hour "H:MM AM/PM" form.
//
// Input that already carries an am/pm marker is upper-cased and returned.
// Input whose hour is not a non-negative integer is returned unchanged.
// The minute part is copied verbatim; a missing one becomes "00". Format is
// idempotent on its own output.
func Format(raw string) string {
	if raw == "" {
		return ""
	}

	lower := strings.ToLower(raw)
	if strings.Contains(lower, "am") || strings.Contains(lower, "pm") {
		return strings.ToUpper(raw)
	}

	parts := strings.Split(raw, ":")
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hour < 0 {
		return raw
	}

	minute := "00"
	if len(parts) > 1 {
		minute = parts[1]
	}

	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}

	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}

	return fmt.Sprintf("%d:%s %s", hour12, minute, suffix)
}
