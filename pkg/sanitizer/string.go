package sanitizer

import "strings"

// NormalizeName trims s and collapses every run of Unicode whitespace,
// tabs and newlines included, into one space.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// NormalizeEmail trims surrounding whitespace. Case is preserved because the
// local part of an address is case-sensitive in principle.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
