package people

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// EmailKey returns the identity key for an email address. Two addresses
// that differ only in case or Unicode composition share a key.
func EmailKey(email string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(email)))
}

// NameKey returns the comparison key for a display name or alias. Names
// keep their case; only composition and surrounding space are normalised.
func NameKey(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}
