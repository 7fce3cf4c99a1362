// Package memberid generates the deterministic human-readable membership
// identifier derived from name initials, birth day/month and the legacy
// membership number.
package memberid

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/St-Francis-of-Assisi-Catholic-Church/sfoacc-db-backend-sub000/internal/normalize"
)

// Generate returns the membership identifier for the given inputs, or "" when
// no legacy identifier (or no digits in it) is available. The result is a pure
// function of its inputs: identical inputs always produce the identical ID.
//
//	Generate("Kofi", "Nkrumah", 2000-01-15, "8") == "KN1501-0008"
func Generate(firstName, lastName string, dateOfBirth time.Time, legacyID string) string {
	digits := normalize.Digits(legacyID)
	if digits == "" {
		return ""
	}

	serial, err := strconv.Atoi(digits)
	if err != nil {
		// Digit strings longer than an int can hold are kept verbatim.
		return fmt.Sprintf("%s%s%02d%02d-%s",
			initial(firstName), initial(lastName),
			dateOfBirth.Day(), int(dateOfBirth.Month()), digits)
	}

	return fmt.Sprintf("%s%s%02d%02d-%04d",
		initial(firstName), initial(lastName),
		dateOfBirth.Day(), int(dateOfBirth.Month()), serial)
}

func initial(name string) string {
	for _, r := range strings.TrimSpace(name) {
		return string(unicode.ToUpper(r))
	}
	return ""
}
