// Package normalize holds the pure per-field cleaning functions applied to
// raw roster cells before validation and persistence.
package normalize

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/St-Francis-of-Assisi-Catholic-Church/sfoacc-db-backend-sub000/member"
)

// MinPhoneDigits is the minimum digit count for a contact number to be kept.
const MinPhoneDigits = 9

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"02-01-2006",
}

// Date parses a roster date trying ISO first, then the known legacy layouts.
func Date(raw string) (time.Time, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, cleaned); err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, fmt.Errorf("unsupported date format: %q", cleaned)
}

// Text trims and title-cases a free-text cell. Empty input stays empty.
func Text(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ToLower(cleaned))
}

// LegacyID reduces a legacy membership number to its integer string form,
// stripping float-encoding noise left behind by spreadsheet exports
// (e.g. "245.0" becomes "245").
func LegacyID(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return ""
	}
	if dot := strings.IndexByte(cleaned, '.'); dot >= 0 {
		fraction := cleaned[dot+1:]
		if strings.Trim(fraction, "0") == "" {
			cleaned = cleaned[:dot]
		}
	}
	if Digits(cleaned) == "" {
		return ""
	}
	return cleaned
}

// Digits returns only the decimal digits of the input.
func Digits(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Phone strips everything but digits and keeps the number only if at least
// MinPhoneDigits remain. Contact fields are optional, so a bad number maps to
// "" rather than a row failure.
func Phone(raw string) string {
	digits := Digits(raw)
	if len(digits) < MinPhoneDigits {
		return ""
	}
	return digits
}

// Gender maps free-form gender input to the closed enumeration. Anything
// unrecognized, including empty input, maps to GenderOther.
func Gender(raw string) member.Gender {
	switch cleaned := strings.ToLower(strings.TrimSpace(raw)); {
	case strings.HasPrefix(cleaned, "m"):
		return member.GenderMale
	case strings.HasPrefix(cleaned, "f"):
		return member.GenderFemale
	default:
		return member.GenderOther
	}
}

// MaritalStatus maps free-form marital-status input to the closed enumeration.
func MaritalStatus(raw string) member.MaritalStatus {
	cleaned := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(cleaned, "singl"):
		return member.MaritalSingle
	case strings.Contains(cleaned, "marri"):
		return member.MaritalMarried
	case strings.Contains(cleaned, "divorc"), strings.Contains(cleaned, "separat"):
		return member.MaritalDivorced
	case strings.Contains(cleaned, "widow"):
		return member.MaritalWidowed
	default:
		return member.MaritalUnknown
	}
}

// LifeStatus maps free-form alive/deceased input to the closed enumeration.
func LifeStatus(raw string) member.LifeStatus {
	cleaned := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(cleaned, "alive"), strings.Contains(cleaned, "living"):
		return member.LifeAlive
	case strings.Contains(cleaned, "deceas"), strings.Contains(cleaned, "dead"), strings.Contains(cleaned, "late"):
		return member.LifeDeceased
	default:
		return member.LifeUnknown
	}
}

// YesNo interprets a yes/no roster cell; anything that does not clearly say
// yes counts as no.
func YesNo(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "y", "true", "1":
		return true
	default:
		return false
	}
}
