package memberid

import (
	"testing"
	"time"
)

func TestGenerate(t *testing.T) {
	dob := time.Date(2000, time.January, 15, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		first    string
		last     string
		dob      time.Time
		legacyID string
		expected string
	}{
		{"reference example", "Kofi", "Nkrumah", dob, "8", "KN1501-0008"},
		{"float noise stripped upstream keeps digits", "Kofi", "Nkrumah", dob, "245", "KN1501-0245"},
		{"legacy with letters keeps digits only", "Ama", "Mensah", dob, "OLD-117", "AM1501-0117"},
		{"lowercase names upper-cased", "kofi", "nkrumah", dob, "8", "KN1501-0008"},
		{"no legacy id", "Kofi", "Nkrumah", dob, "", ""},
		{"legacy without digits", "Kofi", "Nkrumah", dob, "n/a", ""},
		{"five digit legacy not truncated", "Kofi", "Nkrumah", dob, "12345", "KN1501-12345"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Generate(tc.first, tc.last, tc.dob, tc.legacyID); got != tc.expected {
				t.Fatalf("Generate() = %q, expected %q", got, tc.expected)
			}
		})
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	dob := time.Date(1985, time.December, 3, 0, 0, 0, 0, time.UTC)

	first := Generate("Akosua", "Boateng", dob, "42")
	for i := 0; i < 10; i++ {
		if got := Generate("Akosua", "Boateng", dob, "42"); got != first {
			t.Fatalf("expected stable output, got %q then %q", first, got)
		}
	}
	if first != "AB0312-0042" {
		t.Fatalf("unexpected identifier %q", first)
	}
}
