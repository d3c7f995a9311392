//go:build !integration

package explanation

import (
	"testing"

	"scentMatch/domain"
)

// The emergency path is the last line of defense, so its output must always
// validate clean for every level, including candidates with empty fields.
func TestEmergency_ValidatesCleanForEveryLevel(t *testing.T) {
	candidates := []domain.FragranceRecommendation{
		{FragranceID: 1, Name: "Aventus", Brand: "Creed", Category: "fresh"},
		{FragranceID: 2}, // worst case: everything empty
	}

	levels := []domain.ExperienceLevel{
		domain.LevelBeginner,
		domain.LevelIntermediate,
		domain.LevelAdvanced,
	}

	for _, c := range candidates {
		for _, level := range levels {
			expl := Emergency(c, level)

			if expl.Source != "emergency" {
				t.Fatalf("level %s: source = %q", level, expl.Source)
			}
			if expl.Level != level {
				t.Fatalf("level mismatch: %s vs %s", expl.Level, level)
			}

			text := expl.Summary
			if expl.Expanded != "" {
				text = expl.Expanded
			}

			v := Validate(text, StyleFor(level))
			if !v.Valid() {
				t.Fatalf("level %s candidate %d: emergency text invalid: %v (words=%d)",
					level, c.FragranceID, v.Issues, v.WordCount)
			}
		}
	}
}

func TestEmergency_BeginnerCarriesEducationalTerms(t *testing.T) {
	expl := Emergency(domain.FragranceRecommendation{Name: "X", Brand: "Y"}, domain.LevelBeginner)

	if len(expl.EducationalTerms) == 0 {
		t.Fatal("beginner emergency explanation must define its terms")
	}
	if expl.Expanded != "" {
		t.Fatal("beginner output is summary-only")
	}
}

func TestEmergency_TipsFallBackForUnknownCategory(t *testing.T) {
	expl := Emergency(domain.FragranceRecommendation{Category: "aquatic-mystery"}, domain.LevelIntermediate)

	if len(expl.Tips) == 0 {
		t.Fatal("unknown category must still produce generic tips")
	}
}
