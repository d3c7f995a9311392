//go:build !integration

package explanation

import (
	"testing"

	"scentMatch/domain"
)

// 33 words, glossary term, performance fact, comparison, no patronizing.
const goodBeginnerText = "This vanilla scent opens sweet and settles into a warm base note of amber. " +
	"It lasts around six hours on skin, longer than most light colognes, which makes it easy to wear daily."

func TestValidate_CleanBeginnerTextScoresFull(t *testing.T) {
	v := Validate(goodBeginnerText, StyleFor(domain.LevelBeginner))

	if !v.Valid() {
		t.Fatalf("expected valid, issues: %v", v.Issues)
	}
	if v.Score != 100 {
		t.Fatalf("score = %d, want 100", v.Score)
	}
	if !v.HasFragranceTerm || !v.HasPerformance || !v.HasComparison {
		t.Fatalf("structural flags = %+v", v)
	}
}

func TestValidate_WordCountBands(t *testing.T) {
	style := StyleFor(domain.LevelBeginner) // target 30-40, accept 25-45

	cases := []struct {
		name      string
		words     int
		wantScore int
		wantIssue bool
	}{
		{"in target band", 35, scoreWordsInTarget, false},
		{"in acceptance band only", 27, scoreWordsInBand, false},
		{"below acceptance", 10, 0, true},
		{"above acceptance", 60, 0, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			text := repeatWords("plain", tc.words)
			v := Validate(text, style)

			gotWordScore := v.Score // the filler text triggers no other credit
			if gotWordScore != tc.wantScore {
				t.Fatalf("word score = %d, want %d", gotWordScore, tc.wantScore)
			}
			if hasWordCountIssue(v) != tc.wantIssue {
				t.Fatalf("word count issue = %v, want %v (issues %v)", hasWordCountIssue(v), tc.wantIssue, v.Issues)
			}
		})
	}
}

func TestValidate_PatronizingPenalty(t *testing.T) {
	text := goodBeginnerText + " Don't worry, it is perfect for beginners."
	v := Validate(text, StyleFor(domain.LevelBeginner))

	if !v.HasPatronizing {
		t.Fatal("expected patronizing phrasing to be flagged")
	}
	if v.Valid() {
		t.Fatal("patronizing text must not validate clean")
	}
	if v.Score != 80 {
		t.Fatalf("score = %d, want 80 (100 minus penalty)", v.Score)
	}
}

func TestValidate_ScoreFloorsAtZero(t *testing.T) {
	// two words, no structure, patronizing: raw score would be -20
	v := Validate("don't worry", StyleFor(domain.LevelBeginner))

	if v.Score != 0 {
		t.Fatalf("score = %d, want 0", v.Score)
	}
}

func TestValidate_SingularGlossaryTermMatches(t *testing.T) {
	v := Validate("a single base note here", StyleFor(domain.LevelBeginner))

	if !v.HasFragranceTerm {
		t.Fatal("expected singular form of glossary term to match")
	}
}

func TestEducationalTerms_OnlyUsedTermsReturned(t *testing.T) {
	terms := EducationalTerms("strong sillage and deep base notes")

	if _, ok := terms["sillage"]; !ok {
		t.Fatalf("terms = %v, missing sillage", terms)
	}
	if _, ok := terms["base notes"]; !ok {
		t.Fatalf("terms = %v, missing base notes", terms)
	}
	if _, ok := terms["longevity"]; ok {
		t.Fatal("longevity was not used and must not be returned")
	}
}

func TestStyleFor_UnknownLevelFallsBackToBeginner(t *testing.T) {
	s := StyleFor(domain.ExperienceLevel("mystery"))

	if s.Level != domain.LevelBeginner {
		t.Fatalf("level = %s, want beginner", s.Level)
	}
}

func TestBuildPrompt_TemperatureStepsDown(t *testing.T) {
	style := StyleFor(domain.LevelIntermediate)
	candidate := domain.FragranceRecommendation{Name: "Test", Brand: "House"}

	temps := []float64{
		BuildPrompt(style, candidate, 0).Temperature,
		BuildPrompt(style, candidate, 1).Temperature,
		BuildPrompt(style, candidate, 2).Temperature,
	}

	want := []float64{0.7, 0.5, 0.3}
	for i := range want {
		if temps[i] != want[i] {
			t.Fatalf("attempt %d temperature = %v, want %v", i, temps[i], want[i])
		}
	}
}

func TestBuildPrompt_LaterAttemptsCarryGuidance(t *testing.T) {
	style := StyleFor(domain.LevelBeginner)
	candidate := domain.FragranceRecommendation{Name: "Test", Brand: "House"}

	first := BuildPrompt(style, candidate, 0).Prompt
	second := BuildPrompt(style, candidate, 1).Prompt

	if len(second) <= len(first) {
		t.Fatal("expected retry prompt to append corrective guidance")
	}
}

func repeatWords(word string, n int) string {
	out := word
	for i := 1; i < n; i++ {
		out += " " + word
	}
	return out
}

func hasWordCountIssue(v domain.ExplanationValidation) bool {
	for _, issue := range v.Issues {
		if len(issue) >= 10 && issue[:10] == "word count" {
			return true
		}
	}
	return false
}
