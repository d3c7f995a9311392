package explanation

// glossary maps fragrance terminology to beginner-friendly definitions.
// Validation accepts any of these terms as domain vocabulary; the generator
// also uses it to build the educational-terms map on beginner output.
var glossary = map[string]string{
	"top notes":     "the first scents you smell, which fade within 15-30 minutes",
	"middle notes":  "the heart of the fragrance that emerges after the opening",
	"base notes":    "the long-lasting foundation that carries the scent for hours",
	"sillage":       "the scent trail a fragrance leaves in the air around you",
	"longevity":     "how many hours a fragrance stays detectable on skin",
	"projection":    "how far a fragrance radiates from the skin",
	"dry down":      "the final phase of a fragrance, dominated by base notes",
	"accord":        "a blended combination of notes that reads as one scent",
	"eau de parfum": "a concentration around 15-20% fragrance oil, stronger and longer lasting",
	"eau de toilette": "a lighter concentration around 5-15% fragrance oil",
	"gourmand":      "a scent style built on edible notes like vanilla, caramel, or coffee",
	"chypre":        "a classic structure built on citrus, labdanum, and oakmoss",
	"fougere":       "an aromatic structure built on lavender, coumarin, and oakmoss",
	"skin chemistry": "how your skin's natural oils shift the way a fragrance smells",
	"niche":         "fragrances from small artistic houses, as opposed to designer brands",
}

// performanceMarkers are phrases that count as a performance or behavior
// fact during validation ("lasts 6 hours", "moderate sillage", ...).
var performanceMarkers = []string{
	"lasts", "lasting", "longevity", "sillage", "projection",
	"hours", "wears", "wear time", "dry down", "drydown", "stays",
}

// comparisonMarkers signal a contrastive statement.
var comparisonMarkers = []string{
	"than", "compared to", "compared with", "unlike", "versus", "whereas",
	"in contrast",
}

// patronizingPhrases are stock phrases that talk down to the reader.
// Their presence invalidates the text and costs score.
var patronizingPhrases = []string{
	"don't worry",
	"perfect for beginners",
	"as a beginner",
	"even you",
	"it's okay if you",
	"simply put",
	"easy choice for you",
	"you'll love it",
	"trust us",
}

// knowledgeSignalTerms are the qualitative tags mined from quiz answers and
// collection notes by the experience classifier.
var knowledgeSignalTerms = []string{
	"sillage", "longevity", "projection", "accord", "dry down",
	"top notes", "base notes", "edp", "edt", "chypre", "fougere",
	"gourmand", "vetiver", "oud", "iris", "oakmoss", "amber",
}

// KnowledgeSignalTerms exposes the tag vocabulary to the classifier.
func KnowledgeSignalTerms() []string {
	return knowledgeSignalTerms
}

// categoryTips keys contextual pointers by the candidate's dominant accord
// family. The default entry covers unknown categories.
var categoryTips = map[string][]string{
	"woody": {
		"Woody scents tend to perform best in cooler weather.",
		"Apply to clothing for a softer, longer-lived wear.",
	},
	"fresh": {
		"Fresh scents shine in warm weather but fade faster; carry a travel spray.",
		"Try two sprays on pulse points rather than one heavy application.",
	},
	"floral": {
		"Florals often bloom differently on skin than on paper; test before committing.",
		"A light hand keeps floral sillage pleasant in close quarters.",
	},
	"oriental": {
		"Amber-leaning scents wear strongest; one spray is often enough.",
		"These tend to bloom in the evening as skin warms.",
	},
	"gourmand": {
		"Sweet gourmands project noticeably; start with a single spray.",
		"Cold weather tames their sweetness and extends the dry down.",
	},
	"": {
		"Sample on skin before buying a full bottle.",
		"Give the dry down at least an hour before judging.",
	},
}

// TipsForCategory returns the contextual tips for an accord family.
func TipsForCategory(category string) []string {
	if tips, ok := categoryTips[category]; ok {
		return tips
	}
	return categoryTips[""]
}
