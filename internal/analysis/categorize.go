package analysis

import "strings"

// Uncategorized is the sentinel label used when neither tier produces a
// confident category.
const Uncategorized = "Uncategorized"

const (
	// keywordConfidence is the fixed confidence for a direct keyword hit
	keywordConfidence = 0.95
	// similarityThreshold is the minimum cosine similarity the model must
	// reach before its best label is trusted
	similarityThreshold = 0.1
)

// keywordRule maps a substring to a category. Rules are evaluated in
// declared order and the first match wins, which resolves inputs that
// mention more than one keyword.
type keywordRule struct {
	keyword  string
	category string
}

var keywordRules = []keywordRule{
	{"flight", "Travel"},
	{"airline", "Travel"},
	{"uber", "Travel"},
	{"taxi", "Travel"},
	{"camera", "Equipment"},
	{"lens", "Equipment"},
	{"adobe", "Editing"},
	{"edit", "Editing"},
	{"marketing", "Marketing"},
	{"ads", "Marketing"},
}

// Categorizer assigns a category label to receipt text using an ordered
// keyword table with a vector-similarity fallback
type Categorizer struct {
	model *CategoryModel
}

// NewCategorizer creates a Categorizer backed by the given model
func NewCategorizer(model *CategoryModel) *Categorizer {
	return &Categorizer{model: model}
}

// Categorize returns a category label and a confidence in [0,1]. A keyword
// hit short-circuits with fixed confidence; otherwise the model's best
// match is used when it clears the similarity threshold, and anything
// weaker is Uncategorized with zero confidence.
func (c *Categorizer) Categorize(rawText string) (string, float64) {
	textLower := strings.ToLower(rawText)

	for _, rule := range keywordRules {
		if strings.Contains(textLower, rule.keyword) {
			return rule.category, keywordConfidence
		}
	}

	best := c.model.Best(textLower)
	if best.Score > similarityThreshold {
		return best.Label, best.Score
	}
	return Uncategorized, 0.0
}
