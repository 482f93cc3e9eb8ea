package analysis

import (
	"strings"
	"unicode/utf8"
)

// RiskAssessment is a numeric fraud-risk score with the reasons that
// contributed to it. Reasons appear in rule-evaluation order.
type RiskAssessment struct {
	Score   float64
	Reasons []string
}

const (
	missingMetadataWeight  = 30
	suspiciousVendorWeight = 50
	shortTextWeight        = 20

	maxRiskScore  = 100
	minTextLength = 10
)

// RiskScorer applies independent additive heuristics to produce a fraud
// risk score in [0,100]
type RiskScorer struct{}

// Score evaluates every rule unconditionally, sums their contributions,
// and clamps the total at 100. Rule order only affects the reasons list.
func (RiskScorer) Score(hasMetadata bool, rawText string, vendor string, amount float64) RiskAssessment {
	// Reasons is kept non-nil so it serializes as an empty array
	assessment := RiskAssessment{Reasons: []string{}}

	if !hasMetadata {
		assessment.Score += missingMetadataWeight
		assessment.Reasons = append(assessment.Reasons, "Missing EXIF metadata")
	}

	if vendor != "" && strings.Contains(strings.ToLower(vendor), "fake") {
		assessment.Score += suspiciousVendorWeight
		assessment.Reasons = append(assessment.Reasons, "Suspicious vendor name")
	}

	if utf8.RuneCountInString(strings.TrimSpace(rawText)) < minTextLength {
		assessment.Score += shortTextWeight
		assessment.Reasons = append(assessment.Reasons, "Very little text extracted")
	}

	if assessment.Score > maxRiskScore {
		assessment.Score = maxRiskScore
	}
	return assessment
}
