package analysis

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// ExtractedFields holds the best-effort fields derived from raw OCR text
type ExtractedFields struct {
	Vendor string
	Amount float64
	Date   string // ISO 8601 calendar date
}

// UnknownVendor is used when the text has no non-blank line to take a
// vendor name from.
const UnknownVendor = "Unknown Vendor"

var (
	amountPattern = regexp.MustCompile(`\$?(\d+\.\d{2})`)
	datePattern   = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
)

// FieldExtractor derives vendor, amount, and date from raw receipt text
type FieldExtractor struct {
	timeSource TimeSource
}

// NewFieldExtractor creates a FieldExtractor using the system clock
func NewFieldExtractor() *FieldExtractor {
	return &FieldExtractor{timeSource: &defaultTimeSource{}}
}

// NewFieldExtractorWithClock creates a FieldExtractor with a custom time
// source for testing
func NewFieldExtractorWithClock(timeSource TimeSource) *FieldExtractor {
	return &FieldExtractor{timeSource: timeSource}
}

// Extract pulls vendor, amount, and date out of raw OCR text. It never
// fails: a missing amount yields 0.0, a missing date yields the current
// calendar date, and a blank text yields UnknownVendor.
func (e *FieldExtractor) Extract(rawText string) ExtractedFields {
	fields := ExtractedFields{Vendor: UnknownVendor}

	if match := amountPattern.FindStringSubmatch(rawText); match != nil {
		// The pattern guarantees a parseable decimal
		fields.Amount, _ = strconv.ParseFloat(match[1], 64)
	}

	if match := datePattern.FindString(rawText); match != "" {
		fields.Date = match
	} else {
		fields.Date = e.timeSource.Now().Format("2006-01-02")
	}

	for _, line := range strings.Split(rawText, "\n") {
		if strings.TrimSpace(line) != "" {
			fields.Vendor = line
			break
		}
	}

	return fields
}
