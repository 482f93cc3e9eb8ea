package analysis

// Result is the terminal record produced for one analyzed receipt
type Result struct {
	RawText     string   `json:"raw_text"`
	Vendor      string   `json:"vendor"`
	Amount      float64  `json:"amount"`
	Date        string   `json:"date"`
	Category    string   `json:"category"`
	Confidence  float64  `json:"confidence"`
	IsFraudRisk bool     `json:"is_fraud_risk"`
	RiskScore   float64  `json:"risk_score"`
	RiskReasons []string `json:"risk_reasons"`
	Status      Status   `json:"status"`
}

// Pipeline sequences field extraction, categorization, risk scoring, and
// the approval decision over one OCR-text-and-metadata input. It holds no
// per-request state and is safe for concurrent use.
type Pipeline struct {
	extractor   *FieldExtractor
	categorizer *Categorizer
	scorer      RiskScorer
}

// NewPipeline creates a Pipeline over the given category model, using the
// system clock for the date fallback
func NewPipeline(model *CategoryModel) *Pipeline {
	return &Pipeline{
		extractor:   NewFieldExtractor(),
		categorizer: NewCategorizer(model),
	}
}

// NewPipelineWithClock creates a Pipeline with a custom time source for
// testing
func NewPipelineWithClock(model *CategoryModel, timeSource TimeSource) *Pipeline {
	return &Pipeline{
		extractor:   NewFieldExtractorWithClock(timeSource),
		categorizer: NewCategorizer(model),
	}
}

// Analyze runs the full pipeline over already-extracted text and a
// metadata-presence flag and assembles the result record
func (p *Pipeline) Analyze(rawText string, hasMetadata bool) Result {
	fields := p.extractor.Extract(rawText)
	category, confidence := p.categorizer.Categorize(rawText)
	risk := p.scorer.Score(hasMetadata, rawText, fields.Vendor, fields.Amount)
	status, isFraudRisk := Decide(risk.Score)

	return Result{
		RawText:     rawText,
		Vendor:      fields.Vendor,
		Amount:      fields.Amount,
		Date:        fields.Date,
		Category:    category,
		Confidence:  confidence,
		IsFraudRisk: isFraudRisk,
		RiskScore:   risk.Score,
		RiskReasons: risk.Reasons,
		Status:      status,
	}
}
