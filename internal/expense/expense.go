package expense

import (
	"time"

	"github.com/omkar454/TSEC-HACKS-26/internal/analysis"
)

// Expense is an analyzed receipt with its stored upload and audit times
type Expense struct {
	ID          string          `json:"id"`
	Filename    string          `json:"filename"`
	ContentType string          `json:"content_type"`
	Analysis    analysis.Result `json:"analysis"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
