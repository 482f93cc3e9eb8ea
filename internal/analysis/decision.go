package analysis

// Status is the approval decision for an analyzed receipt
type Status string

const (
	StatusApproved Status = "APPROVED"
	StatusFlagged  Status = "FLAGGED"
	StatusRejected Status = "REJECTED"
)

const (
	rejectThreshold = 60
	flagThreshold   = 30
)

// Decide maps a risk score to a status and a fraud flag. It is a pure
// threshold function: scores above 60 are rejected, scores above 30 are
// flagged, and everything else is approved. The fraud flag is set exactly
// when the score exceeds 30.
func Decide(riskScore float64) (Status, bool) {
	switch {
	case riskScore > rejectThreshold:
		return StatusRejected, true
	case riskScore > flagThreshold:
		return StatusFlagged, true
	default:
		return StatusApproved, false
	}
}
