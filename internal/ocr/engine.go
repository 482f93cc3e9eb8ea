package ocr

// Engine defines the interface for text-extraction backends
type Engine interface {
	// ExtractText transcribes the text content of a receipt image/PDF
	ExtractText(imageData []byte, contentType string) (string, error)
	// Close closes the engine and releases resources
	Close() error
}

// transcriptionPrompt is the shared prompt used by all vision backends for
// transcribing receipts
const transcriptionPrompt = `You are transcribing a receipt or invoice document. Carefully read all text in the image and write it out exactly as it appears, line by line, top to bottom.

Rules:
- Preserve the original line breaks: one line of the receipt per line of output
- Keep amounts, dates, and identifiers exactly as printed (e.g. "45.00", "2024-05-01")
- Do not summarize, translate, or reorder anything
- Do not add commentary, labels, or markdown code blocks
- If the image contains no readable text, return an empty response`
