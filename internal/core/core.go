package core

import "time"

// Paper represents a single arXiv paper parsed from the API feed.
type Paper struct {
	ID         string    `json:"id"`         // Deterministic identifier derived from the entry URL
	Title      string    `json:"title"`      // Paper title with newlines collapsed
	Abstract   string    `json:"abstract"`   // Abstract text with whitespace normalized
	Authors    []string  `json:"authors"`    // Author names in feed order
	Published  time.Time `json:"published"`  // Submission date (zero value when unparseable)
	PDFLink    string    `json:"pdf_link"`   // Direct link to the PDF, if present
	Categories []string  `json:"categories"` // arXiv category terms (e.g., "eess.SY")
	Insight    *Insight  `json:"insight"`    // Generated insight record (nil until summarized)
}

// Insight is the structured record extracted from a model-generated summary.
// It is created fresh per summarization call and immutable once returned;
// every field is always present, possibly empty.
type Insight struct {
	Summary               string   `json:"summary"`                // Expert insight summary; falls back to a fixed placeholder
	KeyInnovations        []string `json:"key_innovations"`        // Bullet points describing what is genuinely new
	NovelMethods          []string `json:"novel_methods"`          // Bullet points describing novel methods/techniques
	PotentialApplications []string `json:"potential_applications"` // Bullet points describing practical applications
	ExtractedKeywords     []string `json:"extracted_keywords"`     // Technical keywords, at most 8
}
