package nap

// Record holds the three fields used to identify a business listing:
// name, address and phone number.
type Record struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// Citation is one directory's version of a business record.
type Citation struct {
	Record
	Source string `json:"source"`
	URL    string `json:"url,omitempty"`
}

// Comparison status values.
const (
	StatusPerfect  = "perfect"
	StatusSimilar  = "similar"
	StatusMismatch = "mismatch"
	StatusMissing  = "missing"
)

// Verdict colors for UI rendering.
const (
	ColorGreen  = "green"
	ColorYellow = "yellow"
	ColorRed    = "red"
)

// FieldComparison is the verdict for a single field pair.
type FieldComparison struct {
	Match      bool   `json:"match"`
	Similarity int    `json:"similarity"`
	Status     string `json:"status"`
	Color      string `json:"color"`
	Message    string `json:"message"`

	// Display-formatted values, only populated for phone comparisons.
	FormattedA string `json:"formattedA,omitempty"`
	FormattedB string `json:"formattedB,omitempty"`
}

// DiffChunk groups the words that were added or removed between two values.
type DiffChunk struct {
	Type  string   `json:"type"` // "added" or "removed"
	Words []string `json:"words"`
}

// VisualDiff is a word-level diff between two values, for display only.
type VisualDiff struct {
	HasDifferences bool        `json:"hasDifferences"`
	Differences    []DiffChunk `json:"differences,omitempty"`
}

// FieldDetail carries one field's citation value, master value, comparison
// verdict and display diff.
type FieldDetail struct {
	Citation   string          `json:"citation"`
	Master     string          `json:"master"`
	Comparison FieldComparison `json:"comparison"`
	Diff       VisualDiff      `json:"diff"`
}

// CitationFields groups the three per-field results of one citation.
type CitationFields struct {
	Name    FieldDetail `json:"name"`
	Address FieldDetail `json:"address"`
	Phone   FieldDetail `json:"phone"`
}

// CitationReport is the aggregated result for one citation.
type CitationReport struct {
	CitationIndex int            `json:"citationIndex"`
	Source        string         `json:"source"`
	URL           string         `json:"url,omitempty"`
	Score         int            `json:"score"`
	Status        string         `json:"status"`
	Color         string         `json:"color"`
	Fields        CitationFields `json:"fields"`
}

// Summary tallies citations per verdict bucket.
type Summary struct {
	Total   int `json:"total"`
	Perfect int `json:"perfect"`
	Minor   int `json:"minor"`
	Major   int `json:"major"`
}

// Recommendation is an actionable suggestion derived from the report.
type Recommendation struct {
	Priority string `json:"priority"` // "high", "medium" or "low"
	Message  string `json:"message"`
	Action   string `json:"action"`
}

// ConsistencyReport is the top-level output of the engine. Callers must check
// Error before consuming the rest of the report: validation failures are
// reported as data, never as a Go error or panic.
type ConsistencyReport struct {
	Error           string           `json:"error,omitempty"`
	OverallScore    int              `json:"overallScore"`
	Summary         Summary          `json:"summary"`
	Results         []CitationReport `json:"results"`
	Recommendations []Recommendation `json:"recommendations"`
	MasterData      Record           `json:"masterData"`
	GeneratedAt     string           `json:"generatedAt"`
}
