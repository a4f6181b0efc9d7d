package claim

// Result is the record produced for one document.
type Result struct {
	ExtractedFields  map[string]string `json:"extractedFields"`
	MissingFields    []string          `json:"missingFields"`
	RecommendedRoute Route             `json:"recommendedRoute"`
	Reasoning        string            `json:"reasoning"`
}

// Assemble composes the result record. It copies its inputs so the record
// does not alias caller state, and guarantees non-nil collections.
func Assemble(fields Fields, missing []string, d Decision) Result {
	m := make([]string, len(missing))
	copy(m, missing)
	return Result{
		ExtractedFields:  fields.Values(),
		MissingFields:    m,
		RecommendedRoute: d.Route,
		Reasoning:        d.Reasoning,
	}
}
