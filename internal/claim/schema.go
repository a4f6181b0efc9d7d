package claim

// FindMissing returns the mandatory fields that are absent, blank, or
// numeric fields that failed to parse, in mandatory order. The result is
// never nil; an empty slice means the record is complete.
func FindMissing(fields Fields, mandatory []string) []string {
	missing := []string{}
	for _, name := range mandatory {
		if !fields.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// CompletenessResult scores extracted fields against the mandatory list.
type CompletenessResult struct {
	Score    float64  `json:"score"`
	Present  []string `json:"present"`
	Missing  []string `json:"missing"`
	Invalid  []string `json:"invalid,omitempty"`
	Complete bool     `json:"complete"`
}

// CheckCompleteness is FindMissing with the detail reports need: fields
// that matched but did not validate are listed under Invalid as well as
// being counted missing.
func CheckCompleteness(fields Fields, mandatory []string) CompletenessResult {
	result := CompletenessResult{
		Present: []string{},
		Missing: []string{},
	}

	for _, name := range mandatory {
		f, ok := fields.Get(name)
		switch {
		case !ok:
			result.Missing = append(result.Missing, name)
		case !f.Usable():
			result.Missing = append(result.Missing, name)
			result.Invalid = append(result.Invalid, name)
		default:
			result.Present = append(result.Present, name)
		}
	}

	if len(mandatory) > 0 {
		result.Score = float64(len(result.Present)) / float64(len(mandatory))
	} else {
		result.Score = 1
	}
	result.Complete = len(result.Missing) == 0
	return result
}
