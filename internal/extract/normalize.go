package extract

import (
	"regexp"
	"strconv"
	"strings"

	"fnol/internal/claim"
)

// Normalizer turns the captured text into a field.
type Normalizer func(name, raw string) claim.Field

var nonAmountChars = regexp.MustCompile(`[^\d.]`)

// Trim stores the captured text with surrounding whitespace removed.
func Trim(name, raw string) claim.Field {
	return claim.Field{Name: name, Kind: claim.Text, Raw: raw, Value: strings.TrimSpace(raw)}
}

// Amount strips everything but digits and '.' and parses the remainder.
// When nothing parseable is left the trimmed capture is kept as the value
// and Amount stays nil, which the validator reports as missing.
func Amount(name, raw string) claim.Field {
	f := claim.Field{Name: name, Kind: claim.Money, Raw: raw, Value: strings.TrimSpace(raw)}
	v, ok := ParseAmount(raw)
	if !ok {
		return f
	}
	f.Value = nonAmountChars.ReplaceAllString(raw, "")
	f.Amount = &v
	return f
}

// ParseAmount applies the money normalization rule on its own.
func ParseAmount(s string) (float64, bool) {
	cleaned := nonAmountChars.ReplaceAllString(s, "")
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Constant ignores the capture and emits a fixed value; used where the
// presence of a label implies the answer (the form title names the asset).
func Constant(value string) Normalizer {
	return func(name, raw string) claim.Field {
		return claim.Field{Name: name, Kind: claim.Text, Raw: raw, Value: value}
	}
}

var currencySymbols = map[string]string{
	"$": "USD",
	"€": "EUR",
	"£": "GBP",
}

// Currency maps a symbol or three-letter code to an upper-case ISO code.
func Currency(name, raw string) claim.Field {
	s := strings.TrimSpace(raw)
	code, ok := currencySymbols[s]
	if !ok {
		code = strings.ToUpper(s)
	}
	return claim.Field{Name: name, Kind: claim.Text, Raw: raw, Value: code}
}
