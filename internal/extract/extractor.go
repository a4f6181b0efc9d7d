// Package extract maps document text onto claim fields through an ordered
// registry of (field, pattern, normalizer) rules. Matching is single-pass
// and best effort: a rule that does not match leaves its field absent.
package extract

import (
	"fmt"
	"log/slog"
	"regexp"

	"fnol/internal/claim"
	"fnol/internal/config"
)

// Rule binds a field name to a matcher and a normalizer.
type Rule struct {
	Field     string
	Pattern   *regexp.Regexp
	Normalize Normalizer
}

// Extractor applies its rules in order. It holds no mutable state and is
// safe for concurrent use.
type Extractor struct {
	rules  []Rule
	logger *slog.Logger
}

// New builds an Extractor over pre-compiled rules.
func New(rules []Rule, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	r := make([]Rule, len(rules))
	copy(r, rules)
	return &Extractor{rules: r, logger: logger}
}

// FromConfig compiles the extraction pattern registry of cfg.
func FromConfig(cfg config.Config, logger *slog.Logger) (*Extractor, error) {
	rules := make([]Rule, 0, len(cfg.ExtractionPatterns))
	for _, spec := range cfg.ExtractionPatterns {
		re, err := regexp.Compile(spec.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compile pattern for %s: %w", spec.Field, err)
		}
		norm, err := normalizerFor(spec)
		if err != nil {
			return nil, err
		}
		rules = append(rules, Rule{Field: spec.Field, Pattern: re, Normalize: norm})
	}
	return New(rules, logger), nil
}

func normalizerFor(spec config.PatternSpec) (Normalizer, error) {
	switch spec.Normalizer() {
	case config.NormalizeText:
		return Trim, nil
	case config.NormalizeMoney:
		return Amount, nil
	case config.NormalizeCurrency:
		return Currency, nil
	case config.NormalizeConstant:
		return Constant(spec.Value), nil
	default:
		return nil, fmt.Errorf("%w: unknown normalizer %q for %s", config.ErrInvalid, spec.Normalize, spec.Field)
	}
}

// Rules returns the field names in registry order.
func (e *Extractor) Rules() []string {
	out := make([]string, len(e.rules))
	for i, r := range e.rules {
		out[i] = r.Field
	}
	return out
}

// Extract runs every rule against text. Empty text yields an empty set.
// When two rules target the same field the first match wins.
func (e *Extractor) Extract(text string) claim.Fields {
	fields := claim.Fields{}
	if text == "" {
		return fields
	}

	for _, r := range e.rules {
		if _, done := fields[r.Field]; done {
			continue
		}
		m := r.Pattern.FindStringSubmatch(text)
		if m == nil {
			e.logger.Debug("field not matched", "field", r.Field)
			continue
		}
		raw := m[0]
		if len(m) > 1 {
			raw = m[1]
		}
		fields.Set(r.Normalize(r.Field, raw))
	}
	return fields
}
