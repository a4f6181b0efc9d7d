// Package config holds the process-wide claim intake configuration: the
// mandatory-field contract, the extraction pattern registry and the
// routing thresholds. A Config is built once at startup and passed by
// value into each pipeline stage; nothing reads it as ambient state.
package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"fnol/internal/claim"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Normalizer names accepted in a PatternSpec.
const (
	NormalizeText     = "text"
	NormalizeMoney    = "money"
	NormalizeConstant = "constant"
	NormalizeCurrency = "currency"
)

// PatternSpec binds one field to a regular expression. Capture group 1 is
// the value; patterns without a group use the whole match.
type PatternSpec struct {
	Field     string `yaml:"field" json:"field"`
	Pattern   string `yaml:"pattern" json:"pattern"`
	Normalize string `yaml:"normalize,omitempty" json:"normalize,omitempty"`
	// Value is the literal emitted by the constant normalizer.
	Value string `yaml:"value,omitempty" json:"value,omitempty"`
}

// Normalizer returns the effective normalizer name, defaulting to text.
func (p PatternSpec) Normalizer() string {
	if p.Normalize == "" {
		return NormalizeText
	}
	return p.Normalize
}

// Config is the recognized configuration surface.
type Config struct {
	MandatoryFields    []string      `yaml:"mandatoryFields" json:"mandatoryFields"`
	ExtractionPatterns []PatternSpec `yaml:"extractionPatterns" json:"extractionPatterns"`
	FraudKeywords      []string      `yaml:"fraudKeywords" json:"fraudKeywords"`
	InjuryKeyword      string        `yaml:"injuryKeyword" json:"injuryKeyword"`
	FastTrackThreshold float64       `yaml:"fastTrackThreshold" json:"fastTrackThreshold"`

	// Fields the router reads.
	DescriptionField string `yaml:"descriptionField" json:"descriptionField"`
	ClaimTypeField   string `yaml:"claimTypeField" json:"claimTypeField"`
	EstimateField    string `yaml:"estimateField" json:"estimateField"`
}

// Default returns a fresh copy of the embedded defaults.
func Default() Config {
	var c Config
	if err := yaml.Unmarshal(defaultsYAML, &c); err != nil {
		panic(fmt.Sprintf("load defaults.yaml: %v", err))
	}
	return c
}

// LoadFromPath reads an override file (YAML or JSON) and applies it on top
// of the defaults. Keys absent from the file keep their default values;
// list keys present in the file replace the default list entirely.
func LoadFromPath(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Load(data, filepath.Ext(path))
}

// Load parses an override from bytes. ext is a format hint (".json",
// ".yaml", ".yml"); empty means detect from content.
func Load(data []byte, ext string) (Config, error) {
	c := Default()

	ext = strings.ToLower(ext)
	if ext == "" && strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		ext = ".json"
	}

	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &c); err != nil {
			return Config{}, fmt.Errorf("parse config json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return Config{}, fmt.Errorf("parse config yaml: %w", err)
		}
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks every key a pipeline stage depends on. Field names must
// come from the claim vocabulary.
func (c Config) Validate() error {
	if len(c.MandatoryFields) == 0 {
		return fmt.Errorf("%w: mandatoryFields is empty", ErrInvalid)
	}
	seen := make(map[string]bool, len(c.MandatoryFields))
	for _, f := range c.MandatoryFields {
		if strings.TrimSpace(f) == "" {
			return fmt.Errorf("%w: mandatoryFields contains a blank name", ErrInvalid)
		}
		if !claim.Known(f) {
			return fmt.Errorf("%w: mandatoryFields: unknown field %q", ErrInvalid, f)
		}
		if seen[f] {
			return fmt.Errorf("%w: mandatoryFields lists %q twice", ErrInvalid, f)
		}
		seen[f] = true
	}

	if len(c.ExtractionPatterns) == 0 {
		return fmt.Errorf("%w: extractionPatterns is empty", ErrInvalid)
	}
	for i, p := range c.ExtractionPatterns {
		if strings.TrimSpace(p.Field) == "" {
			return fmt.Errorf("%w: extractionPatterns[%d] has no field", ErrInvalid, i)
		}
		if !claim.Known(p.Field) {
			return fmt.Errorf("%w: extractionPatterns[%d]: unknown field %q", ErrInvalid, i, p.Field)
		}
		if _, err := regexp.Compile(p.Pattern); err != nil || p.Pattern == "" {
			return fmt.Errorf("%w: extractionPatterns[%d] (%s): bad pattern %q", ErrInvalid, i, p.Field, p.Pattern)
		}
		switch p.Normalizer() {
		case NormalizeText, NormalizeMoney, NormalizeCurrency:
		case NormalizeConstant:
			if p.Value == "" {
				return fmt.Errorf("%w: extractionPatterns[%d] (%s): constant normalizer needs a value", ErrInvalid, i, p.Field)
			}
		default:
			return fmt.Errorf("%w: extractionPatterns[%d] (%s): unknown normalizer %q", ErrInvalid, i, p.Field, p.Normalize)
		}
	}

	for _, kw := range c.FraudKeywords {
		if strings.TrimSpace(kw) == "" {
			return fmt.Errorf("%w: fraudKeywords contains a blank keyword", ErrInvalid)
		}
	}
	if strings.TrimSpace(c.InjuryKeyword) == "" {
		return fmt.Errorf("%w: injuryKeyword is empty", ErrInvalid)
	}
	if c.FastTrackThreshold <= 0 {
		return fmt.Errorf("%w: fastTrackThreshold must be positive, got %v", ErrInvalid, c.FastTrackThreshold)
	}
	if c.DescriptionField == "" || c.ClaimTypeField == "" || c.EstimateField == "" {
		return fmt.Errorf("%w: router field bindings must all be set", ErrInvalid)
	}
	for key, f := range map[string]string{
		"descriptionField": c.DescriptionField,
		"claimTypeField":   c.ClaimTypeField,
		"estimateField":    c.EstimateField,
	} {
		if !claim.Known(f) {
			return fmt.Errorf("%w: %s: unknown field %q", ErrInvalid, key, f)
		}
	}
	return nil
}

// Clone returns a deep copy so callers can tweak a config in tests without
// touching the original.
func (c Config) Clone() Config {
	out := c
	out.MandatoryFields = append([]string(nil), c.MandatoryFields...)
	out.ExtractionPatterns = append([]PatternSpec(nil), c.ExtractionPatterns...)
	out.FraudKeywords = append([]string(nil), c.FraudKeywords...)
	return out
}

// Encode renders the config as "yaml" or "json".
func (c Config) Encode(format string) ([]byte, error) {
	switch format {
	case "json":
		return json.MarshalIndent(c, "", "  ")
	case "yaml", "":
		return yaml.Marshal(c)
	default:
		return nil, fmt.Errorf("unknown config format %q (want yaml or json)", format)
	}
}
