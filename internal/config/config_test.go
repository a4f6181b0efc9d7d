package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefault_IsValid(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("embedded defaults invalid: %v", err)
	}
	want := []string{
		"policyNumber", "policyholderName", "dateOfLoss", "timeOfLoss", "location",
		"description", "claimType", "estimatedDamage", "assetType", "initialEstimate", "attachments",
	}
	if diff := cmp.Diff(want, c.MandatoryFields); diff != "" {
		t.Errorf("mandatory fields mismatch:\n%s", diff)
	}
	if c.FastTrackThreshold != 25000 {
		t.Errorf("FastTrackThreshold = %v, want 25000", c.FastTrackThreshold)
	}
	if diff := cmp.Diff([]string{"fraud", "inconsistent", "staged"}, c.FraudKeywords); diff != "" {
		t.Errorf("fraud keywords mismatch:\n%s", diff)
	}
	if c.InjuryKeyword != "injury" {
		t.Errorf("InjuryKeyword = %q", c.InjuryKeyword)
	}
}

func TestDefault_ReturnsFreshCopy(t *testing.T) {
	a := Default()
	a.MandatoryFields[0] = "changed"
	b := Default()
	if b.MandatoryFields[0] != "policyNumber" {
		t.Errorf("Default shares state between calls: %q", b.MandatoryFields[0])
	}
}

func TestLoad_YAMLOverlayKeepsDefaults(t *testing.T) {
	c, err := Load([]byte("fastTrackThreshold: 10000\nfraudKeywords: [bogus]\n"), ".yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.FastTrackThreshold != 10000 {
		t.Errorf("threshold = %v, want 10000", c.FastTrackThreshold)
	}
	if diff := cmp.Diff([]string{"bogus"}, c.FraudKeywords); diff != "" {
		t.Errorf("fraud keywords mismatch:\n%s", diff)
	}
	if len(c.ExtractionPatterns) != len(Default().ExtractionPatterns) {
		t.Errorf("patterns were not kept from defaults")
	}
}

func TestLoad_DetectsJSON(t *testing.T) {
	c, err := Load([]byte(`{"mandatoryFields": ["policyNumber"], "injuryKeyword": "hurt"}`), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff([]string{"policyNumber"}, c.MandatoryFields); diff != "" {
		t.Errorf("mandatory mismatch:\n%s", diff)
	}
	if c.InjuryKeyword != "hurt" {
		t.Errorf("InjuryKeyword = %q, want hurt", c.InjuryKeyword)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"bad regex", "extractionPatterns:\n  - field: policyNumber\n    pattern: '(unclosed'\n", "bad pattern"},
		{"unknown normalizer", "extractionPatterns:\n  - field: policyNumber\n    pattern: 'X'\n    normalize: roman\n", "unknown normalizer"},
		{"constant without value", "extractionPatterns:\n  - field: assetType\n    pattern: 'X'\n    normalize: constant\n", "needs a value"},
		{"missing field name", "extractionPatterns:\n  - pattern: 'X'\n", "has no field"},
		{"unknown pattern field", "extractionPatterns:\n  - field: shoeSize\n    pattern: 'X'\n", `unknown field "shoeSize"`},
		{"zero threshold", "fastTrackThreshold: 0\n", "fastTrackThreshold"},
		{"negative threshold", "fastTrackThreshold: -5\n", "fastTrackThreshold"},
		{"empty mandatory", "mandatoryFields: []\n", "mandatoryFields is empty"},
		{"duplicate mandatory", "mandatoryFields: [policyNumber, policyNumber]\n", "twice"},
		{"unknown mandatory field", "mandatoryFields: [policyNumber, shoeSize]\n", `unknown field "shoeSize"`},
		{"blank fraud keyword", "fraudKeywords: ['  ']\n", "fraudKeywords"},
		{"empty injury keyword", "injuryKeyword: ''\n", "injuryKeyword"},
		{"unbound router field", "estimateField: ''\n", "bindings"},
		{"unknown router field", "claimTypeField: lineOfBusiness\n", `claimTypeField: unknown field "lineOfBusiness"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.doc), ".yaml")
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("Load error = %v, want ErrInvalid", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestLoad_ParseError(t *testing.T) {
	if _, err := Load([]byte("{not json"), ".json"); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yml")
	if err := os.WriteFile(path, []byte("fastTrackThreshold: 5000\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if c.FastTrackThreshold != 5000 {
		t.Errorf("threshold = %v, want 5000", c.FastTrackThreshold)
	}

	if _, err := LoadFromPath(filepath.Join(dir, "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestClone_Independent(t *testing.T) {
	a := Default()
	b := a.Clone()
	b.FraudKeywords[0] = "other"
	b.ExtractionPatterns[0].Pattern = "X"
	if a.FraudKeywords[0] != "fraud" {
		t.Error("Clone shares FraudKeywords")
	}
	if a.ExtractionPatterns[0].Pattern == "X" {
		t.Error("Clone shares ExtractionPatterns")
	}
}

func TestEncode_RoundTripsThroughLoad(t *testing.T) {
	for _, format := range []string{"yaml", "json"} {
		t.Run(format, func(t *testing.T) {
			data, err := Default().Encode(format)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			ext := "." + format
			got, err := Load(data, ext)
			if err != nil {
				t.Fatalf("Load(%s): %v", format, err)
			}
			if diff := cmp.Diff(Default(), got); diff != "" {
				t.Errorf("round trip mismatch:\n%s", diff)
			}
		})
	}
	if _, err := Default().Encode("toml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func unsetForTest(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		prev, had := os.LookupEnv(k)
		os.Unsetenv(k)
		t.Cleanup(func() {
			if had {
				os.Setenv(k, prev)
			} else {
				os.Unsetenv(k)
			}
		})
	}
}

func TestLoadEnv_ReadsDotEnv(t *testing.T) {
	unsetForTest(t, EnvConfigPath, EnvLogLevel, EnvLogFormat, EnvParallel)
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "FNOL_LOG_LEVEL=debug\nFNOL_PARALLEL=8\nFNOL_CONFIG=/etc/fnol/rules.yaml\n"
	if err := os.WriteFile(envFile, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got := LoadEnv(filepath.Join(dir, "missing.env"), envFile)
	want := Settings{
		ConfigPath: "/etc/fnol/rules.yaml",
		LogLevel:   "debug",
		LogFormat:  "text",
		Parallel:   8,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("settings mismatch:\n%s", diff)
	}
}

func TestLoadEnv_ProcessEnvWins(t *testing.T) {
	unsetForTest(t, EnvConfigPath, EnvLogFormat, EnvParallel)
	t.Setenv(EnvLogLevel, "warn")
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("FNOL_LOG_LEVEL=debug\nFNOL_PARALLEL=zero\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got := LoadEnv(envFile)
	if got.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", got.LogLevel)
	}
	if got.Parallel != 4 {
		t.Errorf("Parallel = %d, want fallback 4 for unparsable value", got.Parallel)
	}
}
