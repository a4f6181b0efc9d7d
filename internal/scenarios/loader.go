// Package scenarios ships labelled claim texts with their expected routing.
// They back the calibrate command and the end-to-end tests.
package scenarios

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"fnol/internal/claim"
)

//go:embed *.yaml
var scenarioFS embed.FS

// Scenario is one labelled document text.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Text        string `yaml:"text"`
	Expect      Expect `yaml:"expect"`
}

// Expect lists what the pipeline must produce for a scenario. Empty
// ReasoningContains and Fields are not checked.
type Expect struct {
	Route             claim.Route       `yaml:"route"`
	Missing           []string          `yaml:"missing"`
	ReasoningContains []string          `yaml:"reasoning_contains"`
	Fields            map[string]string `yaml:"fields"`
}

// Load reads a scenario by name from the embedded YAML files.
func Load(name string) (*Scenario, error) {
	data, err := scenarioFS.ReadFile(name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("scenario %q not found (available: %s): %w",
			name, strings.Join(List(), ", "), err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %q: %w", name, err)
	}
	return &s, nil
}

// List returns the names of all embedded scenarios, sorted.
func List() []string {
	entries, _ := scenarioFS.ReadDir(".")
	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".yaml") {
			names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
		}
	}
	sort.Strings(names)
	return names
}

// All loads every embedded scenario in name order.
func All() ([]*Scenario, error) {
	var out []*Scenario
	for _, name := range List() {
		s, err := Load(name)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Check compares a result with the expectation and returns one message
// per mismatch. An empty slice means the scenario passed.
func (s *Scenario) Check(res claim.Result) []string {
	var problems []string
	if res.RecommendedRoute != s.Expect.Route {
		problems = append(problems, fmt.Sprintf("route = %q, want %q", res.RecommendedRoute, s.Expect.Route))
	}
	if got, want := strings.Join(res.MissingFields, ","), strings.Join(s.Expect.Missing, ","); got != want {
		problems = append(problems, fmt.Sprintf("missing = [%s], want [%s]", got, want))
	}
	for _, sub := range s.Expect.ReasoningContains {
		if !strings.Contains(res.Reasoning, sub) {
			problems = append(problems, fmt.Sprintf("reasoning %q does not mention %q", res.Reasoning, sub))
		}
	}
	names := make([]string, 0, len(s.Expect.Fields))
	for name := range s.Expect.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		want := s.Expect.Fields[name]
		got, ok := res.ExtractedFields[name]
		if !ok {
			problems = append(problems, fmt.Sprintf("field %s absent, want %q", name, want))
		} else if got != want {
			problems = append(problems, fmt.Sprintf("field %s = %q, want %q", name, got, want))
		}
	}
	return problems
}
