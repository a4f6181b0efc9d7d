package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"fnol/internal/claim"
	"fnol/internal/config"
	"fnol/internal/extract"
	"fnol/internal/logging"
	"fnol/internal/pipeline"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server exposes the claim pipeline as MCP tools.
type Server struct {
	MCPServer *sdkmcp.Server

	pipeline *pipeline.Pipeline
	cfg      config.Config
	logger   *slog.Logger
}

// NewServer registers the claim tools on a new MCP server. cfg must be the
// config p was built from.
func NewServer(p *pipeline.Pipeline, cfg config.Config, version string) *Server {
	if version == "" {
		version = "dev"
	}
	s := &Server{
		pipeline: p,
		cfg:      cfg.Clone(),
		logger:   logging.New("mcp"),
	}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "fnol", Version: version},
		nil,
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "process_claim",
		Description: "Extract fields from a claim document (PDF or text file), check mandatory fields and recommend a route.",
	}, s.handleProcessClaim)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "process_text",
		Description: "Run extraction, validation and routing over already-extracted document text.",
	}, s.handleProcessText)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "route_fields",
		Description: "Validate and route a field map produced elsewhere. Keys use the camelCase field vocabulary.",
	}, s.handleRouteFields)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "describe_config",
		Description: "Show the mandatory fields, routing keywords, fast-track threshold and extraction rules in effect.",
	}, s.handleDescribeConfig)
}

// --- Tool input/output types ---

type processClaimInput struct {
	Path string `json:"path" jsonschema:"path to a .pdf, .txt or .text claim document"`
}

type processTextInput struct {
	Text string `json:"text" jsonschema:"document text, pages separated by newlines"`
}

type routeFieldsInput struct {
	Fields map[string]string `json:"fields" jsonschema:"field name to extracted value"`
}

type describeConfigInput struct{}

type claimOutput struct {
	ExtractedFields  map[string]string `json:"extractedFields"`
	MissingFields    []string          `json:"missingFields"`
	RecommendedRoute string            `json:"recommendedRoute"`
	Reasoning        string            `json:"reasoning"`
	Completeness     float64           `json:"completeness"`
}

type describeConfigOutput struct {
	MandatoryFields    []string `json:"mandatoryFields"`
	ExtractedFields    []string `json:"extractedFields"`
	FraudKeywords      []string `json:"fraudKeywords"`
	InjuryKeyword      string   `json:"injuryKeyword"`
	FastTrackThreshold float64  `json:"fastTrackThreshold"`
	Routes             []string `json:"routes"`
}

func newClaimOutput(res claim.Result, completeness float64) claimOutput {
	return claimOutput{
		ExtractedFields:  res.ExtractedFields,
		MissingFields:    res.MissingFields,
		RecommendedRoute: string(res.RecommendedRoute),
		Reasoning:        res.Reasoning,
		Completeness:     completeness,
	}
}

// --- Tool handlers ---

func (s *Server) handleProcessClaim(ctx context.Context, _ *sdkmcp.CallToolRequest, input processClaimInput) (*sdkmcp.CallToolResult, claimOutput, error) {
	path := strings.TrimSpace(input.Path)
	if path == "" {
		return nil, claimOutput{}, fmt.Errorf("path is required")
	}
	fields, res, err := s.pipeline.Analyze(ctx, path)
	if err != nil {
		s.logger.Warn("process_claim failed", "path", path, "error", err)
		return nil, claimOutput{}, err
	}
	return nil, newClaimOutput(res, s.pipeline.Completeness(fields).Score), nil
}

func (s *Server) handleProcessText(_ context.Context, _ *sdkmcp.CallToolRequest, input processTextInput) (*sdkmcp.CallToolResult, claimOutput, error) {
	fields := s.pipeline.Extract(input.Text)
	res := s.pipeline.Evaluate(fields)
	s.logger.Info("process_text", "route", res.RecommendedRoute, "missing", len(res.MissingFields))
	return nil, newClaimOutput(res, s.pipeline.Completeness(fields).Score), nil
}

func (s *Server) handleRouteFields(_ context.Context, _ *sdkmcp.CallToolRequest, input routeFieldsInput) (*sdkmcp.CallToolResult, claimOutput, error) {
	fields := s.toFields(input.Fields)
	res := s.pipeline.Evaluate(fields)
	return nil, newClaimOutput(res, s.pipeline.Completeness(fields).Score), nil
}

func (s *Server) handleDescribeConfig(_ context.Context, _ *sdkmcp.CallToolRequest, _ describeConfigInput) (*sdkmcp.CallToolResult, describeConfigOutput, error) {
	extracted := []string{}
	seen := make(map[string]bool)
	for _, p := range s.cfg.ExtractionPatterns {
		if !seen[p.Field] {
			seen[p.Field] = true
			extracted = append(extracted, p.Field)
		}
	}
	routes := make([]string, 0, len(claim.Routes()))
	for _, r := range claim.Routes() {
		routes = append(routes, string(r))
	}
	return nil, describeConfigOutput{
		MandatoryFields:    append([]string{}, s.cfg.MandatoryFields...),
		ExtractedFields:    extracted,
		FraudKeywords:      append([]string{}, s.cfg.FraudKeywords...),
		InjuryKeyword:      s.cfg.InjuryKeyword,
		FastTrackThreshold: s.cfg.FastTrackThreshold,
		Routes:             routes,
	}, nil
}

// toFields types a plain value map: fields bound to a money normalizer get
// a parsed amount, everything else is trimmed text.
func (s *Server) toFields(values map[string]string) claim.Fields {
	money := map[string]bool{s.cfg.EstimateField: true}
	for _, p := range s.cfg.ExtractionPatterns {
		if p.Normalizer() == config.NormalizeMoney {
			money[p.Field] = true
		}
	}
	fields := claim.Fields{}
	for name, v := range values {
		if money[name] {
			fields.Set(extract.Amount(name, v))
		} else {
			fields.Set(extract.Trim(name, v))
		}
	}
	return fields
}
