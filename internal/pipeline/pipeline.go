// Package pipeline runs one document through text extraction, field
// extraction, validation, routing and assembly.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"fnol/internal/claim"
	"fnol/internal/config"
	"fnol/internal/extract"
	"fnol/internal/route"
	"fnol/internal/textsource"
)

// Pipeline is built once from a Config and is safe for concurrent use.
type Pipeline struct {
	mandatory []string
	source    textsource.Source
	extractor *extract.Extractor
	router    *route.Router
	logger    *slog.Logger
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithSource replaces the default extension-dispatching text source.
func WithSource(s textsource.Source) Option {
	return func(p *Pipeline) { p.source = s }
}

// WithLogger sets the logger; the default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// New validates cfg and wires the stages.
func New(cfg config.Config, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Pipeline{
		mandatory: append([]string(nil), cfg.MandatoryFields...),
		logger:    slog.Default(),
	}
	for _, o := range opts {
		o(p)
	}
	if p.source == nil {
		p.source = textsource.New(textsource.Config{})
	}

	ex, err := extract.FromConfig(cfg, p.logger)
	if err != nil {
		return nil, err
	}
	p.extractor = ex
	p.router = route.New(cfg)
	return p, nil
}

// Mandatory returns the mandatory field list in contract order.
func (p *Pipeline) Mandatory() []string {
	return append([]string(nil), p.mandatory...)
}

// Process reads the document at path and returns its result record. Any
// text source failure is returned before extraction starts.
func (p *Pipeline) Process(ctx context.Context, path string) (claim.Result, error) {
	_, res, err := p.Analyze(ctx, path)
	return res, err
}

// Analyze is Process that also returns the typed fields the result was
// built from, including blank and unparsed values the record flattens.
func (p *Pipeline) Analyze(ctx context.Context, path string) (claim.Fields, claim.Result, error) {
	pages, err := p.source.Pages(ctx, path)
	if err != nil {
		return nil, claim.Result{}, fmt.Errorf("read %s: %w", path, err)
	}
	fields := p.extractor.Extract(textsource.Join(pages))
	res := p.Evaluate(fields)
	p.logger.Info("claim processed",
		"path", path,
		"pages", len(pages),
		"route", res.RecommendedRoute,
		"missing", len(res.MissingFields),
	)
	return fields, res, nil
}

// ProcessReader is Process for a byte stream. The source must implement
// textsource.ReaderSource.
func (p *Pipeline) ProcessReader(ctx context.Context, r io.ReadSeeker) (claim.Result, error) {
	rs, ok := p.source.(textsource.ReaderSource)
	if !ok {
		return claim.Result{}, fmt.Errorf("%w: source cannot read streams", textsource.ErrUnsupported)
	}
	pages, err := rs.PagesFromReader(ctx, r)
	if err != nil {
		return claim.Result{}, fmt.Errorf("read stream: %w", err)
	}
	return p.ProcessText(textsource.Join(pages)), nil
}

// ProcessText runs the pure part of the pipeline over already-extracted text.
func (p *Pipeline) ProcessText(text string) claim.Result {
	fields := p.extractor.Extract(text)
	return p.Evaluate(fields)
}

// Evaluate validates and routes fields that were produced elsewhere.
func (p *Pipeline) Evaluate(fields claim.Fields) claim.Result {
	missing := claim.FindMissing(fields, p.mandatory)
	decision := p.router.Route(fields, missing)
	return claim.Assemble(fields, missing, decision)
}

// Completeness scores fields against the mandatory list.
func (p *Pipeline) Completeness(fields claim.Fields) claim.CompletenessResult {
	return claim.CheckCompleteness(fields, p.mandatory)
}

// Extract exposes the field extractor for callers that need typed fields.
func (p *Pipeline) Extract(text string) claim.Fields {
	return p.extractor.Extract(text)
}
