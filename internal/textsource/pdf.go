package textsource

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDF extracts page text with pdfcpu. Layout is approximated from the
// text positioning operators so labels and their values keep landing on
// separate lines, which the extraction patterns rely on.
type PDF struct {
	cfg Config
}

// NewPDF returns a PDF source with cfg defaults applied.
func NewPDF(cfg Config) *PDF {
	cfg.defaults()
	return &PDF{cfg: cfg}
}

// Pages implements Source.
func (p *PDF) Pages(ctx context.Context, path string) ([]string, error) {
	f, err := openChecked(path, p.cfg.MaxBytes)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return p.PagesFromReader(ctx, f)
}

// PagesFromReader implements ReaderSource. Decoding runs under the
// configured timeout; pdfcpu itself is not context-aware, so on timeout the
// decode goroutine is abandoned and finishes in the background.
func (p *PDF) PagesFromReader(ctx context.Context, r io.ReadSeeker) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	type result struct {
		pages []string
		err   error
	}
	done := make(chan result, 1)
	go func() {
		pages, err := decodePDF(r)
		done <- result{pages, err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, ctx.Err())
	case res := <-done:
		return res.pages, res.err
	}
}

func decodePDF(r io.ReadSeeker) ([]string, error) {
	conf := model.NewDefaultConfiguration()
	pdfCtx, err := api.ReadValidateAndOptimize(r, conf)
	if err != nil {
		return nil, fmt.Errorf("%w: pdfcpu read: %v", ErrUnreadable, err)
	}

	pages := make([]string, 0, pdfCtx.PageCount)
	total := 0
	for pageNr := 1; pageNr <= pdfCtx.PageCount; pageNr++ {
		text, err := pageText(pdfCtx, pageNr)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrUnreadable, pageNr, err)
		}
		total += len(strings.TrimSpace(text))
		pages = append(pages, text)
	}
	if total == 0 {
		return nil, ErrNoText
	}
	return pages, nil
}

func pageText(pdfCtx *model.Context, pageNr int) (string, error) {
	rd, err := pdfcpu.ExtractPageContent(pdfCtx, pageNr)
	if err != nil {
		return "", err
	}
	if rd == nil {
		return "", nil
	}
	data, err := io.ReadAll(rd)
	if err != nil {
		return "", err
	}
	return TextFromContentStream(data), nil
}
