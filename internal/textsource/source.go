// Package textsource turns a claim document into plain page text. It is the
// only package that knows about file formats; the rest of the pipeline sees
// a slice of page strings.
package textsource

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var (
	ErrNotFound    = errors.New("file not found")
	ErrUnsupported = errors.New("unsupported document type")
	ErrTooLarge    = errors.New("document too large")
	ErrUnreadable  = errors.New("document unreadable")
	ErrNoText      = errors.New("document has no extractable text")
)

// Source yields the text of a document as ordered pages.
type Source interface {
	Pages(ctx context.Context, path string) ([]string, error)
}

// ReaderSource is implemented by sources that can decode a byte stream.
type ReaderSource interface {
	PagesFromReader(ctx context.Context, r io.ReadSeeker) ([]string, error)
}

// Join concatenates pages in order with a newline between them.
func Join(pages []string) string {
	return strings.Join(pages, "\n")
}

// Config bounds decoding work.
type Config struct {
	// MaxBytes rejects larger files before decoding. Default 32 MiB.
	MaxBytes int64
	// Timeout bounds decoding of a single document. Default 30s.
	Timeout time.Duration
}

func (c *Config) defaults() {
	if c.MaxBytes <= 0 {
		c.MaxBytes = 32 << 20
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
}

// Auto dispatches on file extension: .pdf to PDF, .txt/.text to Plain.
type Auto struct {
	cfg   Config
	pdf   *PDF
	plain *Plain
}

// New returns the extension-dispatching source.
func New(cfg Config) *Auto {
	cfg.defaults()
	return &Auto{cfg: cfg, pdf: NewPDF(cfg), plain: &Plain{cfg: cfg}}
}

// Supported reports whether path has an extension Auto can read.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".txt", ".text":
		return true
	}
	return false
}

// Pages implements Source.
func (a *Auto) Pages(ctx context.Context, path string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return a.pdf.Pages(ctx, path)
	case ".txt", ".text":
		return a.plain.Pages(ctx, path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, path)
	}
}

// PagesFromReader sniffs the stream: a %PDF header goes to the PDF decoder,
// anything else is treated as plain text.
func (a *Auto) PagesFromReader(ctx context.Context, r io.ReadSeeker) ([]string, error) {
	head := make([]byte, 5)
	n, _ := io.ReadFull(r, head)
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	if bytes.HasPrefix(head[:n], []byte("%PDF-")) {
		return a.pdf.PagesFromReader(ctx, r)
	}
	return a.plain.PagesFromReader(ctx, r)
}

// openChecked opens path after existence and size checks.
func openChecked(path string, maxBytes int64) (*os.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrUnreadable, path)
	}
	if info.Size() > maxBytes {
		return nil, fmt.Errorf("%w: %s is %d bytes (limit %d)", ErrTooLarge, path, info.Size(), maxBytes)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return f, nil
}

// Plain reads UTF-8 text. A form feed separates pages.
type Plain struct {
	cfg Config
}

// Pages implements Source.
func (p *Plain) Pages(ctx context.Context, path string) ([]string, error) {
	f, err := openChecked(path, p.cfg.MaxBytes)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return p.PagesFromReader(ctx, f)
}

// PagesFromReader implements ReaderSource.
func (p *Plain) PagesFromReader(ctx context.Context, r io.ReadSeeker) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	max := p.cfg.MaxBytes
	if max <= 0 {
		max = 32 << 20
	}
	data, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	if int64(len(data)) > max {
		return nil, fmt.Errorf("%w: stream exceeds %d bytes", ErrTooLarge, max)
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoText
	}
	return strings.Split(text, "\f"), nil
}
