package textsource

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var _ Source = (*Auto)(nil)
var _ Source = (*PDF)(nil)
var _ Source = (*Plain)(nil)
var _ ReaderSource = (*Auto)(nil)

func TestTextFromContentStream(t *testing.T) {
	tests := []struct {
		name   string
		stream string
		want   string
	}{
		{
			name:   "Tj with vertical moves",
			stream: "BT\n/F1 12 Tf\n72 720 Td\n(POLICY NUMBER: PN-1) Tj\n0 -14 Td\n(LOCATION OF LOSS) Tj\nT*\n(Main St) Tj\nET",
			want:   "POLICY NUMBER: PN-1\nLOCATION OF LOSS\nMain St",
		},
		{
			name:   "horizontal Td joins with a space",
			stream: "BT 72 720 Td (ESTIMATE AMOUNT:) Tj 120 0 Td ($18,000) Tj ET",
			want:   "ESTIMATE AMOUNT: $18,000",
		},
		{
			name:   "TJ array with kerning gap",
			stream: "BT [(NAME)-300(OF)-300(INS)20(URED)] TJ ET",
			want:   "NAME OF INSURED",
		},
		{
			name:   "quote operator starts a new line",
			stream: "BT (first) Tj (second) ' ET",
			want:   "first\nsecond",
		},
		{
			name:   "escapes and nested parens",
			stream: `BT (a \(b\) \\ c \101) Tj ET`,
			want:   `a (b) \ c A`,
		},
		{
			name:   "hex string",
			stream: "BT <48656C6C6F> Tj ET",
			want:   "Hello",
		},
		{
			name:   "separate text objects become lines",
			stream: "BT (one) Tj ET BT (two) Tj ET",
			want:   "one\ntwo",
		},
		{
			name:   "non-text operators ignored",
			stream: "q 1 0 0 1 0 0 cm /Im1 Do Q % comment (not text) Tj\n",
			want:   "",
		},
		{
			name:   "empty",
			stream: "",
			want:   "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TextFromContentStream([]byte(tt.stream))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("text mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestJoin(t *testing.T) {
	if got := Join([]string{"a", "b", "c"}); got != "a\nb\nc" {
		t.Errorf("Join = %q", got)
	}
	if got := Join(nil); got != "" {
		t.Errorf("Join(nil) = %q", got)
	}
}

func TestPlain_Pages(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "claim.txt")
	if err := os.WriteFile(path, []byte("page one\r\nline two\fpage two"), 0o644); err != nil {
		t.Fatal(err)
	}

	pages, err := New(Config{}).Pages(context.Background(), path)
	if err != nil {
		t.Fatalf("Pages: %v", err)
	}
	if diff := cmp.Diff([]string{"page one\nline two", "page two"}, pages); diff != "" {
		t.Errorf("pages mismatch:\n%s", diff)
	}
}

func TestPlain_Whitespace(t *testing.T) {
	_, err := (&Plain{}).PagesFromReader(context.Background(), strings.NewReader("  \n\t "))
	if !errors.Is(err, ErrNoText) {
		t.Errorf("err = %v, want ErrNoText", err)
	}
}

func TestAuto_Errors(t *testing.T) {
	dir := t.TempDir()
	big := filepath.Join(dir, "big.txt")
	if err := os.WriteFile(big, bytes.Repeat([]byte("x"), 64), 0o644); err != nil {
		t.Fatal(err)
	}
	folder := filepath.Join(dir, "folder.pdf")
	if err := os.Mkdir(folder, 0o755); err != nil {
		t.Fatal(err)
	}
	odd := filepath.Join(dir, "claim.docx")
	if err := os.WriteFile(odd, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	src := New(Config{MaxBytes: 16})
	tests := []struct {
		name string
		path string
		want error
	}{
		{"missing", filepath.Join(dir, "nope.pdf"), ErrNotFound},
		{"too large", big, ErrTooLarge},
		{"unsupported", odd, ErrUnsupported},
		{"directory", folder, ErrUnreadable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := src.Pages(context.Background(), tt.path)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSupported(t *testing.T) {
	for path, want := range map[string]bool{
		"a.pdf": true, "A.PDF": true, "a.txt": true, "a.text": true,
		"a.docx": false, "a": false,
	} {
		if got := Supported(path); got != want {
			t.Errorf("Supported(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestPDF_ExtractsLines(t *testing.T) {
	// WHAT: a real single-page PDF decodes to one page with label/value lines.
	// WHY: the extraction patterns anchor on line breaks after labels.
	dir := t.TempDir()
	path := filepath.Join(dir, "claim.pdf")
	raw := buildTextPDF([]string{"AUTOMOBILE LOSS NOTICE", "LOCATION OF LOSS", "123 Main St"})
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	pages, err := New(Config{}).Pages(context.Background(), path)
	if err != nil {
		t.Fatalf("Pages: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("pages = %d, want 1", len(pages))
	}
	want := "AUTOMOBILE LOSS NOTICE\nLOCATION OF LOSS\n123 Main St"
	if diff := cmp.Diff(want, pages[0]); diff != "" {
		t.Errorf("page text mismatch:\n%s", diff)
	}
}

func TestAuto_PagesFromReaderSniffsPDF(t *testing.T) {
	raw := buildTextPDF([]string{"POLICY NUMBER: PN-9"})
	pages, err := New(Config{}).PagesFromReader(context.Background(), bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("PagesFromReader: %v", err)
	}
	if !strings.Contains(Join(pages), "POLICY NUMBER: PN-9") {
		t.Errorf("pages = %q", pages)
	}

	pages, err = New(Config{}).PagesFromReader(context.Background(), strings.NewReader("plain text claim"))
	if err != nil {
		t.Fatalf("PagesFromReader(text): %v", err)
	}
	if diff := cmp.Diff([]string{"plain text claim"}, pages); diff != "" {
		t.Errorf("plain pages mismatch:\n%s", diff)
	}
}

func TestPDF_Corrupt(t *testing.T) {
	// WHAT: a file with a PDF header but no document structure fails.
	// WHY: unreadable input must never reach extraction.
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4\nthis is not a pdf body\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := New(Config{}).Pages(context.Background(), path)
	if err == nil {
		t.Fatal("expected an error for a corrupt PDF")
	}
	if !errors.Is(err, ErrUnreadable) && !errors.Is(err, ErrNoText) {
		t.Errorf("err = %v, want ErrUnreadable or ErrNoText", err)
	}
}

func TestPDF_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewPDF(Config{}).PagesFromReader(ctx, bytes.NewReader(buildTextPDF([]string{"x"})))
	if err == nil {
		// Decoding may win the race against the canceled context.
		return
	}
	if !errors.Is(err, ErrUnreadable) {
		t.Errorf("err = %v, want ErrUnreadable", err)
	}
}

// buildTextPDF assembles a valid one-page PDF whose content stream shows
// each line with Tj, moving down 14pt between lines.
func buildTextPDF(lines []string) []byte {
	var stream strings.Builder
	stream.WriteString("BT\n/F1 12 Tf\n72 720 Td\n")
	for i, line := range lines {
		if i > 0 {
			stream.WriteString("0 -14 Td\n")
		}
		escaped := strings.ReplaceAll(line, `\`, `\\`)
		escaped = strings.ReplaceAll(escaped, "(", `\(`)
		escaped = strings.ReplaceAll(escaped, ")", `\)`)
		stream.WriteString("(" + escaped + ") Tj\n")
	}
	stream.WriteString("ET")
	content := stream.String()

	var b strings.Builder
	b.WriteString("%PDF-1.4\n")
	offsets := make([]int, 6)

	offsets[1] = b.Len()
	b.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	offsets[2] = b.Len()
	b.WriteString("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")
	offsets[3] = b.Len()
	b.WriteString("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>\nendobj\n")
	offsets[4] = b.Len()
	b.WriteString("4 0 obj\n<< /Length " + strconv.Itoa(len(content)) + " >>\nstream\n")
	b.WriteString(content)
	b.WriteString("\nendstream\nendobj\n")
	offsets[5] = b.Len()
	b.WriteString("5 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")

	xref := b.Len()
	b.WriteString("xref\n0 6\n0000000000 65535 f \n")
	for i := 1; i <= 5; i++ {
		b.WriteString(padOffset(offsets[i]) + " 00000 n \n")
	}
	b.WriteString("trailer\n<< /Size 6 /Root 1 0 R >>\nstartxref\n")
	b.WriteString(strconv.Itoa(xref))
	b.WriteString("\n%%EOF\n")
	return []byte(b.String())
}

func padOffset(n int) string {
	s := strconv.Itoa(n)
	for len(s) < 10 {
		s = "0" + s
	}
	return s
}
