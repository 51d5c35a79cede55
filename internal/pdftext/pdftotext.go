package pdftext

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Pdftotext extracts page texts by shelling out to the poppler pdftotext
// binary. It exists for PDFs the in-process parser cannot handle; the
// document still needs a text layer (no OCR).
type Pdftotext struct {
	bin    string
	runner Runner
	logger *slog.Logger
}

func NewPdftotext(bin string, logger *slog.Logger) *Pdftotext {
	if bin == "" {
		bin = "pdftotext"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pdftotext{bin: bin, runner: execRunner{}, logger: logger}
}

func (p *Pdftotext) PageTexts(ctx context.Context, doc io.ReaderAt, size int64) ([]string, error) {
	tmp, err := os.CreateTemp("", "invsum-*.pdf")
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()
	if _, err := io.Copy(tmp, io.NewSectionReader(doc, 0, size)); err != nil {
		return nil, fmt.Errorf("spool pdf: %w", err)
	}

	// pdftotext -layout -enc UTF-8 -eol unix <tmp> -
	out, errb, err := p.runner.Run(ctx, p.bin, "-layout", "-enc", "UTF-8", "-eol", "unix", tmp.Name(), "-")
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w: %s", err, truncate(string(errb), 512))
	}
	return splitPages(string(out)), nil
}

// splitPages cuts pdftotext output on its form-feed page separators. Each
// page ends with "\f", so the final element after the last separator is
// dropped when empty.
func splitPages(out string) []string {
	pages := strings.Split(out, "\f")
	if n := len(pages); n > 0 && strings.TrimSpace(pages[n-1]) == "" {
		pages = pages[:n-1]
	}
	for i, p := range pages {
		pages[i] = strings.TrimRight(p, "\n")
	}
	return pages
}
