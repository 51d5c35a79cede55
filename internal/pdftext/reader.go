// Package pdftext turns PDF documents into ordered page texts. Both
// implementations tolerate unreadable pages: such a page contributes
// nothing to the document text and extraction continues.
package pdftext

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ledongthuc/pdf"
)

// Reader extracts the text layer of a PDF in-process, page by page.
type Reader struct {
	logger *slog.Logger
}

func NewReader(logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{logger: logger}
}

// PageTexts returns one entry per page, in page order. A page whose content
// cannot be decoded yields an empty string and a warning log, not an error.
func (r *Reader) PageTexts(ctx context.Context, doc io.ReaderAt, size int64) ([]string, error) {
	pr, err := openReader(doc, size)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	n := pr.NumPage()
	texts := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		txt, err := pageText(pr.Page(i))
		if err != nil {
			r.logger.Warn("pdftext.page.skipped", "page", i, "err", err)
			texts = append(texts, "")
			continue
		}
		texts = append(texts, txt)
	}
	return texts, nil
}

// openReader wraps pdf.NewReader, which panics on some malformed xref
// tables; that degrades to a document-level error here.
func openReader(doc io.ReaderAt, size int64) (pr *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("parse pdf: %v", rec)
		}
	}()
	return pdf.NewReader(doc, size)
}

// pageText wraps GetPlainText. The underlying parser panics on some
// malformed content streams; that degrades to a per-page error here.
func pageText(p pdf.Page) (txt string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("parse page content: %v", rec)
		}
	}()
	if p.V.IsNull() {
		return "", nil
	}
	return p.GetPlainText(nil)
}
