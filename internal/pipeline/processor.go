// Package pipeline orchestrates the per-document extraction loop: page
// texts in, output rows out, accumulated in upload order.
package pipeline

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/invoicekit/invoice-summary/internal/extract"
)

// Document is one uploaded or selected invoice document.
type Document struct {
	Name   string
	Reader io.ReaderAt
	Size   int64
}

// Summary aggregates one batch run for the presentation layer.
type Summary struct {
	Documents int `json:"documents"`
	Rows      int `json:"rows"`
	Failed    int `json:"failed"`
}

// Processor runs the extraction engine over a batch of documents. Documents
// are processed sequentially; the engine itself is stateless, so there is no
// shared mutable state between documents.
type Processor struct {
	text   extract.TextExtractor
	logger *slog.Logger
}

func NewProcessor(text extract.TextExtractor, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{text: text, logger: logger}
}

// Process extracts rows from every document in order. A document whose text
// cannot be read degrades to the empty-text path (one all-empty row) rather
// than aborting the batch, so every document contributes at least one row
// and each document's rows stay contiguous.
func (p *Processor) Process(ctx context.Context, docs []Document) ([]extract.Row, Summary, error) {
	batchID := uuid.New()
	start := time.Now()

	rows := make([]extract.Row, 0, len(docs))
	sum := Summary{Documents: len(docs)}
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, Summary{}, err
		}
		text, err := p.documentText(ctx, doc)
		if err != nil {
			if ctx.Err() != nil {
				return nil, Summary{}, ctx.Err()
			}
			p.logger.Warn("pipeline.document.unreadable",
				"batch_id", batchID, "name", doc.Name, "err", err)
			sum.Failed++
			text = ""
		}
		docRows := extract.Extract(text)
		rows = append(rows, docRows...)
		p.logger.Info("pipeline.document.ok",
			"batch_id", batchID, "name", doc.Name, "rows", len(docRows))
	}
	sum.Rows = len(rows)

	p.logger.Info("pipeline.batch.ok",
		"batch_id", batchID,
		"documents", sum.Documents,
		"rows", sum.Rows,
		"failed", sum.Failed,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return rows, sum, nil
}

func (p *Processor) documentText(ctx context.Context, doc Document) (string, error) {
	pages, err := p.text.PageTexts(ctx, doc.Reader, doc.Size)
	if err != nil {
		return "", err
	}
	return extract.JoinPages(pages), nil
}
