package extract

import (
	"context"
	"io"
)

// TextExtractor is stage 1: document -> page texts in page order. A page
// without an extractable text layer yields an empty string (or is omitted);
// that is not an error. The engine itself never performs I/O, so this is the
// only seam between the core and document decoding.
type TextExtractor interface {
	PageTexts(ctx context.Context, doc io.ReaderAt, size int64) ([]string, error)
}
