package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/invoicekit/invoice-summary/internal/common"
	"github.com/invoicekit/invoice-summary/internal/extract"
)

const (
	// FileName is the artifact offered for download.
	FileName = "invoice_summary.xlsx"
	// ContentType is the standard XLSX MIME type.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	// SheetName is the worksheet holding the extracted rows.
	SheetName = "Invoices"
)

// Service serializes extracted rows into XLSX bytes.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// BuildWorkbook returns an XLSX workbook (as bytes) with one header row of
// the canonical column names and one data row per extracted output row.
// An empty dataset is an error; the pipeline guarantees at least one row
// per processed document.
func (s *Service) BuildWorkbook(rows []extract.Row) ([]byte, error) {
	if len(rows) == 0 {
		return nil, common.NewAppError("EXPORT_EMPTY", "no rows to export", common.ErrEmptyDataset)
	}
	start := time.Now()

	f := excelize.NewFile()
	if index, _ := f.GetSheetIndex(SheetName); index == -1 {
		if _, err := f.NewSheet(SheetName); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(SheetName)
	f.SetActiveSheet(activeIndex)

	for i, h := range extract.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(SheetName, cell, h)
	}
	for rix, r := range rows {
		for cix, v := range r.Values() {
			cell, _ := excelize.CoordinatesToCellName(cix+1, rix+2)
			_ = f.SetCellValue(SheetName, cell, v)
		}
	}

	// Widen the busier columns
	_ = f.SetColWidth(SheetName, "A", "B", 14) // invoice no, date
	_ = f.SetColWidth(SheetName, "C", "C", 28) // party name
	_ = f.SetColWidth(SheetName, "D", "E", 20) // gstin, hsn
	_ = f.SetColWidth(SheetName, "F", "F", 32) // item
	_ = f.SetColWidth(SheetName, "K", "O", 14) // amounts

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(rows),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
