package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/invoicekit/invoice-summary/internal/common"
	"github.com/invoicekit/invoice-summary/internal/extract"
)

func TestBuildWorkbook(t *testing.T) {
	rows := []extract.Row{
		{
			InvoiceNo:    "INV/001",
			Date:         "12-05-2024",
			PartyName:    "ACME CORP",
			GSTIN:        "22AAAAA0000A1Z5",
			HSNCode:      "2024",
			Item:         "WIDGET A",
			Quantity:     "10",
			Unit:         "KGS",
			Rate:         "5.00",
			Amount:       "50.00",
			TaxableValue: "50.00",
			CGSTAmt:      "4.50",
			SGSTAmt:      "4.50",
			InvoiceTotal: "59.00",
		},
		{InvoiceNo: "INV/002"},
	}

	b, err := NewService(nil).BuildWorkbook(rows)
	require.NoError(t, err)
	require.NotEmpty(t, b)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	// Header row carries the canonical column names in order.
	got, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(got), 3)
	assert.Equal(t, extract.Columns, got[0])

	// One data row per output row, values in column order.
	assert.Equal(t, rows[0].Values(), got[1])
	assert.Equal(t, "INV/002", got[2][0])

	cell, err := f.GetCellValue(SheetName, "F2")
	require.NoError(t, err)
	assert.Equal(t, "WIDGET A", cell)
}

func TestBuildWorkbook_EmptyDataset(t *testing.T) {
	_, err := NewService(nil).BuildWorkbook(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrEmptyDataset)
}
