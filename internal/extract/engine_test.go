package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleInvoice = "Invoice No: INV/001\n" +
	"Date: 12-05-2024\n" +
	"Name: ACME CORP\n" +
	"GSTIN: 22AAAAA0000A1Z5\n" +
	"WIDGET A 10 KGS 5.00 50.00\n" +
	"Taxable Value: ₹50.00\n" +
	"CGST: 4.50\n" +
	"SGST: 4.50\n" +
	"Invoice Total: 59.00"

func TestExtract_SingleLineItem(t *testing.T) {
	rows := Extract(sampleInvoice)
	require.Len(t, rows, 1)

	r := rows[0]
	assert.Equal(t, "INV/001", r.InvoiceNo)
	assert.Equal(t, "12-05-2024", r.Date)
	assert.Equal(t, "ACME CORP", r.PartyName)
	assert.Equal(t, "22AAAAA0000A1Z5", r.GSTIN)
	assert.Equal(t, "2024", r.HSNCode) // the date year is the only 4-8 digit token
	assert.Equal(t, "WIDGET A", r.Item)
	assert.Equal(t, "10", r.Quantity)
	assert.Equal(t, "KGS", r.Unit)
	assert.Equal(t, "5.00", r.Rate)
	assert.Equal(t, "50.00", r.Amount)
	assert.Equal(t, "50.00", r.TaxableValue)
	assert.Equal(t, "4.50", r.CGSTAmt)
	assert.Equal(t, "4.50", r.SGSTAmt)
	assert.Equal(t, "", r.IGSTAmt)
	assert.Equal(t, "59.00", r.InvoiceTotal)
}

func TestExtract_MultipleLineItems(t *testing.T) {
	text := "Invoice No: INV-77\n" +
		"Date: 01/02/23\n" +
		"STEEL ROD (12MM) 4 KGS 100.00 400.00\n" +
		"GIZMO 3 2.00 6.00\n" +
		"Total Amount Before Tax: 406.00\n" +
		"IGST ₹73.08\n" +
		"Total Amount After Tax ₹479.08"

	rows := Extract(text)
	require.Len(t, rows, 2)

	// Header fields broadcast identically onto every row.
	for _, r := range rows {
		assert.Equal(t, "INV-77", r.InvoiceNo)
		assert.Equal(t, "01/02/23", r.Date)
		assert.Equal(t, "", r.PartyName)
		assert.Equal(t, "", r.GSTIN)
		assert.Equal(t, "406.00", r.TaxableValue)
		assert.Equal(t, "", r.CGSTAmt)
		assert.Equal(t, "", r.SGSTAmt)
		assert.Equal(t, "73.08", r.IGSTAmt)
		assert.Equal(t, "479.08", r.InvoiceTotal)
	}

	// Line items in order of appearance; unit vocabulary is closed, so
	// GIZMO's bare quantity has no unit.
	assert.Equal(t, "STEEL ROD (12MM)", rows[0].Item)
	assert.Equal(t, "4", rows[0].Quantity)
	assert.Equal(t, "KGS", rows[0].Unit)
	assert.Equal(t, "100.00", rows[0].Rate)
	assert.Equal(t, "400.00", rows[0].Amount)

	assert.Equal(t, "GIZMO", rows[1].Item)
	assert.Equal(t, "3", rows[1].Quantity)
	assert.Equal(t, "", rows[1].Unit)
	assert.Equal(t, "2.00", rows[1].Rate)
	assert.Equal(t, "6.00", rows[1].Amount)
}

func TestExtract_NoLabelsYieldsOneEmptyRow(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"garbage text", "lorem ipsum dolor sit amet\nconsectetur adipiscing elit"},
		{"empty text", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := Extract(tt.text)
			require.Len(t, rows, 1)
			for i, v := range rows[0].Values() {
				assert.Emptyf(t, v, "column %q should be empty", Columns[i])
			}
		})
	}
}

func TestExtract_Idempotent(t *testing.T) {
	first := Extract(sampleInvoice)
	second := Extract(sampleInvoice)
	assert.Equal(t, first, second)
}

func TestExtract_ThousandsSeparatorsCleaned(t *testing.T) {
	text := "Taxable Value: 1,234.56\nCGST: 1,111.11\nInvoice Total: 2,345.67"
	rows := Extract(text)
	require.Len(t, rows, 1)
	assert.Equal(t, "1234.56", rows[0].TaxableValue)
	assert.Equal(t, "1111.11", rows[0].CGSTAmt)
	assert.Equal(t, "2345.67", rows[0].InvoiceTotal)
}

func TestClean(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1,234.56", "1234.56"},
		{"", ""},
		{"  42.00 ", "42.00"},
		{"1,00,000.00", "100000.00"}, // Indian digit grouping
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Clean(tt.in))
	}
}

func TestHSNCodes(t *testing.T) {
	text := "HSN 998877 item 998877 4411 serial 123456789 x 123"

	got := hsnCodes(text)
	assert.Equal(t, "998877, 4411", got, "duplicates removed, first-seen order, 4-8 digits only")

	codes := strings.Split(got, ", ")
	seen := map[string]bool{}
	for _, c := range codes {
		assert.False(t, seen[c], "no duplicate codes")
		seen[c] = true
		assert.GreaterOrEqual(t, len(c), 4)
		assert.LessOrEqual(t, len(c), 8)
	}
}

func TestJoinPages(t *testing.T) {
	tests := []struct {
		name  string
		pages []string
		want  string
	}{
		{"two pages", []string{"page one", "page two"}, "page one\npage two\n"},
		{"empty page contributes nothing", []string{"page one", "", "page three"}, "page one\npage three\n"},
		{"no pages", nil, ""},
		{"all empty", []string{"", ""}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinPages(tt.pages))
		})
	}
}

func TestRow_ValuesAndMap(t *testing.T) {
	rows := Extract(sampleInvoice)
	require.Len(t, rows, 1)

	vals := rows[0].Values()
	require.Len(t, vals, len(Columns))

	m := rows[0].Map()
	require.Len(t, m, len(Columns))
	for i, c := range Columns {
		assert.Equal(t, vals[i], m[c])
	}
	assert.Equal(t, "INV/001", m["Invoice No."])
	assert.Equal(t, "WIDGET A", m["Item"])
}
