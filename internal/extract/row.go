package extract

// Columns is the canonical header order of the output dataset. Every output
// row carries exactly these fields, empty string for anything unmatched.
var Columns = []string{
	"Invoice No.",
	"Date",
	"Party Name",
	"GSTIN",
	"HSN Code",
	"Item",
	"Quantity",
	"Unit",
	"Rate",
	"Amount",
	"Taxable Value",
	"CGST Amt",
	"SGST Amt",
	"IGST Amt",
	"Invoice Total",
}

// Row is one output record: the document's header fields broadcast onto a
// single line item (or onto empty item fields when none matched).
type Row struct {
	InvoiceNo    string
	Date         string
	PartyName    string
	GSTIN        string
	HSNCode      string
	Item         string
	Quantity     string
	Unit         string
	Rate         string
	Amount       string
	TaxableValue string
	CGSTAmt      string
	SGSTAmt      string
	IGSTAmt      string
	InvoiceTotal string
}

// Values projects the row in Columns order.
func (r Row) Values() []string {
	return []string{
		r.InvoiceNo,
		r.Date,
		r.PartyName,
		r.GSTIN,
		r.HSNCode,
		r.Item,
		r.Quantity,
		r.Unit,
		r.Rate,
		r.Amount,
		r.TaxableValue,
		r.CGSTAmt,
		r.SGSTAmt,
		r.IGSTAmt,
		r.InvoiceTotal,
	}
}

// Map renders the row as a column-name-keyed record, the shape consumed by
// the JSON preview surface.
func (r Row) Map() map[string]string {
	m := make(map[string]string, len(Columns))
	for i, v := range r.Values() {
		m[Columns[i]] = v
	}
	return m
}
