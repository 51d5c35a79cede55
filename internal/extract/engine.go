// Package extract locates invoice fields inside unstructured document text
// using a battery of tolerant patterns and fans the result out into one
// tabular row per matched line item.
//
// The patterns deliberately trade precision for recall: invoice layouts are
// inconsistent, so separators are optional, labels are matched
// case-insensitively and absence of a match is the normal empty-result path,
// never an error.
package extract

import (
	"regexp"
	"strings"
)

// amountVal captures a decimal amount with exactly two fractional digits and
// optional comma thousands separators, e.g. "1,234.56".
const amountVal = `([\d,]+\.\d{2})`

// amountSep separates an amount label from its value: any mix of whitespace,
// a colon and a rupee sign.
const amountSep = `[\s:₹]*`

var (
	reInvoiceNo = regexp.MustCompile(`(?i)Invoice\s*No\.?\s*[:\-]?\s*([A-Z0-9/\-]+)`)
	reDate      = regexp.MustCompile(`(?i)\bDate\b\s*[:\-]?\s*(\d{1,2}[-/]\d{1,2}[-/]\d{2,4})`)
	rePartyName = regexp.MustCompile(`(?i)Name\s*[:\-]?\s*([A-Z .\-&]+)`)
	// GSTIN values are uppercase by definition, so no (?i) here.
	reGSTIN   = regexp.MustCompile(`GSTIN\s*[:\-]?\s*([0-9A-Z]{15})`)
	reHSN     = regexp.MustCompile(`\b\d{4,8}\b`)
	reTaxable = regexp.MustCompile(`(?i)(?:Taxable\s*Value|Total\s*Amount\s*Before\s*Tax)` + amountSep + amountVal)
	reCGST    = regexp.MustCompile(`(?i)CGST` + amountSep + amountVal)
	reSGST    = regexp.MustCompile(`(?i)SGST` + amountSep + amountVal)
	reIGST    = regexp.MustCompile(`(?i)IGST` + amountSep + amountVal)
	reTotal   = regexp.MustCompile(`(?i)(?:Invoice\s*Total|Total\s*Amount\s*After\s*Tax)` + amountSep + amountVal)

	// One line item: a description run (spaces allowed, newlines not),
	// a quantity, an optional unit token, then rate and amount. The
	// whitespace separators between the numeric tokens may cross lines.
	reItem = regexp.MustCompile(`(?i)([A-Z0-9 \-()/]+)\s+(\d+(?:\.\d+)?)\s*(KGS|NOS)?\s+(\d+(?:\.\d+)?)\s+(\d+(?:\.\d+)?)`)
)

// headerMatcher binds one scalar header field to its pattern and an optional
// post-processing step applied to the captured value.
type headerMatcher struct {
	column string
	re     *regexp.Regexp
	post   func(string) string
}

var headerMatchers = []headerMatcher{
	{"Invoice No.", reInvoiceNo, nil},
	{"Date", reDate, nil},
	{"Party Name", rePartyName, strings.TrimSpace},
	{"GSTIN", reGSTIN, nil},
	{"Taxable Value", reTaxable, Clean},
	{"CGST Amt", reCGST, Clean},
	{"SGST Amt", reSGST, Clean},
	{"IGST Amt", reIGST, Clean},
	{"Invoice Total", reTotal, Clean},
}

// Clean strips comma thousands separators and surrounding whitespace from an
// extracted amount. Empty input stays empty.
func Clean(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
}

// JoinPages concatenates page texts in page order, with a line break after
// each page that yielded text. Pages with no extractable text contribute
// nothing.
func JoinPages(pages []string) string {
	var b strings.Builder
	for _, p := range pages {
		if p == "" {
			continue
		}
		b.WriteString(p)
		b.WriteByte('\n')
	}
	return b.String()
}

// Extract runs the full pattern battery over one document's concatenated
// text and returns its output rows: one per matched line item, or a single
// row with empty item fields when no items matched. It is a pure function of
// the input text and never fails; sparse or garbage text yields one all-empty
// row.
func Extract(text string) []Row {
	header := matchHeaders(text)

	items := reItem.FindAllStringSubmatch(text, -1)
	if len(items) == 0 {
		return []Row{newRow(header, nil)}
	}
	rows := make([]Row, 0, len(items))
	for _, item := range items {
		rows = append(rows, newRow(header, item))
	}
	return rows
}

// matchHeaders resolves every header field independently; a field that does
// not match resolves to the empty string.
func matchHeaders(text string) map[string]string {
	fields := make(map[string]string, len(headerMatchers)+1)
	for _, m := range headerMatchers {
		var v string
		if sub := m.re.FindStringSubmatch(text); sub != nil {
			v = sub[1]
		}
		if m.post != nil {
			v = m.post(v)
		}
		fields[m.column] = v
	}
	fields["HSN Code"] = hsnCodes(text)
	return fields
}

// hsnCodes collects every distinct bare 4-to-8-digit token anywhere in the
// text, first-seen order, joined with ", ".
func hsnCodes(text string) string {
	matches := reHSN.FindAllString(text, -1)
	if len(matches) == 0 {
		return ""
	}
	seen := make(map[string]struct{}, len(matches))
	codes := make([]string, 0, len(matches))
	for _, c := range matches {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		codes = append(codes, c)
	}
	return strings.Join(codes, ", ")
}

func newRow(header map[string]string, item []string) Row {
	r := Row{
		InvoiceNo:    header["Invoice No."],
		Date:         header["Date"],
		PartyName:    header["Party Name"],
		GSTIN:        header["GSTIN"],
		HSNCode:      header["HSN Code"],
		TaxableValue: header["Taxable Value"],
		CGSTAmt:      header["CGST Amt"],
		SGSTAmt:      header["SGST Amt"],
		IGSTAmt:      header["IGST Amt"],
		InvoiceTotal: header["Invoice Total"],
	}
	if item != nil {
		r.Item = strings.TrimSpace(item[1])
		r.Quantity = item[2]
		r.Unit = item[3]
		r.Rate = item[4]
		r.Amount = item[5]
	}
	return r
}
