package report

import (
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numPrinter = message.NewPrinter(language.English)

// Row is one labelled line of numbers
type Row struct {
	Label  string
	Values []float64
}

// WriteTable prints a titled, tab-aligned table with thousands separators
func WriteTable(w io.Writer, title string, headers []string, rows []Row) error {
	if title != "" {
		if _, err := numPrinter.Fprintf(w, "==== %s ====\n", strings.ToUpper(title)); err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	numPrinter.Fprintf(tw, "%s\t\n", strings.Join(headers, "\t"))
	for _, r := range rows {
		numPrinter.Fprintf(tw, "%s", r.Label)
		for _, v := range r.Values {
			numPrinter.Fprintf(tw, "\t%.2f", v)
		}
		numPrinter.Fprintf(tw, "\t\n")
	}
	return tw.Flush()
}

// Number formats v with thousands separators and two decimals
func Number(v float64) string {
	return numPrinter.Sprintf("%.2f", v)
}
