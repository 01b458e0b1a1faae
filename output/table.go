package output

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/width"
)

const (
	headerWidth  = 10
	decimalWidth = 7
	binaryWidth  = 10
)

// renderTable produces markdown table with left aligned columns:
//
//	|  Base 10   |   Base 2   |
//	|:-----------|:-----------|
//	| 0.50000000 | 0.1        |
func renderTable(w io.Writer, rows []Row, opts Options) error {
	if _, err := fmt.Fprintf(w, "| %s | %s |\n", center(opts.DecimalTitle, headerWidth), center(opts.BinaryTitle, headerWidth)); err != nil {
		return err
	}
	// separator spans cell padding too
	sep := ":" + strings.Repeat("-", headerWidth+1)
	if _, err := fmt.Fprintf(w, "|%s|%s|\n", sep, sep); err != nil {
		return err
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "| %s | %s |\n", left(formatDecimal(r.Value, opts.Places), decimalWidth), left(r.Binary, binaryWidth)); err != nil {
			return err
		}
	}
	return nil
}

// displayWidth returns number of terminal cells s occupies.
func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

// center pads s to n cells, odd padding cell goes to the right.
func center(s string, n int) string {
	pad := n - displayWidth(s)
	if pad <= 0 {
		return s
	}
	l := pad / 2
	return strings.Repeat(" ", l) + s + strings.Repeat(" ", pad-l)
}

func left(s string, n int) string {
	pad := n - displayWidth(s)
	if pad <= 0 {
		return s
	}
	return s + strings.Repeat(" ", pad)
}
