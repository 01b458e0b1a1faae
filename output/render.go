// Package output renders conversion results.
package output

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	yaml "gopkg.in/yaml.v3"

	"fracbin/common"
	"fracbin/fraction"
)

// Row is a single conversion result.
type Row struct {
	Value  float64
	Binary string
}

// Options controls layout of rendered results.
type Options struct {
	Format       common.ReportFmt
	DecimalTitle string
	BinaryTitle  string
	// Places is number of digits after decimal point used for source values.
	Places int
	// RowTemplate is used by template layout only.
	RowTemplate string
}

// DefaultOptions returns options producing markdown table.
func DefaultOptions() Options {
	return Options{
		Format:       common.ReportFmtTable,
		DecimalTitle: "Base 10",
		BinaryTitle:  "Base 2",
		Places:       fraction.DigitLimit,
		RowTemplate:  "{{ .Decimal }} {{ .Binary }}",
	}
}

// Render writes rows to w in requested layout preserving their order.
func Render(w io.Writer, rows []Row, opts Options) error {
	bw := bufio.NewWriter(w)

	var err error
	switch opts.Format {
	case common.ReportFmtTable:
		err = renderTable(bw, rows, opts)
	case common.ReportFmtYaml:
		err = renderYAML(bw, rows, opts)
	case common.ReportFmtTemplate:
		err = renderTemplate(bw, rows, opts)
	default:
		err = fmt.Errorf("unsupported output layout %s", opts.Format)
	}
	if err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}
	return nil
}

func formatDecimal(v float64, places int) string {
	return strconv.FormatFloat(v, 'f', places, 64)
}

type yamlRow struct {
	Decimal         string `yaml:"decimal"`
	Binary          string `yaml:"binary"`
	TruncationError string `yaml:"truncation_error"`
}

func renderYAML(w io.Writer, rows []Row, opts Options) error {
	out := make([]yamlRow, 0, len(rows))
	for _, r := range rows {
		diff, err := fraction.TruncationError(r.Value, r.Binary)
		if err != nil {
			return err
		}
		out = append(out, yamlRow{
			Decimal:         formatDecimal(r.Value, opts.Places),
			Binary:          r.Binary,
			TruncationError: diff.String(),
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("unable to encode results: %w", err)
	}
	return enc.Close()
}

// Values is what row template has access to, one instance per rendered row.
type Values struct {
	Index   int
	Value   float64
	Decimal string
	Binary  string
	Error   string
}

func renderTemplate(w io.Writer, rows []Row, opts Options) error {
	tmpl, err := template.New("row_template").Funcs(sprig.FuncMap()).Parse(opts.RowTemplate)
	if err != nil {
		return fmt.Errorf("unable to parse row template: %w", err)
	}

	buf := new(bytes.Buffer)
	for i, r := range rows {
		diff, err := fraction.TruncationError(r.Value, r.Binary)
		if err != nil {
			return err
		}
		values := Values{
			Index:   i + 1,
			Value:   r.Value,
			Decimal: formatDecimal(r.Value, opts.Places),
			Binary:  r.Binary,
			Error:   diff.String(),
		}
		buf.Reset()
		if err := tmpl.Execute(buf, values); err != nil {
			return fmt.Errorf("unable to expand row template for %s: %w", values.Decimal, err)
		}
		buf.WriteByte('\n')
		if _, err := w.Write(buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}
