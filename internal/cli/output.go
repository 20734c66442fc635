package cli

import (
	"fmt"
	"io"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/goccy/go-yaml"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/samber/lo"
)

// Output formats.
//
const (
	FormatTable = "table"
	FormatJSONL = "jsonl"
	FormatYAML  = "yaml"
)

// record is the scan result for one input line.
//
type record struct {
	Source string
	Line   int
	Values []any
}

// A writer writes records in some output format. Records may be buffered
// until Flush.
//
type writer interface {
	Write(r *record) error
	Flush() error
}

func newWriter(format string, w io.Writer, names []string) (writer, error) {
	switch format {
	case "", FormatTable:
		return newTableWriter(w, names), nil
	case FormatJSONL:
		return &jsonlWriter{enc: jsontext.NewEncoder(w), names: names}, nil
	case FormatYAML:
		return &yamlWriter{w: w, names: names}, nil
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

type tableWriter struct {
	table *tablewriter.Table
	n     int
}

func newTableWriter(w io.Writer, names []string) *tableWriter {
	table := tablewriter.NewTable(w,
		tablewriter.WithRenderer(
			renderer.NewBlueprint(tw.Rendition{Symbols: tw.NewSymbols(tw.StyleASCII)})),
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithTrimSpace(tw.Off),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	).Configure(func(config *tablewriter.Config) {
		config.Row.Formatting.AutoWrap = tw.WrapNone
	})
	table.Header(append([]string{"SOURCE", "LINE"}, names...))
	return &tableWriter{table: table}
}

func (t *tableWriter) Write(r *record) error {
	row := append([]string{r.Source, fmt.Sprint(r.Line)}, lo.Map(r.Values, func(v any, _ int) string {
		return fmt.Sprint(v)
	})...)
	if err := t.table.Append(row); err != nil {
		return fmt.Errorf("failed to append row: %w", err)
	}
	t.n++
	return nil
}

func (t *tableWriter) Flush() error {
	if t.n == 0 {
		return nil
	}
	if err := t.table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}

// jsonlWriter writes one JSON object per line. Keys are in argument order.
//
type jsonlWriter struct {
	enc   *jsontext.Encoder
	names []string
}

func (j *jsonlWriter) Write(r *record) error {
	if err := j.enc.WriteToken(jsontext.BeginObject); err != nil {
		return err
	}
	if err := j.member("source", r.Source); err != nil {
		return err
	}
	if err := j.member("line", r.Line); err != nil {
		return err
	}
	for i, v := range r.Values {
		if err := j.member(j.names[i], v); err != nil {
			return err
		}
	}
	return j.enc.WriteToken(jsontext.EndObject)
}

func (j *jsonlWriter) member(name string, v any) error {
	if err := j.enc.WriteToken(jsontext.String(name)); err != nil {
		return err
	}
	return json.MarshalEncode(j.enc, v)
}

func (j *jsonlWriter) Flush() error { return nil }

// yamlWriter writes all records as a single YAML sequence.
//
type yamlWriter struct {
	w     io.Writer
	names []string
	docs  []yaml.MapSlice
}

func (y *yamlWriter) Write(r *record) error {
	doc := yaml.MapSlice{
		{Key: "source", Value: r.Source},
		{Key: "line", Value: r.Line},
	}
	for i, v := range r.Values {
		doc = append(doc, yaml.MapItem{Key: y.names[i], Value: v})
	}
	y.docs = append(y.docs, doc)
	return nil
}

func (y *yamlWriter) Flush() error {
	if len(y.docs) == 0 {
		return nil
	}
	enc := yaml.NewEncoder(y.w, yaml.UseJSONMarshaler())
	if err := enc.Encode(y.docs); err != nil {
		return err
	}
	return enc.Close()
}
