// Package csvrows turns a delimited text stream into header-keyed rows.
package csvrows

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/cockroachdb/errors"
)

// ErrEmpty is returned when the stream has no header line.
var ErrEmpty = errors.New("csv stream is empty")

// Table is a tokenized stream. Rows are in source order and exclude the header.
type Table struct {
	Header []string
	Rows   []map[string]string
}

// Option tweaks how Read keys rows.
type Option func(*options)

type options struct {
	normalize func(string) string
}

// WithHeaderNormalizer rewrites every header cell before it is used as a key.
func WithHeaderNormalizer(fn func(string) string) Option {
	return func(o *options) {
		o.normalize = fn
	}
}

// Read tokenizes r. Each data line becomes a map keyed by header cell.
// Lines shorter than the header simply omit the trailing keys; cells beyond
// the header are keyed column_N (1-based) so callers can report them.
// Blank lines are skipped.
func Read(r io.Reader, opts ...Option) (Table, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = false

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return Table{}, ErrEmpty
	}
	if err != nil {
		return Table{}, errors.Wrap(err, "read csv header")
	}

	if o.normalize != nil {
		for i := range header {
			header[i] = o.normalize(header[i])
		}
	}

	table := Table{Header: header}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Table{}, errors.Wrapf(err, "read csv row %d", len(table.Rows)+1)
		}
		table.Rows = append(table.Rows, keyed(header, record))
	}
	return table, nil
}

func keyed(header, record []string) map[string]string {
	row := make(map[string]string, len(record))
	for i, cell := range record {
		if i < len(header) {
			row[header[i]] = cell
			continue
		}
		row["column_"+strconv.Itoa(i+1)] = cell
	}
	return row
}
