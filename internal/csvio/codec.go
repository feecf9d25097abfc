// Package csvio is the tabular codec for the reconciliation pipeline: it
// parses header+rows CSV buffers into row mappings and serializes field
// mappings back out under an explicit column order.
package csvio

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNotTabular marks a buffer that could not be read as header+rows text.
var ErrNotTabular = errors.New("buffer is not valid tabular text")

// Table is a parsed CSV buffer: the header row plus one map per data row,
// keyed by header name.
type Table struct {
	Headers []string
	Rows    []map[string]string
}

// Parse reads a CSV buffer into a Table. The first row is the header; rows
// with too few columns are padded with empty values and rows with too many
// are truncated, so ragged real-world exports still produce best-effort
// output. A buffer with a header but no data rows parses to an empty Table.
func Parse(data []byte) (*Table, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	// Real-world exports have ragged rows and sloppy quoting; tolerate both
	// and fix up column counts ourselves.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: no header row", ErrNotTabular)
		}
		return nil, fmt.Errorf("%w: %v", ErrNotTabular, err)
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	table := &Table{Headers: headers}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotTabular, err)
		}

		if len(row) < len(headers) {
			padded := make([]string, len(headers))
			copy(padded, row)
			row = padded
		}

		record := make(map[string]string, len(headers))
		for i, h := range headers {
			record[h] = row[i]
		}
		table.Rows = append(table.Rows, record)
	}

	return table, nil
}

// Serialize renders rows as CSV under the given column order. Missing keys
// serialize as empty cells. Zero rows serialize to an empty buffer with no
// header line, mirroring the parse side where an empty table carries no
// usable column set.
func Serialize(columns []string, rows []map[string]string) ([]byte, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(columns); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	record := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			record[i] = row[col]
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush: %w", err)
	}
	return buf.Bytes(), nil
}
