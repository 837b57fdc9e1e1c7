package pipeline

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Table holds one tabular input: a header row plus data rows. Field lookups
// are case-insensitive; the lowercased-header index is computed once and
// reused for every row, since all rows share one schema.
type Table struct {
	Headers []string
	Rows    [][]string

	index map[string]int
}

func NewTable(headers []string, rows [][]string) *Table {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, exists := index[key]; !exists {
			index[key] = i
		}
	}
	return &Table{Headers: headers, Rows: rows, index: index}
}

// Field returns the row's value for the header matching name
// case-insensitively, or "" when the header is absent or the row is short.
func (t *Table) Field(row []string, name string) string {
	idx, ok := t.index[strings.ToLower(name)]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// ReadTable reads a tabular input file. CSV is the primary format; a .xlsx
// workbook is accepted as an alternate source (first sheet only).
func ReadTable(path string) (*Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return readXLSX(path)
	}
	return readCSV(path)
}

func readCSV(path string) (*Table, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	blob = bytes.TrimPrefix(blob, []byte("\xef\xbb\xbf"))

	r := csv.NewReader(bytes.NewReader(blob))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("csv file has no header row")
	}
	return NewTable(records[0], records[1:]), nil
}

func readXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, errors.New("workbook has no header row")
	}
	return NewTable(rows[0], rows[1:]), nil
}
