package stimuli

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

// Group labels a stimulus source category. The two labels are part of the
// manifest wire contract and double as image subdirectory names.
type Group string

const (
	GroupWestern Group = "western"
	GroupChinese Group = "chinese"
)

// Row is one data row keyed by column name. Absent columns read as "".
type Row map[string]string

// Table is one loaded metadata table: its header and data rows, in file order.
type Table struct {
	Columns []string
	Rows    []Row
}

// HasColumn reports whether the header contains name.
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// LoadTable reads one delimited metadata table. The first row is the header,
// every following row is data. Files ending in .xlsx or .xls are read as
// workbooks (first sheet that is not a notes sheet), .tsv as tab-separated
// text, and anything else as comma-separated text. Rows shorter than the
// header read as empty cells; cells beyond the header are ignored.
func LoadTable(path string) (Table, error) {
	if path == "" {
		return Table{}, fmt.Errorf("LoadTable: %w: path is empty", ErrInput)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("LoadTable %s: %w: %w", path, ErrInput, err)
	}

	var raw [][]string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		raw, err = readWorkbookRows(b)
	case ".tsv":
		raw, err = readDelimitedRows(b, '\t')
	default:
		raw, err = readDelimitedRows(b, ',')
	}
	if err != nil {
		return Table{}, fmt.Errorf("LoadTable %s: %w: %w", path, ErrInput, err)
	}
	if len(raw) == 0 {
		return Table{}, fmt.Errorf("LoadTable %s: %w: no header row", path, ErrInput)
	}

	cols := raw[0]
	rows := make([]Row, 0, len(raw)-1)
	for _, rec := range raw[1:] {
		row := make(Row, len(cols))
		for i, c := range cols {
			if _, ok := row[c]; ok {
				// Duplicate header: first occurrence wins.
				continue
			}
			if i < len(rec) {
				row[c] = rec[i]
			} else {
				row[c] = ""
			}
		}
		rows = append(rows, row)
	}
	return Table{Columns: cols, Rows: rows}, nil
}

func readDelimitedRows(data []byte, comma rune) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = comma
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	r.ReuseRecord = false

	recs, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse delimited text: %w", err)
	}
	return recs, nil
}

// Sheets with these names hold notes rather than data and are skipped.
var notesSheets = map[string]bool{
	"info":     true,
	"metadata": true,
	"about":    true,
	"readme":   true,
	"notes":    true,
}

func readWorkbookRows(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	sheet := ""
	for _, s := range sheets {
		if !notesSheets[strings.ToLower(s)] {
			sheet = s
			break
		}
	}
	if sheet == "" {
		// Every sheet looked like notes; the last one is the best guess.
		sheet = sheets[len(sheets)-1]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	return rows, nil
}
