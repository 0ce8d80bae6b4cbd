package ingest

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

const utf8BOM = "\ufeff"

var (
	errNoSheets = errors.New("workbook has no sheets")
	errXLSPanic = errors.New("malformed workbook")
)

// ParseError reports a file that could not be read as a table at all.
// It is distinct from a ValidationError, which describes rows that were
// read but rejected.
type ParseError struct {
	Err    error
	Format Format
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s parsing error: %v", strings.ToUpper(string(e.Format)), e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Table is a parsed upload. Headers come from the first row; each record maps
// header to cell value.
type Table struct {
	Headers []string
	Records []map[string]string
}

// Len returns the number of data records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// HasHeader reports whether a column is present.
func (t *Table) HasHeader(name string) bool {
	if t == nil {
		return false
	}
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// Parser turns CSV and Excel uploads into tables.
type Parser struct{}

// NewParser creates a new upload parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads the whole of r in the given format. Excel files are read from
// their first sheet.
func (p *Parser) Parse(ctx context.Context, r io.Reader, format Format) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		rows [][]string
		err  error
	)
	switch format {
	case FormatCSV:
		rows, err = p.readCSV(r)
	case FormatXLSX:
		rows, err = p.readXLSX(r)
	case FormatXLS:
		rows, err = p.readXLS(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, &ParseError{Format: format, Err: err}
	}

	return buildTable(rows), nil
}

func (p *Parser) readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

func (p *Parser) readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Warn("Failed to close workbook", "error", cerr)
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errNoSheets
	}
	return f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
}

func (p *Parser) readXLS(r io.Reader) (rows [][]string, err error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, readErr := io.ReadAll(r)
		if readErr != nil {
			return nil, readErr
		}
		rs = bytes.NewReader(data)
	}

	// extrame/xls panics on some truncated workbooks.
	defer func() {
		if rec := recover(); rec != nil {
			rows = nil
			err = fmt.Errorf("%w: %v", errXLSPanic, rec)
		}
	}()

	wb, err := xls.OpenReader(rs, "utf-8")
	if err != nil {
		return nil, err
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, errNoSheets
	}

	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := xlsRow(sheet, i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, 0, row.LastCol())
		for c := 0; c < row.LastCol(); c++ {
			cells = append(cells, row.Col(c))
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// xlsRow returns nil for rows the sheet never wrote; WorkSheet.Row
// dereferences the missing row and panics.
func xlsRow(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(i)
}

// buildTable takes the first non-blank row as the header and maps each
// later non-blank row onto it. Short rows leave the missing cells empty.
// When a header repeats, the first column with that name wins.
func buildTable(rows [][]string) *Table {
	t := &Table{}
	headerIdx := -1
	for i, row := range rows {
		if !isBlank(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return t
	}

	for i, h := range rows[headerIdx] {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimSpace(strings.TrimPrefix(h, utf8BOM))
		}
		t.Headers = append(t.Headers, h)
	}

	for _, row := range rows[headerIdx+1:] {
		if isBlank(row) {
			continue
		}
		record := make(map[string]string, len(t.Headers))
		for i, h := range t.Headers {
			if h == "" {
				continue
			}
			if _, seen := record[h]; seen {
				continue
			}
			if i < len(row) {
				record[h] = row[i]
			} else {
				record[h] = ""
			}
		}
		t.Records = append(t.Records, record)
	}
	return t
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
