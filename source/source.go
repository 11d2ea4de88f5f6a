// Package source extracts raw crowdfunding and contact rows from the input
// spreadsheets. Both .xlsx workbooks (first sheet) and .csv files are read.
package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"crowdfunding-etl/models"
	"crowdfunding-etl/utils"
)

// Extractor reads the two source files.
type Extractor struct {
	logger *utils.Logger
}

// New creates an Extractor.
func New(logger *utils.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Campaigns reads the crowdfunding sheet. Its first row is the header; every
// column RawCampaign names must be present.
func (e *Extractor) Campaigns(path string) ([]*models.RawCampaign, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("source: %s: no header row", path)
	}

	dec, err := csvutil.NewDecoder(newRowReader(rows))
	if err != nil {
		return nil, fmt.Errorf("source: %s: %w", path, err)
	}
	dec.DisallowMissingColumns = true

	var out []*models.RawCampaign
	for {
		r := new(models.RawCampaign)
		err := dec.Decode(r)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("source: %s: %w", path, err)
		}
		out = append(out, r)
	}

	e.logger.Info("[source] Read %d campaign rows from %s", len(out), path)
	return out, nil
}

// Contacts reads the contacts sheet. headerRow is the zero-based index of the
// header row; the first cell of every later non-empty row is one raw contact.
func (e *Extractor) Contacts(path string, headerRow int) ([]*models.RawContact, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}
	if headerRow < 0 || headerRow >= len(rows) {
		return nil, fmt.Errorf("source: %s: header row %d out of range (%d rows)", path, headerRow, len(rows))
	}

	var out []*models.RawContact
	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			e.logger.Debug("[source] Skipping empty contact row %d", i+1)
			continue
		}
		out = append(out, &models.RawContact{Row: i + 1, Text: row[0]})
	}

	e.logger.Info("[source] Read %d contact rows from %s", len(out), path)
	return out, nil
}

func readRows(path string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return readWorkbook(path)
	case ".csv":
		return readCSV(path)
	default:
		return nil, fmt.Errorf("source: %s: unsupported file type", path)
	}
}

func readWorkbook(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("source: open workbook %q: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("source: %s: workbook has no sheets", path)
	}
	// Raw values skip the cell number format, so "#,##0.00" amounts read as 1000.
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("source: read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("source: open %q: %w", path, err)
	}
	defer f.Close()

	// Strips a leading UTF-8 BOM if present.
	r := csv.NewReader(transform.NewReader(f, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("source: parse %q: %w", path, err)
	}
	return rows, nil
}

// rowReader feeds in-memory rows to csvutil. Workbook rows drop trailing
// empty cells, so each data row is padded to the header width and fully
// empty rows are skipped.
type rowReader struct {
	rows  [][]string
	next  int
	width int
}

func newRowReader(rows [][]string) *rowReader {
	return &rowReader{rows: rows}
}

func (r *rowReader) Read() ([]string, error) {
	for r.next < len(r.rows) {
		row := r.rows[r.next]
		r.next++

		if r.next == 1 {
			r.width = len(row)
			return row, nil
		}
		if isBlank(row) {
			continue
		}
		if len(row) > r.width {
			return nil, fmt.Errorf("row %d is wider than the header", r.next)
		}
		if len(row) < r.width {
			padded := make([]string, r.width)
			copy(padded, row)
			row = padded
		}
		return row, nil
	}
	return nil, io.EOF
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
