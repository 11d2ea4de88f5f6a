// Package sqlgen derives column declarations from exported CSV files and
// renders PostgreSQL schema and import scripts from them. It only builds
// text; nothing here talks to a database.
package sqlgen

import (
	"encoding/csv"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strconv"
	"unicode/utf8"

	"crowdfunding-etl/models"
	"crowdfunding-etl/utils"
)

// missingText is how an empty cell of a text column is measured.
const missingText = "nan"

// Generator reads exported tables from dir.
type Generator struct {
	dir    string
	logger *utils.Logger
}

// NewGenerator creates a Generator over the CSV exports in dir.
func NewGenerator(dir string, logger *utils.Logger) *Generator {
	return &Generator{dir: dir, logger: logger}
}

type table struct {
	header  []string
	records [][]string
}

func (g *Generator) load(name string) (*table, error) {
	path := filepath.Join(g.dir, name+".csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sqlgen: open %q: %w", path, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("sqlgen: parse %q: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sqlgen: %q has no header row", path)
	}
	return &table{header: rows[0], records: rows[1:]}, nil
}

// Columns loads the table and yields the schema of columns [start:stop).
// A negative stop means through the last column. Each column is inferred when
// the sequence reaches it, from the file contents read by this call.
func (g *Generator) Columns(name string, start, stop int) (iter.Seq[models.ColumnSchema], error) {
	t, err := g.load(name)
	if err != nil {
		return nil, err
	}

	n := len(t.header)
	if stop < 0 || stop > n {
		stop = n
	}
	start = max(0, min(start, stop))
	g.logger.Debug("[sqlgen] %s: describing columns %d..%d of %d", name, start, stop, n)

	return func(yield func(models.ColumnSchema) bool) {
		for i := start; i < stop; i++ {
			if !yield(t.inferColumn(i)) {
				return
			}
		}
	}, nil
}

// DescribeColumns yields declarations such as "email VARCHAR(42)" for
// columns [start:stop) of the named table.
func (g *Generator) DescribeColumns(name string, start, stop int) (iter.Seq[string], error) {
	cols, err := g.Columns(name, start, stop)
	if err != nil {
		return nil, err
	}
	return func(yield func(string) bool) {
		for c := range cols {
			if !yield(c.String()) {
				return
			}
		}
	}, nil
}

// Describe returns the schema of every column of the named table.
func (g *Generator) Describe(name string) ([]models.ColumnSchema, error) {
	cols, err := g.Columns(name, 0, -1)
	if err != nil {
		return nil, err
	}
	var out []models.ColumnSchema
	for c := range cols {
		out = append(out, c)
	}
	return out, nil
}

func (t *table) inferColumn(i int) models.ColumnSchema {
	col := models.ColumnSchema{Name: t.header[i]}

	allInt, allFloat, hasMissing := true, true, false
	present := 0
	for _, rec := range t.records {
		v := cell(rec, i)
		if v == "" {
			hasMissing = true
			continue
		}
		present++
		if allInt {
			if _, err := strconv.ParseInt(v, 10, 64); err != nil {
				allInt = false
			}
		}
		if allFloat {
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				allFloat = false
			}
		}
	}

	switch {
	case len(t.records) == 0:
		col.Kind = models.KindText
	case allFloat && allInt && present > 0 && !hasMissing:
		col.Kind = models.KindInt
	case allFloat:
		col.Kind = models.KindFloat
	default:
		col.Kind = models.KindText
	}

	for j, rec := range t.records {
		v := cell(rec, i)
		if v == "" && col.Kind == models.KindText {
			v = missingText
		}
		n := utf8.RuneCountInString(v)
		if j == 0 || n < col.MinLen {
			col.MinLen = n
		}
		if n > col.MaxLen {
			col.MaxLen = n
		}
	}

	switch col.Kind {
	case models.KindInt:
		col.Type = "INT"
	case models.KindFloat:
		col.Type = "DEC"
	default:
		col.Type = "CHAR"
		if col.MinLen != col.MaxLen {
			col.Type = "VARCHAR"
		}
	}
	return col
}

func cell(rec []string, i int) string {
	if i < len(rec) {
		return rec[i]
	}
	return ""
}
