package sqlgen

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/lib/pq"
)

// ErrUnknownTable is returned when an exported file is not in the priority list.
var ErrUnknownTable = errors.New("table not in priority list")

// Constraint returns the column constraint emitted in CREATE TABLE. The rule
// matches on substrings of the column name: end_date and description columns
// are nullable, anything else containing "id" gets no constraint and the rest
// are NOT NULL. "width" or "paid" therefore count as id columns.
func Constraint(column string) string {
	if strings.Contains(column, "end_date") || strings.Contains(column, "description") {
		return ""
	}
	if !strings.Contains(column, "id") {
		return "NOT NULL"
	}
	return ""
}

// SchemaScript renders DROP, CREATE TABLE and SELECT statements for tables in
// the given order. The first column of each table is written bare and is
// meant as its primary key.
func (g *Generator) SchemaScript(tables []string) (string, error) {
	var b strings.Builder

	b.WriteString("-- Schema Creation and Validation\n")
	for _, t := range tables {
		fmt.Fprintf(&b, "DROP TABLE IF EXISTS %s CASCADE;\n", t)
	}
	b.WriteString("\n")

	for _, t := range tables {
		first, err := g.Columns(t, 0, 1)
		if err != nil {
			return "", err
		}
		rest, err := g.Columns(t, 1, -1)
		if err != nil {
			return "", err
		}

		fmt.Fprintf(&b, "CREATE TABLE %s (\n", t)
		n := 0
		for c := range first {
			fmt.Fprintf(&b, "    %s\n", c)
			n++
		}
		if n == 0 {
			return "", fmt.Errorf("sqlgen: %s has no columns", t)
		}
		for c := range rest {
			if constr := Constraint(c.Name); constr != "" {
				fmt.Fprintf(&b, "    ,%s %s\n", c, constr)
			} else {
				fmt.Fprintf(&b, "    ,%s\n", c)
			}
		}
		fmt.Fprintf(&b, ");\n\nSELECT * FROM %s;\n\n", t)
	}

	b.WriteString("\n-- CSV Import Validation\n")
	for _, t := range tables {
		fmt.Fprintf(&b, "SELECT * FROM %s;\n", t)
	}
	b.WriteString("\n")

	g.logger.Info("[sqlgen] Built schema script for %d tables", len(tables))
	return b.String(), nil
}

// ERDListing renders one "<table>\n-\n<declarations>" block per table, the
// input format of text-based ERD tools.
func (g *Generator) ERDListing(tables []string) (string, error) {
	var b strings.Builder
	for _, t := range tables {
		decls, err := g.DescribeColumns(t, 0, -1)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "%s\n-\n", t)
		for d := range decls {
			b.WriteString(d + "\n")
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

// ImportScript renders one numbered COPY statement per CSV file in the
// generator's directory, ordered by the file stem's position in priority.
// Paths are absolute.
func (g *Generator) ImportScript(priority []string) (string, error) {
	dir, err := filepath.Abs(g.dir)
	if err != nil {
		return "", fmt.Errorf("sqlgen: resolve %q: %w", g.dir, err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("sqlgen: read %q: %w", dir, err)
	}

	type export struct {
		table string
		path  string
		rank  int
	}
	var files []export
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		stem := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		rank := slices.Index(priority, stem)
		if rank < 0 {
			return "", fmt.Errorf("sqlgen: %s: %w", e.Name(), ErrUnknownTable)
		}
		files = append(files, export{table: stem, path: filepath.Join(dir, e.Name()), rank: rank})
	}
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].rank < files[j].rank
	})

	var b strings.Builder
	b.WriteString("-- Local CSV POSIX Path from Drive\n")
	b.WriteString("-- Written by crowdfunding-etl\n\n")
	for i, f := range files {
		fmt.Fprintf(&b, "-- (%d)\n", i+1)
		b.WriteString("COPY\n")
		fmt.Fprintf(&b, "    %s\n", f.table)
		b.WriteString("FROM\n")
		fmt.Fprintf(&b, "    %s\n", pq.QuoteLiteral(f.path))
		b.WriteString("DELIMITER ',' CSV HEADER;\n\n")
	}

	g.logger.Info("[sqlgen] Built import script for %d files", len(files))
	return b.String(), nil
}
