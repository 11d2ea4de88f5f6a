package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jszwec/csvutil"

	"crowdfunding-etl/models"
	"crowdfunding-etl/utils"
)

// Table names double as the exported file stems.
const (
	CategoryTable    = "category"
	SubcategoryTable = "subcategory"
	CampaignTable    = "campaign"
	ContactsTable    = "contacts"
)

// CSVWriter exports tables as comma-delimited files with a header row and no
// index column. Every write truncates the previous file.
type CSVWriter struct {
	dir    string
	logger *utils.Logger
}

// NewCSVWriter creates the output directory if needed.
func NewCSVWriter(dir string, logger *utils.Logger) (*CSVWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}
	return &CSVWriter{dir: dir, logger: logger}, nil
}

// Dir returns the output directory.
func (c *CSVWriter) Dir() string { return c.dir }

func (c *CSVWriter) WriteCategories(rows []models.Category) (string, error) {
	return writeTable(c, CategoryTable, rows)
}

func (c *CSVWriter) WriteSubcategories(rows []models.Subcategory) (string, error) {
	return writeTable(c, SubcategoryTable, rows)
}

func (c *CSVWriter) WriteCampaigns(rows []models.Campaign) (string, error) {
	return writeTable(c, CampaignTable, rows)
}

func (c *CSVWriter) WriteContacts(rows []models.Contact) (string, error) {
	return writeTable(c, ContactsTable, rows)
}

func writeTable[T any](c *CSVWriter, table string, rows []T) (string, error) {
	path := filepath.Join(c.dir, table+".csv")

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("csv: create file %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	enc := csvutil.NewEncoder(w)

	if len(rows) == 0 {
		var zero T
		err = enc.EncodeHeader(zero)
	} else {
		err = enc.Encode(rows)
	}
	if err != nil {
		return "", fmt.Errorf("csv: encode %s: %w", table, err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("csv: flush %s: %w", table, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("csv: close %q: %w", path, err)
	}

	c.logger.Info("[csv] Wrote %d rows to %s", len(rows), path)
	return path, nil
}
