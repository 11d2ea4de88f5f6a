package storage

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"crowdfunding-etl/models"
	"crowdfunding-etl/utils"
)

func newTestWriter(t *testing.T) *CSVWriter {
	t.Helper()
	w, err := NewCSVWriter(filepath.Join(t.TempDir(), "out"), utils.NewLoggerTo(io.Discard, false))
	require.NoError(t, err)
	return w
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestWriteCategories(t *testing.T) {
	w := newTestWriter(t)
	path, err := w.WriteCategories([]models.Category{
		{CategoryID: "cat1", Name: "food"},
		{CategoryID: "cat2", Name: "film & video"},
	})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(w.Dir(), "category.csv"), path)

	want := "category_id,category\ncat1,food\ncat2,film & video\n"
	if got := readFile(t, path); got != want {
		t.Errorf("category.csv:\ngot  %q\nwant %q", got, want)
	}
}

func TestWriteCampaignsRendering(t *testing.T) {
	w := newTestWriter(t)
	cat := "cat1"
	launch := time.Date(2020, 2, 13, 6, 0, 0, 0, time.UTC)
	end := time.Date(2021, 3, 1, 6, 0, 0, 0, time.UTC)

	path, err := w.WriteCampaigns([]models.Campaign{{
		CfID: 147, ContactID: 4661, CompanyName: "Baldwin, Riley and Jackson",
		Description: "Pre-emptive tertiary standardization", Goal: 100, Pledged: 0,
		BackersCount: 0, Country: "CA", Currency: "CAD",
		LaunchDate: models.Timestamp(launch), EndDate: models.Timestamp(end),
		CategoryID: &cat, SubcategoryID: nil,
	}})
	require.NoError(t, err)

	want := "cf_id,contact_id,company_name,description,goal,pledged,backers_count,country,currency,launch_date,end_date,category_id,subcategory_id\n" +
		"147,4661,\"Baldwin, Riley and Jackson\",Pre-emptive tertiary standardization,100.0,0.0,0,CA,CAD,2020-02-13 06:00:00,2021-03-01 06:00:00,cat1,\n"
	if got := readFile(t, path); got != want {
		t.Errorf("campaign.csv:\ngot  %q\nwant %q", got, want)
	}
}

func TestWriteEmptyTableKeepsHeader(t *testing.T) {
	w := newTestWriter(t)
	path, err := w.WriteContacts(nil)
	require.NoError(t, err)
	if got := readFile(t, path); got != "contact_id,first_name,last_name,email\n" {
		t.Errorf("contacts.csv: got %q", got)
	}
}

func TestWriteOverwrites(t *testing.T) {
	w := newTestWriter(t)
	_, err := w.WriteSubcategories([]models.Subcategory{{SubcategoryID: "subcat1", Name: "rock"}, {SubcategoryID: "subcat2", Name: "web"}})
	require.NoError(t, err)
	path, err := w.WriteSubcategories([]models.Subcategory{{SubcategoryID: "subcat1", Name: "jazz"}})
	require.NoError(t, err)

	if got := readFile(t, path); got != "subcategory_id,subcategory\nsubcat1,jazz\n" {
		t.Errorf("subcategory.csv: got %q", got)
	}
}

func TestWriteScript(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sql")
	sw, err := NewFileScriptWriter(dir, utils.NewLoggerTo(io.Discard, false))
	require.NoError(t, err)

	path, err := sw.WriteScript("schema.sql", "SELECT 1;\n")
	require.NoError(t, err)
	require.Equal(t, "SELECT 1;\n", readFile(t, path))
}
