package services

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"crowdfunding-etl/models"
)

func TestReportCountsUnresolved(t *testing.T) {
	tr := NewCampaignTransformer(newTestLogger(), time.UTC)
	raw := sampleRawCampaigns()
	campaigns, err := tr.Transform(raw, BuildCategories([]string{"music"}), BuildSubcategories([]string{"rock", "web"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tables := &CampaignTables{
		Categories:    BuildCategories([]string{"music"}),
		Subcategories: BuildSubcategories([]string{"rock", "web"}),
		Campaigns:     campaigns,
	}

	svc := NewReportService(newTestLogger())
	var r models.RunReport
	svc.AddCampaigns(&r, len(raw), tables)

	if r.UnresolvedCategory != 2 {
		t.Errorf("UnresolvedCategory: got %d, want 2", r.UnresolvedCategory)
	}
	if r.UnresolvedSubcat != 1 {
		t.Errorf("UnresolvedSubcat: got %d, want 1", r.UnresolvedSubcat)
	}
	if r.Categories != 1 || r.Subcategories != 2 {
		t.Errorf("dimension sizes: got %d / %d", r.Categories, r.Subcategories)
	}
}

func TestReportPrint(t *testing.T) {
	svc := NewReportService(newTestLogger())
	r := &models.RunReport{}
	svc.AddContacts(r, 3, "regex")
	svc.AddTable(r, "contacts", "/out/contacts.csv", 3)

	var buf bytes.Buffer
	svc.Print(&buf, r)
	out := buf.String()

	for _, want := range []string{"Contacts", "regex", "/out/contacts.csv"} {
		if !strings.Contains(out, want) {
			t.Errorf("report output missing %q", want)
		}
	}
	if strings.Contains(out, "Campaigns") {
		t.Error("campaign section should be omitted when no campaigns were read")
	}
}
