package services

import (
	"io"
	"testing"
	"time"

	"crowdfunding-etl/models"
	"crowdfunding-etl/utils"
)

func newTestLogger() *utils.Logger { return utils.NewLoggerTo(io.Discard, false) }

func sampleRawCampaigns() []*models.RawCampaign {
	return []*models.RawCampaign{
		{CfID: "147", ContactID: "4661", CompanyName: "Baldwin, Riley and Jackson", Blurb: "Pre-emptive tertiary standardization",
			Goal: "100", Pledged: "0", BackersCount: "0", Country: "CA", Currency: "CAD",
			LaunchedAt: "1581573600", Deadline: "1614578400", StaffPick: "False", Spotlight: "False", CategoryPath: "food/food trucks"},
		{CfID: "1621", ContactID: "3765", CompanyName: "Odom Inc", Blurb: "Managed bottom-line architecture",
			Goal: "1400", Pledged: "14560", BackersCount: "158", Country: "US", Currency: "USD",
			LaunchedAt: "1611554400", Deadline: "1621918800", StaffPick: "False", Spotlight: "True", CategoryPath: "music/rock"},
		{CfID: "1812", ContactID: "4187", CompanyName: "Melton, Robinson and Fritz", Blurb: "Function-based leadingedge pricing structure",
			Goal: "108400", Pledged: "142523", BackersCount: "1425", Country: "AU", Currency: "AUD",
			LaunchedAt: "1608184800", Deadline: "1640498400", StaffPick: "False", Spotlight: "False", CategoryPath: "technology/web"},
		{CfID: "2156", ContactID: "4941", CompanyName: "Mcdonald, Gonzalez and Ross", Blurb: "Vision-oriented fresh-thinking conglomeration",
			Goal: "4200", Pledged: "2477", BackersCount: "24", Country: "US", Currency: "USD",
			LaunchedAt: "1634792400", Deadline: "1642744800", StaffPick: "False", Spotlight: "False", CategoryPath: "music/rock"},
	}
}

func TestCampaignRunJoinsKeys(t *testing.T) {
	tr := NewCampaignTransformer(newTestLogger(), time.UTC)
	tables, err := tr.Run(sampleRawCampaigns())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tables.Categories) != 3 {
		t.Errorf("categories: got %d, want 3", len(tables.Categories))
	}
	if len(tables.Subcategories) != 3 {
		t.Errorf("subcategories: got %d, want 3", len(tables.Subcategories))
	}
	if len(tables.Campaigns) != 4 {
		t.Fatalf("campaigns: got %d, want 4", len(tables.Campaigns))
	}

	wantCat := []string{"cat1", "cat2", "cat3", "cat2"}
	wantSub := []string{"subcat1", "subcat2", "subcat3", "subcat2"}
	for i, c := range tables.Campaigns {
		if c.CategoryID == nil || *c.CategoryID != wantCat[i] {
			t.Errorf("row %d category_id: got %v, want %s", i, c.CategoryID, wantCat[i])
		}
		if c.SubcategoryID == nil || *c.SubcategoryID != wantSub[i] {
			t.Errorf("row %d subcategory_id: got %v, want %s", i, c.SubcategoryID, wantSub[i])
		}
	}
}

func TestCampaignTransformCoercion(t *testing.T) {
	tr := NewCampaignTransformer(newTestLogger(), time.UTC)
	tables, err := tr.Run(sampleRawCampaigns()[:1])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := tables.Campaigns[0]

	if c.CfID != 147 || c.ContactID != 4661 || c.BackersCount != 0 {
		t.Errorf("ids: got cf_id=%d contact_id=%d backers=%d", c.CfID, c.ContactID, c.BackersCount)
	}
	if c.Goal != 100 || c.Pledged != 0 {
		t.Errorf("amounts: got goal=%v pledged=%v", c.Goal, c.Pledged)
	}
	if c.Description != "Pre-emptive tertiary standardization" {
		t.Errorf("description: got %q", c.Description)
	}
	wantLaunch := time.Date(2020, 2, 13, 6, 0, 0, 0, time.UTC)
	if !c.LaunchDate.Time().Equal(wantLaunch) {
		t.Errorf("launch_date: got %v, want %v", c.LaunchDate.Time(), wantLaunch)
	}
	wantEnd := time.Date(2021, 3, 1, 6, 0, 0, 0, time.UTC)
	if !c.EndDate.Time().Equal(wantEnd) {
		t.Errorf("end_date: got %v, want %v", c.EndDate.Time(), wantEnd)
	}
}

func TestCampaignTransformUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC-6", -6*3600)
	tr := NewCampaignTransformer(newTestLogger(), loc)
	tables, err := tr.Run(sampleRawCampaigns()[:1])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := tables.Campaigns[0].LaunchDate.MarshalCSV()
	if string(got) != "2020-02-13 00:00:00" {
		t.Errorf("launch_date in UTC-6: got %q, want %q", got, "2020-02-13 00:00:00")
	}
}

func TestCampaignTransformLeftJoinKeepsUnmatched(t *testing.T) {
	tr := NewCampaignTransformer(newTestLogger(), time.UTC)
	raw := sampleRawCampaigns()
	cats := BuildCategories([]string{"food", "music"})
	subs := BuildSubcategories([]string{"food trucks", "rock"})

	campaigns, err := tr.Transform(raw, cats, subs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(campaigns) != len(raw) {
		t.Fatalf("row count: got %d, want %d", len(campaigns), len(raw))
	}
	if campaigns[2].CategoryID != nil || campaigns[2].SubcategoryID != nil {
		t.Errorf("technology/web should have nil keys, got %v / %v", campaigns[2].CategoryID, campaigns[2].SubcategoryID)
	}
	if campaigns[3].CategoryID == nil || *campaigns[3].CategoryID != "cat2" {
		t.Errorf("music should resolve to cat2, got %v", campaigns[3].CategoryID)
	}
}

func TestCampaignTransformRejectsMalformedRows(t *testing.T) {
	tr := NewCampaignTransformer(newTestLogger(), time.UTC)

	tests := []struct {
		name   string
		mutate func(r *models.RawCampaign)
	}{
		{"goal", func(r *models.RawCampaign) { r.Goal = "lots" }},
		{"pledged", func(r *models.RawCampaign) { r.Pledged = "" }},
		{"launched_at", func(r *models.RawCampaign) { r.LaunchedAt = "yesterday" }},
		{"category", func(r *models.RawCampaign) { r.CategoryPath = "food" }},
	}

	for _, tt := range tests {
		raw := sampleRawCampaigns()[:1]
		tt.mutate(raw[0])
		if _, err := tr.Run(raw); err == nil {
			t.Errorf("%s: expected error, got nil", tt.name)
		}
	}
}

func TestAmountMarshalCSV(t *testing.T) {
	tests := []struct {
		in   models.Amount
		want string
	}{
		{100, "100.0"},
		{0, "0.0"},
		{1250.5, "1250.5"},
	}
	for _, tt := range tests {
		got, _ := tt.in.MarshalCSV()
		if string(got) != tt.want {
			t.Errorf("Amount(%v) = %q; want %q", float64(tt.in), got, tt.want)
		}
	}
}
