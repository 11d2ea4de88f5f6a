package models

import (
	"strconv"
	"strings"
	"time"
)

// RawCampaign holds one crowdfunding row exactly as it appears in the source
// spreadsheet. Every field is kept as text until the transformer coerces it.
type RawCampaign struct {
	CfID         string `csv:"cf_id"`
	ContactID    string `csv:"contact_id"`
	CompanyName  string `csv:"company_name"`
	Blurb        string `csv:"blurb"`
	Goal         string `csv:"goal"`
	Pledged      string `csv:"pledged"`
	BackersCount string `csv:"backers_count"`
	Country      string `csv:"country"`
	Currency     string `csv:"currency"`
	LaunchedAt   string `csv:"launched_at"`
	Deadline     string `csv:"deadline"`
	StaffPick    string `csv:"staff_pick"`
	Spotlight    string `csv:"spotlight"`
	CategoryPath string `csv:"category & sub-category"`
}

// Campaign is the cleaned fact row written to campaign.csv.
// CategoryID and SubcategoryID are nil when the left join found no match.
type Campaign struct {
	CfID          int       `csv:"cf_id"`
	ContactID     int       `csv:"contact_id"`
	CompanyName   string    `csv:"company_name"`
	Description   string    `csv:"description"`
	Goal          Amount    `csv:"goal"`
	Pledged       Amount    `csv:"pledged"`
	BackersCount  int       `csv:"backers_count"`
	Country       string    `csv:"country"`
	Currency      string    `csv:"currency"`
	LaunchDate    Timestamp `csv:"launch_date"`
	EndDate       Timestamp `csv:"end_date"`
	CategoryID    *string   `csv:"category_id"`
	SubcategoryID *string   `csv:"subcategory_id"`
}

// Category is one row of category.csv.
type Category struct {
	CategoryID string `csv:"category_id"`
	Name       string `csv:"category"`
}

// Subcategory is one row of subcategory.csv.
type Subcategory struct {
	SubcategoryID string `csv:"subcategory_id"`
	Name          string `csv:"subcategory"`
}

// DimensionEntry pairs a surrogate key with the distinct value it stands for.
type DimensionEntry struct {
	Key  string
	Name string
}

// Amount is a monetary value. It always renders with a fractional part so the
// exported column reads back as floating point.
type Amount float64

func (a Amount) MarshalCSV() ([]byte, error) {
	s := strconv.FormatFloat(float64(a), 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return []byte(s), nil
}

// TimestampLayout is the calendar date-time layout used in the exports.
const TimestampLayout = "2006-01-02 15:04:05"

// Timestamp is a calendar date-time rendered as TimestampLayout.
type Timestamp time.Time

func (t Timestamp) MarshalCSV() ([]byte, error) {
	return []byte(time.Time(t).Format(TimestampLayout)), nil
}

func (t Timestamp) Time() time.Time { return time.Time(t) }
