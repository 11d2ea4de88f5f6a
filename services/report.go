package services

import (
	"fmt"
	"io"
	"strings"

	"crowdfunding-etl/models"
	"crowdfunding-etl/utils"
)

// ReportService collects and prints the run summary.
type ReportService struct {
	logger *utils.Logger
}

// NewReportService creates a ReportService with the given logger.
func NewReportService(logger *utils.Logger) *ReportService {
	return &ReportService{logger: logger}
}

// AddCampaigns records the dimension sizes and unresolved join counts.
func (s *ReportService) AddCampaigns(r *models.RunReport, rawRows int, t *CampaignTables) {
	r.CampaignsRead = rawRows
	r.Categories = len(t.Categories)
	r.Subcategories = len(t.Subcategories)
	for _, c := range t.Campaigns {
		if c.CategoryID == nil {
			r.UnresolvedCategory++
		}
		if c.SubcategoryID == nil {
			r.UnresolvedSubcat++
		}
	}
	if r.UnresolvedCategory > 0 || r.UnresolvedSubcat > 0 {
		s.logger.Warn("[report] %d campaigns without category_id, %d without subcategory_id",
			r.UnresolvedCategory, r.UnresolvedSubcat)
	}
}

// AddContacts records the contact counts.
func (s *ReportService) AddContacts(r *models.RunReport, rawRows int, strategy string) {
	r.ContactsRead = rawRows
	r.ContactStrategy = strategy
}

// AddTable records one exported file.
func (s *ReportService) AddTable(r *models.RunReport, table, path string, rows int) {
	r.Tables = append(r.Tables, models.TableStat{Table: table, Path: path, Rows: rows})
}

// Print writes the summary of r to w.
func (s *ReportService) Print(w io.Writer, r *models.RunReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  CROWDFUNDING ETL SUMMARY\033[0m\n")
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	if r.CampaignsRead > 0 {
		fmt.Fprintf(w, "\033[1;33m  Campaigns\033[0m\n")
		fmt.Fprintf(w, "  %s\n", thin)
		fmt.Fprintf(w, "  Rows read              : \033[1m%d\033[0m\n", r.CampaignsRead)
		fmt.Fprintf(w, "  Distinct categories    : \033[1m%d\033[0m\n", r.Categories)
		fmt.Fprintf(w, "  Distinct subcategories : \033[1m%d\033[0m\n", r.Subcategories)
		fmt.Fprintf(w, "  Unresolved category    : %d\n", r.UnresolvedCategory)
		fmt.Fprintf(w, "  Unresolved subcategory : %d\n", r.UnresolvedSubcat)
		fmt.Fprintln(w)
	}

	if r.ContactsRead > 0 {
		fmt.Fprintf(w, "\033[1;33m  Contacts\033[0m\n")
		fmt.Fprintf(w, "  %s\n", thin)
		fmt.Fprintf(w, "  Rows read : \033[1m%d\033[0m\n", r.ContactsRead)
		fmt.Fprintf(w, "  Parser    : %s\n", r.ContactStrategy)
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "\033[1;33m  Exports\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if len(r.Tables) == 0 && len(r.Scripts) == 0 {
		fmt.Fprintf(w, "  Nothing written\n")
	}
	for _, t := range r.Tables {
		fmt.Fprintf(w, "  %-12s %6d rows  → %s\n", t.Table, t.Rows, t.Path)
	}
	for _, p := range r.Scripts {
		fmt.Fprintf(w, "  %-12s %6s       → %s\n", "script", "", p)
	}

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n\n", sep)
}
