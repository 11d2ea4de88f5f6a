package models

// TableStat is the row accounting for one exported table.
type TableStat struct {
	Table string
	Path  string
	Rows  int
}

// RunReport summarises one pipeline run.
type RunReport struct {
	CampaignsRead      int
	ContactsRead       int
	Categories         int
	Subcategories      int
	UnresolvedCategory int
	UnresolvedSubcat   int
	ContactStrategy    string
	Tables             []TableStat
	Scripts            []string
}
