package models

// RawContact is one semi-structured contact cell taken from the contacts sheet.
// Row is the 1-based spreadsheet row it came from and is only used in errors.
type RawContact struct {
	Row  int
	Text string
}

// Contact is the cleaned contact row written to contacts.csv.
type Contact struct {
	ContactID int    `csv:"contact_id"`
	FirstName string `csv:"first_name"`
	LastName  string `csv:"last_name"`
	Email     string `csv:"email"`
}
