package services

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/goccy/go-json"

	"crowdfunding-etl/models"
	"crowdfunding-etl/utils"
)

// ErrNoMatch is returned when a pattern finds nothing in a raw contact cell.
var ErrNoMatch = errors.New("pattern did not match")

// ParsedContact is a contact before its full name is split.
type ParsedContact struct {
	ID       int
	FullName string
	Email    string
}

// ContactParser extracts the id, full name and email from one raw cell.
type ContactParser interface {
	Name() string
	Parse(text string) (ParsedContact, error)
}

// NewContactParser returns the parser registered under name ("json" or "regex").
func NewContactParser(name string) (ContactParser, error) {
	switch strings.ToLower(name) {
	case "", "json":
		return JSONContactParser{}, nil
	case "regex":
		return RegexContactParser{}, nil
	default:
		return nil, fmt.Errorf("unknown contact parser %q", name)
	}
}

// JSONContactParser treats the cell as a JSON object.
type JSONContactParser struct{}

type jsonContact struct {
	ContactID *int    `json:"contact_id"`
	Name      *string `json:"name"`
	Email     *string `json:"email"`
}

func (JSONContactParser) Name() string { return "json" }

func (JSONContactParser) Parse(text string) (ParsedContact, error) {
	var jc jsonContact
	if err := json.Unmarshal([]byte(text), &jc); err != nil {
		return ParsedContact{}, fmt.Errorf("json: %w", err)
	}
	switch {
	case jc.ContactID == nil:
		return ParsedContact{}, errors.New("json: missing contact_id")
	case jc.Name == nil:
		return ParsedContact{}, errors.New("json: missing name")
	case jc.Email == nil:
		return ParsedContact{}, errors.New("json: missing email")
	}
	return ParsedContact{ID: *jc.ContactID, FullName: *jc.Name, Email: *jc.Email}, nil
}

var (
	// contactIDRegexp captures the first run of digits
	contactIDRegexp = regexp.MustCompile(`\d+`)
	// fullNameRegexp captures the first two adjacent word tokens
	fullNameRegexp = regexp.MustCompile(`[\p{L}\p{N}_]+\s[\p{L}\p{N}_]+`)
	// emailRegexp captures the value after the "email" key, possibly empty
	emailRegexp = regexp.MustCompile(`"email": "([^"]*)"`)
)

// RegexContactParser pulls the fields out with pattern searches and never
// decodes the cell as JSON.
type RegexContactParser struct{}

func (RegexContactParser) Name() string { return "regex" }

func (RegexContactParser) Parse(text string) (ParsedContact, error) {
	idText := contactIDRegexp.FindString(text)
	if idText == "" {
		return ParsedContact{}, fmt.Errorf("contact_id: %w", ErrNoMatch)
	}
	id, err := strconv.Atoi(idText)
	if err != nil {
		return ParsedContact{}, fmt.Errorf("contact_id: %w", err)
	}

	name := fullNameRegexp.FindString(text)
	if name == "" {
		return ParsedContact{}, fmt.Errorf("name: %w", ErrNoMatch)
	}

	m := emailRegexp.FindStringSubmatch(text)
	if len(m) < 2 {
		return ParsedContact{}, fmt.Errorf("email: %w", ErrNoMatch)
	}

	return ParsedContact{ID: id, FullName: name, Email: m[1]}, nil
}

// SplitName splits on the first whitespace only; "Jane Q Doe" gives
// ("Jane", "Q Doe"). Without whitespace last is empty.
func SplitName(full string) (first, last string) {
	i := strings.IndexFunc(full, unicode.IsSpace)
	if i < 0 {
		return full, ""
	}
	_, size := utf8.DecodeRuneInString(full[i:])
	return full[:i], full[i+size:]
}

// ContactCleaner turns raw contact cells into Contacts with one parser.
type ContactCleaner struct {
	logger *utils.Logger
	parser ContactParser
}

// NewContactCleaner creates a ContactCleaner with the given logger and parser.
func NewContactCleaner(logger *utils.Logger, parser ContactParser) *ContactCleaner {
	return &ContactCleaner{logger: logger, parser: parser}
}

// Clean parses every raw cell. The first failing row aborts the run.
func (c *ContactCleaner) Clean(raw []*models.RawContact) ([]models.Contact, error) {
	result := make([]models.Contact, 0, len(raw))

	for _, r := range raw {
		p, err := c.parser.Parse(r.Text)
		if err != nil {
			return nil, fmt.Errorf("contacts: row %d (%s parser): %w", r.Row, c.parser.Name(), err)
		}

		first, last := SplitName(p.FullName)
		if last == "" {
			c.logger.Warn("[contacts] contact %d has no last name: %q", p.ID, p.FullName)
		}

		result = append(result, models.Contact{
			ContactID: p.ID,
			FirstName: first,
			LastName:  last,
			Email:     p.Email,
		})
	}

	c.logger.Info("[contacts] Parsed %d contacts with the %s parser", len(result), c.parser.Name())
	return result, nil
}
