package models

import "strconv"

// ColumnKind is the value kind inferred for an exported CSV column.
type ColumnKind int

const (
	KindText ColumnKind = iota
	KindInt
	KindFloat
)

func (k ColumnKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return "text"
	}
}

// ColumnSchema describes one column declaration derived from an exported CSV.
type ColumnSchema struct {
	Name   string
	Kind   ColumnKind
	Type   string // INT, DEC, CHAR or VARCHAR
	MinLen int
	MaxLen int
}

// Sized reports whether the declaration carries a width.
func (c ColumnSchema) Sized() bool {
	return c.Type == "CHAR" || c.Type == "VARCHAR"
}

// String renders the declaration, e.g. "email VARCHAR(42)" or "goal DEC".
func (c ColumnSchema) String() string {
	if c.Sized() {
		return c.Name + " " + c.Type + "(" + strconv.Itoa(c.MaxLen) + ")"
	}
	return c.Name + " " + c.Type
}
