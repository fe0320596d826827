package entity

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyColumnName is returned when a column definition has no name
	ErrEmptyColumnName = errors.New("column name cannot be empty")
	// ErrNotAdditive is returned when a column cannot be added to an existing table
	ErrNotAdditive = errors.New("column cannot be added to an existing table")
)

// ForeignKey points a column at a column of another table
type ForeignKey struct {
	Table  string
	Column string
}

// ColumnDef is the declarative definition of a table column
type ColumnDef struct {
	Name       string
	Type       string
	PrimaryKey bool
	NotNull    bool
	// Default is a raw SQL literal such as 'canvas'; empty means no default.
	Default    string
	References *ForeignKey
}

// SQL renders the column definition as used inside CREATE TABLE and ADD COLUMN
func (c ColumnDef) SQL() string {
	var b strings.Builder
	b.WriteString(QuoteIdent(c.Name))
	if c.Type != "" {
		b.WriteString(" ")
		b.WriteString(c.Type)
	}
	if c.PrimaryKey {
		b.WriteString(" PRIMARY KEY")
	}
	if c.NotNull {
		b.WriteString(" NOT NULL")
	}
	if c.Default != "" {
		b.WriteString(" DEFAULT ")
		b.WriteString(c.Default)
	}
	if c.References != nil {
		fmt.Fprintf(&b, " REFERENCES %s(%s)", QuoteIdent(c.References.Table), QuoteIdent(c.References.Column))
	}
	return b.String()
}

// ValidateAdditive checks that the column can be appended to a populated
// table: it must not be a primary key and a NOT NULL column needs a default.
func (c ColumnDef) ValidateAdditive() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyColumnName
	}
	if c.PrimaryKey {
		return fmt.Errorf("%w: %s is a primary key", ErrNotAdditive, c.Name)
	}
	if c.NotNull && c.Default == "" {
		return fmt.Errorf("%w: %s is NOT NULL without a default", ErrNotAdditive, c.Name)
	}
	return nil
}

// ColumnInfo is a column as reported by the live database
type ColumnInfo struct {
	Position   int    `json:"position"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	NotNull    bool   `json:"not_null"`
	Default    string `json:"default,omitempty"`
	PrimaryKey bool   `json:"primary_key"`
}

// ColumnNames returns the names of the given columns in order
func ColumnNames(columns []ColumnInfo) []string {
	names := make([]string, 0, len(columns))
	for _, c := range columns {
		names = append(names, c.Name)
	}
	return names
}

// HasColumn reports whether name is among columns, case-insensitively
func HasColumn(columns []ColumnInfo, name string) bool {
	for _, c := range columns {
		if strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

// QuoteIdent quotes an SQL identifier with double quotes, valid on SQLite and PostgreSQL
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
