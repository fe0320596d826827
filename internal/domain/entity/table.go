package entity

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyTableName is returned when a table definition has no name
var ErrEmptyTableName = errors.New("table name cannot be empty")

// TableSchema is the latest target shape of a table.
// Column order is significant: fresh databases get the columns in this order.
type TableSchema struct {
	Name    string
	Columns []ColumnDef
}

// CreateSQL renders an idempotent CREATE TABLE statement for the table
func (t TableSchema) CreateSQL() string {
	defs := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		defs = append(defs, "    "+c.SQL())
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n)", QuoteIdent(t.Name), strings.Join(defs, ",\n"))
}

// ColumnNames returns the declared column names in order
func (t TableSchema) ColumnNames() []string {
	names := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		names = append(names, c.Name)
	}
	return names
}

// Column looks up a column definition by name
func (t TableSchema) Column(name string) (ColumnDef, bool) {
	for _, c := range t.Columns {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return ColumnDef{}, false
}

// Validate checks the table has a name and uniquely named columns
func (t TableSchema) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyTableName
	}
	if len(t.Columns) == 0 {
		return fmt.Errorf("table %s has no columns", t.Name)
	}
	seen := make(map[string]struct{}, len(t.Columns))
	for _, c := range t.Columns {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("table %s: %w", t.Name, ErrEmptyColumnName)
		}
		key := strings.ToLower(c.Name)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("table %s declares column %s twice", t.Name, c.Name)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// MissingColumns returns the declared columns absent from the live column set
func (t TableSchema) MissingColumns(live []ColumnInfo) []string {
	var missing []string
	for _, c := range t.Columns {
		if !HasColumn(live, c.Name) {
			missing = append(missing, c.Name)
		}
	}
	return missing
}
