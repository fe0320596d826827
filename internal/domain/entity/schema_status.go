package entity

// TableStatus is the live state of a target table
type TableStatus struct {
	Name    string       `json:"name"`
	Exists  bool         `json:"exists"`
	Columns []ColumnInfo `json:"columns"`
	Missing []string     `json:"missing,omitempty"`
}

// SchemaStatus summarises the schema of a database for operators
type SchemaStatus struct {
	Version   int64              `json:"version"`
	Detection string             `json:"detection"`
	Applied   []AppliedMigration `json:"applied"`
	Pending   []MigrationSummary `json:"pending"`
	Tables    []TableStatus      `json:"tables"`
}

// UpToDate reports whether nothing is pending and every target column exists
func (s *SchemaStatus) UpToDate() bool {
	if len(s.Pending) > 0 {
		return false
	}
	for _, t := range s.Tables {
		if !t.Exists || len(t.Missing) > 0 {
			return false
		}
	}
	return true
}
