package schema

import "github.com/amirhossein-jamali/boardstore/internal/domain/entity"

// Table names of the application schema
const (
	TableGroups     = "groups"
	TableWorkspaces = "workspaces"
	TableObjects    = "objects"
)

// ColumnOwnerNodeID tags a row with the node that owns it. Its population is
// out of scope here; it is an opaque nullable text column.
const ColumnOwnerNodeID = "owner_node_id"

func ownerNodeIDColumn() entity.ColumnDef {
	return entity.ColumnDef{Name: ColumnOwnerNodeID, Type: "TEXT"}
}

// TargetTables returns the latest shape of every application table, parents
// before children so foreign keys resolve on creation.
func TargetTables() []entity.TableSchema {
	return []entity.TableSchema{
		{
			Name: TableGroups,
			Columns: []entity.ColumnDef{
				{Name: "id", Type: "TEXT", PrimaryKey: true},
				{Name: "name", Type: "TEXT", NotNull: true},
				{Name: "icon", Type: "TEXT", NotNull: true},
				{Name: "color", Type: "TEXT", NotNull: true},
				{Name: "created_at", Type: "INTEGER", NotNull: true},
				ownerNodeIDColumn(),
			},
		},
		{
			Name: TableWorkspaces,
			Columns: []entity.ColumnDef{
				{Name: "id", Type: "TEXT", PrimaryKey: true},
				{Name: "group_id", Type: "TEXT", NotNull: true, References: &entity.ForeignKey{Table: TableGroups, Column: "id"}},
				{Name: "name", Type: "TEXT", NotNull: true},
				{Name: "created_at", Type: "INTEGER", NotNull: true},
				ownerNodeIDColumn(),
			},
		},
		{
			Name: TableObjects,
			Columns: []entity.ColumnDef{
				{Name: "id", Type: "TEXT", PrimaryKey: true},
				{Name: "workspace_id", Type: "TEXT", NotNull: true, References: &entity.ForeignKey{Table: TableWorkspaces, Column: "id"}},
				{Name: "name", Type: "TEXT", NotNull: true},
				{Name: "created_at", Type: "INTEGER", NotNull: true},
				{Name: "board_type", Type: "TEXT", Default: "'canvas'"},
				ownerNodeIDColumn(),
			},
		},
	}
}

// Migrations returns the fixed, ordered migration list
func Migrations() []Migration {
	return []Migration{
		NewAddColumnMigration(1, TableGroups, ownerNodeIDColumn()),
		NewAddColumnMigration(2, TableWorkspaces, ownerNodeIDColumn()),
		NewAddColumnMigration(3, TableObjects, ownerNodeIDColumn()),
	}
}

// Summaries describes migrations without their behaviour
func Summaries(migrations []Migration) []entity.MigrationSummary {
	out := make([]entity.MigrationSummary, 0, len(migrations))
	for _, m := range migrations {
		out = append(out, entity.MigrationSummary{Version: m.Version(), Description: m.Description()})
	}
	return out
}
