package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/amirhossein-jamali/boardstore/internal/domain/entity"
	errs "github.com/amirhossein-jamali/boardstore/internal/domain/error"
	coreport "github.com/amirhossein-jamali/boardstore/internal/domain/port/core"
	"github.com/amirhossein-jamali/boardstore/internal/domain/port/persistence"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const probeSavepoint = "schema_probe"

// SchemaRepository introspects and alters tables using GORM
type SchemaRepository struct {
	db              *gorm.DB
	dialect         Dialect
	mode            DetectionMode
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewSchemaRepository creates a new SchemaRepository instance
func NewSchemaRepository(db *gorm.DB, dialect Dialect, mode DetectionMode, logger coreport.Logger) persistence.SchemaRepository {
	return &SchemaRepository{
		db:              db,
		dialect:         dialect,
		mode:            mode,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// TableExists reports whether the table exists in the current schema
func (r *SchemaRepository) TableExists(ctx context.Context, table string) (bool, error) {
	return tableExists(r.db.WithContext(ctx), r.dialect, table)
}

// Columns lists the live columns of a table in declaration order
func (r *SchemaRepository) Columns(ctx context.Context, table string) ([]entity.ColumnInfo, error) {
	var (
		columns []entity.ColumnInfo
		err     error
	)
	switch r.dialect {
	case DialectPostgres:
		columns, err = r.postgresColumns(ctx, table)
	default:
		columns, err = r.sqliteColumns(ctx, table)
	}
	if err != nil {
		return nil, fmt.Errorf("listing columns of %s: %w", table, err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: %s", errs.ErrTableNotFound, table)
	}
	return columns, nil
}

type sqliteColumn struct {
	CID       int            `gorm:"column:cid"`
	Name      string         `gorm:"column:name"`
	Type      string         `gorm:"column:type"`
	NotNull   int            `gorm:"column:notnull"`
	DfltValue sql.NullString `gorm:"column:dflt_value"`
	PK        int            `gorm:"column:pk"`
}

func (r *SchemaRepository) sqliteColumns(ctx context.Context, table string) ([]entity.ColumnInfo, error) {
	var rows []sqliteColumn
	query := fmt.Sprintf("PRAGMA table_info(%s)", entity.QuoteIdent(table))
	if err := r.db.WithContext(ctx).Raw(query).Scan(&rows).Error; err != nil {
		return nil, err
	}

	columns := make([]entity.ColumnInfo, 0, len(rows))
	for _, row := range rows {
		columns = append(columns, entity.ColumnInfo{
			Position:   row.CID,
			Name:       row.Name,
			Type:       row.Type,
			NotNull:    row.NotNull != 0,
			Default:    row.DfltValue.String,
			PrimaryKey: row.PK > 0,
		})
	}
	return columns, nil
}

type postgresColumn struct {
	Position  int            `gorm:"column:position"`
	Name      string         `gorm:"column:name"`
	Type      string         `gorm:"column:type"`
	NotNull   bool           `gorm:"column:not_null"`
	DfltValue sql.NullString `gorm:"column:dflt_value"`
	PK        bool           `gorm:"column:pk"`
}

const postgresColumnsQuery = `
SELECT c.ordinal_position AS position,
       c.column_name AS name,
       c.data_type AS type,
       c.is_nullable = 'NO' AS not_null,
       c.column_default AS dflt_value,
       EXISTS (
           SELECT 1
           FROM information_schema.table_constraints tc
           JOIN information_schema.key_column_usage k
             ON k.constraint_name = tc.constraint_name
            AND k.table_schema = tc.table_schema
            AND k.table_name = tc.table_name
           WHERE tc.constraint_type = 'PRIMARY KEY'
             AND tc.table_schema = c.table_schema
             AND tc.table_name = c.table_name
             AND k.column_name = c.column_name
       ) AS pk
FROM information_schema.columns c
WHERE c.table_schema = CURRENT_SCHEMA()
  AND c.table_name = ?
ORDER BY c.ordinal_position`

func (r *SchemaRepository) postgresColumns(ctx context.Context, table string) ([]entity.ColumnInfo, error) {
	var rows []postgresColumn
	if err := r.db.WithContext(ctx).Raw(postgresColumnsQuery, table).Scan(&rows).Error; err != nil {
		return nil, err
	}

	columns := make([]entity.ColumnInfo, 0, len(rows))
	for _, row := range rows {
		columns = append(columns, entity.ColumnInfo{
			Position:   row.Position - 1,
			Name:       row.Name,
			Type:       row.Type,
			NotNull:    row.NotNull,
			Default:    row.DfltValue.String,
			PrimaryKey: row.PK,
		})
	}
	return columns, nil
}

// HasColumn reports whether the column exists. A missing table is never read
// as a missing column.
func (r *SchemaRepository) HasColumn(ctx context.Context, table, column string) (bool, error) {
	if r.mode == DetectionProbe {
		return r.probe(ctx, table, column)
	}

	columns, err := r.Columns(ctx, table)
	if err != nil {
		return false, errs.NewProbeAmbiguityError(table, column, err)
	}
	return entity.HasColumn(columns, column), nil
}

// probe selects the column and classifies the failure. Inside a transaction
// the SELECT runs under a savepoint so a failed statement does not poison it.
func (r *SchemaRepository) probe(ctx context.Context, table, column string) (bool, error) {
	db := r.db.WithContext(ctx).Session(&gorm.Session{
		Logger: r.db.Logger.LogMode(gormlogger.Silent),
	})

	inTx := isTransaction(db)
	if inTx {
		if err := db.SavePoint(probeSavepoint).Error; err != nil {
			return false, errs.NewProbeAmbiguityError(table, column, err)
		}
	}

	query := fmt.Sprintf("SELECT %s FROM %s LIMIT 1", r.probeIdent(column), entity.QuoteIdent(table))
	err := db.Exec(query).Error

	if inTx {
		if rbErr := db.RollbackTo(probeSavepoint).Error; rbErr != nil {
			return false, errs.NewProbeAmbiguityError(table, column, rbErr)
		}
	}

	switch {
	case err == nil:
		return true, nil
	case r.errorClassifier.IsMissingColumn(err):
		r.logger.Debug("Probe found column absent", map[string]any{
			"table":  table,
			"column": column,
		})
		return false, nil
	case r.errorClassifier.IsMissingTable(err):
		return false, errs.NewProbeAmbiguityError(table, column, fmt.Errorf("%w: %v", errs.ErrTableNotFound, err))
	default:
		return false, errs.NewProbeAmbiguityError(table, column, err)
	}
}

// probeIdent quotes the probed column. SQLite reads an unknown double-quoted
// identifier as a string literal, so it gets backticks instead.
func (r *SchemaRepository) probeIdent(column string) string {
	if r.dialect == DialectSQLite {
		return "`" + column + "`"
	}
	return entity.QuoteIdent(column)
}

// CreateTable creates the table with its full column set if it does not exist
func (r *SchemaRepository) CreateTable(ctx context.Context, table entity.TableSchema) error {
	r.logger.Debug("Creating table if not exists", map[string]any{
		"table":   table.Name,
		"columns": len(table.Columns),
	})

	if err := r.db.WithContext(ctx).Exec(table.CreateSQL()).Error; err != nil {
		return fmt.Errorf("creating table %s: %w", table.Name, err)
	}
	return nil
}

// AddColumn appends a column to an existing table
func (r *SchemaRepository) AddColumn(ctx context.Context, table string, column entity.ColumnDef) error {
	query := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", entity.QuoteIdent(table), column.SQL())
	if err := r.db.WithContext(ctx).Exec(query).Error; err != nil {
		if r.errorClassifier.IsDuplicateColumn(err) {
			return fmt.Errorf("column %s.%s already exists: %w", table, column.Name, err)
		}
		return fmt.Errorf("adding column %s.%s: %w", table, column.Name, err)
	}
	return nil
}

func tableExists(db *gorm.DB, dialect Dialect, table string) (bool, error) {
	var query string
	switch dialect {
	case DialectPostgres:
		query = "SELECT count(*) FROM information_schema.tables WHERE table_schema = CURRENT_SCHEMA() AND table_name = ?"
	default:
		query = "SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?"
	}

	var count int64
	if err := db.Raw(query, table).Scan(&count).Error; err != nil {
		return false, fmt.Errorf("checking table %s: %w", table, err)
	}
	return count > 0, nil
}

func isTransaction(db *gorm.DB) bool {
	committer, ok := db.Statement.ConnPool.(gorm.TxCommitter)
	return ok && committer != nil
}
