package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/boardstore/internal/domain/entity"
	errs "github.com/amirhossein-jamali/boardstore/internal/domain/error"
	"github.com/amirhossein-jamali/boardstore/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/boardstore/internal/infrastructure/adapter/database"
	applogger "github.com/amirhossein-jamali/boardstore/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/boardstore/internal/infrastructure/adapter/repository"
)

const createGroups = `CREATE TABLE "groups" (id TEXT PRIMARY KEY, name TEXT NOT NULL, icon TEXT NOT NULL DEFAULT '', created_at INTEGER NOT NULL)`

func newSQLite(t *testing.T) *database.TestDBManager {
	t.Helper()
	testDB := database.NewTestDBManager(t, applogger.NewNoopLogger())
	testDB.Connect(t)
	return testDB
}

func schemaRepo(testDB *database.TestDBManager, mode repository.DetectionMode) persistence.SchemaRepository {
	return repository.NewSchemaRepository(testDB.Manager.DB(), repository.DialectSQLite, mode, testDB.Logger)
}

func TestSchemaRepositoryIntrospection(t *testing.T) {
	ctx := context.Background()
	testDB := newSQLite(t)
	testDB.Exec(t, createGroups)
	repo := schemaRepo(testDB, repository.DetectionHistory)

	exists, err := repo.TableExists(ctx, "groups")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.TableExists(ctx, "objects")
	require.NoError(t, err)
	assert.False(t, exists)

	columns, err := repo.Columns(ctx, "groups")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "icon", "created_at"}, entity.ColumnNames(columns))
	assert.True(t, columns[0].PrimaryKey)
	assert.Equal(t, 0, columns[0].Position)
	assert.True(t, columns[1].NotNull)
	assert.Equal(t, "''", columns[2].Default)

	_, err = repo.Columns(ctx, "objects")
	assert.True(t, errors.Is(err, errs.ErrTableNotFound))
}

func TestSchemaRepositoryHasColumn(t *testing.T) {
	ctx := context.Background()

	for _, mode := range []repository.DetectionMode{repository.DetectionHistory, repository.DetectionProbe} {
		t.Run(string(mode), func(t *testing.T) {
			testDB := newSQLite(t)
			testDB.Exec(t, createGroups)
			repo := schemaRepo(testDB, mode)

			present, err := repo.HasColumn(ctx, "groups", "name")
			require.NoError(t, err)
			assert.True(t, present)

			present, err = repo.HasColumn(ctx, "groups", "owner_node_id")
			require.NoError(t, err)
			assert.False(t, present)

			_, err = repo.HasColumn(ctx, "workspaces", "owner_node_id")
			assert.True(t, errors.Is(err, errs.ErrProbeAmbiguity))
			assert.True(t, errors.Is(err, errs.ErrTableNotFound))
		})
	}
}

func TestSchemaRepositoryProbeInsideTransaction(t *testing.T) {
	ctx := context.Background()
	testDB := newSQLite(t)
	testDB.Exec(t, createGroups)
	uow := database.NewUnitOfWork(testDB.Manager.DB(), repository.DialectSQLite, repository.DetectionProbe, testDB.Logger)

	txCtx, err := uow.Begin(ctx)
	require.NoError(t, err)
	repo := uow.GetSchemaRepository(txCtx)

	present, err := repo.HasColumn(txCtx, "groups", "owner_node_id")
	require.NoError(t, err)
	require.False(t, present)

	// The failed probe must leave the transaction usable.
	require.NoError(t, repo.AddColumn(txCtx, "groups", entity.ColumnDef{Name: "owner_node_id", Type: "TEXT"}))
	require.NoError(t, uow.Commit(txCtx))

	assert.Contains(t, testDB.ColumnNames(t, "groups"), "owner_node_id")
}

func TestSchemaRepositoryCreateAndAlter(t *testing.T) {
	ctx := context.Background()
	testDB := newSQLite(t)
	repo := schemaRepo(testDB, repository.DetectionHistory)

	table := entity.TableSchema{
		Name: "groups",
		Columns: []entity.ColumnDef{
			{Name: "id", Type: "TEXT", PrimaryKey: true},
			{Name: "name", Type: "TEXT", NotNull: true},
		},
	}
	require.NoError(t, repo.CreateTable(ctx, table))
	require.NoError(t, repo.CreateTable(ctx, table))

	column := entity.ColumnDef{Name: "owner_node_id", Type: "TEXT"}
	require.NoError(t, repo.AddColumn(ctx, "groups", column))

	err := repo.AddColumn(ctx, "groups", column)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	assert.Equal(t, []string{"id", "name", "owner_node_id"}, testDB.ColumnNames(t, "groups"))
}

func TestMigrationRepository(t *testing.T) {
	ctx := context.Background()
	testDB := newSQLite(t)
	appliedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Disabled", func(t *testing.T) {
		repo := repository.NewMigrationRepository(testDB.Manager.DB(), repository.DialectSQLite, false, testDB.Logger)

		require.NoError(t, repo.EnsureTable(ctx))
		require.NoError(t, repo.Record(ctx, entity.AppliedMigration{Version: 1, AppliedAt: appliedAt}))
		applied, err := repo.ListApplied(ctx)
		require.NoError(t, err)
		assert.Empty(t, applied)

		exists, err := schemaRepo(testDB, repository.DetectionHistory).TableExists(ctx, "schema_migrations")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Enabled", func(t *testing.T) {
		repo := repository.NewMigrationRepository(testDB.Manager.DB(), repository.DialectSQLite, true, testDB.Logger)

		recorded, err := repo.IsApplied(ctx, 1)
		require.NoError(t, err)
		assert.False(t, recorded)

		require.NoError(t, repo.Record(ctx, entity.AppliedMigration{Version: 2, Description: "second", AppliedAt: appliedAt}))
		require.NoError(t, repo.Record(ctx, entity.AppliedMigration{Version: 1, Description: "first", AppliedAt: appliedAt}))
		require.NoError(t, repo.Record(ctx, entity.AppliedMigration{Version: 1, Description: "again", AppliedAt: appliedAt.Add(time.Hour)}))

		recorded, err = repo.IsApplied(ctx, 1)
		require.NoError(t, err)
		assert.True(t, recorded)

		applied, err := repo.ListApplied(ctx)
		require.NoError(t, err)
		require.Len(t, applied, 2)
		assert.Equal(t, int64(1), applied[0].Version)
		assert.Equal(t, "first", applied[0].Description)
		assert.True(t, appliedAt.Equal(applied[0].AppliedAt))
		assert.Equal(t, int64(2), applied[1].Version)
	})
}
