package schema

import (
	"context"
	"sort"
	"strings"

	"github.com/amirhossein-jamali/boardstore/internal/domain/entity"
	errs "github.com/amirhossein-jamali/boardstore/internal/domain/error"
	"github.com/amirhossein-jamali/boardstore/internal/domain/port/persistence"
)

// fakeStore is an in-memory database with transactional snapshots
type fakeStore struct {
	tables         map[string][]string
	history        map[int64]entity.AppliedMigration
	historyEnabled bool
	historyTable   bool

	snapshot *fakeSnapshot

	createErr map[string]error
	addErr    map[string]error

	added     []string
	commits   int
	rollbacks int
}

type fakeSnapshot struct {
	tables       map[string][]string
	history      map[int64]entity.AppliedMigration
	historyTable bool
}

func newFakeStore(historyEnabled bool) *fakeStore {
	return &fakeStore{
		tables:         map[string][]string{},
		history:        map[int64]entity.AppliedMigration{},
		historyEnabled: historyEnabled,
		createErr:      map[string]error{},
		addErr:         map[string]error{},
	}
}

func (s *fakeStore) withTable(name string, columns ...string) *fakeStore {
	s.tables[name] = columns
	return s
}

func (s *fakeStore) hasColumn(table, column string) bool {
	for _, c := range s.tables[table] {
		if strings.EqualFold(c, column) {
			return true
		}
	}
	return false
}

func (s *fakeStore) versions() []int64 {
	out := make([]int64, 0, len(s.history))
	for v := range s.history {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s *fakeStore) Begin(ctx context.Context) (context.Context, error) {
	snap := &fakeSnapshot{
		tables:       make(map[string][]string, len(s.tables)),
		history:      make(map[int64]entity.AppliedMigration, len(s.history)),
		historyTable: s.historyTable,
	}
	for name, cols := range s.tables {
		snap.tables[name] = append([]string(nil), cols...)
	}
	for v, a := range s.history {
		snap.history[v] = a
	}
	s.snapshot = snap
	return ctx, nil
}

func (s *fakeStore) Commit(ctx context.Context) error {
	s.snapshot = nil
	s.commits++
	return nil
}

func (s *fakeStore) Rollback(ctx context.Context) error {
	if s.snapshot != nil {
		s.tables = s.snapshot.tables
		s.history = s.snapshot.history
		s.historyTable = s.snapshot.historyTable
		s.snapshot = nil
	}
	s.rollbacks++
	return nil
}

func (s *fakeStore) GetSchemaRepository(ctx context.Context) persistence.SchemaRepository {
	return fakeSchemaRepo{s}
}

func (s *fakeStore) GetMigrationRepository(ctx context.Context) persistence.MigrationRepository {
	return fakeHistoryRepo{s}
}

type fakeSchemaRepo struct{ s *fakeStore }

func (r fakeSchemaRepo) TableExists(ctx context.Context, table string) (bool, error) {
	_, ok := r.s.tables[table]
	return ok, nil
}

func (r fakeSchemaRepo) Columns(ctx context.Context, table string) ([]entity.ColumnInfo, error) {
	cols, ok := r.s.tables[table]
	if !ok {
		return nil, errs.ErrTableNotFound
	}
	out := make([]entity.ColumnInfo, 0, len(cols))
	for i, c := range cols {
		out = append(out, entity.ColumnInfo{Position: i, Name: c, Type: "TEXT"})
	}
	return out, nil
}

func (r fakeSchemaRepo) HasColumn(ctx context.Context, table, column string) (bool, error) {
	if _, ok := r.s.tables[table]; !ok {
		return false, errs.NewProbeAmbiguityError(table, column, errs.ErrTableNotFound)
	}
	return r.s.hasColumn(table, column), nil
}

func (r fakeSchemaRepo) CreateTable(ctx context.Context, table entity.TableSchema) error {
	if err := r.s.createErr[table.Name]; err != nil {
		return err
	}
	if _, ok := r.s.tables[table.Name]; ok {
		return nil
	}
	r.s.tables[table.Name] = table.ColumnNames()
	return nil
}

func (r fakeSchemaRepo) AddColumn(ctx context.Context, table string, column entity.ColumnDef) error {
	key := table + "." + column.Name
	if err := r.s.addErr[key]; err != nil {
		return err
	}
	if _, ok := r.s.tables[table]; !ok {
		return errs.ErrTableNotFound
	}
	r.s.tables[table] = append(r.s.tables[table], column.Name)
	r.s.added = append(r.s.added, key)
	return nil
}

type fakeHistoryRepo struct{ s *fakeStore }

func (r fakeHistoryRepo) Enabled() bool {
	return r.s.historyEnabled
}

func (r fakeHistoryRepo) EnsureTable(ctx context.Context) error {
	r.s.historyTable = true
	return nil
}

func (r fakeHistoryRepo) ListApplied(ctx context.Context) ([]entity.AppliedMigration, error) {
	out := make([]entity.AppliedMigration, 0, len(r.s.history))
	for _, v := range r.s.versions() {
		out = append(out, r.s.history[v])
	}
	return out, nil
}

func (r fakeHistoryRepo) IsApplied(ctx context.Context, version int64) (bool, error) {
	_, ok := r.s.history[version]
	return ok, nil
}

func (r fakeHistoryRepo) Record(ctx context.Context, applied entity.AppliedMigration) error {
	if _, ok := r.s.history[applied.Version]; !ok {
		r.s.history[applied.Version] = applied
	}
	return nil
}
