package migrations

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appmigrations "github.com/yigit/studentsvc/migrations"
)

// fakeMigrationDB keeps schema_migrations in memory and records executed SQL
type fakeMigrationDB struct {
	applied   map[string]bool
	executed  []string
	failOn    string
	committed int
	rolled    int
}

func newFakeMigrationDB(applied ...string) *fakeMigrationDB {
	f := &fakeMigrationDB{applied: map[string]bool{}}
	for _, v := range applied {
		f.applied[v] = true
	}
	return f
}

func (f *fakeMigrationDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if f.failOn != "" && strings.Contains(sql, f.failOn) {
		return pgconn.CommandTag{}, errors.New("syntax error")
	}
	f.executed = append(f.executed, strings.TrimSpace(sql))
	if strings.HasPrefix(sql, "INSERT INTO schema_migrations") {
		f.applied[args[0].(string)] = true
	}
	return pgconn.NewCommandTag("OK"), nil
}

func (f *fakeMigrationDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not used")
}

func (f *fakeMigrationDB) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	return existsRow(f.applied[args[0].(string)])
}

func (f *fakeMigrationDB) Begin(context.Context) (pgx.Tx, error) {
	return &fakeTx{db: f}, nil
}

type existsRow bool

func (r existsRow) Scan(dest ...any) error {
	*dest[0].(*bool) = bool(r)
	return nil
}

type fakeTx struct {
	pgx.Tx
	db *fakeMigrationDB
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return t.db.Exec(ctx, sql, args...)
}

func (t *fakeTx) Commit(context.Context) error {
	t.db.committed++
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	t.db.rolled++
	return nil
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"002_add_index.sql": {Data: []byte("CREATE INDEX student_name_idx ON student (name);")},
		"001_create.sql":    {Data: []byte("CREATE TABLE student (id BIGSERIAL);")},
		"README.md":         {Data: []byte("not a migration")},
		"nested/003_x.sql":  {Data: []byte("SELECT 1;")},
	}
}

func TestMigrationFilesSorted(t *testing.T) {
	files, err := migrationFiles(testFS())
	require.NoError(t, err)
	assert.Equal(t, []string{"001_create.sql", "002_add_index.sql"}, files)
}

func TestMigrationVersion(t *testing.T) {
	assert.Equal(t, "001", migrationVersion("001_create_student_table.sql"))
	assert.Equal(t, "002", migrationVersion("dir/002_add.sql"))
}

func TestMigrateAppliesPendingInOrder(t *testing.T) {
	f := newFakeMigrationDB()

	require.NoError(t, NewMigrator(f, zerolog.Nop()).Migrate(context.Background(), testFS()))

	require.Len(t, f.executed, 5)
	assert.Contains(t, f.executed[0], "CREATE TABLE IF NOT EXISTS schema_migrations")
	assert.Equal(t, "CREATE TABLE student (id BIGSERIAL);", f.executed[1])
	assert.Equal(t, "CREATE INDEX student_name_idx ON student (name);", f.executed[3])
	assert.True(t, f.applied["001"])
	assert.True(t, f.applied["002"])
	assert.Equal(t, 2, f.committed)
}

func TestMigrateSkipsApplied(t *testing.T) {
	f := newFakeMigrationDB("001")

	require.NoError(t, NewMigrator(f, zerolog.Nop()).Migrate(context.Background(), testFS()))

	assert.NotContains(t, f.executed, "CREATE TABLE student (id BIGSERIAL);")
	assert.Contains(t, f.executed, "CREATE INDEX student_name_idx ON student (name);")
	assert.Equal(t, 1, f.committed)
}

func TestMigrateRollsBackFailedFile(t *testing.T) {
	f := newFakeMigrationDB()
	f.failOn = "CREATE INDEX"

	err := NewMigrator(f, zerolog.Nop()).Migrate(context.Background(), testFS())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "002_add_index.sql")
	assert.True(t, f.applied["001"])
	assert.False(t, f.applied["002"])
	assert.Equal(t, 1, f.rolled)
}

func TestEmbeddedMigrations(t *testing.T) {
	files, err := migrationFiles(appmigrations.FS)
	require.NoError(t, err)
	require.NotEmpty(t, files)
	assert.Equal(t, "001_create_student_table.sql", files[0])
}
