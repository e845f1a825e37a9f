package repositories

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/studentsvc/internal/app/models"
	"github.com/yigit/studentsvc/internal/seed"
	"github.com/yigit/studentsvc/migrations"
)

// integrationRepo returns a repository bound to a transaction that is rolled
// back when the test ends. Set STUDENT_TEST_DATABASE_URL to run these tests.
func integrationRepo(t *testing.T) (*StudentRepository, context.Context) {
	t.Helper()

	dsn := os.Getenv("STUDENT_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("STUDENT_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close(ctx) })

	tx, err := conn.Begin(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tx.Rollback(ctx) })

	schema, err := migrations.FS.ReadFile("001_create_student_table.sql")
	require.NoError(t, err)
	_, err = tx.Exec(ctx, string(schema))
	require.NoError(t, err)

	return NewStudentRepository(tx), ctx
}

func seedStudent(t *testing.T, ctx context.Context, repo *StudentRepository, p models.StudentParams) int64 {
	t.Helper()
	id, err := repo.Insert(ctx, p)
	require.NoError(t, err)
	return id
}

func TestIntegrationInsertAndGet(t *testing.T) {
	repo, ctx := integrationRepo(t)

	id := seedStudent(t, ctx, repo, models.StudentParams{Name: "Kevin", Score: floatPtr(66.2), Graduated: true})
	assert.NotZero(t, id)

	result, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, id, result.ID)
	assert.Equal(t, "Kevin", result.Name)
	require.NotNil(t, result.Score)
	assert.Equal(t, 66.2, *result.Score)
	assert.True(t, result.Graduated)
	assert.False(t, result.CreatedAt.IsZero())
}

func TestIntegrationNullScore(t *testing.T) {
	repo, ctx := integrationRepo(t)

	id := seedStudent(t, ctx, repo, models.StudentParams{Name: "Ann"})

	result, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, result.Score)
}

func TestIntegrationUpdateKeepsIDAndCreateDate(t *testing.T) {
	repo, ctx := integrationRepo(t)

	id := seedStudent(t, ctx, repo, models.StudentParams{Name: "Judy", Score: floatPtr(100)})
	before, err := repo.GetByID(ctx, id)
	require.NoError(t, err)

	before.Name = "John"
	require.NoError(t, repo.Update(ctx, before))

	after, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, after)

	assert.Equal(t, "John", after.Name)
	assert.Equal(t, before.Score, after.Score)
	assert.Equal(t, before.Graduated, after.Graduated)
	assert.Equal(t, id, after.ID)
	assert.True(t, before.CreatedAt.Equal(after.CreatedAt))
}

func TestIntegrationDeleteIsIdempotent(t *testing.T) {
	repo, ctx := integrationRepo(t)

	id := seedStudent(t, ctx, repo, models.StudentParams{Name: "Bob", Score: floatPtr(79.5)})

	require.NoError(t, repo.DeleteByID(ctx, id))
	require.NoError(t, repo.DeleteByID(ctx, id))

	result, err := repo.GetByID(ctx, id)
	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestIntegrationMissingIDIsTolerated(t *testing.T) {
	repo, ctx := integrationRepo(t)

	const missing = int64(-42)

	result, err := repo.GetByID(ctx, missing)
	assert.NoError(t, err)
	assert.Nil(t, result)

	assert.NoError(t, repo.Update(ctx, &models.Student{ID: missing, Name: "Ghost"}))
	assert.NoError(t, repo.DeleteByID(ctx, missing))
}

func TestIntegrationSeededStudentsReadBack(t *testing.T) {
	repo, ctx := integrationRepo(t)

	// Rolled back with the rest of the transaction.
	_, err := repo.db.Exec(ctx, "TRUNCATE student RESTART IDENTITY")
	require.NoError(t, err)

	inserted, err := seed.CreateDefaultData(ctx, repo, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 3, inserted)

	amy, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, amy)
	assert.Equal(t, int64(1), amy.ID)
	assert.Equal(t, "Amy", amy.Name)
	require.NotNil(t, amy.Score)
	assert.Equal(t, 90.3, *amy.Score)
	assert.True(t, amy.Graduated)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
