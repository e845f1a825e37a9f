package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/studentsvc/internal/app/models"
)

// StudentWriter inserts students; *repositories.StudentRepository implements it.
type StudentWriter interface {
	Insert(ctx context.Context, params models.StudentParams) (int64, error)
}

// StudentStore is a StudentWriter that can also count rows
type StudentStore interface {
	StudentWriter
	Count(ctx context.Context) (int64, error)
}

func score(v float64) *float64 { return &v }

// DefaultStudents are inserted into an empty table
var DefaultStudents = []models.StudentParams{
	{Name: "Amy", Score: score(90.3), Graduated: true},
	{Name: "Bob", Score: score(79.5), Graduated: false},
	{Name: "Judy", Score: score(100), Graduated: false},
}

// CreateDefaultData inserts DefaultStudents when the student table is empty.
// It returns the number of students inserted.
func CreateDefaultData(ctx context.Context, store StudentStore, lgr zerolog.Logger) (int, error) {
	count, err := store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count students: %w", err)
	}
	if count > 0 {
		lgr.Info().Int64("students", count).Msg("Student table not empty, skipping default data")
		return 0, nil
	}

	lgr.Info().Msg("Creating default students...")
	inserted := 0
	var finalErr error
	for _, params := range DefaultStudents {
		id, err := store.Insert(ctx, params)
		if err != nil {
			lgr.Error().Err(err).Str("name", params.Name).Msg("Error creating default student")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		lgr.Debug().Int64("studentID", id).Str("name", params.Name).Msg("Default student created")
		inserted++
	}

	return inserted, finalErr
}
