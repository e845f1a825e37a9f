package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/studentsvc/internal/app/models"
	"github.com/yigit/studentsvc/internal/db"
	"github.com/yigit/studentsvc/internal/pkg/apperrors"
	"github.com/yigit/studentsvc/internal/pkg/dberrors"
	"github.com/yigit/studentsvc/internal/pkg/logger"
)

const studentTable = "student"

// StudentRepository handles student database operations
type StudentRepository struct {
	db  db.DBTX
	sb  squirrel.StatementBuilderType
	now func() time.Time
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(dbtx db.DBTX) *StudentRepository {
	return &StudentRepository{
		db:  dbtx,
		sb:  squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		now: defaultClock,
	}
}

// defaultClock returns the current time at the precision PostgreSQL stores
func defaultClock() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// WithClock returns a copy of the repository that stamps create_date using now
func (r *StudentRepository) WithClock(now func() time.Time) *StudentRepository {
	cp := *r
	cp.now = now
	return &cp
}

func persistenceError(op string, err error) error {
	return apperrors.NewPersistenceError(op, err).WithCode(dberrors.SQLState(err))
}

// Insert creates a student row stamped with the current time and returns the generated id
func (r *StudentRepository) Insert(ctx context.Context, params models.StudentParams) (int64, error) {
	createdAt := r.now()

	sql, args, err := r.sb.Insert(studentTable).
		Columns(colName, colScore, colGraduate, colCreateDate).
		Values(params.Name, params.Score, params.Graduated, createdAt).
		Suffix("RETURNING " + colID).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building insert student SQL")
		return 0, persistenceError("build insert student query", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		event := logger.Error()
		if dberrors.IsConstraintViolation(err) {
			event = logger.Warn()
		}
		event.Err(err).Str("name", params.Name).Msg("Error executing insert student query")
		return 0, persistenceError("insert student", err)
	}

	logger.Debug().Int64("studentID", id).Msg("Student inserted with generated id")
	return id, nil
}

// Update sets name, score and graduate for the student's id.
// A missing row is not an error.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Update(studentTable).
		SetMap(map[string]interface{}{
			colName:     student.Name,
			colScore:    student.Score,
			colGraduate: student.Graduated,
		}).
		Where(squirrel.Eq{colID: student.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update student SQL")
		return persistenceError("build update student query", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", student.ID).Msg("Error executing update student query")
		return persistenceError("update student", err)
	}

	if cmdTag.RowsAffected() == 0 {
		logger.Debug().Int64("studentID", student.ID).Msg("Update matched no student")
	}
	return nil
}

// DeleteByID removes the student with id. A missing row is not an error.
func (r *StudentRepository) DeleteByID(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete(studentTable).
		Where(squirrel.Eq{colID: id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete student SQL")
		return persistenceError("build delete student query", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error executing delete student query")
		return persistenceError("delete student", err)
	}

	if cmdTag.RowsAffected() == 0 {
		logger.Debug().Int64("studentID", id).Msg("Delete matched no student")
	}
	return nil
}

// GetByID retrieves a student by ID. It returns nil, nil when no row matches.
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From(studentTable).
		Where(squirrel.Eq{colID: id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get student by ID SQL")
		return nil, persistenceError("build get student query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error executing get student query")
		return nil, persistenceError("get student", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			logger.Error().Err(err).Int64("studentID", id).Msg("Error reading student row")
			return nil, persistenceError("get student", err)
		}
		return nil, nil
	}

	values, err := rows.Values()
	if err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error decoding student row")
		return nil, persistenceError("get student", err)
	}

	student, err := mapStudentRow(columnNames(rows.FieldDescriptions()), values)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error mapping student row")
		return nil, persistenceError("map student row", err)
	}

	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, persistenceError("get student", fmt.Errorf("error iterating student rows: %w", err))
	}

	return student, nil
}

// Count returns the number of student rows
func (r *StudentRepository) Count(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From(studentTable).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count students SQL")
		return 0, persistenceError("build count students query", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Msg("Error executing count students query")
		return 0, persistenceError("count students", err)
	}
	return count, nil
}
