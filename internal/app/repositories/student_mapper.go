package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/yigit/studentsvc/internal/app/models"
)

// ErrRowMapping is returned when a result row cannot be mapped to a Student.
var ErrRowMapping = errors.New("student row mapping failed")

// Student table columns, in select order
const (
	colID         = "id"
	colName       = "name"
	colScore      = "score"
	colGraduate   = "graduate"
	colCreateDate = "create_date"
)

var studentColumns = []string{colID, colName, colScore, colGraduate, colCreateDate}

func mappingError(column, format string, args ...interface{}) error {
	return fmt.Errorf("%w: column %q: %s", ErrRowMapping, column, fmt.Sprintf(format, args...))
}

// columnNames extracts the result column names from pgx field descriptions
func columnNames(fields []pgconn.FieldDescription) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

// mapStudentRow builds a Student from one result row, matching values to
// fields by column name. Every student column must be present exactly once;
// unknown columns, NULL in a non-null column and type mismatches fail.
func mapStudentRow(columns []string, values []interface{}) (*models.Student, error) {
	if len(columns) != len(values) {
		return nil, fmt.Errorf("%w: %d columns but %d values", ErrRowMapping, len(columns), len(values))
	}

	student := &models.Student{}
	seen := make(map[string]bool, len(columns))

	for i, column := range columns {
		if seen[column] {
			return nil, mappingError(column, "duplicate column")
		}
		seen[column] = true

		value := values[i]
		var err error
		switch column {
		case colID:
			student.ID, err = toInt64(column, value)
		case colName:
			student.Name, err = toString(column, value)
		case colScore:
			student.Score, err = toNullableFloat(column, value)
		case colGraduate:
			student.Graduated, err = toBool(column, value)
		case colCreateDate:
			student.CreatedAt, err = toTime(column, value)
		default:
			err = mappingError(column, "unknown column")
		}
		if err != nil {
			return nil, err
		}
	}

	for _, column := range studentColumns {
		if !seen[column] {
			return nil, mappingError(column, "missing column")
		}
	}

	return student, nil
}

func toInt64(column string, value interface{}) (int64, error) {
	switch v := value.(type) {
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int:
		return int64(v), nil
	case nil:
		return 0, mappingError(column, "unexpected NULL")
	default:
		return 0, mappingError(column, "expected integer, got %T", value)
	}
}

func toString(column string, value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case nil:
		return "", mappingError(column, "unexpected NULL")
	default:
		return "", mappingError(column, "expected text, got %T", value)
	}
}

func toNullableFloat(column string, value interface{}) (*float64, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case float64:
		return &v, nil
	case float32:
		f := float64(v)
		return &f, nil
	case pgtype.Numeric:
		f, err := v.Float64Value()
		if err != nil {
			return nil, mappingError(column, "invalid numeric: %v", err)
		}
		if !f.Valid {
			return nil, nil
		}
		return &f.Float64, nil
	default:
		return nil, mappingError(column, "expected floating-point, got %T", value)
	}
}

func toBool(column string, value interface{}) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case nil:
		return false, mappingError(column, "unexpected NULL")
	default:
		return false, mappingError(column, "expected boolean, got %T", value)
	}
}

func toTime(column string, value interface{}) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case nil:
		return time.Time{}, mappingError(column, "unexpected NULL")
	default:
		return time.Time{}, mappingError(column, "expected timestamp, got %T", value)
	}
}
