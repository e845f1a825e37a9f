package services

import (
	"context"

	"github.com/yigit/studentsvc/internal/app/models"
)

// StudentStore is the data access surface the service forwards to.
// *repositories.StudentRepository implements it.
type StudentStore interface {
	Insert(ctx context.Context, params models.StudentParams) (int64, error)
	Update(ctx context.Context, student *models.Student) error
	DeleteByID(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
}

// StudentService defines the interface for student-related operations
type StudentService interface {
	// Create inserts the student and returns the stored row, including the
	// server-assigned id and createDate.
	Create(ctx context.Context, params models.StudentParams) (*models.Student, error)
	Insert(ctx context.Context, params models.StudentParams) (int64, error)
	Update(ctx context.Context, student *models.Student) error
	DeleteByID(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
}

// studentServiceImpl implements the StudentService interface
type studentServiceImpl struct {
	studentRepo StudentStore
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo StudentStore) StudentService {
	return &studentServiceImpl{
		studentRepo: studentRepo,
	}
}

func (s *studentServiceImpl) Create(ctx context.Context, params models.StudentParams) (*models.Student, error) {
	id, err := s.studentRepo.Insert(ctx, params)
	if err != nil {
		return nil, err
	}
	return s.studentRepo.GetByID(ctx, id)
}

func (s *studentServiceImpl) Insert(ctx context.Context, params models.StudentParams) (int64, error) {
	return s.studentRepo.Insert(ctx, params)
}

func (s *studentServiceImpl) Update(ctx context.Context, student *models.Student) error {
	return s.studentRepo.Update(ctx, student)
}

func (s *studentServiceImpl) DeleteByID(ctx context.Context, id int64) error {
	return s.studentRepo.DeleteByID(ctx, id)
}

func (s *studentServiceImpl) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}
