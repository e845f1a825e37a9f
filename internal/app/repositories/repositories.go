package repositories

import (
	"github.com/yigit/studentsvc/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository *StudentRepository
}

// NewRepositories initializes all repositories
func NewRepositories(dbtx db.DBTX) *Repositories {
	return &Repositories{
		StudentRepository: NewStudentRepository(dbtx),
	}
}
