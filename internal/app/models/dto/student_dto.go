package dto

import "github.com/yigit/studentsvc/internal/app/models"

// StudentRequest is the body accepted by POST /students and PUT /students/{id}.
// Fields not present in the body keep their zero value.
type StudentRequest struct {
	Name      string   `json:"name" example:"Kevin"`
	Score     *float64 `json:"score" example:"66.2"`
	Graduated bool     `json:"graduate" example:"true"`
}

// ToParams converts the request to the writable student fields
func (r StudentRequest) ToParams() models.StudentParams {
	return models.StudentParams{
		Name:      r.Name,
		Score:     r.Score,
		Graduated: r.Graduated,
	}
}

// ToStudent builds the update payload for the student with id
func (r StudentRequest) ToStudent(id int64) *models.Student {
	return &models.Student{
		ID:        id,
		Name:      r.Name,
		Score:     r.Score,
		Graduated: r.Graduated,
	}
}
