package models

import "time"

// Student defines the student model based on the 'student' table
type Student struct {
	ID        int64     `json:"id" db:"id" example:"1"`                // Database-assigned identifier
	Name      string    `json:"name" db:"name" example:"Amy"`          // Student name
	Score     *float64  `json:"score" db:"score" example:"90.3"`       // Nullable score
	Graduated bool      `json:"graduate" db:"graduate" example:"true"` // Graduation flag
	CreatedAt time.Time `json:"createDate" db:"create_date"`           // Set once at insert
}

// StudentParams holds the writable student fields.
// id and createDate are assigned by the data layer and cannot be supplied here.
type StudentParams struct {
	Name      string   `json:"name"`
	Score     *float64 `json:"score"`
	Graduated bool     `json:"graduate"`
}
