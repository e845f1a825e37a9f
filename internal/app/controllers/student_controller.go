package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studentsvc/internal/app/models/dto"
	"github.com/yigit/studentsvc/internal/app/services"
	"github.com/yigit/studentsvc/internal/middleware"
	"github.com/yigit/studentsvc/internal/pkg/apperrors"
)

// StudentController handles student-related operations
type StudentController struct {
	studentService services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService) *StudentController {
	return &StudentController{
		studentService: studentService,
	}
}

// parseStudentID reads the :id path parameter, answering 400 when it is not an integer
func parseStudentID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid student ID").
			WithField("id").
			WithDetails("Student ID must be a valid number"))
		return 0, false
	}
	return id, true
}

// bindStudent decodes the JSON body, answering 400 on malformed input
func bindStudent(ctx *gin.Context) (dto.StudentRequest, bool) {
	var req dto.StudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid student data").WithDetails(err.Error()))
		return req, false
	}
	return req, true
}

// CreateStudent handles POST /students.
// Responds 201 with the stored student, including id and createDate.
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	req, ok := bindStudent(ctx)
	if !ok {
		return
	}

	student, err := c.studentService.Create(ctx, req.ToParams())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, student)
}

// UpdateStudent handles PUT /students/:id.
// The id in the path wins over anything in the body; an unknown id still responds 200.
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, ok := parseStudentID(ctx)
	if !ok {
		return
	}

	req, ok := bindStudent(ctx)
	if !ok {
		return
	}

	if err := c.studentService.Update(ctx, req.ToStudent(id)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusOK)
}

// DeleteStudent handles DELETE /students/:id
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, ok := parseStudentID(ctx)
	if !ok {
		return
	}

	if err := c.studentService.DeleteByID(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// GetStudentByID handles GET /students/:id. An unknown id responds 200 with a null body.
func (c *StudentController) GetStudentByID(ctx *gin.Context) {
	id, ok := parseStudentID(ctx)
	if !ok {
		return
	}

	student, err := c.studentService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, student)
}
