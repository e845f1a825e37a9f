package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studentsvc/internal/app/controllers"
	"github.com/yigit/studentsvc/internal/app/models/dto"
)

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, studentController *controllers.StudentController) {
	students := router.Group("/students")
	{
		students.POST("", studentController.CreateStudent)
		students.GET("/:id", studentController.GetStudentByID)
		students.PUT("/:id", studentController.UpdateStudent)
		students.DELETE("/:id", studentController.DeleteStudent)
	}

	// Liveness endpoints
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.HealthResponse{Status: "success", Message: "pong"})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
	})
}
