package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/derin/classpanel/internal/app/controllers"
	"github.com/derin/classpanel/internal/app/models/dto"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	departmentController *controllers.DepartmentController,
	subjectController *controllers.SubjectController,
	classController *controllers.ClassController,
	userController *controllers.UserController,
	enrollmentController *controllers.EnrollmentController,
	statsController *controllers.StatsController,
) {
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "ClassPanel API")
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")

	departments := api.Group("/departments")
	{
		departments.GET("", departmentController.ListDepartments)
		departments.POST("", departmentController.CreateDepartment)
		departments.GET("/:id", departmentController.GetDepartment)
		departments.GET("/:id/subjects", departmentController.ListDepartmentSubjects)
		departments.GET("/:id/classes", departmentController.ListDepartmentClasses)
		departments.GET("/:id/users", departmentController.ListDepartmentUsers)
	}

	subjects := api.Group("/subjects")
	{
		subjects.GET("", subjectController.ListSubjects)
	}

	classes := api.Group("/classes")
	{
		classes.GET("", classController.ListClasses)
		classes.POST("", classController.CreateClass)
		classes.GET("/:id", classController.GetClass)
	}

	users := api.Group("/users")
	{
		users.GET("", userController.ListUsers)
	}

	enrollments := api.Group("/enrollments")
	{
		enrollments.POST("", enrollmentController.CreateEnrollment)
		enrollments.POST("/join", enrollmentController.JoinClass)
	}

	stats := api.Group("/stats")
	{
		stats.GET("/overview", statsController.GetOverview)
		stats.GET("/latest", statsController.GetLatest)
		stats.GET("/charts", statsController.GetCharts)
	}

	// Identity and session management belong to the external auth
	// collaborator. The group is reserved so clients hitting it get a
	// clear answer instead of a 404.
	api.Any("/auth/*path", func(c *gin.Context) {
		c.JSON(http.StatusNotImplemented, dto.NewErrorResponse("Authentication is handled by the auth service"))
	})
}
