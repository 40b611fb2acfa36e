package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/derin/classpanel/internal/app/models/dto"
	"github.com/derin/classpanel/internal/app/services"
	"github.com/derin/classpanel/internal/middleware"
)

// EnrollmentController handles enrollment endpoints
type EnrollmentController struct {
	enrollmentService *services.EnrollmentService
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService *services.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{enrollmentService: enrollmentService}
}

// CreateEnrollment enrolls a student into a class by class id.
// @Summary Enroll a student in a class
// @Description Enrolls a student by class id and returns the joined enrollment detail
// @Tags enrollments
// @Accept json
// @Produce json
// @Param request body dto.CreateEnrollmentRequest true "Enrollment information"
// @Success 201 {object} dto.DataResponse "Enrollment created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Class or student not found"
// @Failure 409 {object} dto.ErrorResponse "Student already enrolled"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments [post]
func (c *EnrollmentController) CreateEnrollment(ctx *gin.Context) {
	var req dto.CreateEnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.ClassID == 0 || req.StudentID == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("classId and studentId are required"))
		return
	}

	detail, err := c.enrollmentService.Enroll(ctx.Request.Context(), req.ClassID, req.StudentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err, "Failed to create enrollment")
		return
	}

	ctx.JSON(http.StatusCreated, dto.DataResponse{Data: detail})
}

// JoinClass enrolls a student into the class behind an invite code.
// @Summary Join a class by invite code
// @Description Resolves the invite code to a class and enrolls the student
// @Tags enrollments
// @Accept json
// @Produce json
// @Param request body dto.JoinClassRequest true "Join information"
// @Success 201 {object} dto.DataResponse "Enrollment created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Class or student not found"
// @Failure 409 {object} dto.ErrorResponse "Student already enrolled"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/join [post]
func (c *EnrollmentController) JoinClass(ctx *gin.Context) {
	var req dto.JoinClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.InviteCode == "" || req.StudentID == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("inviteCode and studentId are required"))
		return
	}

	detail, err := c.enrollmentService.Join(ctx.Request.Context(), req.InviteCode, req.StudentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err, "Failed to join class")
		return
	}

	ctx.JSON(http.StatusCreated, dto.DataResponse{Data: detail})
}
