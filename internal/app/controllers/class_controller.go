package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/derin/classpanel/internal/app/models"
	"github.com/derin/classpanel/internal/app/models/dto"
	"github.com/derin/classpanel/internal/app/repositories"
	"github.com/derin/classpanel/internal/app/services"
	"github.com/derin/classpanel/internal/middleware"
	"github.com/derin/classpanel/internal/pkg/helpers"
)

// ClassController handles class-related endpoints
type ClassController struct {
	classService *services.ClassService
}

// NewClassController creates a new ClassController
func NewClassController(classService *services.ClassService) *ClassController {
	return &ClassController{classService: classService}
}

// ListClasses returns classes with subject and teacher. Page size is capped.
// @Summary List classes
// @Description Returns classes with subject and teacher, searchable and paginated
// @Tags classes
// @Produce json
// @Param search query string false "Case-insensitive match on name or invite code"
// @Param subject query string false "Case-insensitive match on subject name"
// @Param teacher query string false "Case-insensitive match on teacher name"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size, capped at 100" default(10)
// @Success 200 {object} dto.ListResponse "Classes retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes [get]
func (c *ClassController) ListClasses(ctx *gin.Context) {
	page, limit := helpers.ParseListParams(ctx, helpers.MaxLimit)
	filter := repositories.ClassListFilter{
		Search:  ctx.Query("search"),
		Subject: ctx.Query("subject"),
		Teacher: ctx.Query("teacher"),
		Page:    page,
		Limit:   limit,
	}

	classes, total, err := c.classService.List(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err, "Failed to fetch classes")
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(classes, page, limit, total))
}

// GetClass returns one class with its subject, department and teacher.
// @Summary Get class details
// @Tags classes
// @Produce json
// @Param id path int true "Class ID"
// @Success 200 {object} dto.DataResponse "Class retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid class ID"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{id} [get]
func (c *ClassController) GetClass(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "Invalid class ID")
	if !ok {
		return
	}

	class, err := c.classService.GetDetail(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err, "Failed to fetch class")
		return
	}

	ctx.JSON(http.StatusOK, dto.DataResponse{Data: class})
}

// CreateClass registers a new class.
// @Summary Create a new class
// @Description Creates a class for a subject and teacher; the invite code is generated server-side
// @Tags classes
// @Accept json
// @Produce json
// @Param request body dto.CreateClassRequest true "Class information"
// @Success 201 {object} dto.DataResponse{data=dto.CreatedResponse} "Class created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Subject or teacher not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes [post]
func (c *ClassController) CreateClass(ctx *gin.Context) {
	var req dto.CreateClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("subjectId, teacherId and name are required"))
		return
	}

	class := &models.Class{
		SubjectID:   req.SubjectID,
		TeacherID:   req.TeacherID,
		Name:        req.Name,
		Description: req.Description,
		Capacity:    req.Capacity,
		Status:      models.ClassStatus(req.Status),
		BannerURL:   req.BannerURL,
	}
	id, err := c.classService.Create(ctx.Request.Context(), class)
	if err != nil {
		middleware.HandleAPIError(ctx, err, "Failed to create class")
		return
	}

	ctx.JSON(http.StatusCreated, dto.DataResponse{Data: dto.CreatedResponse{ID: id}})
}
