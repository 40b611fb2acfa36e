package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/derin/classpanel/internal/app/models/dto"
	"github.com/derin/classpanel/internal/app/repositories"
	"github.com/derin/classpanel/internal/app/services"
	"github.com/derin/classpanel/internal/middleware"
	"github.com/derin/classpanel/internal/pkg/helpers"
)

// SubjectController handles subject-related endpoints
type SubjectController struct {
	subjectService *services.SubjectService
}

// NewSubjectController creates a new SubjectController
func NewSubjectController(subjectService *services.SubjectService) *SubjectController {
	return &SubjectController{subjectService: subjectService}
}

// ListSubjects returns subjects with their departments. Page size is capped.
// @Summary List subjects
// @Description Returns subjects with their departments, searchable and paginated
// @Tags subjects
// @Produce json
// @Param search query string false "Case-insensitive match on code or name"
// @Param department query string false "Case-insensitive match on department name"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size, capped at 100" default(10)
// @Success 200 {object} dto.ListResponse "Subjects retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /subjects [get]
func (c *SubjectController) ListSubjects(ctx *gin.Context) {
	page, limit := helpers.ParseListParams(ctx, helpers.MaxLimit)
	filter := repositories.SubjectListFilter{
		Search:     ctx.Query("search"),
		Department: ctx.Query("department"),
		Page:       page,
		Limit:      limit,
	}

	subjects, total, err := c.subjectService.List(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err, "Failed to fetch subjects")
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(subjects, page, limit, total))
}
