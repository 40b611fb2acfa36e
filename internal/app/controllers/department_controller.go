package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/derin/classpanel/internal/app/models"
	"github.com/derin/classpanel/internal/app/models/dto"
	"github.com/derin/classpanel/internal/app/repositories"
	"github.com/derin/classpanel/internal/app/services"
	"github.com/derin/classpanel/internal/middleware"
	"github.com/derin/classpanel/internal/pkg/helpers"
)

// DepartmentController handles department-related endpoints
type DepartmentController struct {
	departmentService *services.DepartmentService
}

// NewDepartmentController creates a new DepartmentController
func NewDepartmentController(departmentService *services.DepartmentService) *DepartmentController {
	return &DepartmentController{departmentService: departmentService}
}

// ListDepartments returns departments with subject counts. The department
// list carries no page size cap.
// @Summary List departments
// @Description Returns departments with their subject counts, searchable and paginated
// @Tags departments
// @Produce json
// @Param search query string false "Case-insensitive match on code or name"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} dto.ListResponse "Departments retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments [get]
func (c *DepartmentController) ListDepartments(ctx *gin.Context) {
	page, limit := helpers.ParseListParams(ctx, 0)
	filter := repositories.DepartmentListFilter{
		Search: ctx.Query("search"),
		Page:   page,
		Limit:  limit,
	}

	departments, total, err := c.departmentService.List(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err, "Failed to fetch departments")
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(departments, page, limit, total))
}

// CreateDepartment registers a new department.
// @Summary Create a new department
// @Description Creates a department with the provided code, name and description
// @Tags departments
// @Accept json
// @Produce json
// @Param request body dto.CreateDepartmentRequest true "Department information"
// @Success 201 {object} dto.DataResponse{data=dto.CreatedResponse} "Department created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Department already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments [post]
func (c *DepartmentController) CreateDepartment(ctx *gin.Context) {
	var req dto.CreateDepartmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("code and name are required"))
		return
	}

	dept := &models.Department{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
	}
	id, err := c.departmentService.Create(ctx.Request.Context(), dept)
	if err != nil {
		middleware.HandleAPIError(ctx, err, "Failed to create department")
		return
	}

	ctx.JSON(http.StatusCreated, dto.DataResponse{Data: dto.CreatedResponse{ID: id}})
}

// GetDepartment returns one department with its aggregate counts.
// @Summary Get department details
// @Description Returns a department together with subject, class and enrolled-student counts
// @Tags departments
// @Produce json
// @Param id path int true "Department ID"
// @Success 200 {object} dto.DataResponse "Department retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid department ID"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments/{id} [get]
func (c *DepartmentController) GetDepartment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "Invalid department ID")
	if !ok {
		return
	}

	detail, err := c.departmentService.GetDetail(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err, "Failed to fetch department")
		return
	}

	ctx.JSON(http.StatusOK, dto.DataResponse{Data: detail})
}

// ListDepartmentSubjects returns a department's subjects.
// @Summary List a department's subjects
// @Tags departments
// @Produce json
// @Param id path int true "Department ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} dto.ListResponse "Subjects retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid department ID"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments/{id}/subjects [get]
func (c *DepartmentController) ListDepartmentSubjects(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "Invalid department ID")
	if !ok {
		return
	}
	page, limit := helpers.ParseListParams(ctx, 0)

	subjects, total, err := c.departmentService.ListSubjects(
		ctx.Request.Context(), id, repositories.PageRequest{Page: page, Limit: limit})
	if err != nil {
		middleware.HandleAPIError(ctx, err, "Failed to fetch department subjects")
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(subjects, page, limit, total))
}

// ListDepartmentClasses returns the classes under a department's subjects.
// @Summary List a department's classes
// @Tags departments
// @Produce json
// @Param id path int true "Department ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} dto.ListResponse "Classes retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid department ID"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments/{id}/classes [get]
func (c *DepartmentController) ListDepartmentClasses(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "Invalid department ID")
	if !ok {
		return
	}
	page, limit := helpers.ParseListParams(ctx, 0)

	classes, total, err := c.departmentService.ListClasses(
		ctx.Request.Context(), id, repositories.PageRequest{Page: page, Limit: limit})
	if err != nil {
		middleware.HandleAPIError(ctx, err, "Failed to fetch department classes")
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(classes, page, limit, total))
}

// ListDepartmentUsers returns a department's teachers or students. The role
// query parameter is mandatory and limited to those two roles.
// @Summary List a department's users by role
// @Tags departments
// @Produce json
// @Param id path int true "Department ID"
// @Param role query string true "Role filter" Enums(teacher, student)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} dto.ListResponse "Users retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid department ID or role"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments/{id}/users [get]
func (c *DepartmentController) ListDepartmentUsers(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "Invalid department ID")
	if !ok {
		return
	}

	role := models.RoleType(ctx.Query("role"))
	if role != models.RoleTeacher && role != models.RoleStudent {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("role must be teacher or student"))
		return
	}

	page, limit := helpers.ParseListParams(ctx, 0)
	users, total, err := c.departmentService.ListUsers(
		ctx.Request.Context(), id, role, repositories.PageRequest{Page: page, Limit: limit})
	if err != nil {
		middleware.HandleAPIError(ctx, err, "Failed to fetch department users")
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(users, page, limit, total))
}

// parseIDParam reads the numeric :id path parameter, answering 400 with the
// given message when it does not parse.
func parseIDParam(ctx *gin.Context, badIDMessage string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(badIDMessage))
		return 0, false
	}
	return id, true
}
