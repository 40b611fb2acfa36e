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

// UserController handles user-related endpoints
type UserController struct {
	userService *services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService) *UserController {
	return &UserController{userService: userService}
}

// ListUsers returns users filtered by role and search. Page size is capped.
// @Summary List users
// @Description Returns users, optionally filtered by role, searchable and paginated
// @Tags users
// @Produce json
// @Param search query string false "Case-insensitive match on name or email"
// @Param role query string false "Exact role filter" Enums(student, teacher, admin)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size, capped at 100" default(10)
// @Success 200 {object} dto.ListResponse "Users retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid role"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	page, limit := helpers.ParseListParams(ctx, helpers.MaxLimit)
	filter := repositories.UserListFilter{
		Search: ctx.Query("search"),
		Role:   ctx.Query("role"),
		Page:   page,
		Limit:  limit,
	}

	users, total, err := c.userService.List(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err, "Failed to fetch users")
		return
	}

	ctx.JSON(http.StatusOK, dto.NewListResponse(users, page, limit, total))
}
