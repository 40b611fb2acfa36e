package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/derin/classpanel/internal/app/models/dto"
	"github.com/derin/classpanel/internal/app/services"
	"github.com/derin/classpanel/internal/middleware"
)

// StatsController handles dashboard aggregate endpoints
type StatsController struct {
	statsService *services.StatsService
}

// NewStatsController creates a new StatsController
func NewStatsController(statsService *services.StatsService) *StatsController {
	return &StatsController{statsService: statsService}
}

// GetOverview returns the entity counts for the dashboard header.
// @Summary Get overview stats
// @Tags stats
// @Produce json
// @Success 200 {object} dto.DataResponse "Overview stats retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /stats/overview [get]
func (c *StatsController) GetOverview(ctx *gin.Context) {
	stats, err := c.statsService.Overview(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err, "Failed to fetch overview stats")
		return
	}

	ctx.JSON(http.StatusOK, dto.DataResponse{Data: stats})
}

// GetLatest returns the most recent classes and teachers. Malformed limit
// values degrade to the default; explicit values are floored at 1 downstream.
// @Summary Get latest classes and teachers
// @Tags stats
// @Produce json
// @Param limit query int false "Item count per list, floored at 1" default(5)
// @Success 200 {object} dto.DataResponse "Latest stats retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /stats/latest [get]
func (c *StatsController) GetLatest(ctx *gin.Context) {
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "5"))
	if err != nil {
		limit = services.DefaultLatestLimit
	}

	stats, err := c.statsService.Latest(ctx.Request.Context(), limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err, "Failed to fetch latest stats")
		return
	}

	ctx.JSON(http.StatusOK, dto.DataResponse{Data: stats})
}

// GetCharts returns the grouped aggregates behind the dashboard charts.
// @Summary Get chart aggregates
// @Description Returns users by role, subjects by department and classes by subject
// @Tags stats
// @Produce json
// @Success 200 {object} dto.DataResponse "Chart stats retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /stats/charts [get]
func (c *StatsController) GetCharts(ctx *gin.Context) {
	stats, err := c.statsService.Charts(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err, "Failed to fetch chart stats")
		return
	}

	ctx.JSON(http.StatusOK, dto.DataResponse{Data: stats})
}
