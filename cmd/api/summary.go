package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dive-marine/internal/summary"
)

// GetSummaryInput defines the query parameters for the marine summary
// endpoint. Either a coordinate pair or a dive point id must be supplied.
type GetSummaryInput struct {
	Latitude  *float64 `form:"latitude"`  // Latitude in decimal degrees
	Longitude *float64 `form:"longitude"` // Longitude in decimal degrees
	PointID   *int64   `form:"pointId"`   // Registered dive point id
}

// handleGetSummary godoc
// @Summary Get marine conditions summary
// @Description Retrieve the latest water, wave and tide observations near a coordinate or a registered dive point. Unavailable metrics come back null.
// @Tags marine
// @Accept json
// @Produce json
// @Param latitude query number false "Latitude in decimal degrees" minimum(-90) maximum(90) example(34.7604)
// @Param longitude query number false "Longitude in decimal degrees" minimum(-180) maximum(180) example(128.3154)
// @Param pointId query integer false "Registered dive point id" example(12)
// @Success 200 {object} summary.Summary
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Failure 504 {object} map[string]string
// @Router /marine/summary [get]
func (app *App) handleGetSummary(c *gin.Context) {
	var input GetSummaryInput

	// Bind and validate query parameters
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), app.cfg.Server.RequestTimeout)
	defer cancel()

	result, err := app.summaryService.GetSummary(ctx, summary.Request{
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		PointID:   input.PointID,
	})
	if err != nil {
		// Check if it's a validation error from business layer
		if errors.Is(err, summary.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if errors.Is(err, context.DeadlineExceeded) {
			c.JSON(http.StatusGatewayTimeout, gin.H{"error": "summary request timed out"})
			return
		}

		// Other errors are internal server errors
		app.logger.Error("failed to get marine summary",
			"pointId", input.PointID,
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get marine summary"})
		return
	}

	c.JSON(http.StatusOK, result)
}
