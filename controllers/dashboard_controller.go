package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SebastienLaurentt/CRVO-Front-sub000/services"
)

// GetStatusSummary handles GET /api/v1/vehicles/summary - per-category
// counts plus the synthetic "Tous" total
func GetStatusSummary(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}

	vehicles, ok := fetchVehiclesForSession(c, session)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    services.StatusCounts(vehicles),
	})
}

// GetSubStageCounts handles GET /api/v1/vehicles/substages - production
// sub-stage counters. ?variant=pending (default) counts every pending flag;
// ?variant=remaining is the forecasting variant where esthetique only counts
// when it is the sole remaining task
func GetSubStageCounts(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}

	variant := c.DefaultQuery("variant", "pending")
	if variant != "pending" && variant != "remaining" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_VARIANT",
				"message": "variant must be 'pending' or 'remaining'",
			},
		})
		return
	}

	vehicles, ok := fetchVehiclesForSession(c, session)
	if !ok {
		return
	}

	var counts services.SubStageCounts
	if variant == "remaining" {
		counts = services.RemainingWorkCounts(vehicles)
	} else {
		counts = services.PendingSubStageCounts(vehicles)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"variant": variant,
			"counts":  counts,
		},
	})
}

// GetForecast handles GET /api/v1/vehicles/forecast - projected delivery
// buckets plus the current active-production count
func GetForecast(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}

	vehicles, ok := fetchVehiclesForSession(c, session)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    services.Forecast(vehicles),
	})
}

// GetDwell handles GET /api/v1/vehicles/dwell - the two distinct dwell
// metrics over the active and inactive pipeline subsets. Time-since-intake
// and time-in-current-status are separate figures and stay separate
func GetDwell(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}

	vehicles, ok := fetchVehiclesForSession(c, session)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"activePipelineDays": services.AverageDaysInPipeline(appClock, vehicles, services.ActiveCategories),
			"activeStatusDays":   services.AverageDaysInStatus(vehicles, services.ActiveCategories),
			"inactiveStatusDays": services.AverageDaysInStatus(vehicles, services.InactiveCategories),
		},
	})
}
