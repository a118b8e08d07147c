package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SebastienLaurentt/CRVO-Front-sub000/models"
	"github.com/SebastienLaurentt/CRVO-Front-sub000/services"
)

// VehicleRow is a VehicleRecord enriched with the days elapsed since intake,
// as shown in the dashboard table.
type VehicleRow struct {
	models.VehicleRecord
	DaysSince int `json:"daysSince"`
}

// ListVehicles handles GET /api/v1/vehicles - returns the filtered, sorted
// vehicle list for the caller's scope. Query params: search, status, substage
func ListVehicles(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}

	state, ok := filterStateOrAbort(c)
	if !ok {
		return
	}

	vehicles, ok := fetchVehiclesForSession(c, session)
	if !ok {
		return
	}

	filtered := services.FilterVehicles(appClock, vehicles, state)
	rows := make([]VehicleRow, 0, len(filtered))
	for _, v := range filtered {
		rows = append(rows, VehicleRow{
			VehicleRecord: v,
			DaysSince:     services.DaysSinceCreation(appClock, v),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    rows,
	})
}

// ListCompleted handles GET /api/v1/completed - returns completed
// renovations, optionally narrowed by a search term
func ListCompleted(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}

	crvo := services.GetCRVOService()
	records, err := crvo.FetchCompleted(c.Request.Context(), session.Token)
	if err != nil {
		backendError(c, "Failed to fetch completed vehicles from the CRVO backend")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    services.FilterCompleted(records, c.Query("search")),
	})
}

// GetLastSync handles GET /api/v1/sync - surfaces the backend's last
// successful synchronization time as-is
func GetLastSync(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}

	crvo := services.GetCRVOService()
	info, err := crvo.FetchLastSync(c.Request.Context(), session.Token)
	if err != nil {
		backendError(c, "Failed to fetch synchronization status from the CRVO backend")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    info,
	})
}
