package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SebastienLaurentt/CRVO-Front-sub000/middleware"
	"github.com/SebastienLaurentt/CRVO-Front-sub000/models"
	"github.com/SebastienLaurentt/CRVO-Front-sub000/services"
)

// appClock is the clock behind every derived-days computation in the
// handlers. Swappable so tests can pin the evaluation instant.
var appClock services.Clock = services.SystemClock{}

// SetClockForTesting replaces the handler clock (primarily for testing).
func SetClockForTesting(clock services.Clock) {
	appClock = clock
}

// backendError reports a failed call to the remote CRVO backend. Failures
// are surfaced, never swallowed and never retried.
func backendError(c *gin.Context, message string) {
	c.JSON(http.StatusBadGateway, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "BACKEND_ERROR",
			"message": message,
		},
	})
}

// sessionOrAbort extracts the decoded session, answering 401 when absent.
func sessionOrAbort(c *gin.Context) (middleware.Session, bool) {
	session, err := middleware.GetSession(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_SESSION",
				"message": "Could not retrieve session",
			},
		})
		return middleware.Session{}, false
	}
	return session, true
}

// filterStateOrAbort reads the view filter query params, answering 400 when
// the status or sub-stage value is not part of the fixed vocabulary.
func filterStateOrAbort(c *gin.Context) (services.FilterState, bool) {
	state := services.FilterState{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		SubStage: c.Query("substage"),
	}
	if state.Status != "" && state.Status != models.StatusAll && !models.IsValidStatus(state.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATUS",
				"message": "Unknown status filter",
			},
		})
		return services.FilterState{}, false
	}
	if state.SubStage != "" && !models.IsValidSubStage(state.SubStage) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_SUBSTAGE",
				"message": "Unknown production sub-stage filter",
			},
		})
		return services.FilterState{}, false
	}
	return state, true
}

// fetchVehiclesForSession loads the vehicle snapshot scoped to the caller:
// staff see the whole fleet, members only their own vehicles.
func fetchVehiclesForSession(c *gin.Context, session middleware.Session) ([]models.VehicleRecord, bool) {
	crvo := services.GetCRVOService()

	var (
		vehicles []models.VehicleRecord
		err      error
	)
	if session.IsAdmin() {
		vehicles, err = crvo.FetchVehicles(c.Request.Context(), session.Token)
	} else {
		vehicles, err = crvo.FetchUserVehicles(c.Request.Context(), session.Token)
	}
	if err != nil {
		backendError(c, "Failed to fetch vehicles from the CRVO backend")
		return nil, false
	}
	return vehicles, true
}
