package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SebastienLaurentt/CRVO-Front-sub000/services"
)

// UpdatePasswordRequest represents the request body for resetting a client
// password
type UpdatePasswordRequest struct {
	Password string `json:"password" binding:"required,min=8"`
}

// ListUsers handles GET /api/v1/users - lists client accounts (staff only)
func ListUsers(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}

	crvo := services.GetCRVOService()
	users, err := crvo.FetchUsers(c.Request.Context(), session.Token)
	if err != nil {
		backendError(c, "Failed to fetch accounts from the CRVO backend")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    users,
	})
}

// UpdateUserPassword handles PATCH /api/v1/users/:id/password - triggers a
// password reset on the backend (staff only)
func UpdateUserPassword(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}

	userID := c.Param("id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "User id is required",
			},
		})
		return
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Password must be at least 8 characters",
			},
		})
		return
	}

	crvo := services.GetCRVOService()
	if err := crvo.UpdatePassword(c.Request.Context(), session.Token, userID, req.Password); err != nil {
		backendError(c, "Failed to update the password on the CRVO backend")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password updated",
	})
}
