package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SebastienLaurentt/CRVO-Front-sub000/middleware"
	"github.com/SebastienLaurentt/CRVO-Front-sub000/services"
)

// LoginRequest represents the request body for authenticating a user
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/v1/auth/login - exchanges credentials for a
// backend-issued bearer token and returns the decoded session alongside it
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Username and password are required",
			},
		})
		return
	}

	crvo := services.GetCRVOService()
	token, err := crvo.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_CREDENTIALS",
					"message": "Username or password is incorrect",
				},
			})
			return
		}
		log.Printf("login failed: %v", err)
		backendError(c, "Failed to authenticate against the CRVO backend")
		return
	}

	// The token is opaque to callers; the role claim embedded in it decides
	// what the dashboard shows.
	session, err := middleware.DecodeSession(token, appClock.Now())
	if err != nil {
		log.Printf("login token rejected: %v", err)
		backendError(c, "Backend issued an unusable token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"token":   token,
			"session": session,
		},
	})
}

// GetSessionInfo handles GET /api/v1/auth/session - echoes the decoded
// session of the calling token
func GetSessionInfo(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    session,
	})
}
