package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/SebastienLaurentt/CRVO-Front-sub000/models"
	"github.com/SebastienLaurentt/CRVO-Front-sub000/services"
)

// issueToken builds a backend-style token carrying the given role claim
func issueToken(t *testing.T, username, role string, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  username,
		"role": role,
		"exp":  exp.Unix(),
	}).SignedString([]byte("backend-secret"))
	assert.NoError(t, err)
	return token
}

func TestLogin(t *testing.T) {
	adminToken := issueToken(t, "staff", models.RoleAdmin, ctrlTestNow.Add(time.Hour))

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		mockToken      string
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "Successfully log in",
			requestBody:    map[string]interface{}{"username": "staff", "password": "secret"},
			mockToken:      adminToken,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Fail with wrong password",
			requestBody:    map[string]interface{}{"username": "staff", "password": "wrong"},
			mockToken:      adminToken,
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "INVALID_CREDENTIALS",
		},
		{
			name:           "Fail with missing password",
			requestBody:    map[string]interface{}{"username": "staff"},
			mockToken:      adminToken,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name:           "Fail with missing username",
			requestBody:    map[string]interface{}{"password": "secret"},
			mockToken:      adminToken,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name:           "Fail when backend issues an undecodable token",
			requestBody:    map[string]interface{}{"username": "staff", "password": "secret"},
			mockToken:      "not-a-jwt",
			expectedStatus: http.StatusBadGateway,
			expectedError:  "BACKEND_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := services.NewMockCRVOService()
			mock.Token = tt.mockToken
			mock.SetAsMockForTesting()

			router := setupTestRouter()
			router.POST("/auth/login", Login)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			response := parseResponse(t, w)
			if tt.expectedError != "" {
				assert.False(t, response["success"].(bool))
				errorData := response["error"].(map[string]interface{})
				assert.Equal(t, tt.expectedError, errorData["code"])
				return
			}

			assert.True(t, response["success"].(bool))
			data := response["data"].(map[string]interface{})
			assert.Equal(t, tt.mockToken, data["token"])
			session := data["session"].(map[string]interface{})
			assert.Equal(t, "staff", session["username"])
			assert.Equal(t, models.RoleAdmin, session["role"])
			// The raw token never appears inside the serialized session.
			assert.NotContains(t, session, "token")
		})
	}
}

func TestLoginBackendUnavailable(t *testing.T) {
	mock := services.NewMockCRVOService()
	mock.Err = assert.AnError
	mock.SetAsMockForTesting()

	router := setupTestRouter()
	router.POST("/auth/login", Login)

	body, _ := json.Marshal(map[string]interface{}{"username": "staff", "password": "secret"})
	req, _ := http.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	response := parseResponse(t, w)
	errorData := response["error"].(map[string]interface{})
	assert.Equal(t, "BACKEND_ERROR", errorData["code"])
}

func TestGetSessionInfo(t *testing.T) {
	mock := services.NewMockCRVOService()
	mock.SetAsMockForTesting()

	router := setupTestRouter()
	router.GET("/auth/session", mockSessionMiddleware("garage-nord", models.RoleMember, "tok"), GetSessionInfo)

	req, _ := http.NewRequest(http.MethodGet, "/auth/session", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	response := parseResponse(t, w)
	assert.True(t, response["success"].(bool))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "garage-nord", data["username"])
	assert.Equal(t, models.RoleMember, data["role"])
}

func TestGetSessionInfoWithoutSession(t *testing.T) {
	router := setupTestRouter()
	router.GET("/auth/session", GetSessionInfo)

	req, _ := http.NewRequest(http.MethodGet, "/auth/session", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
