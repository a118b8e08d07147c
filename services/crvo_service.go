package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/SebastienLaurentt/CRVO-Front-sub000/config"
	"github.com/SebastienLaurentt/CRVO-Front-sub000/models"
)

// ErrInvalidCredentials is returned by Login when the backend rejects the
// username/password pair.
var ErrInvalidCredentials = errors.New("invalid credentials")

// VehicleUpload is the write shape for POST /api/vehicles.
type VehicleUpload struct {
	Username        string `json:"username,omitempty"`
	Immatriculation string `json:"immatriculation,omitempty"`
	Modele          string `json:"modele,omitempty"`
	DateCreation    string `json:"dateCreation,omitempty"`
	Price           string `json:"price,omitempty"`
}

// CompletedUpload is the write shape for POST /api/completed.
type CompletedUpload struct {
	Username       string `json:"username,omitempty"`
	VIN            string `json:"vin,omitempty"`
	Statut         string `json:"statut"`
	DateCompletion string `json:"dateCompletion,omitempty"`
}

// SyncInfo is the backend's last-synchronization report, surfaced as-is.
type SyncInfo struct {
	Date string `json:"date,omitempty"`
}

// CRVOInterface defines the operations this service consumes from the remote
// CRVO REST backend. Every call forwards the caller's bearer token; any
// non-2xx response surfaces as a generic operation-failed error with no
// structured error body assumed, and is never retried.
type CRVOInterface interface {
	Login(ctx context.Context, username, password string) (string, error)
	FetchVehicles(ctx context.Context, token string) ([]models.VehicleRecord, error)
	FetchUserVehicles(ctx context.Context, token string) ([]models.VehicleRecord, error)
	FetchCompleted(ctx context.Context, token string) ([]models.CompletedVehicleRecord, error)
	FetchUsers(ctx context.Context, token string) ([]models.UserAccount, error)
	UpdatePassword(ctx context.Context, token, userID, newPassword string) error
	FetchLastSync(ctx context.Context, token string) (SyncInfo, error)
	CreateVehicle(ctx context.Context, token string, upload VehicleUpload) error
	CreateCompleted(ctx context.Context, token string, upload CompletedUpload) error
	Cleanup(ctx context.Context, token string) error
}

// CRVOService is the HTTP implementation of CRVOInterface.
type CRVOService struct {
	baseURL    string
	httpClient *http.Client
}

var crvoServiceInstance CRVOInterface

// InitCRVOService initializes the backend client from configuration.
func InitCRVOService(cfg *config.Config) CRVOInterface {
	crvoServiceInstance = NewCRVOService(cfg.CRVOApiURL)
	return crvoServiceInstance
}

// NewCRVOService creates a backend client for the given base URL.
func NewCRVOService(baseURL string) *CRVOService {
	return &CRVOService{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetCRVOService returns the initialized backend client instance.
func GetCRVOService() CRVOInterface {
	return crvoServiceInstance
}

// SetCRVOService sets the backend client instance (primarily for testing).
func SetCRVOService(service CRVOInterface) {
	crvoServiceInstance = service
}

// Login exchanges credentials for a bearer token via POST /login.
func (s *CRVOService) Login(ctx context.Context, username, password string) (string, error) {
	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/login", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call login endpoint: %w", err)
	}
	defer closeBody(resp)

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", ErrInvalidCredentials
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("login endpoint returned status %d", resp.StatusCode)
	}

	var payload struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode login response: %w", err)
	}
	if payload.Token == "" {
		return "", fmt.Errorf("login response contained no token")
	}
	return payload.Token, nil
}

// FetchVehicles retrieves the fleet-wide vehicle list (admin scope).
func (s *CRVOService) FetchVehicles(ctx context.Context, token string) ([]models.VehicleRecord, error) {
	var vehicles []models.VehicleRecord
	if err := s.getJSON(ctx, token, "/api/vehicles", &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// FetchUserVehicles retrieves the vehicle list scoped to the token's user.
func (s *CRVOService) FetchUserVehicles(ctx context.Context, token string) ([]models.VehicleRecord, error) {
	var vehicles []models.VehicleRecord
	if err := s.getJSON(ctx, token, "/api/user/vehicles", &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// FetchCompleted retrieves the completed-vehicles list.
func (s *CRVOService) FetchCompleted(ctx context.Context, token string) ([]models.CompletedVehicleRecord, error) {
	var records []models.CompletedVehicleRecord
	if err := s.getJSON(ctx, token, "/api/completed", &records); err != nil {
		return nil, err
	}
	return records, nil
}

// FetchUsers retrieves the account list.
func (s *CRVOService) FetchUsers(ctx context.Context, token string) ([]models.UserAccount, error) {
	var users []models.UserAccount
	if err := s.getJSON(ctx, token, "/api/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdatePassword triggers a password reset for the given account.
func (s *CRVOService) UpdatePassword(ctx context.Context, token, userID, newPassword string) error {
	body, err := json.Marshal(map[string]string{"password": newPassword})
	if err != nil {
		return fmt.Errorf("failed to encode password request: %w", err)
	}
	return s.send(ctx, token, http.MethodPatch, "/api/users/"+userID+"/password", body)
}

// FetchLastSync retrieves the last successful backend synchronization time.
func (s *CRVOService) FetchLastSync(ctx context.Context, token string) (SyncInfo, error) {
	var info SyncInfo
	if err := s.getJSON(ctx, token, "/api/synchronization", &info); err != nil {
		return SyncInfo{}, err
	}
	return info, nil
}

// CreateVehicle submits one imported vehicle-intake row.
func (s *CRVOService) CreateVehicle(ctx context.Context, token string, upload VehicleUpload) error {
	body, err := json.Marshal(upload)
	if err != nil {
		return fmt.Errorf("failed to encode vehicle upload: %w", err)
	}
	return s.send(ctx, token, http.MethodPost, "/api/vehicles", body)
}

// CreateCompleted submits one imported completed-vehicle row.
func (s *CRVOService) CreateCompleted(ctx context.Context, token string, upload CompletedUpload) error {
	body, err := json.Marshal(upload)
	if err != nil {
		return fmt.Errorf("failed to encode completed upload: %w", err)
	}
	return s.send(ctx, token, http.MethodPost, "/api/completed", body)
}

// Cleanup clears the backend's vehicle table ahead of a fresh import.
func (s *CRVOService) Cleanup(ctx context.Context, token string) error {
	return s.send(ctx, token, http.MethodDelete, "/api/cleanup", nil)
}

// getJSON performs an authenticated GET and decodes the JSON response.
func (s *CRVOService) getJSON(ctx context.Context, token, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", path, err)
	}
	defer closeBody(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s returned status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

// send performs an authenticated write request, discarding any response body.
func (s *CRVOService) send(ctx context.Context, token, method, path string, body []byte) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", path, err)
	}
	defer closeBody(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s returned status %d", path, resp.StatusCode)
	}
	return nil
}

func closeBody(resp *http.Response) {
	if closeErr := resp.Body.Close(); closeErr != nil {
		log.Printf("warning: failed to close response body: %v", closeErr)
	}
}
