package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/SebastienLaurentt/CRVO-Front-sub000/models"
)

// MockCRVOService is an in-memory implementation of CRVOInterface for testing.
type MockCRVOService struct {
	mu sync.RWMutex

	Token    string
	Vehicles []models.VehicleRecord
	// UserVehicles is returned for the member-scoped endpoint; when nil,
	// Vehicles is returned instead.
	UserVehicles []models.VehicleRecord
	Completed    []models.CompletedVehicleRecord
	Users        []models.UserAccount
	Sync         SyncInfo

	// FailVehicleUploads makes CreateVehicle fail after this many successful
	// submissions (0 disables the failure).
	FailVehicleUploads int

	UploadedVehicles  []VehicleUpload
	UploadedCompleted []CompletedUpload
	PasswordUpdates   map[string]string
	CleanupCalls      int

	// Err, when set, is returned by every read operation.
	Err error
}

// NewMockCRVOService creates a mock backend client with empty state.
func NewMockCRVOService() *MockCRVOService {
	return &MockCRVOService{
		Token:           "mock-token",
		PasswordUpdates: make(map[string]string),
	}
}

// SetAsMockForTesting sets this mock as the global backend client instance.
func (m *MockCRVOService) SetAsMockForTesting() {
	SetCRVOService(m)
}

// Login returns the configured token for any non-empty credential pair.
func (m *MockCRVOService) Login(_ context.Context, username, password string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if username == "" || password == "" || password == "wrong" {
		return "", ErrInvalidCredentials
	}
	return m.Token, nil
}

// FetchVehicles returns the configured fleet-wide vehicle list.
func (m *MockCRVOService) FetchVehicles(_ context.Context, _ string) ([]models.VehicleRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Vehicles, nil
}

// FetchUserVehicles returns the member-scoped vehicle list.
func (m *MockCRVOService) FetchUserVehicles(_ context.Context, _ string) ([]models.VehicleRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if m.UserVehicles != nil {
		return m.UserVehicles, nil
	}
	return m.Vehicles, nil
}

// FetchCompleted returns the configured completed-vehicles list.
func (m *MockCRVOService) FetchCompleted(_ context.Context, _ string) ([]models.CompletedVehicleRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Completed, nil
}

// FetchUsers returns the configured account list.
func (m *MockCRVOService) FetchUsers(_ context.Context, _ string) ([]models.UserAccount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Users, nil
}

// UpdatePassword records the password reset.
func (m *MockCRVOService) UpdatePassword(_ context.Context, _, userID, newPassword string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.PasswordUpdates[userID] = newPassword
	return nil
}

// FetchLastSync returns the configured synchronization info.
func (m *MockCRVOService) FetchLastSync(_ context.Context, _ string) (SyncInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return SyncInfo{}, m.Err
	}
	return m.Sync, nil
}

// CreateVehicle records the submission, failing once the configured
// submission budget is exhausted.
func (m *MockCRVOService) CreateVehicle(_ context.Context, _ string, upload VehicleUpload) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailVehicleUploads > 0 && len(m.UploadedVehicles) >= m.FailVehicleUploads {
		return fmt.Errorf("/api/vehicles returned status 500")
	}
	m.UploadedVehicles = append(m.UploadedVehicles, upload)
	return nil
}

// CreateCompleted records the submission.
func (m *MockCRVOService) CreateCompleted(_ context.Context, _ string, upload CompletedUpload) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UploadedCompleted = append(m.UploadedCompleted, upload)
	return nil
}

// Cleanup counts cleanup invocations.
func (m *MockCRVOService) Cleanup(_ context.Context, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CleanupCalls++
	return nil
}
