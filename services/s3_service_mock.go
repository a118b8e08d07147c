package services

import (
	"fmt"
	"sync"
)

// MockS3Service is a mock implementation of S3Service for testing
type MockS3Service struct {
	uploadedFiles map[string][]byte // map of S3 key to file content
	mu            sync.RWMutex

	// PresignErr, when set, is returned by GetPresignedURL.
	PresignErr error
}

// NewMockS3Service creates a new mock S3 service
func NewMockS3Service() *MockS3Service {
	return &MockS3Service{
		uploadedFiles: make(map[string][]byte),
	}
}

// SetAsMockForTesting sets this mock as the global S3 service instance for testing
func (m *MockS3Service) SetAsMockForTesting() {
	SetS3Service(m)
}

// UploadArchive simulates storing an export workbook in S3
func (m *MockS3Service) UploadArchive(key string, content []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(content))
	copy(stored, content)
	m.uploadedFiles[key] = stored
	return nil
}

// GetPresignedURL returns a fake presigned URL for an uploaded key
func (m *MockS3Service) GetPresignedURL(s3Key string) (string, error) {
	if m.PresignErr != nil {
		return "", m.PresignErr
	}
	if s3Key == "" {
		return "", nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, exists := m.uploadedFiles[s3Key]; !exists {
		return "", fmt.Errorf("key not found: %s", s3Key)
	}
	return fmt.Sprintf("https://mock-s3.example.com/%s?presigned=true", s3Key), nil
}

// DeleteFile removes a stored file from the mock
func (m *MockS3Service) DeleteFile(s3Key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.uploadedFiles, s3Key)
	return nil
}

// GetUploadedContent returns the stored content for a key (for test assertions)
func (m *MockS3Service) GetUploadedContent(s3Key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	content, exists := m.uploadedFiles[s3Key]
	return content, exists
}

// UploadCount returns the number of stored files
func (m *MockS3Service) UploadCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.uploadedFiles)
}
