package utils

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	// MaxFileSize is 10MB in bytes
	MaxFileSize = 10 * 1024 * 1024
	// AllowedSpreadsheetFormat is XLSX
	AllowedSpreadsheetFormat = ".xlsx"

	// FRDateLayout is the day-first date format used across the CRVO
	// spreadsheets (DD/MM/YYYY).
	FRDateLayout = "02/01/2006"
)

// sheetEpoch is day 0 of the spreadsheet serial-date convention
// (1899-12-30, which absorbs the tool's 1900 leap-year quirk:
// serial 2 maps to 01/01/1900).
var sheetEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// FileUploadError represents a file upload validation error
type FileUploadError struct {
	Code    string
	Message string
}

func (e *FileUploadError) Error() string {
	return e.Message
}

// ValidateSpreadsheetFile validates the uploaded file format and size
func ValidateSpreadsheetFile(fileHeader *multipart.FileHeader) error {
	// Check file size
	if fileHeader.Size > MaxFileSize {
		return &FileUploadError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("File size exceeds maximum allowed size of %d MB", MaxFileSize/(1024*1024)),
		}
	}

	// Check file extension
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != AllowedSpreadsheetFormat {
		return &FileUploadError{
			Code:    "INVALID_FILE_FORMAT",
			Message: fmt.Sprintf("Only %s files are allowed", AllowedSpreadsheetFormat),
		}
	}

	return nil
}

// CellString returns the trimmed cell at the given index, or "" when the row
// is too short. Spreadsheet rows arrive with trailing empty cells stripped.
func CellString(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}

// ParseSheetDate interprets a date cell. Two shapes are supported: a
// spreadsheet serial number (whole days since the 1899-12-30 epoch) and a
// DD/MM/YYYY string. Any other shape is rejected.
func ParseSheetDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty date cell")
	}

	if t, err := time.Parse(FRDateLayout, raw); err == nil {
		return t, nil
	}

	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		if serial <= 0 {
			return time.Time{}, fmt.Errorf("serial date %q out of range", raw)
		}
		// Fractional part is a time of day; only the date matters here.
		return sheetEpoch.AddDate(0, 0, int(serial)), nil
	}

	return time.Time{}, fmt.Errorf("unrecognized date cell %q", raw)
}

// FormatDateFR renders a date in the DD/MM/YYYY shape used on the wire and
// in exports.
func FormatDateFR(t time.Time) string {
	return t.Format(FRDateLayout)
}

// ExportFileName builds the attachment name for a vehicle export, stamped
// with the caller-supplied compact date (for example "20240315").
func ExportFileName(stamp string) string {
	return fmt.Sprintf("vehicules_crvo_%s.xlsx", stamp)
}
