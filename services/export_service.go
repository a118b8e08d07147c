package services

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/SebastienLaurentt/CRVO-Front-sub000/models"
)

// pendingMarker is the yes-marker rendered for a still-pending sub-stage.
// Raw booleans never appear in export cells.
const pendingMarker = "X"

// exportHeaders is the fixed, human-readable column set of a vehicle export.
var exportHeaders = []string{
	"Client",
	"Immatriculation",
	"Modèle",
	"Date de création",
	"Jours en parc",
	"Jours depuis statut",
	"Statut",
	"Mécanique",
	"Carrosserie",
	"CT",
	"DSP",
	"Jantes",
	"Esthétique",
	"Prix",
}

// ExportService renders filtered vehicle collections as spreadsheet
// workbooks and optionally archives them for download.
type ExportService struct {
	clock Clock
}

// NewExportService creates an export service using the given clock for the
// derived days columns.
func NewExportService(clock Clock) *ExportService {
	return &ExportService{clock: clock}
}

// BuildVehicleWorkbook produces one row per record with display-formatted
// values. Sub-stage cells carry the pending marker only for Production
// records; outside Production the flags are don't-care and stay blank.
func (s *ExportService) BuildVehicleWorkbook(vehicles []models.VehicleRecord) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Véhicules"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, h := range exportHeaders {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("failed to name column %d: %w", i+1, err)
		}
		cell := col + "1"
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header %q: %w", h, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, boldStyle); err != nil {
			return nil, fmt.Errorf("failed to style header %q: %w", h, err)
		}
	}

	for rowIdx, v := range vehicles {
		row := rowIdx + 2
		values := []any{
			v.Username,
			v.Immatriculation,
			v.Modele,
			v.DateCreation,
			DaysSinceCreation(s.clock, v),
			v.DaySinceStatut,
			v.Statut,
			subStageCell(v, v.Mecanique),
			subStageCell(v, v.Carrosserie),
			subStageCell(v, v.CT),
			subStageCell(v, v.DSP),
			subStageCell(v, v.Jantes),
			subStageCell(v, v.Esthetique),
			v.Price,
		}
		for i, value := range values {
			col, err := excelize.ColumnNumberToName(i + 1)
			if err != nil {
				return nil, fmt.Errorf("failed to name column %d: %w", i+1, err)
			}
			if err := f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, row), value); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", row, err)
			}
		}
	}

	return f, nil
}

// WorkbookBytes serializes a workbook for streaming or archiving.
func (s *ExportService) WorkbookBytes(f *excelize.File) ([]byte, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ArchiveWorkbook stores the serialized workbook in the configured S3 bucket
// under a unique key and returns a presigned download URL.
func (s *ExportService) ArchiveWorkbook(content []byte, filename string) (string, error) {
	archive := GetS3Service()
	if archive == nil {
		return "", fmt.Errorf("archive storage is not configured")
	}

	key := fmt.Sprintf("exports/%s_%s", uuid.New().String(), filename)
	if err := archive.UploadArchive(key, content); err != nil {
		return "", fmt.Errorf("failed to archive export: %w", err)
	}

	url, err := archive.GetPresignedURL(key)
	if err != nil {
		// No URL means nobody can ever reach the object; remove it rather
		// than accumulate orphans under exports/.
		if delErr := archive.DeleteFile(key); delErr != nil {
			log.Printf("warning: failed to remove unreachable archive %s: %v", key, delErr)
		}
		return "", fmt.Errorf("failed to generate download URL: %w", err)
	}
	return url, nil
}

// subStageCell renders a sub-stage flag for display. Flags only carry
// meaning in the Production category; elsewhere the cell stays blank so a
// don't-care value is never shown as a decision.
func subStageCell(v models.VehicleRecord, pending bool) string {
	if v.Statut != models.StatusProduction {
		return ""
	}
	if pending {
		return pendingMarker
	}
	return ""
}
