package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/SebastienLaurentt/CRVO-Front-sub000/models"
	"github.com/SebastienLaurentt/CRVO-Front-sub000/utils"
)

// CellParser normalizes one raw cell value. ok is false when the cell is
// empty or unparseable, in which case the field stays absent for the row.
type CellParser func(raw string) (value string, ok bool)

// ColumnSpec ties a fixed column index to a named record field. Column
// position is the sole addressing mechanism; the format is brittle to header
// reordering by contract, so all positional knowledge lives in these tables.
type ColumnSpec struct {
	Index int
	Field string
	Parse CellParser
}

// textCell trims the cell; empty cells stay absent.
func textCell(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	return raw, true
}

// dateCell accepts a spreadsheet serial or DD/MM/YYYY string and normalizes
// to DD/MM/YYYY. Unrecognized shapes are logged and dropped from the row,
// never surfaced as per-row errors.
func dateCell(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	t, err := utils.ParseSheetDate(raw)
	if err != nil {
		log.Printf("import: dropping date cell: %v", err)
		return "", false
	}
	return utils.FormatDateFR(t), true
}

// vehicleColumns is the fixed layout of a vehicle-intake spreadsheet.
var vehicleColumns = []ColumnSpec{
	{Index: 0, Field: "username", Parse: textCell},
	{Index: 1, Field: "immatriculation", Parse: textCell},
	{Index: 2, Field: "modele", Parse: textCell},
	{Index: 3, Field: "dateCreation", Parse: dateCell},
	{Index: 4, Field: "price", Parse: textCell},
}

// completedColumns is the fixed layout of a completed-vehicles spreadsheet.
var completedColumns = []ColumnSpec{
	{Index: 0, Field: "username", Parse: textCell},
	{Index: 1, Field: "vin", Parse: textCell},
	{Index: 2, Field: "statut", Parse: textCell},
	{Index: 3, Field: "dateCompletion", Parse: dateCell},
}

// ImportResult reports the aggregate outcome of a spreadsheet import. Only
// counts surface to the caller; row-level drops are silent by contract.
type ImportResult struct {
	BatchID  string `json:"batchId"`
	Accepted int    `json:"accepted"`
	Dropped  int    `json:"dropped"`
	Uploaded int    `json:"uploaded"`
}

// ImportService maps spreadsheet rows to backend write calls.
type ImportService struct {
	crvo CRVOInterface
}

// NewImportService creates an import service submitting through the given
// backend client.
func NewImportService(crvo CRVOInterface) *ImportService {
	return &ImportService{crvo: crvo}
}

// mapRow applies a column descriptor table to one spreadsheet row.
func mapRow(row []string, specs []ColumnSpec) map[string]string {
	fields := make(map[string]string, len(specs))
	for _, spec := range specs {
		if value, ok := spec.Parse(utils.CellString(row, spec.Index)); ok {
			fields[spec.Field] = value
		}
	}
	return fields
}

// ParseVehicleRows maps a workbook to vehicle-intake uploads. Row 0 is the
// header and is always discarded. A row is accepted when at least one of
// client, plate, model or creation date is present; all other rows are
// silently dropped and only counted.
func (s *ImportService) ParseVehicleRows(f *excelize.File) ([]VehicleUpload, int, error) {
	rows, err := sheetRows(f)
	if err != nil {
		return nil, 0, err
	}

	var uploads []VehicleUpload
	dropped := 0
	for _, row := range rows {
		fields := mapRow(row, vehicleColumns)
		upload := VehicleUpload{
			Username:        fields["username"],
			Immatriculation: fields["immatriculation"],
			Modele:          fields["modele"],
			DateCreation:    fields["dateCreation"],
			Price:           fields["price"],
		}
		if upload.Username == "" && upload.Immatriculation == "" && upload.Modele == "" && upload.DateCreation == "" {
			dropped++
			continue
		}
		uploads = append(uploads, upload)
	}
	return uploads, dropped, nil
}

// ParseCompletedRows maps a workbook to completed-vehicle uploads. A row is
// accepted only when its status cell carries the "Sortie Usine" marker AND at
// least one of client, VIN or completion date is present.
func (s *ImportService) ParseCompletedRows(f *excelize.File) ([]CompletedUpload, int, error) {
	rows, err := sheetRows(f)
	if err != nil {
		return nil, 0, err
	}

	var uploads []CompletedUpload
	dropped := 0
	for _, row := range rows {
		fields := mapRow(row, completedColumns)
		if fields["statut"] != models.CompletedStatusMarker {
			dropped++
			continue
		}
		upload := CompletedUpload{
			Username:       fields["username"],
			VIN:            fields["vin"],
			Statut:         fields["statut"],
			DateCompletion: fields["dateCompletion"],
		}
		if upload.Username == "" && upload.VIN == "" && upload.DateCompletion == "" {
			dropped++
			continue
		}
		uploads = append(uploads, upload)
	}
	return uploads, dropped, nil
}

// ImportVehicles replaces the backend's vehicle table with the accepted rows
// of the workbook: cleanup first, then one submission per row. If any
// submission fails the whole operation is reported failed; rows already
// submitted are NOT rolled back (partial application is acceptable by
// contract).
func (s *ImportService) ImportVehicles(ctx context.Context, token string, f *excelize.File) (ImportResult, error) {
	uploads, dropped, err := s.ParseVehicleRows(f)
	if err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{
		BatchID:  uuid.New().String(),
		Accepted: len(uploads),
		Dropped:  dropped,
	}

	if err := s.crvo.Cleanup(ctx, token); err != nil {
		return result, fmt.Errorf("cleanup before import failed: %w", err)
	}
	for _, upload := range uploads {
		if err := s.crvo.CreateVehicle(ctx, token, upload); err != nil {
			return result, fmt.Errorf("vehicle upload failed after %d rows: %w", result.Uploaded, err)
		}
		result.Uploaded++
	}
	return result, nil
}

// ImportCompleted submits the accepted completed-vehicle rows of the
// workbook, one backend call per row, with the same all-or-report-failure
// contract as ImportVehicles (and no cleanup step).
func (s *ImportService) ImportCompleted(ctx context.Context, token string, f *excelize.File) (ImportResult, error) {
	uploads, dropped, err := s.ParseCompletedRows(f)
	if err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{
		BatchID:  uuid.New().String(),
		Accepted: len(uploads),
		Dropped:  dropped,
	}

	for _, upload := range uploads {
		if err := s.crvo.CreateCompleted(ctx, token, upload); err != nil {
			return result, fmt.Errorf("completed upload failed after %d rows: %w", result.Uploaded, err)
		}
		result.Uploaded++
	}
	return result, nil
}

// sheetRows reads the first sheet and discards the header row.
func sheetRows(f *excelize.File) ([][]string, error) {
	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read spreadsheet rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil
	}
	return rows[1:], nil
}
