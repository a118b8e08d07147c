package models

// CompletedStatusMarker is the literal status label that tags a spreadsheet
// row as a finished renovation ("factory exit").
const CompletedStatusMarker = "Sortie Usine"

// CompletedVehicleRecord represents a vehicle whose renovation has finished.
// Records are either returned by the backend's completed-vehicles endpoint or
// built by the spreadsheet import adapter; they are immutable in this service.
type CompletedVehicleRecord struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	VIN            string `json:"vin"`
	Statut         string `json:"statut"`
	DateCompletion string `json:"dateCompletion"`
}
