package models

// Status categories form the fixed renovation/logistics pipeline, in order.
// StatusAll ("Tous") is a view-layer pseudo-category: it is used as a filter
// value and an aggregate key but is never stored on a record.
const (
	StatusTransportAller  = "Transport aller"
	StatusExpertise       = "Expertise"
	StatusClient          = "Client"
	StatusMagasin         = "Magasin"
	StatusProduction      = "Production"
	StatusStockage        = "Stockage"
	StatusTransportRetour = "Transport retour"
	StatusLivraison       = "Livraison"

	StatusAll = "Tous"
)

// StatusCategories lists the eight pipeline values a record may carry.
var StatusCategories = []string{
	StatusTransportAller,
	StatusExpertise,
	StatusClient,
	StatusMagasin,
	StatusProduction,
	StatusStockage,
	StatusTransportRetour,
	StatusLivraison,
}

// Production sub-stage names, used as filter keys and counter labels.
const (
	SubStageMecanique   = "mecanique"
	SubStageCarrosserie = "carrosserie"
	SubStageCT          = "ct"
	SubStageDSP         = "dsp"
	SubStageJantes      = "jantes"
	SubStageEsthetique  = "esthetique"
)

// SubStages lists the six production sub-stage flag names.
var SubStages = []string{
	SubStageMecanique,
	SubStageCarrosserie,
	SubStageCT,
	SubStageDSP,
	SubStageJantes,
	SubStageEsthetique,
}

// VehicleRecord represents one physical vehicle under management, as served
// by the CRVO backend. The backend is authoritative; this service only holds
// transient in-memory copies for the duration of a request.
//
// The six sub-stage booleans use inverted polarity: true means the sub-task
// is still PENDING. They only carry meaning while Statut is "Production".
type VehicleRecord struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	Immatriculation string `json:"immatriculation"`
	Modele          string `json:"modele"`
	DateCreation    string `json:"dateCreation"`   // RFC 3339 intake timestamp
	DaySinceStatut  int    `json:"daySinceStatut"` // backend-derived, read-only here
	Statut          string `json:"statut"`
	Mecanique       bool   `json:"mecanique"`
	Carrosserie     bool   `json:"carrosserie"`
	CT              bool   `json:"ct"`
	DSP             bool   `json:"dsp"`
	Jantes          bool   `json:"jantes"`
	Esthetique      bool   `json:"esthetique"`
	Price           string `json:"price,omitempty"`
}

// SubStagePending returns the raw flag for the named sub-stage
// (true = still pending). Unknown names report false.
func (v VehicleRecord) SubStagePending(name string) bool {
	switch name {
	case SubStageMecanique:
		return v.Mecanique
	case SubStageCarrosserie:
		return v.Carrosserie
	case SubStageCT:
		return v.CT
	case SubStageDSP:
		return v.DSP
	case SubStageJantes:
		return v.Jantes
	case SubStageEsthetique:
		return v.Esthetique
	}
	return false
}

// IsValidStatus reports whether s is one of the eight pipeline values.
func IsValidStatus(s string) bool {
	for _, c := range StatusCategories {
		if c == s {
			return true
		}
	}
	return false
}

// IsValidSubStage reports whether name is one of the six sub-stage flags.
func IsValidSubStage(name string) bool {
	for _, s := range SubStages {
		if s == name {
			return true
		}
	}
	return false
}
