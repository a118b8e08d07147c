package services

import (
	"sort"
	"strings"

	"github.com/SebastienLaurentt/CRVO-Front-sub000/models"
)

// FilterState captures the three independent view filters. Status "" or
// "Tous" matches every category. SubStage is single-select: at most one
// sub-stage filter is active at a time.
type FilterState struct {
	Search   string
	Status   string
	SubStage string
}

// FilterVehicles returns the visible subset for the given filter state,
// sorted descending by days since intake (most time elapsed first, stable
// for ties). The input collection is never mutated; a nil input yields an
// empty result.
func FilterVehicles(clock Clock, vehicles []models.VehicleRecord, state FilterState) []models.VehicleRecord {
	search := strings.ToLower(strings.TrimSpace(state.Search))

	result := make([]models.VehicleRecord, 0, len(vehicles))
	for _, v := range vehicles {
		if !matchesSearch(v, search) {
			continue
		}
		if !matchesStatus(v, state.Status) {
			continue
		}
		if state.SubStage != "" && !v.SubStagePending(state.SubStage) {
			continue
		}
		result = append(result, v)
	}

	// Stable: records with equal elapsed days keep their original order.
	sort.SliceStable(result, func(i, j int) bool {
		return DaysSinceCreation(clock, result[i]) > DaysSinceCreation(clock, result[j])
	})
	return result
}

// FilterCompleted returns completed records whose client, VIN or status label
// contains the search text (case-insensitive). Input order is preserved.
func FilterCompleted(records []models.CompletedVehicleRecord, search string) []models.CompletedVehicleRecord {
	search = strings.ToLower(strings.TrimSpace(search))

	result := make([]models.CompletedVehicleRecord, 0, len(records))
	for _, r := range records {
		if search == "" ||
			strings.Contains(strings.ToLower(r.Username), search) ||
			strings.Contains(strings.ToLower(r.VIN), search) ||
			strings.Contains(strings.ToLower(r.Statut), search) {
			result = append(result, r)
		}
	}
	return result
}

// matchesSearch checks the free-text predicate against plate, model and
// client username. Empty search text matches everything.
func matchesSearch(v models.VehicleRecord, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(v.Immatriculation), search) ||
		strings.Contains(strings.ToLower(v.Modele), search) ||
		strings.Contains(strings.ToLower(v.Username), search)
}

// matchesStatus checks the status predicate. Empty and "Tous" match all.
func matchesStatus(v models.VehicleRecord, status string) bool {
	if status == "" || status == models.StatusAll {
		return true
	}
	return v.Statut == status
}
