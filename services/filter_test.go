package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/SebastienLaurentt/CRVO-Front-sub000/models"
)

func filterFixture() []models.VehicleRecord {
	return []models.VehicleRecord{
		{
			ID:              "v1",
			Immatriculation: "AB123",
			Modele:          "Clio",
			Username:        "garage-nord",
			Statut:          models.StatusProduction,
			Mecanique:       true,
			DateCreation:    testNow.AddDate(0, 0, -3).Format(time.RFC3339),
		},
		{
			ID:              "v2",
			Immatriculation: "CD456",
			Modele:          "Megane",
			Username:        "garage-sud",
			Statut:          models.StatusStockage,
			DateCreation:    testNow.AddDate(0, 0, -30).Format(time.RFC3339),
		},
	}
}

func TestFilterVehiclesTextSearch(t *testing.T) {
	clock := testClock()
	vehicles := filterFixture()

	tests := []struct {
		name     string
		search   string
		expected []string
	}{
		{
			name:     "Case-insensitive plate match",
			search:   "ab",
			expected: []string{"v1"},
		},
		{
			name:     "Model match",
			search:   "MEGANE",
			expected: []string{"v2"},
		},
		{
			name:     "Client username match",
			search:   "garage",
			expected: []string{"v2", "v1"}, // sorted by elapsed days
		},
		{
			name:     "Empty search matches everything",
			search:   "",
			expected: []string{"v2", "v1"},
		},
		{
			name:     "No match",
			search:   "zzz",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FilterVehicles(clock, vehicles, FilterState{Search: tt.search})
			ids := make([]string, 0, len(result))
			for _, v := range result {
				ids = append(ids, v.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestFilterVehiclesStatus(t *testing.T) {
	clock := testClock()
	vehicles := filterFixture()

	assert.Len(t, FilterVehicles(clock, vehicles, FilterState{Status: models.StatusProduction}), 1)
	assert.Len(t, FilterVehicles(clock, vehicles, FilterState{Status: models.StatusAll}), 2)
	assert.Len(t, FilterVehicles(clock, vehicles, FilterState{}), 2)
	assert.Empty(t, FilterVehicles(clock, vehicles, FilterState{Status: models.StatusLivraison}))
}

func TestFilterVehiclesSubStage(t *testing.T) {
	clock := testClock()
	vehicles := filterFixture()

	result := FilterVehicles(clock, vehicles, FilterState{SubStage: models.SubStageMecanique})
	assert.Len(t, result, 1)
	assert.Equal(t, "v1", result[0].ID)

	assert.Empty(t, FilterVehicles(clock, vehicles, FilterState{SubStage: models.SubStageJantes}))
}

func TestFilterVehiclesSortIsStableForTies(t *testing.T) {
	clock := testClock()
	created := testNow.AddDate(0, 0, -10).Format(time.RFC3339)
	vehicles := []models.VehicleRecord{
		{ID: "first", DateCreation: created, Statut: models.StatusProduction},
		{ID: "second", DateCreation: created, Statut: models.StatusProduction},
		{ID: "third", DateCreation: created, Statut: models.StatusProduction},
	}

	result := FilterVehicles(clock, vehicles, FilterState{})

	// Equal elapsed days keep their original relative order.
	assert.Equal(t, "first", result[0].ID)
	assert.Equal(t, "second", result[1].ID)
	assert.Equal(t, "third", result[2].ID)
}

func TestFilterVehiclesSortsByElapsedDaysDescending(t *testing.T) {
	clock := testClock()
	vehicles := []models.VehicleRecord{
		{ID: "young", DateCreation: testNow.AddDate(0, 0, -1).Format(time.RFC3339)},
		{ID: "old", DateCreation: testNow.AddDate(0, 0, -90).Format(time.RFC3339)},
		{ID: "middle", DateCreation: testNow.AddDate(0, 0, -30).Format(time.RFC3339)},
	}

	result := FilterVehicles(clock, vehicles, FilterState{})

	assert.Equal(t, "old", result[0].ID)
	assert.Equal(t, "middle", result[1].ID)
	assert.Equal(t, "young", result[2].ID)
}

func TestFilterVehiclesDoesNotMutateInput(t *testing.T) {
	clock := testClock()
	vehicles := []models.VehicleRecord{
		{ID: "b", DateCreation: testNow.AddDate(0, 0, -1).Format(time.RFC3339)},
		{ID: "a", DateCreation: testNow.AddDate(0, 0, -5).Format(time.RFC3339)},
	}

	_ = FilterVehicles(clock, vehicles, FilterState{})

	assert.Equal(t, "b", vehicles[0].ID)
	assert.Equal(t, "a", vehicles[1].ID)
}

func TestFilterVehiclesEmptyAndNilInput(t *testing.T) {
	clock := testClock()

	assert.Empty(t, FilterVehicles(clock, nil, FilterState{}))
	assert.Empty(t, FilterVehicles(clock, []models.VehicleRecord{}, FilterState{Search: "ab"}))
}

func TestFilterCompleted(t *testing.T) {
	records := []models.CompletedVehicleRecord{
		{ID: "c1", Username: "garage-nord", VIN: "VF1RFB00766666666"},
		{ID: "c2", Username: "garage-sud", VIN: "WVWZZZ1JZXW000001"},
	}

	assert.Len(t, FilterCompleted(records, ""), 2)

	byVIN := FilterCompleted(records, "vf1")
	assert.Len(t, byVIN, 1)
	assert.Equal(t, "c1", byVIN[0].ID)

	byClient := FilterCompleted(records, "SUD")
	assert.Len(t, byClient, 1)
	assert.Equal(t, "c2", byClient[0].ID)

	assert.Empty(t, FilterCompleted(nil, "anything"))
}
