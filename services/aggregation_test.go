package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/SebastienLaurentt/CRVO-Front-sub000/models"
)

func TestStatusCounts(t *testing.T) {
	vehicles := []models.VehicleRecord{
		{Statut: models.StatusProduction},
		{Statut: models.StatusProduction},
		{Statut: models.StatusStockage},
	}

	counts := StatusCounts(vehicles)

	assert.Equal(t, 3, counts[models.StatusAll])
	assert.Equal(t, 2, counts[models.StatusProduction])
	assert.Equal(t, 1, counts[models.StatusStockage])

	// Absent categories are omitted, not zero-filled.
	_, present := counts[models.StatusLivraison]
	assert.False(t, present)
}

func TestStatusCountsEmptyInput(t *testing.T) {
	counts := StatusCounts(nil)
	assert.Equal(t, 0, counts[models.StatusAll])
	assert.Len(t, counts, 1)
}

func TestPendingSubStageCounts(t *testing.T) {
	vehicles := []models.VehicleRecord{
		// Three pending sub-stages increment three counters.
		{Statut: models.StatusProduction, Mecanique: true, Carrosserie: true, DSP: true},
		{Statut: models.StatusProduction, Esthetique: true, Mecanique: true},
		// Non-Production flags are don't-care and never counted.
		{Statut: models.StatusStockage, Mecanique: true, Jantes: true},
	}

	counts := PendingSubStageCounts(vehicles)

	assert.Equal(t, 2, counts.Mecanique)
	assert.Equal(t, 1, counts.Carrosserie)
	assert.Equal(t, 1, counts.DSP)
	assert.Equal(t, 0, counts.Jantes)
	assert.Equal(t, 0, counts.CT)
	// Plain pending-count variant: esthetique counts even when other
	// sub-stages are still pending too.
	assert.Equal(t, 1, counts.Esthetique)
}

func TestRemainingWorkCountsEsthetiqueSpecialCase(t *testing.T) {
	soleRemaining := models.VehicleRecord{Statut: models.StatusProduction, Esthetique: true}
	withMecanique := models.VehicleRecord{Statut: models.StatusProduction, Esthetique: true, Mecanique: true}

	counts := RemainingWorkCounts([]models.VehicleRecord{soleRemaining, withMecanique})

	// The forecasting variant only counts esthetique when it is the sole
	// remaining task; the second record contributes to mecanique instead.
	assert.Equal(t, 1, counts.Esthetique)
	assert.Equal(t, 1, counts.Mecanique)

	pending := PendingSubStageCounts([]models.VehicleRecord{soleRemaining, withMecanique})
	assert.Equal(t, 2, pending.Esthetique)
}

func TestAverageDaysInStatus(t *testing.T) {
	vehicles := []models.VehicleRecord{
		{Statut: models.StatusProduction, DaySinceStatut: 2},
		{Statut: models.StatusMagasin, DaySinceStatut: 4},
		{Statut: models.StatusExpertise, DaySinceStatut: 6},
		{Statut: models.StatusStockage, DaySinceStatut: 100},
	}

	assert.Equal(t, 4, AverageDaysInStatus(vehicles, ActiveCategories))
	assert.Equal(t, 100, AverageDaysInStatus(vehicles, InactiveCategories))

	// Empty subset yields 0, not an error or NaN.
	assert.Equal(t, 0, AverageDaysInStatus(nil, ActiveCategories))
	assert.Equal(t, 0, AverageDaysInStatus([]models.VehicleRecord{{Statut: models.StatusLivraison}}, ActiveCategories))
}

func TestAverageDaysInPipeline(t *testing.T) {
	clock := testClock()
	vehicles := []models.VehicleRecord{
		{Statut: models.StatusProduction, DateCreation: testNow.AddDate(0, 0, -2).Format(time.RFC3339)},
		{Statut: models.StatusClient, DateCreation: testNow.AddDate(0, 0, -5).Format(time.RFC3339)},
	}

	// mean(2, 5) = 3.5 rounds to 4
	assert.Equal(t, 4, AverageDaysInPipeline(clock, vehicles, ActiveCategories))
	assert.Equal(t, 0, AverageDaysInPipeline(clock, nil, ActiveCategories))
}

func TestProjectedRemainingDays(t *testing.T) {
	tests := []struct {
		name     string
		vehicle  models.VehicleRecord
		expected int
	}{
		{
			name:     "Expertise gets base plus 20",
			vehicle:  models.VehicleRecord{Statut: models.StatusExpertise},
			expected: 23,
		},
		{
			name:     "Magasin gets base plus 15",
			vehicle:  models.VehicleRecord{Statut: models.StatusMagasin},
			expected: 18,
		},
		{
			name:     "Client gets base plus 15",
			vehicle:  models.VehicleRecord{Statut: models.StatusClient},
			expected: 18,
		},
		{
			name:     "Production with no pending sub-stage stays at base",
			vehicle:  models.VehicleRecord{Statut: models.StatusProduction},
			expected: 3,
		},
		{
			name: "All four heavy sub-stages pending",
			vehicle: models.VehicleRecord{
				Statut: models.StatusProduction, Mecanique: true, Carrosserie: true, DSP: true, Jantes: true,
			},
			expected: 13,
		},
		{
			name: "First match wins even when extra flags are also pending",
			vehicle: models.VehicleRecord{
				Statut: models.StatusProduction, Mecanique: true, Carrosserie: true, DSP: true, Jantes: true,
				CT: true, Esthetique: true,
			},
			expected: 13,
		},
		{
			name: "Mecanique carrosserie dsp",
			vehicle: models.VehicleRecord{
				Statut: models.StatusProduction, Mecanique: true, Carrosserie: true, DSP: true,
			},
			expected: 10,
		},
		{
			name: "Mecanique carrosserie",
			vehicle: models.VehicleRecord{
				Statut: models.StatusProduction, Mecanique: true, Carrosserie: true,
			},
			expected: 8,
		},
		{
			name: "Mecanique jantes dsp",
			vehicle: models.VehicleRecord{
				Statut: models.StatusProduction, Mecanique: true, Jantes: true, DSP: true,
			},
			expected: 10,
		},
		{
			name: "Mecanique dsp",
			vehicle: models.VehicleRecord{
				Statut: models.StatusProduction, Mecanique: true, DSP: true,
			},
			expected: 7,
		},
		{
			name: "Mecanique jantes",
			vehicle: models.VehicleRecord{
				Statut: models.StatusProduction, Mecanique: true, Jantes: true,
			},
			expected: 7,
		},
		{
			name:     "Mecanique alone",
			vehicle:  models.VehicleRecord{Statut: models.StatusProduction, Mecanique: true},
			expected: 4,
		},
		{
			name:     "Esthetique alone",
			vehicle:  models.VehicleRecord{Statut: models.StatusProduction, Esthetique: true},
			expected: 4,
		},
		{
			name: "Esthetique rule only fires when mecanique rules do not",
			vehicle: models.VehicleRecord{
				Statut: models.StatusProduction, Esthetique: true, Carrosserie: true,
			},
			expected: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ProjectedRemainingDays(tt.vehicle))
		})
	}
}

func TestForecast(t *testing.T) {
	vehicles := []models.VehicleRecord{
		// 3+20 = 23 -> 22-28 jours
		{Statut: models.StatusExpertise},
		// 3+15 = 18 -> 15-21 jours
		{Statut: models.StatusMagasin},
		// 3+10 = 13 -> 8-14 jours
		{Statut: models.StatusProduction, Mecanique: true, Carrosserie: true, DSP: true, Jantes: true},
		// 3 -> 1-7 jours
		{Statut: models.StatusProduction},
		// Outside the forecast subset: ignored entirely.
		{Statut: models.StatusStockage},
		{Statut: models.StatusTransportAller},
	}

	report := Forecast(vehicles)

	assert.Equal(t, 4, report.ProdActuelle)
	assert.Equal(t, 1, report.Days1To7)
	assert.Equal(t, 1, report.Days8To14)
	assert.Equal(t, 1, report.Days15To21)
	assert.Equal(t, 1, report.Days22To28)
	assert.Equal(t, 0, report.DaysOver28)
}

func TestAggregationIdempotence(t *testing.T) {
	clock := testClock()
	vehicles := []models.VehicleRecord{
		{Statut: models.StatusProduction, Mecanique: true, DaySinceStatut: 3,
			DateCreation: testNow.AddDate(0, 0, -9).Format(time.RFC3339)},
		{Statut: models.StatusStockage, DaySinceStatut: 12,
			DateCreation: testNow.AddDate(0, 0, -40).Format(time.RFC3339)},
	}
	snapshot := make([]models.VehicleRecord, len(vehicles))
	copy(snapshot, vehicles)

	first := StatusCounts(vehicles)
	second := StatusCounts(vehicles)
	assert.Equal(t, first, second)

	assert.Equal(t, PendingSubStageCounts(vehicles), PendingSubStageCounts(vehicles))
	assert.Equal(t, Forecast(vehicles), Forecast(vehicles))
	assert.Equal(t,
		AverageDaysInPipeline(clock, vehicles, ActiveCategories),
		AverageDaysInPipeline(clock, vehicles, ActiveCategories))

	// No hidden mutation of the input collection.
	assert.Equal(t, snapshot, vehicles)
}
