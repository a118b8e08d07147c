package services

import (
	"math"

	"github.com/SebastienLaurentt/CRVO-Front-sub000/models"
)

// StatusCounts folds a collection into a per-category occurrence count, plus
// a synthetic "Tous" key holding the total record count. Categories absent
// from the input are omitted, not zero-filled. The input is never mutated.
func StatusCounts(vehicles []models.VehicleRecord) map[string]int {
	counts := map[string]int{
		models.StatusAll: len(vehicles),
	}
	for _, v := range vehicles {
		if v.Statut != "" {
			counts[v.Statut]++
		}
	}
	return counts
}

// SubStageCounts holds one counter per production sub-stage.
type SubStageCounts struct {
	DSP         int `json:"dsp"`
	Mecanique   int `json:"mecanique"`
	Jantes      int `json:"jantes"`
	CT          int `json:"ct"`
	Carrosserie int `json:"carrosserie"`
	Esthetique  int `json:"esthetique"`
}

// PendingSubStageCounts counts every pending sub-stage flag independently,
// over records in the Production category only. A vehicle with three pending
// sub-stages increments three counters.
func PendingSubStageCounts(vehicles []models.VehicleRecord) SubStageCounts {
	var counts SubStageCounts
	for _, v := range vehicles {
		if v.Statut != models.StatusProduction {
			continue
		}
		if v.DSP {
			counts.DSP++
		}
		if v.Mecanique {
			counts.Mecanique++
		}
		if v.Jantes {
			counts.Jantes++
		}
		if v.CT {
			counts.CT++
		}
		if v.Carrosserie {
			counts.Carrosserie++
		}
		if v.Esthetique {
			counts.Esthetique++
		}
	}
	return counts
}

// RemainingWorkCounts is the forecasting variant of the sub-stage fold. It
// counts like PendingSubStageCounts except for esthetique, which increments
// only when aesthetic work is the sole remaining task (all of dsp, mecanique,
// jantes, ct and carrosserie already done). The two variants are distinct
// business rules and must not be consolidated.
func RemainingWorkCounts(vehicles []models.VehicleRecord) SubStageCounts {
	var counts SubStageCounts
	for _, v := range vehicles {
		if v.Statut != models.StatusProduction {
			continue
		}
		if v.DSP {
			counts.DSP++
		}
		if v.Mecanique {
			counts.Mecanique++
		}
		if v.Jantes {
			counts.Jantes++
		}
		if v.CT {
			counts.CT++
		}
		if v.Carrosserie {
			counts.Carrosserie++
		}
		if v.Esthetique && !v.DSP && !v.Mecanique && !v.Jantes && !v.CT && !v.Carrosserie {
			counts.Esthetique++
		}
	}
	return counts
}

// AverageDaysInPipeline returns the arithmetic mean of DaysSince(dateCreation)
// across records in the given categories, rounded to the nearest integer.
// An empty subset yields 0.
func AverageDaysInPipeline(clock Clock, vehicles []models.VehicleRecord, categories []string) int {
	sum, n := 0, 0
	for _, v := range vehicles {
		if !InCategories(v, categories) {
			continue
		}
		sum += DaysSinceCreation(clock, v)
		n++
	}
	if n == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(n)))
}

// AverageDaysInStatus returns the mean of the backend-supplied daySinceStatut
// across records in the given categories, rounded to the nearest integer.
// An empty subset yields 0. This metric is NOT interchangeable with
// AverageDaysInPipeline: one measures time in the current status, the other
// measures time since intake.
func AverageDaysInStatus(vehicles []models.VehicleRecord, categories []string) int {
	sum, n := 0, 0
	for _, v := range vehicles {
		if !InCategories(v, categories) {
			continue
		}
		sum += v.DaySinceStatut
		n++
	}
	if n == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(n)))
}

// forecastBaseOffset is the number of days every active record starts from.
const forecastBaseOffset = 3

// productionOffsetRule pairs a sub-stage predicate with its projected offset.
// Rules are evaluated in order and the first match wins; offsets are never
// summed.
type productionOffsetRule struct {
	matches func(models.VehicleRecord) bool
	offset  int
}

// productionOffsetRules is the fixed business heuristic mapping remaining
// production sub-stages to projected remaining days. The priority order is
// part of the rule, not an implementation detail.
var productionOffsetRules = []productionOffsetRule{
	{func(v models.VehicleRecord) bool { return v.Mecanique && v.Carrosserie && v.DSP && v.Jantes }, 10},
	{func(v models.VehicleRecord) bool { return v.Mecanique && v.Carrosserie && v.DSP }, 7},
	{func(v models.VehicleRecord) bool { return v.Mecanique && v.Carrosserie }, 5},
	{func(v models.VehicleRecord) bool { return v.Mecanique && v.Jantes && v.DSP }, 7},
	{func(v models.VehicleRecord) bool { return v.Mecanique && v.DSP }, 4},
	{func(v models.VehicleRecord) bool { return v.Mecanique && v.Jantes }, 4},
	{func(v models.VehicleRecord) bool { return v.Mecanique }, 1},
	{func(v models.VehicleRecord) bool { return v.Esthetique }, 1},
}

// ProjectedRemainingDays applies the forecast heuristic to a single record:
// base offset plus a category offset, with the Production offset resolved by
// the first matching sub-stage rule. The result is a business estimate, not
// a measured lead time.
func ProjectedRemainingDays(v models.VehicleRecord) int {
	total := forecastBaseOffset
	switch {
	case v.Statut == models.StatusTransportAller || v.Statut == models.StatusExpertise:
		total += 20
	case v.Statut == models.StatusMagasin || v.Statut == models.StatusClient:
		total += 15
	case v.Statut == models.StatusProduction:
		for _, rule := range productionOffsetRules {
			if rule.matches(v) {
				total += rule.offset
				break
			}
		}
	}
	return total
}

// ForecastReport holds the delivery forecast chart data. ProdActuelle is a
// count of currently-active records, not a days bucket; it shares the chart
// with the buckets but is computed independently.
type ForecastReport struct {
	ProdActuelle int `json:"prodActuelle"`
	Days1To7     int `json:"days1To7"`
	Days8To14    int `json:"days8To14"`
	Days15To21   int `json:"days15To21"`
	Days22To28   int `json:"days22To28"`
	DaysOver28   int `json:"daysOver28"`
}

// Forecast buckets projected remaining days for every record in the active
// renovation subset and reports the subset size as ProdActuelle.
func Forecast(vehicles []models.VehicleRecord) ForecastReport {
	var report ForecastReport
	for _, v := range vehicles {
		if !IsActiveRenovation(v) {
			continue
		}
		report.ProdActuelle++
		switch days := ProjectedRemainingDays(v); {
		case days <= 7:
			report.Days1To7++
		case days <= 14:
			report.Days8To14++
		case days <= 21:
			report.Days15To21++
		case days <= 28:
			report.Days22To28++
		default:
			report.DaysOver28++
		}
	}
	return report
}
