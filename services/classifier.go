package services

import (
	"time"

	"github.com/SebastienLaurentt/CRVO-Front-sub000/models"
)

const millisPerDay = 86_400_000

// Clock abstracts the current instant so that day computations stay testable.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by time.Now.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock is a Clock pinned to a single instant (primarily for testing).
type FixedClock struct {
	Instant time.Time
}

// Now returns the pinned instant.
func (c FixedClock) Now() time.Time {
	return c.Instant
}

// DaysSince returns the number of whole days elapsed between t and the
// clock's current instant: floor((now - t) / 86_400_000 ms). Partial days
// count as the lower integer. A timestamp in the future yields a negative
// result; callers must not assume non-negativity.
func DaysSince(clock Clock, t time.Time) int {
	ms := clock.Now().Sub(t).Milliseconds()
	days := ms / millisPerDay
	if ms < 0 && ms%millisPerDay != 0 {
		days--
	}
	return int(days)
}

// DaysSinceCreation parses a record's intake timestamp and returns the whole
// days elapsed since it. Records with an unparseable timestamp report 0 so
// that a single bad row cannot poison a whole aggregation.
func DaysSinceCreation(clock Clock, v models.VehicleRecord) int {
	t, err := time.Parse(time.RFC3339, v.DateCreation)
	if err != nil {
		return 0
	}
	return DaysSince(clock, t)
}

// ActiveCategories is the "active renovation" subset of the pipeline.
var ActiveCategories = []string{
	models.StatusProduction,
	models.StatusMagasin,
	models.StatusExpertise,
	models.StatusClient,
}

// InactiveCategories is the "inactive/logistics" subset of the pipeline.
var InactiveCategories = []string{
	models.StatusStockage,
	models.StatusTransportRetour,
}

// InCategories reports whether the record's status is one of the given
// categories.
func InCategories(v models.VehicleRecord, categories []string) bool {
	for _, c := range categories {
		if v.Statut == c {
			return true
		}
	}
	return false
}

// IsActiveRenovation reports whether the record belongs to the active
// renovation set (Production, Magasin, Expertise, Client). This same subset
// feeds delivery forecasting.
func IsActiveRenovation(v models.VehicleRecord) bool {
	return InCategories(v, ActiveCategories)
}
