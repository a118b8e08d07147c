package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidStatus(t *testing.T) {
	for _, status := range StatusCategories {
		assert.True(t, IsValidStatus(status), "%q should be a valid status", status)
	}

	// "Tous" is a filter value, never a stored status.
	assert.False(t, IsValidStatus(StatusAll))
	assert.False(t, IsValidStatus(""))
	assert.False(t, IsValidStatus("production"))
}

func TestIsValidSubStage(t *testing.T) {
	for _, name := range SubStages {
		assert.True(t, IsValidSubStage(name), "%q should be a valid sub-stage", name)
	}

	assert.False(t, IsValidSubStage("Mecanique"), "sub-stage names are lowercase")
	assert.False(t, IsValidSubStage("peinture"))
	assert.False(t, IsValidSubStage(""))
}

func TestSubStagePending(t *testing.T) {
	vehicle := VehicleRecord{
		Statut:      StatusProduction,
		Mecanique:   true,
		CT:          true,
		Carrosserie: false,
	}

	assert.True(t, vehicle.SubStagePending(SubStageMecanique))
	assert.True(t, vehicle.SubStagePending(SubStageCT))
	assert.False(t, vehicle.SubStagePending(SubStageCarrosserie))
	assert.False(t, vehicle.SubStagePending(SubStageDSP))

	// Unknown names never report pending work.
	assert.False(t, vehicle.SubStagePending("peinture"))
}
