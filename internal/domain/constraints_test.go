package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonsys/scheduling-service/internal/domain"
)

func TestNewSalonConstraints_RejectsMinStaffAboveMaxStaff(t *testing.T) {
	_, err := domain.NewSalonConstraints(nil, 2, 3, 0, 0, nil)
	assert.Error(t, err)
}

func TestNewSalonConstraints_RejectsOpenAfterClose(t *testing.T) {
	hours := domain.OperatingHours{
		0: {Open: domain.NewClockTime(18, 0), Close: domain.NewClockTime(9, 0)},
	}
	_, err := domain.NewSalonConstraints(hours, 3, 1, 0, 0, nil)
	assert.Error(t, err)
}

func TestNewSalonConstraints_CopiesEquipmentMap(t *testing.T) {
	equipment := map[string]int{"dryer": 2}
	salon, err := domain.NewSalonConstraints(nil, 3, 1, 0, 0, equipment)
	require.NoError(t, err)

	equipment["dryer"] = 99
	assert.Equal(t, 2, salon.EquipmentConstraints["dryer"], "mutating the caller's map must not affect the constructed value")
}

func TestNewSchedulingConstraints_RejectsOvertimePremiumBelowOne(t *testing.T) {
	_, err := domain.NewSchedulingConstraints(30*time.Minute, 15*time.Minute, 2*time.Hour, 15*time.Minute, 3, true, 0.9)
	assert.Error(t, err)
}

func TestNewSchedulingConstraints_AllowsPremiumOfExactlyOne(t *testing.T) {
	_, err := domain.NewSchedulingConstraints(30*time.Minute, 15*time.Minute, 2*time.Hour, 15*time.Minute, 3, true, 1.0)
	assert.NoError(t, err)
}

func TestNewOptimizationObjectives_RejectsNegativeWeight(t *testing.T) {
	_, err := domain.NewOptimizationObjectives(-0.1, 0.5, 0.3, 0.3)
	assert.Error(t, err)
}

func TestOptimizationObjectives_NormalizeWeightsSumsToOne(t *testing.T) {
	obj, err := domain.NewOptimizationObjectives(2, 2, 4, 2)
	require.NoError(t, err)
	assert.False(t, obj.IsNormalized())

	normalized, err := obj.NormalizeWeights()
	require.NoError(t, err)

	sum := normalized.CustomerSatisfaction + normalized.StaffUtilization + normalized.CostMinimization + normalized.ScheduleStability
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.True(t, normalized.IsNormalized())
	assert.InDelta(t, 0.4, normalized.CostMinimization, 1e-9)
}

func TestOptimizationObjectives_NormalizeWeightsRejectsAllZero(t *testing.T) {
	obj, err := domain.NewOptimizationObjectives(0, 0, 0, 0)
	require.NoError(t, err)

	_, err = obj.NormalizeWeights()
	assert.Error(t, err)
}

func TestOptimizationObjectives_IsNormalizedAcceptsWeightsThatAlreadySumToOne(t *testing.T) {
	obj, err := domain.NewOptimizationObjectives(0.25, 0.25, 0.25, 0.25)
	require.NoError(t, err)
	// Never run through NormalizeWeights, but the sum is already 1.0 within
	// tolerance, so IsNormalized reports true without requiring the call.
	assert.True(t, obj.IsNormalized())
}

func TestOptimizationObjectives_IsNormalizedRejectsUnscaledWeights(t *testing.T) {
	obj, err := domain.NewOptimizationObjectives(1, 1, 1, 1)
	require.NoError(t, err)
	assert.False(t, obj.IsNormalized())
}
