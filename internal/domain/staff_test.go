package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonsys/scheduling-service/internal/domain"
)

func TestNewSkill_RejectsInvalidServiceType(t *testing.T) {
	_, err := domain.NewSkill(domain.ServiceType("bogus"), domain.Expert, nil, 1)
	assert.Error(t, err)
}

func TestNewSkill_RejectsNegativeYears(t *testing.T) {
	_, err := domain.NewSkill(domain.ServiceCut, domain.Expert, nil, -1)
	assert.Error(t, err)
}

func TestNewAvailability_RejectsStartAfterEnd(t *testing.T) {
	_, err := domain.NewAvailability(0, domain.NewClockTime(18, 0), domain.NewClockTime(9, 0), false)
	assert.Error(t, err)
}

func TestNewAvailability_RejectsOutOfRangeWeekday(t *testing.T) {
	_, err := domain.NewAvailability(7, domain.NewClockTime(9, 0), domain.NewClockTime(18, 0), false)
	assert.Error(t, err)
}

func TestNewStaff_RejectsDuplicateSkillForSameServiceType(t *testing.T) {
	cut1, err := domain.NewSkill(domain.ServiceCut, domain.Intermediate, nil, 1)
	require.NoError(t, err)
	cut2, err := domain.NewSkill(domain.ServiceCut, domain.Expert, nil, 5)
	require.NoError(t, err)

	_, err = domain.NewStaff(
		"staff_001", "Ada",
		[]domain.Skill{cut1, cut2},
		nil,
		decimal.NewFromInt(30),
		8, 40, 15, 4,
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate skill")
}

func TestNewStaff_RejectsOverlappingAvailabilityOnSameDay(t *testing.T) {
	av1, err := domain.NewAvailability(0, domain.NewClockTime(9, 0), domain.NewClockTime(13, 0), false)
	require.NoError(t, err)
	av2, err := domain.NewAvailability(0, domain.NewClockTime(12, 0), domain.NewClockTime(17, 0), false)
	require.NoError(t, err)

	_, err = domain.NewStaff(
		"staff_001", "Ada",
		nil,
		[]domain.Availability{av1, av2},
		decimal.NewFromInt(30),
		8, 40, 15, 4,
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overlapping availability")
}

func TestNewStaff_AllowsNonOverlappingAvailabilityAcrossDifferentDays(t *testing.T) {
	monday, err := domain.NewAvailability(0, domain.NewClockTime(9, 0), domain.NewClockTime(13, 0), false)
	require.NoError(t, err)
	tuesday, err := domain.NewAvailability(1, domain.NewClockTime(9, 0), domain.NewClockTime(13, 0), false)
	require.NoError(t, err)

	staff, err := domain.NewStaff(
		"staff_001", "Ada",
		nil,
		[]domain.Availability{monday, tuesday},
		decimal.NewFromInt(30),
		8, 40, 15, 4,
	)
	require.NoError(t, err)
	assert.Len(t, staff.Availability, 2)
}

func TestNewStaff_RejectsNonPositiveHourlyRate(t *testing.T) {
	_, err := domain.NewStaff("staff_001", "Ada", nil, nil, decimal.Zero, 8, 40, 15, 4)
	assert.Error(t, err)
}

func TestStaff_CanPerform(t *testing.T) {
	skill, err := domain.NewSkill(domain.ServiceCut, domain.Advanced, nil, 3)
	require.NoError(t, err)
	staff, err := domain.NewStaff("staff_001", "Ada", []domain.Skill{skill}, nil, decimal.NewFromInt(30), 8, 40, 15, 4)
	require.NoError(t, err)

	assert.True(t, staff.CanPerform(domain.ServiceCut, domain.Intermediate))
	assert.True(t, staff.CanPerform(domain.ServiceCut, domain.Advanced))
	assert.False(t, staff.CanPerform(domain.ServiceCut, domain.Expert))
	assert.False(t, staff.CanPerform(domain.ServiceColor, domain.Beginner))
}

func TestClockTime_String(t *testing.T) {
	assert.Equal(t, "09:30", domain.NewClockTime(9, 30).String())
	assert.Equal(t, "00:00", domain.NewClockTime(0, 0).String())
}

func TestClockTime_Ordering(t *testing.T) {
	assert.True(t, domain.NewClockTime(9, 0) < domain.NewClockTime(9, 1))
	assert.True(t, time.Duration(domain.NewClockTime(10, 0)) == 10*time.Hour)
}
