package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonsys/scheduling-service/internal/domain"
)

func testCustomer(t *testing.T) domain.Customer {
	t.Helper()
	c, err := domain.NewCustomer("cust_001", "Jane Doe", "555-0100", "jane@example.com", domain.Normal, nil, "")
	require.NoError(t, err)
	return c
}

func testService(t *testing.T) domain.Service {
	t.Helper()
	svc, err := domain.NewService(domain.ServiceCut, 30, domain.Intermediate, decimal.NewFromInt(40), 0, 0)
	require.NoError(t, err)
	return svc
}

func TestNewBooking_RejectsEmptyID(t *testing.T) {
	_, err := domain.NewBooking("", testCustomer(t), []domain.Service{testService(t)}, time.Now(), domain.BookingScheduled, nil, false, nil)
	assert.Error(t, err)
}

func TestNewBooking_RejectsNoServices(t *testing.T) {
	_, err := domain.NewBooking("booking_001", testCustomer(t), nil, time.Now(), domain.BookingScheduled, nil, false, nil)
	assert.Error(t, err)
}

func TestNewBooking_RejectsInvalidStatus(t *testing.T) {
	_, err := domain.NewBooking("booking_001", testCustomer(t), []domain.Service{testService(t)}, time.Now(), domain.BookingStatus("bogus"), nil, false, nil)
	assert.Error(t, err)
}

func TestNewBooking_FlexibleWithoutLatestAcceptableStartIsRejected(t *testing.T) {
	_, err := domain.NewBooking("booking_001", testCustomer(t), []domain.Service{testService(t)}, time.Now(), domain.BookingScheduled, nil, true, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "latest_acceptable_start")
}

func TestNewBooking_FlexibleWithLatestBeforeScheduledStartIsRejected(t *testing.T) {
	start := time.Date(2026, time.August, 3, 10, 0, 0, 0, time.UTC)
	earlier := start.Add(-time.Hour)
	_, err := domain.NewBooking("booking_001", testCustomer(t), []domain.Service{testService(t)}, start, domain.BookingScheduled, nil, true, &earlier)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before scheduled_start")
}

func TestNewBooking_FlexibleWithValidWindowSucceeds(t *testing.T) {
	start := time.Date(2026, time.August, 3, 10, 0, 0, 0, time.UTC)
	latest := start.Add(2 * time.Hour)
	booking, err := domain.NewBooking("booking_001", testCustomer(t), []domain.Service{testService(t)}, start, domain.BookingScheduled, nil, true, &latest)
	require.NoError(t, err)
	assert.True(t, booking.IsFlexibleTime)
	assert.Equal(t, latest, *booking.LatestAcceptableStart)
}

func TestNewBooking_NonFlexibleIgnoresLatestAcceptableStart(t *testing.T) {
	start := time.Date(2026, time.August, 3, 10, 0, 0, 0, time.UTC)
	ignored := start.Add(time.Hour)
	booking, err := domain.NewBooking("booking_001", testCustomer(t), []domain.Service{testService(t)}, start, domain.BookingScheduled, nil, false, &ignored)
	require.NoError(t, err)
	assert.Nil(t, booking.LatestAcceptableStart)
}

func TestBooking_TotalDurationSumsSetupDurationCleanup(t *testing.T) {
	svc, err := domain.NewService(domain.ServiceColor, 60, domain.Advanced, decimal.NewFromInt(100), 10, 5)
	require.NoError(t, err)
	booking, err := domain.NewBooking("booking_001", testCustomer(t), []domain.Service{svc}, time.Now(), domain.BookingScheduled, nil, false, nil)
	require.NoError(t, err)

	assert.Equal(t, 75*time.Minute, booking.TotalDuration())
}

func TestBooking_EstimatedEndTime(t *testing.T) {
	start := time.Date(2026, time.August, 3, 10, 0, 0, 0, time.UTC)
	svc, err := domain.NewService(domain.ServiceCut, 45, domain.Intermediate, decimal.NewFromInt(40), 0, 0)
	require.NoError(t, err)
	booking, err := domain.NewBooking("booking_001", testCustomer(t), []domain.Service{svc}, start, domain.BookingScheduled, nil, false, nil)
	require.NoError(t, err)

	assert.Equal(t, start.Add(45*time.Minute), booking.EstimatedEndTime())
}

func TestBooking_NeedsServiceType(t *testing.T) {
	svc, err := domain.NewService(domain.ServiceFacial, 30, domain.Beginner, decimal.NewFromInt(20), 0, 0)
	require.NoError(t, err)
	booking, err := domain.NewBooking("booking_001", testCustomer(t), []domain.Service{svc}, time.Now(), domain.BookingScheduled, nil, false, nil)
	require.NoError(t, err)

	assert.True(t, booking.NeedsServiceType(domain.ServiceFacial))
	assert.False(t, booking.NeedsServiceType(domain.ServiceColor))

	level, ok := booking.RequiredSkillLevel(domain.ServiceFacial)
	assert.True(t, ok)
	assert.Equal(t, domain.Beginner, level)
}
