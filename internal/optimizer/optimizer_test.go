package optimizer_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonsys/scheduling-service/internal/domain"
	"github.com/salonsys/scheduling-service/internal/optimizer"
)

// monday is a fixed Monday (weekday index 0) used across scenarios so every
// test shares the same salon operating-hours grid.
var monday = time.Date(2026, time.August, 3, 0, 0, 0, 0, time.UTC)
var sunday = time.Date(2026, time.August, 9, 0, 0, 0, 0, time.UTC)

func mustSkill(t *testing.T, svcType domain.ServiceType, level domain.SkillLevel) domain.Skill {
	t.Helper()
	sk, err := domain.NewSkill(svcType, level, nil, 1)
	require.NoError(t, err)
	return sk
}

func mustAvailability(t *testing.T, day int, startHour, endHour int) domain.Availability {
	t.Helper()
	av, err := domain.NewAvailability(day, domain.NewClockTime(startHour, 0), domain.NewClockTime(endHour, 0), false)
	require.NoError(t, err)
	return av
}

func mustStaff(t *testing.T, id, name string, skills []domain.Skill, availability []domain.Availability, rate float64) *domain.Staff {
	t.Helper()
	staff, err := domain.NewStaff(id, name, skills, availability, decimal.NewFromFloat(rate), 8, 40, 15, 4)
	require.NoError(t, err)
	return staff
}

func mustService(t *testing.T, svcType domain.ServiceType, duration int, level domain.SkillLevel, price float64) domain.Service {
	t.Helper()
	svc, err := domain.NewService(svcType, duration, level, decimal.NewFromFloat(price), 0, 0)
	require.NoError(t, err)
	return svc
}

func mustCustomer(t *testing.T, id, name string, priority domain.Priority, preferred []string) domain.Customer {
	t.Helper()
	c, err := domain.NewCustomer(id, name, "555-0100", name+"@example.com", priority, preferred, "")
	require.NoError(t, err)
	return c
}

func mustBooking(t *testing.T, id string, customer domain.Customer, services []domain.Service, start time.Time, flexible bool, latest *time.Time) *domain.Booking {
	t.Helper()
	b, err := domain.NewBooking(id, customer, services, start, domain.BookingScheduled, nil, flexible, latest)
	require.NoError(t, err)
	return b
}

func standardSalon(t *testing.T, maxStaff, minStaff int) domain.SalonConstraints {
	t.Helper()
	hours := domain.OperatingHours{
		0: {Open: domain.NewClockTime(9, 0), Close: domain.NewClockTime(18, 0)},
		1: {Open: domain.NewClockTime(9, 0), Close: domain.NewClockTime(18, 0)},
		2: {Open: domain.NewClockTime(9, 0), Close: domain.NewClockTime(18, 0)},
		3: {Open: domain.NewClockTime(9, 0), Close: domain.NewClockTime(18, 0)},
		4: {Open: domain.NewClockTime(9, 0), Close: domain.NewClockTime(18, 0)},
	}
	salon, err := domain.NewSalonConstraints(hours, maxStaff, minStaff, 0, 0, nil)
	require.NoError(t, err)
	return salon
}

func standardScheduling(t *testing.T) domain.SchedulingConstraints {
	t.Helper()
	sched, err := domain.NewSchedulingConstraints(30*time.Minute, 15*time.Minute, 2*time.Hour, 15*time.Minute, 3, false, 1.0)
	require.NoError(t, err)
	return sched
}

func equalWeights(t *testing.T) domain.OptimizationObjectives {
	t.Helper()
	obj, err := domain.NewOptimizationObjectives(0.25, 0.25, 0.25, 0.25)
	require.NoError(t, err)
	norm, err := obj.NormalizeWeights()
	require.NoError(t, err)
	return norm
}

// S1 — Single feasible booking.
func TestOptimizeSchedule_S1_SingleFeasibleBooking(t *testing.T) {
	staff := mustStaff(t, "staff_001", "Ada",
		[]domain.Skill{mustSkill(t, domain.ServiceCut, domain.Expert)},
		[]domain.Availability{mustAvailability(t, 0, 9, 18)},
		30,
	)
	customer := mustCustomer(t, "cust_001", "Customer One", domain.Normal, nil)
	svc := mustService(t, domain.ServiceCut, 60, domain.Intermediate, 50)
	booking := mustBooking(t, "booking_001", customer, []domain.Service{svc}, monday.Add(10*time.Hour), false, nil)

	result := optimizer.OptimizeSchedule(optimizer.Input{
		Salon:        standardSalon(t, 1, 0),
		Scheduling:   standardScheduling(t),
		Objectives:   equalWeights(t),
		Staff:        []*domain.Staff{staff},
		Bookings:     []*domain.Booking{booking},
		ScheduleDate: monday,
	})

	require.Equal(t, optimizer.StatusOptimal, result.Status)
	require.Len(t, result.Schedule, 1)
	entry := result.Schedule[0]
	assert.Equal(t, "booking_001", entry.BookingID)
	assert.Equal(t, "staff_001", entry.StaffID)
	assert.Equal(t, 4, entry.StartSlot) // 10:00 is slot 4 from a 09:00 open
	assert.Equal(t, 4, entry.DurationSlots)
}

// S2 — Closed day.
func TestOptimizeSchedule_S2_ClosedDay(t *testing.T) {
	staff := mustStaff(t, "staff_001", "Ada",
		[]domain.Skill{mustSkill(t, domain.ServiceCut, domain.Expert)},
		[]domain.Availability{mustAvailability(t, 0, 9, 18)},
		30,
	)
	customer := mustCustomer(t, "cust_001", "Customer One", domain.Normal, nil)
	svc := mustService(t, domain.ServiceCut, 60, domain.Intermediate, 50)
	booking := mustBooking(t, "booking_001", customer, []domain.Service{svc}, sunday.Add(10*time.Hour), false, nil)

	result := optimizer.OptimizeSchedule(optimizer.Input{
		Salon:        standardSalon(t, 1, 0),
		Scheduling:   standardScheduling(t),
		Objectives:   equalWeights(t),
		Staff:        []*domain.Staff{staff},
		Bookings:     []*domain.Booking{booking},
		ScheduleDate: sunday,
	})

	assert.Equal(t, optimizer.StatusInfeasible, result.Status)
	assert.Contains(t, result.Message, "ClosedDay")
	assert.Empty(t, result.Schedule)
}

// S3 — Skill shortfall.
func TestOptimizeSchedule_S3_SkillShortfall(t *testing.T) {
	staff := mustStaff(t, "staff_001", "Ada",
		[]domain.Skill{mustSkill(t, domain.ServiceColor, domain.Intermediate)},
		[]domain.Availability{mustAvailability(t, 0, 9, 18)},
		30,
	)
	customer := mustCustomer(t, "cust_001", "Customer One", domain.Normal, nil)
	svc := mustService(t, domain.ServiceColor, 90, domain.Expert, 120)
	booking := mustBooking(t, "booking_001", customer, []domain.Service{svc}, monday.Add(10*time.Hour), false, nil)

	result := optimizer.OptimizeSchedule(optimizer.Input{
		Salon:        standardSalon(t, 1, 0),
		Scheduling:   standardScheduling(t),
		Objectives:   equalWeights(t),
		Staff:        []*domain.Staff{staff},
		Bookings:     []*domain.Booking{booking},
		ScheduleDate: monday,
	})

	assert.Equal(t, optimizer.StatusInfeasible, result.Status)
	assert.Contains(t, result.Message, "Unservable")
	assert.Contains(t, result.Message, "booking_001")
}

// S4 — VIP preference.
func TestOptimizeSchedule_S4_VIPPreference(t *testing.T) {
	staffA := mustStaff(t, "staff_A", "Ada",
		[]domain.Skill{mustSkill(t, domain.ServiceCut, domain.Expert)},
		[]domain.Availability{mustAvailability(t, 0, 9, 18)},
		30,
	)
	staffB := mustStaff(t, "staff_B", "Beatrice",
		[]domain.Skill{mustSkill(t, domain.ServiceCut, domain.Expert)},
		[]domain.Availability{mustAvailability(t, 0, 9, 18)},
		30,
	)
	customer := mustCustomer(t, "cust_vip", "VIP Customer", domain.VIP, []string{"staff_A"})
	svc := mustService(t, domain.ServiceCut, 60, domain.Intermediate, 50)
	booking := mustBooking(t, "booking_001", customer, []domain.Service{svc}, monday.Add(10*time.Hour), false, nil)

	result := optimizer.OptimizeSchedule(optimizer.Input{
		Salon:        standardSalon(t, 2, 0),
		Scheduling:   standardScheduling(t),
		Objectives:   equalWeights(t),
		Staff:        []*domain.Staff{staffA, staffB},
		Bookings:     []*domain.Booking{booking},
		ScheduleDate: monday,
	})

	require.Equal(t, optimizer.StatusOptimal, result.Status)
	require.Len(t, result.Schedule, 1)
	assert.Equal(t, "staff_A", result.Schedule[0].StaffID)
}

// S5 — Two bookings, one staff, overlap; both flexible.
func TestOptimizeSchedule_S5_TwoBookingsOneStaff(t *testing.T) {
	staff := mustStaff(t, "staff_001", "Ada",
		[]domain.Skill{mustSkill(t, domain.ServiceCut, domain.Expert)},
		[]domain.Availability{mustAvailability(t, 0, 9, 18)},
		30,
	)
	customer1 := mustCustomer(t, "cust_001", "Customer One", domain.Normal, nil)
	customer2 := mustCustomer(t, "cust_002", "Customer Two", domain.Normal, nil)
	svc := mustService(t, domain.ServiceCut, 60, domain.Intermediate, 50)

	latest := monday.Add(12 * time.Hour)
	booking1 := mustBooking(t, "booking_001", customer1, []domain.Service{svc}, monday.Add(10*time.Hour), true, &latest)
	booking2 := mustBooking(t, "booking_002", customer2, []domain.Service{svc}, monday.Add(10*time.Hour), true, &latest)

	result := optimizer.OptimizeSchedule(optimizer.Input{
		Salon:        standardSalon(t, 1, 0),
		Scheduling:   standardScheduling(t),
		Objectives:   equalWeights(t),
		Staff:        []*domain.Staff{staff},
		Bookings:     []*domain.Booking{booking1, booking2},
		ScheduleDate: monday,
	})

	require.Equal(t, optimizer.StatusOptimal, result.Status)
	require.Len(t, result.Schedule, 2)

	e1, e2 := result.Schedule[0], result.Schedule[1]
	assert.NotEqual(t, e1.StartSlot, e2.StartSlot, "the two bookings must not start at the same slot for the same staff")

	// Non-overlap: one span must end at or before the other begins.
	end1 := e1.StartSlot + e1.DurationSlots
	end2 := e2.StartSlot + e2.DurationSlots
	nonOverlapping := end1 <= e2.StartSlot || end2 <= e1.StartSlot
	assert.True(t, nonOverlapping, "entries must not overlap for the same staff")

	// Within [10:00, 13:00): open(09:00) + slot*15min, windows bound by latest=12:00 start + 60min service.
	grid := optimizer.NewGrid(standardSalon(t, 1, 0), monday)
	for _, e := range result.Schedule {
		clock := grid.SlotToClock(e.StartSlot)
		assert.True(t, !clock.Before(monday.Add(10*time.Hour)) && !clock.After(monday.Add(12*time.Hour)))
	}
}

// S6 — Min-staff below supply.
func TestOptimizeSchedule_S6_MinStaffBelowSupply(t *testing.T) {
	staff := mustStaff(t, "staff_001", "Ada",
		[]domain.Skill{mustSkill(t, domain.ServiceCut, domain.Expert)},
		[]domain.Availability{mustAvailability(t, 0, 9, 18)},
		30,
	)
	customer := mustCustomer(t, "cust_001", "Customer One", domain.Normal, nil)
	svc := mustService(t, domain.ServiceCut, 60, domain.Intermediate, 50)
	booking := mustBooking(t, "booking_001", customer, []domain.Service{svc}, monday.Add(10*time.Hour), false, nil)

	result := optimizer.OptimizeSchedule(optimizer.Input{
		Salon:        standardSalon(t, 2, 2), // min_staff_count=2, only one staff available
		Scheduling:   standardScheduling(t),
		Objectives:   equalWeights(t),
		Staff:        []*domain.Staff{staff},
		Bookings:     []*domain.Booking{booking},
		ScheduleDate: monday,
	})

	assert.Equal(t, optimizer.StatusInfeasible, result.Status)
	assert.Contains(t, result.Message, "OverCapacity")
}

func TestOptimizeSchedule_EmptyStaffList(t *testing.T) {
	customer := mustCustomer(t, "cust_001", "Customer One", domain.Normal, nil)
	svc := mustService(t, domain.ServiceCut, 60, domain.Intermediate, 50)
	booking := mustBooking(t, "booking_001", customer, []domain.Service{svc}, monday.Add(10*time.Hour), false, nil)

	result := optimizer.OptimizeSchedule(optimizer.Input{
		Salon:        standardSalon(t, 1, 0),
		Scheduling:   standardScheduling(t),
		Objectives:   equalWeights(t),
		Staff:        nil,
		Bookings:     []*domain.Booking{booking},
		ScheduleDate: monday,
	})

	assert.Equal(t, optimizer.StatusInfeasible, result.Status)
	assert.Contains(t, result.Message, "EmptyInputs")
}

func TestOptimizeSchedule_UnnormalizedObjectivesRejected(t *testing.T) {
	staff := mustStaff(t, "staff_001", "Ada",
		[]domain.Skill{mustSkill(t, domain.ServiceCut, domain.Expert)},
		[]domain.Availability{mustAvailability(t, 0, 9, 18)},
		30,
	)
	customer := mustCustomer(t, "cust_001", "Customer One", domain.Normal, nil)
	svc := mustService(t, domain.ServiceCut, 60, domain.Intermediate, 50)
	booking := mustBooking(t, "booking_001", customer, []domain.Service{svc}, monday.Add(10*time.Hour), false, nil)

	unnormalized, err := domain.NewOptimizationObjectives(1, 1, 1, 1) // sums to 4, not 1
	require.NoError(t, err)

	result := optimizer.OptimizeSchedule(optimizer.Input{
		Salon:        standardSalon(t, 1, 0),
		Scheduling:   standardScheduling(t),
		Objectives:   unnormalized,
		Staff:        []*domain.Staff{staff},
		Bookings:     []*domain.Booking{booking},
		ScheduleDate: monday,
	})

	assert.Equal(t, optimizer.StatusUnknown, result.Status)
	assert.Contains(t, result.Message, "UnnormalizedObjectives")
}

// Skill adequacy invariant: every schedule entry's assigned staff can
// perform every service of its booking at the required level, verified
// directly against the domain model rather than re-deriving eligibility.
func TestOptimizeSchedule_SkillAdequacyInvariant(t *testing.T) {
	staff := mustStaff(t, "staff_001", "Ada",
		[]domain.Skill{mustSkill(t, domain.ServiceCut, domain.Expert), mustSkill(t, domain.ServiceColor, domain.Expert)},
		[]domain.Availability{mustAvailability(t, 0, 9, 18)},
		30,
	)
	customer := mustCustomer(t, "cust_001", "Customer One", domain.Normal, nil)
	svc1 := mustService(t, domain.ServiceCut, 30, domain.Intermediate, 30)
	svc2 := mustService(t, domain.ServiceColor, 45, domain.Advanced, 80)
	booking := mustBooking(t, "booking_001", customer, []domain.Service{svc1, svc2}, monday.Add(10*time.Hour), false, nil)

	result := optimizer.OptimizeSchedule(optimizer.Input{
		Salon:        standardSalon(t, 1, 0),
		Scheduling:   standardScheduling(t),
		Objectives:   equalWeights(t),
		Staff:        []*domain.Staff{staff},
		Bookings:     []*domain.Booking{booking},
		ScheduleDate: monday,
	})

	require.Equal(t, optimizer.StatusOptimal, result.Status)
	require.Len(t, result.Schedule, 1)
	assert.True(t, staff.CanPerform(domain.ServiceCut, domain.Intermediate))
	assert.True(t, staff.CanPerform(domain.ServiceColor, domain.Advanced))
}

// Overtime: a lone staff member with a 1-hour max_hours_per_day is still
// the only one who can cover three back-to-back hour-long bookings. With
// overtime disallowed this would be infeasible (the per-day work limit is
// a hard cap); with it allowed the solver must go beyond max_hours_per_day
// and pay the premium only on the excess, not on the whole day.
func TestOptimizeSchedule_Overtime_CoversBeyondMaxHoursPerDay(t *testing.T) {
	staff, err := domain.NewStaff(
		"staff_001", "Ada",
		[]domain.Skill{mustSkill(t, domain.ServiceCut, domain.Expert)},
		[]domain.Availability{mustAvailability(t, 0, 9, 18)},
		decimal.NewFromFloat(30), // hourly rate
		1, 40, 15, 4,             // max_hours_per_day: 1
	)
	require.NoError(t, err)

	customer := mustCustomer(t, "cust_001", "Customer One", domain.Normal, nil)
	svc := mustService(t, domain.ServiceCut, 60, domain.Intermediate, 50)
	booking1 := mustBooking(t, "booking_001", customer, []domain.Service{svc}, monday.Add(9*time.Hour), false, nil)
	booking2 := mustBooking(t, "booking_002", customer, []domain.Service{svc}, monday.Add(10*time.Hour), false, nil)
	booking3 := mustBooking(t, "booking_003", customer, []domain.Service{svc}, monday.Add(11*time.Hour), false, nil)

	sched, err := domain.NewSchedulingConstraints(30*time.Minute, 0, 2*time.Hour, 15*time.Minute, 3, true, 1.5)
	require.NoError(t, err)

	result := optimizer.OptimizeSchedule(optimizer.Input{
		Salon:        standardSalon(t, 1, 0),
		Scheduling:   sched,
		Objectives:   equalWeights(t),
		Staff:        []*domain.Staff{staff},
		Bookings:     []*domain.Booking{booking1, booking2, booking3},
		ScheduleDate: monday,
	})

	require.Equal(t, optimizer.StatusOptimal, result.Status)
	require.Len(t, result.Schedule, 3)
	for _, entry := range result.Schedule {
		assert.Equal(t, "staff_001", entry.StaffID)
	}
}
