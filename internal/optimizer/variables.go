package optimizer

import (
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/salonsys/scheduling-service/internal/domain"
)

// AssignKey identifies one assignment decision variable: booking b starts at
// slot Slot served by staff Staff. Keys are opaque to everything outside this
// package — the constraint and extraction layers never parse them.
type AssignKey struct {
	BookingID string
	StaffID   string
	Slot      int
}

// OccKey identifies one staff-occupancy decision variable.
type OccKey struct {
	StaffID string
	Slot    int
}

// Variables holds the two boolean decision-variable families plus
// enough bookkeeping (span lengths, per-slot indexes) for the constraint and
// objective builders to consume without re-deriving eligibility or duration.
type Variables struct {
	Assign map[AssignKey]cpmodel.BoolVar
	Occ    map[OccKey]cpmodel.BoolVar

	// AssignByBookingStaff indexes every start slot offered to a (booking,
	// staff) pair, for the buffer-between-bookings constraint.
	AssignByBookingStaff map[[2]string][]int
	// AssignCoveringSlot indexes every AssignKey whose span covers (staff,
	// slot), for exclusivity/occupancy coupling.
	AssignCoveringSlot map[OccKey][]AssignKey
	// SpanLength is the number of slots booking b occupies.
	SpanLength map[string]int
}

func newVariables() *Variables {
	return &Variables{
		Assign:               make(map[AssignKey]cpmodel.BoolVar),
		Occ:                  make(map[OccKey]cpmodel.BoolVar),
		AssignByBookingStaff: make(map[[2]string][]int),
		AssignCoveringSlot:   make(map[OccKey][]AssignKey),
		SpanLength:           make(map[string]int),
	}
}

// BuildVariables creates assign[b,s,k] for every eligible (booking, staff,
// start-slot) triple that fits on the grid, inside the staff's availability,
// and inside the scheduling constraints' wait tolerance — and
// occ[s,k] for every (staff, slot) on the grid.
func BuildVariables(
	model *cpmodel.CpModelBuilder,
	grid Grid,
	staffList []*domain.Staff,
	staffByID map[string]*domain.Staff,
	bookings []*domain.Booking,
	eligibility Eligibility,
	sched domain.SchedulingConstraints,
) *Variables {
	vars := newVariables()

	for _, s := range staffList {
		for k := 0; k < grid.SlotCount; k++ {
			vars.Occ[OccKey{StaffID: s.ID, Slot: k}] = model.NewBoolVar().WithName("occ")
		}
	}

	for _, b := range bookings {
		length := SlotsForDuration(b.TotalDuration())
		vars.SpanLength[b.ID] = length
		if length == 0 || !eligibility.IsEligible(b.ID) {
			continue
		}
		for _, staffID := range eligibility.StaffFor(b.ID) {
			s := staffByID[staffID]
			for k := 0; k+length <= grid.SlotCount; k++ {
				if !spanWithinAvailability(grid, s, k, length) {
					continue
				}
				if !withinWaitTolerance(grid, b, sched, k) {
					continue
				}
				key := AssignKey{BookingID: b.ID, StaffID: staffID, Slot: k}
				vars.Assign[key] = model.NewBoolVar().WithName("assign")
				vars.AssignByBookingStaff[[2]string{b.ID, staffID}] = append(vars.AssignByBookingStaff[[2]string{b.ID, staffID}], k)

				for slot := k; slot < k+length; slot++ {
					occKey := OccKey{StaffID: staffID, Slot: slot}
					vars.AssignCoveringSlot[occKey] = append(vars.AssignCoveringSlot[occKey], key)
				}
			}
		}
	}

	return vars
}

// spanWithinAvailability reports whether every slot in [start, start+length)
// lies inside one of the staff's availability windows for the grid's weekday.
func spanWithinAvailability(grid Grid, s *domain.Staff, start, length int) bool {
	windows := s.AvailabilityOn(grid.Weekday)
	if len(windows) == 0 {
		return false
	}
	for slot := start; slot < start+length; slot++ {
		slotStart := grid.Open + domain.ClockTime(time.Duration(slot)*SlotDuration)
		slotEnd := slotStart + domain.ClockTime(SlotDuration)
		covered := false
		for _, w := range windows {
			if w.StartTime <= slotStart && slotEnd <= w.EndTime {
				covered = true
				break
			}
		}
		if !covered {
			return false
		}
	}
	return true
}

// withinWaitTolerance: non-flexible bookings may only
// start within max_customer_wait_time of the requested time; flexible
// bookings may start any time up to latest_acceptable_start.
func withinWaitTolerance(grid Grid, b *domain.Booking, sched domain.SchedulingConstraints, slot int) bool {
	clock := grid.SlotToClock(slot)
	if b.IsFlexibleTime {
		return !clock.After(*b.LatestAcceptableStart)
	}
	return clock.Sub(b.ScheduledStart) <= sched.MaxCustomerWaitTime
}
