package optimizer

import (
	"fmt"
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/salonsys/scheduling-service/internal/domain"
)

// EquipmentConsumers maps an equipment resource name to the service types
// that consume one unit of it while a booking needing that type is running.
// A resource absent from this map is advisory only (see the equipment
// handling decision recorded in DESIGN.md).
type EquipmentConsumers map[string][]domain.ServiceType

// ConstraintOptions carries the caller-configurable knobs the constraint
// family set leaves open.
type ConstraintOptions struct {
	Equipment            EquipmentConsumers
	EnforceVIPPreference  bool // hard rule 11 instead of soft (objective-only)
}

// BuildConstraints emits every scheduling constraint onto model, given the
// decision variables already created by BuildVariables. It returns an
// *UnservableBookingError listing the ids of bookings that turned out
// unservable (empty eligibility set) so the caller can report
// UnservableBooking instead of asking the solver to prove infeasibility of a
// model that should never have been built.
func BuildConstraints(
	model *cpmodel.CpModelBuilder,
	grid Grid,
	vars *Variables,
	staffList []*domain.Staff,
	staffByID map[string]*domain.Staff,
	bookings []*domain.Booking,
	eligibility Eligibility,
	salon domain.SalonConstraints,
	sched domain.SchedulingConstraints,
	opts ConstraintOptions,
) error {
	if unservable := eligibility.Unservable(bookings); len(unservable) > 0 {
		return &UnservableBookingError{BookingIDs: unservable}
	}

	addCoverageConstraints(model, vars, bookings, opts)
	addStaffExclusivityConstraints(model, vars)
	addOccupancyCouplingConstraints(model, vars)
	addMinMaxStaffConstraints(model, grid, vars, staffList, salon)
	addEquipmentCapacityConstraints(model, vars, bookings, opts.Equipment, salon.EquipmentConstraints)
	addPerDayWorkLimitConstraints(model, grid, vars, staffList, sched)
	addConsecutiveWorkConstraints(model, grid, vars, staffList)
	addBufferConstraints(model, vars, staffList, bookings, sched)

	return nil
}

// 1. Coverage: every servable booking is assigned exactly once. If
// EnforceVIPPreference is set, a VIP booking with a non-empty preferred-staff
// list is restricted to assign vars on preferred staff only.
func addCoverageConstraints(model *cpmodel.CpModelBuilder, vars *Variables, bookings []*domain.Booking, opts ConstraintOptions) {
	for _, b := range bookings {
		var candidates []cpmodel.BoolVar
		restrictToPreferred := opts.EnforceVIPPreference && b.Customer.Priority == domain.VIP && len(b.Customer.PreferredStaffIDs) > 0
		for key, v := range vars.Assign {
			if key.BookingID != b.ID {
				continue
			}
			if restrictToPreferred && !b.Customer.Prefers(key.StaffID) {
				model.AddLessOrEqual(v, cpmodel.NewConstant(0))
				continue
			}
			candidates = append(candidates, v)
		}
		// With no candidates this is an empty exactly-one, which makes the
		// model infeasible instead of silently leaving the booking out.
		model.AddExactlyOne(candidates...)
	}
}

// 2. Staff exclusivity: at most one booking per staff per slot.
func addStaffExclusivityConstraints(model *cpmodel.CpModelBuilder, vars *Variables) {
	for _, covering := range vars.AssignCoveringSlot {
		if len(covering) <= 1 {
			continue
		}
		boolVars := make([]cpmodel.BoolVar, 0, len(covering))
		for _, key := range covering {
			boolVars = append(boolVars, vars.Assign[key])
		}
		model.AddAtMostOne(boolVars...)
	}
}

// 3. Occupancy coupling: occ[s,k] >= assign[b,s,k'] for every assignment
// covering that slot.
func addOccupancyCouplingConstraints(model *cpmodel.CpModelBuilder, vars *Variables) {
	for occKey, covering := range vars.AssignCoveringSlot {
		occVar := vars.Occ[occKey]
		for _, key := range covering {
			model.AddLessOrEqual(vars.Assign[key], occVar)
		}
	}
}

// 4 & 5. Minimum and maximum simultaneous staff, restricted to staff whose
// availability covers the slot.
func addMinMaxStaffConstraints(model *cpmodel.CpModelBuilder, grid Grid, vars *Variables, staffList []*domain.Staff, salon domain.SalonConstraints) {
	for k := 0; k < grid.SlotCount; k++ {
		expr := cpmodel.NewLinearExpr()
		any := false
		for _, s := range staffList {
			if !slotCoveredByAvailability(grid, s, k) {
				continue
			}
			occVar, ok := vars.Occ[OccKey{StaffID: s.ID, Slot: k}]
			if !ok {
				continue
			}
			expr.Add(occVar)
			any = true
		}
		if !any {
			continue
		}
		model.AddLessOrEqual(cpmodel.NewConstant(int64(salon.MinStaffCount)), expr)
		model.AddLessOrEqual(expr, cpmodel.NewConstant(int64(salon.MaxStaffCount)))
	}
}

func slotCoveredByAvailability(grid Grid, s *domain.Staff, slot int) bool {
	slotStart := grid.Open + domain.ClockTime(time.Duration(slot)*SlotDuration)
	slotEnd := slotStart + domain.ClockTime(SlotDuration)
	for _, w := range s.AvailabilityOn(grid.Weekday) {
		if w.StartTime <= slotStart && slotEnd <= w.EndTime {
			return true
		}
	}
	return false
}

// 6. Equipment capacity: optional, per resource. Hard capacity when the
// caller supplies both a consumer mapping and a capacity for that resource
// (SalonConstraints.EquipmentConstraints); a resource named in one but not
// the other is skipped rather than guessed at.
func addEquipmentCapacityConstraints(model *cpmodel.CpModelBuilder, vars *Variables, bookings []*domain.Booking, equipment EquipmentConsumers, capacities map[string]int) {
	if len(equipment) == 0 || len(capacities) == 0 {
		return
	}
	bookingByID := make(map[string]*domain.Booking, len(bookings))
	for _, b := range bookings {
		bookingByID[b.ID] = b
	}

	for resource, consumerTypes := range equipment {
		cap, ok := capacities[resource]
		if !ok {
			continue
		}
		bySlot := make(map[int][]cpmodel.BoolVar)
		for key, v := range vars.Assign {
			b, ok := bookingByID[key.BookingID]
			if !ok || !bookingConsumes(b, consumerTypes) {
				continue
			}
			length := vars.SpanLength[key.BookingID]
			for slot := key.Slot; slot < key.Slot+length; slot++ {
				bySlot[slot] = append(bySlot[slot], v)
			}
		}
		for _, vs := range bySlot {
			if len(vs) == 0 {
				continue
			}
			expr := cpmodel.NewLinearExpr()
			for _, v := range vs {
				expr.Add(v)
			}
			model.AddLessOrEqual(expr, cpmodel.NewConstant(int64(cap)))
		}
	}
}

func bookingConsumes(b *domain.Booking, consumerTypes []domain.ServiceType) bool {
	for _, t := range consumerTypes {
		if b.NeedsServiceType(t) {
			return true
		}
	}
	return false
}

// 7. Per-day work limit. Hard cap unless overtime is allowed, in which case
// the excess becomes a soft penalty in the objective instead.
func addPerDayWorkLimitConstraints(model *cpmodel.CpModelBuilder, grid Grid, vars *Variables, staffList []*domain.Staff, sched domain.SchedulingConstraints) {
	if sched.AllowOvertime {
		return
	}
	for _, s := range staffList {
		expr := cpmodel.NewLinearExpr()
		any := false
		for k := 0; k < grid.SlotCount; k++ {
			occVar, ok := vars.Occ[OccKey{StaffID: s.ID, Slot: k}]
			if !ok {
				continue
			}
			expr.Add(occVar)
			any = true
		}
		if !any {
			continue
		}
		maxSlots := int64(s.MaxHoursPerDay) * int64(time.Hour/SlotDuration)
		model.AddLessOrEqual(expr, cpmodel.NewConstant(maxSlots))
	}
}

// 8. Consecutive-work limit. Sums occ[s,k] over the sliding window rather
// than assignment variables, since a booking spanning multiple slots should
// count once per occupied slot, not once per assignment (see DESIGN.md).
func addConsecutiveWorkConstraints(model *cpmodel.CpModelBuilder, grid Grid, vars *Variables, staffList []*domain.Staff) {
	for _, s := range staffList {
		windowSlots := 4 * s.ConsecutiveWorkLimit
		if windowSlots <= 0 || windowSlots >= grid.SlotCount {
			continue
		}
		for start := 0; start+windowSlots <= grid.SlotCount; start++ {
			expr := cpmodel.NewLinearExpr()
			any := false
			for k := start; k < start+windowSlots; k++ {
				occVar, ok := vars.Occ[OccKey{StaffID: s.ID, Slot: k}]
				if !ok {
					continue
				}
				expr.Add(occVar)
				any = true
			}
			if !any {
				continue
			}
			model.AddLessOrEqual(expr, cpmodel.NewConstant(int64(windowSlots-1)))
		}
	}
}

// 9. Buffer between bookings: pairwise mutex over any two assignment
// variables for the same staff whose extended spans would leave less than
// buffer_slots between them.
func addBufferConstraints(model *cpmodel.CpModelBuilder, vars *Variables, staffList []*domain.Staff, bookings []*domain.Booking, sched domain.SchedulingConstraints) {
	bufferSlots := SlotsForDuration(sched.BufferTimeBetweenBookings)

	for _, s := range staffList {
		for i := 0; i < len(bookings); i++ {
			for j := i + 1; j < len(bookings); j++ {
				b1, b2 := bookings[i], bookings[j]
				starts1 := vars.AssignByBookingStaff[[2]string{b1.ID, s.ID}]
				starts2 := vars.AssignByBookingStaff[[2]string{b2.ID, s.ID}]
				if len(starts1) == 0 || len(starts2) == 0 {
					continue
				}
				len1 := vars.SpanLength[b1.ID]
				len2 := vars.SpanLength[b2.ID]
				for _, k1 := range starts1 {
					for _, k2 := range starts2 {
						if !bufferSatisfied(k1, len1, k2, len2, bufferSlots) {
							model.AddAtMostOne(
								vars.Assign[AssignKey{BookingID: b1.ID, StaffID: s.ID, Slot: k1}],
								vars.Assign[AssignKey{BookingID: b2.ID, StaffID: s.ID, Slot: k2}],
							)
						}
					}
				}
			}
		}
	}
}

func bufferSatisfied(k1, len1, k2, len2, bufferSlots int) bool {
	return k2 >= k1+len1+bufferSlots || k1 >= k2+len2+bufferSlots
}

// UnservableBookingError is returned by BuildConstraints when one or more
// bookings have an empty eligibility set.
type UnservableBookingError struct {
	BookingIDs []string
}

func (e *UnservableBookingError) Error() string {
	return fmt.Sprintf("unservable bookings (empty eligibility set): %v", e.BookingIDs)
}
