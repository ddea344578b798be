package optimizer

import "github.com/salonsys/scheduling-service/internal/domain"

// Eligibility is the static admissibility filter: for each
// (staff, booking) pair it decides, independent of the solver, whether the
// pairing could ever be assigned.
type Eligibility struct {
	staffFor map[string][]string // bookingID -> eligible staffIDs, in staffList order
}

// BuildEligibility computes the eligible staff set for every booking.
// A pair is admissible iff the staff can perform every service in the
// booking at the required level, and the staff has at least one
// availability window on the grid's weekday.
func BuildEligibility(grid Grid, staffList []*domain.Staff, bookings []*domain.Booking) Eligibility {
	e := Eligibility{staffFor: make(map[string][]string, len(bookings))}
	for _, b := range bookings {
		for _, s := range staffList {
			if staffCanHandle(s, b) && len(s.AvailabilityOn(grid.Weekday)) > 0 {
				e.staffFor[b.ID] = append(e.staffFor[b.ID], s.ID)
			}
		}
	}
	return e
}

func staffCanHandle(s *domain.Staff, b *domain.Booking) bool {
	for _, svc := range b.Services {
		if !s.CanPerform(svc.ServiceType, svc.RequiredSkillLevel) {
			return false
		}
	}
	return true
}

// StaffFor returns the eligible staff ids for a booking, in staffList order.
func (e Eligibility) StaffFor(bookingID string) []string {
	return e.staffFor[bookingID]
}

// IsEligible reports whether a booking has at least one eligible staff member.
func (e Eligibility) IsEligible(bookingID string) bool {
	return len(e.staffFor[bookingID]) > 0
}

// Unservable returns the ids of bookings with an empty eligibility set, in
// the order they appear in bookings.
func (e Eligibility) Unservable(bookings []*domain.Booking) []string {
	var ids []string
	for _, b := range bookings {
		if !e.IsEligible(b.ID) {
			ids = append(ids, b.ID)
		}
	}
	return ids
}
