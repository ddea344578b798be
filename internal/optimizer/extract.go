package optimizer

import (
	"fmt"
	"sort"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/salonsys/scheduling-service/internal/domain"
)

// ScheduleEntry is one decoded assignment.
type ScheduleEntry struct {
	BookingID    string
	StaffID      string
	StaffName    string
	CustomerName string
	ServiceTypes []domain.ServiceType
	StartSlot    int
	DurationSlots int
}

// Extract decodes every assign[b,s,k] the solver set to true into a
// ScheduleEntry, in ascending (start_slot, staff_id) order. It defensively
// rejects duplicate booking ids — the Coverage constraint should make this
// impossible, so a duplicate here indicates a builder or solver
// inconsistency rather than a normal outcome.
func Extract(
	response ResponseReader,
	vars *Variables,
	staffByID map[string]*domain.Staff,
	bookingByID map[string]*domain.Booking,
) ([]ScheduleEntry, error) {
	entries := make([]ScheduleEntry, 0)
	seen := make(map[string]bool)

	for key, v := range vars.Assign {
		if !response.BooleanValue(v) {
			continue
		}
		if seen[key.BookingID] {
			return nil, fmt.Errorf("optimizer: booking %s assigned more than once in solution", key.BookingID)
		}
		seen[key.BookingID] = true

		b := bookingByID[key.BookingID]
		s := staffByID[key.StaffID]

		serviceTypes := make([]domain.ServiceType, 0, len(b.Services))
		for _, svc := range b.Services {
			serviceTypes = append(serviceTypes, svc.ServiceType)
		}

		entries = append(entries, ScheduleEntry{
			BookingID:     b.ID,
			StaffID:       s.ID,
			StaffName:     s.Name,
			CustomerName:  b.Customer.Name,
			ServiceTypes:  serviceTypes,
			StartSlot:     key.Slot,
			DurationSlots: vars.SpanLength[b.ID],
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].StartSlot != entries[j].StartSlot {
			return entries[i].StartSlot < entries[j].StartSlot
		}
		return entries[i].StaffID < entries[j].StaffID
	})

	return entries, nil
}

// ResponseReader is the subset of the solver response Extract needs,
// narrowed to ease testing without a real CP-SAT solve.
type ResponseReader interface {
	BooleanValue(v cpmodel.BoolVar) bool
}
