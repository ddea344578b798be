package domain

import (
	"fmt"
	"time"
)

// Booking is one customer's request for one or more services at a
// (possibly flexible) time.
type Booking struct {
	ID                     string
	Customer               Customer
	Services               []Service
	ScheduledStart         time.Time
	Status                 BookingStatus
	AssignedStaffID        *string
	IsFlexibleTime         bool
	LatestAcceptableStart  *time.Time
}

// NewBooking validates and constructs a Booking snapshot.
//
// A flexible booking without LatestAcceptableStart is rejected rather than
// guessed at (see DESIGN.md) — the caller must specify the window explicitly.
func NewBooking(
	id string,
	customer Customer,
	services []Service,
	scheduledStart time.Time,
	status BookingStatus,
	assignedStaffID *string,
	isFlexibleTime bool,
	latestAcceptableStart *time.Time,
) (*Booking, error) {
	if id == "" {
		return nil, fmt.Errorf("domain: booking id must not be empty")
	}
	if len(services) == 0 {
		return nil, fmt.Errorf("domain: booking %s must have at least one service", id)
	}
	if !status.Valid() {
		return nil, fmt.Errorf("domain: booking %s has invalid status %q", id, status)
	}
	if isFlexibleTime {
		if latestAcceptableStart == nil {
			return nil, fmt.Errorf("domain: booking %s is flexible but has no latest_acceptable_start", id)
		}
		if latestAcceptableStart.Before(scheduledStart) {
			return nil, fmt.Errorf("domain: booking %s latest_acceptable_start is before scheduled_start", id)
		}
	} else {
		latestAcceptableStart = nil
	}

	svcs := make([]Service, len(services))
	copy(svcs, services)

	return &Booking{
		ID:                    id,
		Customer:              customer,
		Services:              svcs,
		ScheduledStart:        scheduledStart,
		Status:                status,
		AssignedStaffID:       assignedStaffID,
		IsFlexibleTime:        isFlexibleTime,
		LatestAcceptableStart: latestAcceptableStart,
	}, nil
}

// TotalDuration sums the booked duration (setup+duration+cleanup) of every service.
func (b *Booking) TotalDuration() time.Duration {
	var total time.Duration
	for _, svc := range b.Services {
		total += svc.BookedDuration()
	}
	return total
}

// EstimatedEndTime is ScheduledStart + TotalDuration.
func (b *Booking) EstimatedEndTime() time.Time {
	return b.ScheduledStart.Add(b.TotalDuration())
}

// RequiredSkillLevel returns the required level for svcType if this booking
// needs it, and whether it does.
func (b *Booking) RequiredSkillLevel(svcType ServiceType) (SkillLevel, bool) {
	for _, svc := range b.Services {
		if svc.ServiceType == svcType {
			return svc.RequiredSkillLevel, true
		}
	}
	return 0, false
}

// NeedsServiceType reports whether any service in the booking is svcType.
func (b *Booking) NeedsServiceType(svcType ServiceType) bool {
	_, ok := b.RequiredSkillLevel(svcType)
	return ok
}
