package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Service is one bookable offering: a service type, a required skill level,
// a duration, and setup/cleanup overhead that the grid must also reserve.
type Service struct {
	ServiceType         ServiceType
	DurationMinutes     int
	RequiredSkillLevel  SkillLevel
	Price               decimal.Decimal
	SetupTimeMinutes    int
	CleanupTimeMinutes  int
}

func NewService(
	serviceType ServiceType,
	durationMinutes int,
	requiredLevel SkillLevel,
	price decimal.Decimal,
	setupMinutes, cleanupMinutes int,
) (Service, error) {
	if !serviceType.Valid() {
		return Service{}, fmt.Errorf("domain: invalid service type %q", serviceType)
	}
	if durationMinutes <= 0 {
		return Service{}, fmt.Errorf("domain: service duration_minutes must be > 0")
	}
	if !requiredLevel.Valid() {
		return Service{}, fmt.Errorf("domain: invalid required skill level %d", requiredLevel)
	}
	if price.Sign() < 0 {
		return Service{}, fmt.Errorf("domain: service price must be >= 0")
	}
	if setupMinutes < 0 || cleanupMinutes < 0 {
		return Service{}, fmt.Errorf("domain: setup/cleanup time must be >= 0")
	}
	return Service{
		ServiceType:        serviceType,
		DurationMinutes:    durationMinutes,
		RequiredSkillLevel: requiredLevel,
		Price:              price,
		SetupTimeMinutes:   setupMinutes,
		CleanupTimeMinutes: cleanupMinutes,
	}, nil
}

// BookedDuration is setup + duration + cleanup, the span a Service actually
// occupies on the grid.
func (s Service) BookedDuration() time.Duration {
	return time.Duration(s.SetupTimeMinutes+s.DurationMinutes+s.CleanupTimeMinutes) * time.Minute
}
