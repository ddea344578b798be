package repository

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/salonsys/scheduling-service/internal/domain"
	"github.com/salonsys/scheduling-service/internal/models"
)

// StaffToDomain converts a persistence Staff record (with its Skills and
// Availability preloaded) into the immutable snapshot the optimizer
// consumes. The optimizer never sees a gorm model directly.
func StaffToDomain(m models.Staff) (*domain.Staff, error) {
	rate, err := decimal.NewFromString(m.HourlyRate)
	if err != nil {
		return nil, fmt.Errorf("repository: staff %s has invalid hourly_rate %q: %w", m.ID, m.HourlyRate, err)
	}

	skills := make([]domain.Skill, 0, len(m.Skills))
	for _, sk := range m.Skills {
		svcType, err := domain.ParseServiceType(sk.ServiceType)
		if err != nil {
			return nil, fmt.Errorf("repository: staff %s: %w", m.ID, err)
		}
		level := domain.SkillLevel(sk.Level)
		skill, err := domain.NewSkill(svcType, level, sk.CertificationDate, sk.YearsExperience)
		if err != nil {
			return nil, fmt.Errorf("repository: staff %s: %w", m.ID, err)
		}
		skills = append(skills, skill)
	}

	availability := make([]domain.Availability, 0, len(m.Availability))
	for _, av := range m.Availability {
		window, err := domain.NewAvailability(
			av.DayOfWeek,
			domain.ClockTime(time.Duration(av.StartMinute)*time.Minute),
			domain.ClockTime(time.Duration(av.EndMinute)*time.Minute),
			av.IsPreferred,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: staff %s: %w", m.ID, err)
		}
		availability = append(availability, window)
	}

	return domain.NewStaff(
		m.ID, m.Name, skills, availability, rate,
		m.MaxHoursPerDay, m.MaxHoursPerWeek, m.MinBreakMinutes, m.ConsecutiveWorkLimit,
	)
}

// CustomerToDomain converts a persistence Customer record.
func CustomerToDomain(m models.Customer) (domain.Customer, error) {
	return domain.NewCustomer(m.ID, m.Name, m.Phone, m.Email, domain.Priority(m.Priority), []string(m.PreferredStaffIDs), m.Notes)
}

// BookingToDomain converts a persistence Booking record (with its Services
// preloaded) plus its already-converted Customer into the optimizer's
// snapshot type.
func BookingToDomain(m models.Booking, customer domain.Customer) (*domain.Booking, error) {
	services := make([]domain.Service, 0, len(m.Services))
	for _, svc := range m.Services {
		svcType, err := domain.ParseServiceType(svc.ServiceType)
		if err != nil {
			return nil, fmt.Errorf("repository: booking %s: %w", m.ID, err)
		}
		price := decimal.New(svc.PriceCents, -2)
		domainSvc, err := domain.NewService(
			svcType, svc.DurationMinutes, domain.SkillLevel(svc.RequiredSkillLevel), price,
			svc.SetupTimeMinutes, svc.CleanupTimeMinutes,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: booking %s: %w", m.ID, err)
		}
		services = append(services, domainSvc)
	}

	status := domain.BookingStatus(m.Status)
	return domain.NewBooking(
		m.ID, customer, services, m.ScheduledStart, status,
		m.AssignedStaffID, m.IsFlexibleTime, m.LatestAcceptableStart,
	)
}
