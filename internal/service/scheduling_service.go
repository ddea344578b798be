// Package service holds the business logic collaborators that surround the
// optimizer core: loading immutable snapshots from the repositories,
// invoking the optimizer, and persisting/publishing its decision. None of
// this logic is part of the optimizer itself.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/salonsys/scheduling-service/internal/domain"
	"github.com/salonsys/scheduling-service/internal/models"
	"github.com/salonsys/scheduling-service/internal/optimizer"
	"github.com/salonsys/scheduling-service/internal/repository"
	"github.com/salonsys/scheduling-service/pkg/logger"
)

// EventPublisher is the narrow interface SchedulingService depends on so a
// pkg/events.Publisher (or a null/mock implementation) can be injected.
type EventPublisher interface {
	Publish(subject string, data interface{}) error
}

// SchedulingService wires the staff/booking/customer registries, the cache,
// and event publishing around one optimizer.OptimizeSchedule call.
type SchedulingService struct {
	staffRepo      *repository.StaffRepository
	bookingRepo    *repository.BookingRepository
	customerRepo   *repository.CustomerRepository
	cacheRepo      *repository.CacheRepository
	eventPublisher EventPublisher
	logger         *logger.Logger
}

// NewSchedulingService creates a new scheduling service.
func NewSchedulingService(
	staffRepo *repository.StaffRepository,
	bookingRepo *repository.BookingRepository,
	customerRepo *repository.CustomerRepository,
	cacheRepo *repository.CacheRepository,
	eventPublisher EventPublisher,
	logger *logger.Logger,
) *SchedulingService {
	return &SchedulingService{
		staffRepo:      staffRepo,
		bookingRepo:    bookingRepo,
		customerRepo:   customerRepo,
		cacheRepo:      cacheRepo,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// OptimizeRequest bundles the constraints and objective weights a caller
// supplies for one day's optimization run. Objectives need not already be
// normalized — RunOptimization normalizes them itself
// before building the optimizer's Input.
type OptimizeRequest struct {
	Salon          domain.SalonConstraints
	Scheduling     domain.SchedulingConstraints
	Objectives     domain.OptimizationObjectives
	ScheduleDate   time.Time
	ConstraintOpts optimizer.ConstraintOptions
	SolveTimeLimit time.Duration
}

// RunOptimization loads the staff roster and the scheduled bookings for
// req.ScheduleDate,
// normalizes the objective weights, invokes the optimizer, and — when a
// schedule was found — writes the assignments back to the booking
// repository, caches the result, and publishes a schedule.optimized event.
func (s *SchedulingService) RunOptimization(ctx context.Context, req OptimizeRequest) (optimizer.Result, error) {
	objectives, err := req.Objectives.NormalizeWeights()
	if err != nil {
		return optimizer.Result{}, fmt.Errorf("service: cannot normalize objective weights: %w", err)
	}

	staffRecords, err := s.staffRepo.ListActive(ctx)
	if err != nil {
		return optimizer.Result{}, fmt.Errorf("service: failed to load staff roster: %w", err)
	}
	staffList, err := staffSnapshots(staffRecords)
	if err != nil {
		return optimizer.Result{}, fmt.Errorf("service: invalid staff record: %w", err)
	}

	bookingRecords, err := s.bookingRepo.ListScheduledForDate(ctx, req.ScheduleDate)
	if err != nil {
		return optimizer.Result{}, fmt.Errorf("service: failed to load scheduled bookings: %w", err)
	}
	bookings, err := s.bookingSnapshots(ctx, bookingRecords)
	if err != nil {
		return optimizer.Result{}, fmt.Errorf("service: invalid booking record: %w", err)
	}

	result := optimizer.OptimizeSchedule(optimizer.Input{
		Salon:          req.Salon,
		Scheduling:     req.Scheduling,
		Objectives:     objectives,
		Staff:          staffList,
		Bookings:       bookings,
		ScheduleDate:   req.ScheduleDate,
		ConstraintOpts: req.ConstraintOpts,
		SolveTimeLimit: req.SolveTimeLimit,
	})

	s.logger.Info("optimization run completed",
		"date", req.ScheduleDate.Format("2006-01-02"),
		"status", result.Status,
		"entries", len(result.Schedule),
		"solve_time_seconds", result.Stats.SolveTimeSeconds,
	)

	if result.Status != optimizer.StatusOptimal && result.Status != optimizer.StatusFeasible {
		return result, nil
	}

	for _, entry := range result.Schedule {
		if err := s.bookingRepo.UpdateAssignment(ctx, entry.BookingID, entry.StaffID, models.BookingStatusConfirmed); err != nil {
			s.logger.Error("failed to persist optimizer assignment", "booking_id", entry.BookingID, "error", err)
		}
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetSchedule(ctx, req.ScheduleDate, result, 24*time.Hour); err != nil {
			s.logger.Error("failed to cache optimized schedule", "error", err)
		}
	}

	if s.eventPublisher != nil {
		payload := map[string]interface{}{
			"date":    req.ScheduleDate.Format("2006-01-02"),
			"status":  result.Status,
			"entries": len(result.Schedule),
		}
		if err := s.eventPublisher.Publish("schedule.optimized", payload); err != nil {
			s.logger.Error("failed to publish schedule.optimized event", "error", err)
		}
	}

	return result, nil
}

func staffSnapshots(records []models.Staff) ([]*domain.Staff, error) {
	out := make([]*domain.Staff, 0, len(records))
	for _, rec := range records {
		staff, err := repository.StaffToDomain(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, staff)
	}
	return out, nil
}

func (s *SchedulingService) bookingSnapshots(ctx context.Context, records []models.Booking) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0, len(records))
	customerCache := make(map[string]domain.Customer, len(records))

	for _, rec := range records {
		customer, ok := customerCache[rec.CustomerID]
		if !ok {
			customerRecord, err := s.customerRepo.GetByID(ctx, rec.CustomerID)
			if err != nil {
				return nil, err
			}
			if customerRecord == nil {
				return nil, fmt.Errorf("booking %s references unknown customer %s", rec.ID, rec.CustomerID)
			}
			customer, err = repository.CustomerToDomain(*customerRecord)
			if err != nil {
				return nil, err
			}
			customerCache[rec.CustomerID] = customer
		}

		booking, err := repository.BookingToDomain(rec, customer)
		if err != nil {
			return nil, err
		}
		out = append(out, booking)
	}
	return out, nil
}
