package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/salonsys/scheduling-service/internal/models"
)

// BookingRepository persists and retrieves booking records.
type BookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository.
func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create inserts a booking record along with its requested services.
func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	if err := r.db.WithContext(ctx).Create(booking).Error; err != nil {
		return fmt.Errorf("repository: failed to create booking for customer %s: %w", booking.CustomerID, err)
	}
	return nil
}

// GetByID retrieves a booking record with its services preloaded.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).Preload("Services").First(&booking, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("repository: failed to fetch booking %s: %w", id, err)
	}
	return &booking, nil
}

// ListScheduledForDate retrieves every Scheduled booking whose scheduled
// start falls on date, with its services preloaded — the exact snapshot the
// optimizer needs for one operating day.
func (r *BookingRepository) ListScheduledForDate(ctx context.Context, date time.Time) ([]models.Booking, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Services").
		Where("status = ? AND scheduled_start >= ? AND scheduled_start < ?", models.BookingStatusScheduled, dayStart, dayEnd).
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("repository: failed to list scheduled bookings for %s: %w", dayStart.Format("2006-01-02"), err)
	}
	return bookings, nil
}

// UpdateAssignment writes the optimizer's decision for one booking back to
// the booking's assigned_staff_id and status columns.
func (r *BookingRepository) UpdateAssignment(ctx context.Context, bookingID, staffID string, status models.BookingStatus) error {
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Updates(map[string]interface{}{"assigned_staff_id": staffID, "status": status}).Error
	if err != nil {
		return fmt.Errorf("repository: failed to update assignment for booking %s: %w", bookingID, err)
	}
	return nil
}
