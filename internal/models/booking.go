package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingStatus mirrors domain.BookingStatus at the persistence boundary.
type BookingStatus string

const (
	BookingStatusScheduled  BookingStatus = "scheduled"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// Booking is the persistence record for a customer's service request.
type Booking struct {
	ID                    string         `gorm:"type:uuid;primary_key;" json:"id"`
	CustomerID            string         `gorm:"index;type:uuid;not null" json:"customerId"`
	ScheduledStart         time.Time      `gorm:"index;not null" json:"scheduledStart"`
	Status                 BookingStatus  `gorm:"type:varchar(32);not null;index" json:"status"`
	AssignedStaffID        *string        `gorm:"type:uuid;index" json:"assignedStaffId,omitempty"`
	IsFlexibleTime         bool           `gorm:"not null" json:"isFlexibleTime"`
	LatestAcceptableStart  *time.Time     `json:"latestAcceptableStart,omitempty"`
	CreatedAt              time.Time      `json:"createdAt"`
	UpdatedAt              time.Time      `json:"updatedAt"`
	DeletedAt              gorm.DeletedAt `gorm:"index" json:"-"`

	Services []BookingService `gorm:"foreignKey:BookingID" json:"services"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

func (Booking) TableName() string {
	return "bookings"
}

// BookingService is one requested service line within a booking. Its type,
// duration, required level, price and setup/cleanup times are stored on the
// line itself, as supplied when the booking was created.
type BookingService struct {
	ID                  string `gorm:"type:uuid;primary_key;" json:"id"`
	BookingID           string `gorm:"index;type:uuid;not null" json:"bookingId"`
	ServiceType         string `gorm:"type:varchar(32);not null" json:"serviceType"`
	DurationMinutes     int    `gorm:"not null" json:"durationMinutes"`
	RequiredSkillLevel  int    `gorm:"not null" json:"requiredSkillLevel"`
	PriceCents          int64  `gorm:"not null" json:"priceCents"`
	SetupTimeMinutes    int    `gorm:"not null" json:"setupTimeMinutes"`
	CleanupTimeMinutes  int    `gorm:"not null" json:"cleanupTimeMinutes"`
}

func (s *BookingService) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

func (BookingService) TableName() string {
	return "booking_services"
}
