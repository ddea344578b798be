package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/salonsys/scheduling-service/internal/models"
	"github.com/salonsys/scheduling-service/internal/repository"
	"github.com/salonsys/scheduling-service/pkg/logger"
)

// EventPublisher is the narrow publishing interface handlers depend on, so
// pkg/events.Publisher or a null implementation can be injected.
type EventPublisher interface {
	Publish(subject string, data interface{}) error
}

// BookingHandler handles booking HTTP requests.
type BookingHandler struct {
	repo      *repository.BookingRepository
	publisher EventPublisher
	logger    *logger.Logger
}

// NewBookingHandler creates a new booking handler.
func NewBookingHandler(repo *repository.BookingRepository, publisher EventPublisher, logger *logger.Logger) *BookingHandler {
	return &BookingHandler{repo: repo, publisher: publisher, logger: logger}
}

// CreateBookingServiceRequest is one requested service line.
type CreateBookingServiceRequest struct {
	ServiceType        string `json:"serviceType" binding:"required"`
	DurationMinutes    int    `json:"durationMinutes" binding:"required"`
	RequiredSkillLevel int    `json:"requiredSkillLevel" binding:"required"`
	PriceCents         int64  `json:"priceCents"`
	SetupTimeMinutes   int    `json:"setupTimeMinutes"`
	CleanupTimeMinutes int    `json:"cleanupTimeMinutes"`
}

// CreateBookingRequest is the payload for POST /api/v1/bookings.
type CreateBookingRequest struct {
	CustomerID            string                        `json:"customerId" binding:"required"`
	Services              []CreateBookingServiceRequest `json:"services" binding:"required,min=1"`
	ScheduledStart        time.Time                     `json:"scheduledStart" binding:"required"`
	IsFlexibleTime        bool                          `json:"isFlexibleTime"`
	LatestAcceptableStart *time.Time                    `json:"latestAcceptableStart,omitempty"`
}

// CreateBooking handles POST /api/v1/bookings. Only Scheduled bookings are
// considered by the optimizer, so every booking is created in
// that status; later lifecycle transitions happen through other endpoints
// this repo does not need to expose for the optimizer's purposes.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload: " + err.Error()})
		return
	}

	services := make([]models.BookingService, 0, len(req.Services))
	for _, svc := range req.Services {
		services = append(services, models.BookingService{
			ServiceType:        svc.ServiceType,
			DurationMinutes:    svc.DurationMinutes,
			RequiredSkillLevel: svc.RequiredSkillLevel,
			PriceCents:         svc.PriceCents,
			SetupTimeMinutes:   svc.SetupTimeMinutes,
			CleanupTimeMinutes: svc.CleanupTimeMinutes,
		})
	}

	booking := &models.Booking{
		CustomerID:            req.CustomerID,
		ScheduledStart:        req.ScheduledStart,
		Status:                models.BookingStatusScheduled,
		IsFlexibleTime:        req.IsFlexibleTime,
		LatestAcceptableStart: req.LatestAcceptableStart,
		Services:              services,
	}

	if err := h.repo.Create(c.Request.Context(), booking); err != nil {
		h.logger.Error("failed to create booking", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create booking: " + err.Error()})
		return
	}

	if h.publisher != nil {
		if err := h.publisher.Publish("booking.requested", gin.H{
			"bookingId":  booking.ID,
			"customerId": booking.CustomerID,
			"startTime":  booking.ScheduledStart,
		}); err != nil {
			h.logger.Error("failed to publish booking.requested event", "booking_id", booking.ID, "error", err)
		}
	}

	h.logger.Info("booking created", "booking_id", booking.ID)
	c.JSON(http.StatusCreated, booking)
}

// GetBooking handles GET /api/v1/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id := c.Param("id")
	booking, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed to get booking", "booking_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get booking: " + err.Error()})
		return
	}
	if booking == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}
	c.JSON(http.StatusOK, booking)
}

// ListBookingsForDate handles GET /api/v1/bookings?date=YYYY-MM-DD.
func (h *BookingHandler) ListBookingsForDate(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter (YYYY-MM-DD) is required"})
		return
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected YYYY-MM-DD"})
		return
	}

	bookings, err := h.repo.ListScheduledForDate(c.Request.Context(), date)
	if err != nil {
		h.logger.Error("failed to list bookings", "date", dateStr, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookings: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
}
