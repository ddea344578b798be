package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salonsys/scheduling-service/internal/models"
	"github.com/salonsys/scheduling-service/internal/repository"
	"github.com/salonsys/scheduling-service/pkg/logger"
)

// StaffHandler handles staff HTTP requests. Creating and listing staff is
// out of the optimizer core — the optimizer only ever consumes
// the materialized snapshots these endpoints produce.
type StaffHandler struct {
	repo   *repository.StaffRepository
	logger *logger.Logger
}

// NewStaffHandler creates a new staff handler.
func NewStaffHandler(repo *repository.StaffRepository, logger *logger.Logger) *StaffHandler {
	return &StaffHandler{repo: repo, logger: logger}
}

// CreateSkillRequest is one skill line of a CreateStaffRequest.
type CreateSkillRequest struct {
	ServiceType     string `json:"serviceType" binding:"required"`
	Level           int    `json:"level" binding:"required"`
	YearsExperience int    `json:"yearsExperience"`
}

// CreateAvailabilityRequest is one availability window of a CreateStaffRequest.
type CreateAvailabilityRequest struct {
	DayOfWeek   int  `json:"dayOfWeek"`
	StartMinute int  `json:"startMinute"`
	EndMinute   int  `json:"endMinute"`
	IsPreferred bool `json:"isPreferred"`
}

// CreateStaffRequest is the payload for POST /api/v1/staff.
type CreateStaffRequest struct {
	Name                 string                      `json:"name" binding:"required"`
	HourlyRate           string                      `json:"hourlyRate" binding:"required"`
	MaxHoursPerDay       int                         `json:"maxHoursPerDay"`
	MaxHoursPerWeek      int                         `json:"maxHoursPerWeek"`
	MinBreakMinutes      int                         `json:"minBreakMinutes"`
	ConsecutiveWorkLimit int                         `json:"consecutiveWorkLimit"`
	Skills               []CreateSkillRequest        `json:"skills"`
	Availability         []CreateAvailabilityRequest `json:"availability"`
}

// CreateStaff handles POST /api/v1/staff.
func (h *StaffHandler) CreateStaff(c *gin.Context) {
	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload: " + err.Error()})
		return
	}

	skills := make([]models.Skill, 0, len(req.Skills))
	for _, sk := range req.Skills {
		skills = append(skills, models.Skill{
			ServiceType:     sk.ServiceType,
			Level:           sk.Level,
			YearsExperience: sk.YearsExperience,
		})
	}

	availability := make([]models.Availability, 0, len(req.Availability))
	for _, av := range req.Availability {
		availability = append(availability, models.Availability{
			DayOfWeek:   av.DayOfWeek,
			StartMinute: av.StartMinute,
			EndMinute:   av.EndMinute,
			IsPreferred: av.IsPreferred,
		})
	}

	staff := &models.Staff{
		Name:                 req.Name,
		HourlyRate:           req.HourlyRate,
		MaxHoursPerDay:       req.MaxHoursPerDay,
		MaxHoursPerWeek:      req.MaxHoursPerWeek,
		MinBreakMinutes:      req.MinBreakMinutes,
		ConsecutiveWorkLimit: req.ConsecutiveWorkLimit,
		Skills:               skills,
		Availability:         availability,
	}

	if err := h.repo.Create(c.Request.Context(), staff); err != nil {
		h.logger.Error("failed to create staff", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create staff: " + err.Error()})
		return
	}

	h.logger.Info("staff created", "staff_id", staff.ID)
	c.JSON(http.StatusCreated, staff)
}

// ListStaff handles GET /api/v1/staff.
func (h *StaffHandler) ListStaff(c *gin.Context) {
	staff, err := h.repo.ListActive(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list staff", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list staff: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": staff})
}

// GetStaff handles GET /api/v1/staff/:id.
func (h *StaffHandler) GetStaff(c *gin.Context) {
	id := c.Param("id")
	staff, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed to get staff", "staff_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get staff: " + err.Error()})
		return
	}
	if staff == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "staff not found"})
		return
	}
	c.JSON(http.StatusOK, staff)
}
