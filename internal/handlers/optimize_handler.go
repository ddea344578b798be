package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/salonsys/scheduling-service/internal/domain"
	"github.com/salonsys/scheduling-service/internal/optimizer"
	"github.com/salonsys/scheduling-service/internal/service"
	"github.com/salonsys/scheduling-service/pkg/logger"
)

// OptimizeHandler triggers an optimizer.OptimizeSchedule run for one
// operating day. This endpoint, and everything in this package, is the
// collaborator surface that sits outside the optimizer core.
type OptimizeHandler struct {
	service *service.SchedulingService
	logger  *logger.Logger
}

// NewOptimizeHandler creates a new optimize handler.
func NewOptimizeHandler(svc *service.SchedulingService, logger *logger.Logger) *OptimizeHandler {
	return &OptimizeHandler{service: svc, logger: logger}
}

// OperatingHoursRequest is one weekday's open/close window, in minutes
// from midnight.
type OperatingHoursRequest struct {
	DayOfWeek  int `json:"dayOfWeek" binding:"min=0,max=6"`
	OpenMinute int `json:"openMinute"`
	CloseMinute int `json:"closeMinute"`
}

// OptimizeRequestDTO is the payload for POST /api/v1/optimize.
type OptimizeRequestDTO struct {
	Date                      string                  `json:"date" binding:"required"` // YYYY-MM-DD
	OperatingHours            []OperatingHoursRequest `json:"operatingHours" binding:"required"`
	MaxStaffCount             int                     `json:"maxStaffCount" binding:"required"`
	MinStaffCount             int                     `json:"minStaffCount"`
	EquipmentConstraints      map[string]int          `json:"equipmentConstraints"`
	MaxCustomerWaitMinutes    int                     `json:"maxCustomerWaitMinutes"`
	BufferBetweenMinutes      int                     `json:"bufferBetweenMinutes"`
	MaxConsecutiveBookings    int                     `json:"maxConsecutiveBookings"`
	AllowOvertime             bool                    `json:"allowOvertime"`
	OvertimePremiumRate       float64                 `json:"overtimePremiumRate"`
	CustomerSatisfactionWeight float64                `json:"customerSatisfactionWeight"`
	StaffUtilizationWeight     float64                `json:"staffUtilizationWeight"`
	CostMinimizationWeight     float64                `json:"costMinimizationWeight"`
	ScheduleStabilityWeight    float64                `json:"scheduleStabilityWeight"`
	SolveTimeLimitSeconds      int                     `json:"solveTimeLimitSeconds"`
}

// RunOptimization handles POST /api/v1/optimize.
func (h *OptimizeHandler) RunOptimization(c *gin.Context) {
	var req OptimizeRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload: " + err.Error()})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected YYYY-MM-DD"})
		return
	}

	hours := make(domain.OperatingHours, len(req.OperatingHours))
	for _, oh := range req.OperatingHours {
		hours[oh.DayOfWeek] = domain.OpenClose{
			Open:  domain.ClockTime(time.Duration(oh.OpenMinute) * time.Minute),
			Close: domain.ClockTime(time.Duration(oh.CloseMinute) * time.Minute),
		}
	}

	salon, err := domain.NewSalonConstraints(hours, req.MaxStaffCount, req.MinStaffCount, 0, 0, req.EquipmentConstraints)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	overtimeRate := req.OvertimePremiumRate
	if overtimeRate == 0 {
		overtimeRate = 1.0
	}
	sched, err := domain.NewSchedulingConstraints(
		time.Duration(req.MaxCustomerWaitMinutes)*time.Minute,
		time.Duration(req.BufferBetweenMinutes)*time.Minute,
		0, 0,
		req.MaxConsecutiveBookings,
		req.AllowOvertime,
		overtimeRate,
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	objectives, err := domain.NewOptimizationObjectives(
		req.CustomerSatisfactionWeight,
		req.StaffUtilizationWeight,
		req.CostMinimizationWeight,
		req.ScheduleStabilityWeight,
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.RunOptimization(c.Request.Context(), service.OptimizeRequest{
		Salon:          salon,
		Scheduling:     sched,
		Objectives:     objectives,
		ScheduleDate:   date,
		SolveTimeLimit: time.Duration(req.SolveTimeLimitSeconds) * time.Second,
	})
	if err != nil {
		h.logger.Error("optimization run failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "optimization failed: " + err.Error()})
		return
	}

	status := http.StatusOK
	if result.Status == optimizer.StatusInfeasible || result.Status == optimizer.StatusUnknown {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, result)
}
