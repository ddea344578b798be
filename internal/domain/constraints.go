package domain

import (
	"fmt"
	"time"
)

// OperatingHours maps a weekday (0=Monday..6=Sunday) to its open/close window.
type OperatingHours map[int]OpenClose

type OpenClose struct {
	Open  ClockTime
	Close ClockTime
}

// SalonConstraints is the salon-wide capacity and hours policy.
type SalonConstraints struct {
	OperatingHours        OperatingHours
	MaxStaffCount         int
	MinStaffCount         int
	LunchBreakStart       ClockTime
	LunchBreakDuration    time.Duration
	EquipmentConstraints  map[string]int // resource name -> max concurrent
}

func NewSalonConstraints(
	hours OperatingHours,
	maxStaff, minStaff int,
	lunchStart ClockTime,
	lunchDuration time.Duration,
	equipment map[string]int,
) (SalonConstraints, error) {
	if minStaff > maxStaff {
		return SalonConstraints{}, fmt.Errorf("domain: min_staff_count (%d) must be <= max_staff_count (%d)", minStaff, maxStaff)
	}
	for day, oc := range hours {
		if oc.Open >= oc.Close {
			return SalonConstraints{}, fmt.Errorf("domain: operating_hours for day %d: open must be before close", day)
		}
	}
	eq := make(map[string]int, len(equipment))
	for k, v := range equipment {
		eq[k] = v
	}
	return SalonConstraints{
		OperatingHours:       hours,
		MaxStaffCount:        maxStaff,
		MinStaffCount:        minStaff,
		LunchBreakStart:      lunchStart,
		LunchBreakDuration:   lunchDuration,
		EquipmentConstraints: eq,
	}, nil
}

// SchedulingConstraints governs wait tolerance, buffers, and overtime policy.
type SchedulingConstraints struct {
	MaxCustomerWaitTime        time.Duration
	BufferTimeBetweenBookings  time.Duration
	StaffBreakFrequency        time.Duration
	MinStaffBreakDuration      time.Duration
	MaxConsecutiveBookings     int
	AllowOvertime              bool
	OvertimePremiumRate        float64
}

func NewSchedulingConstraints(
	maxWait, buffer, breakFreq, minBreak time.Duration,
	maxConsecutiveBookings int,
	allowOvertime bool,
	overtimePremiumRate float64,
) (SchedulingConstraints, error) {
	if overtimePremiumRate < 1.0 {
		return SchedulingConstraints{}, fmt.Errorf("domain: overtime_premium_rate must be >= 1.0, got %f", overtimePremiumRate)
	}
	return SchedulingConstraints{
		MaxCustomerWaitTime:       maxWait,
		BufferTimeBetweenBookings: buffer,
		StaffBreakFrequency:       breakFreq,
		MinStaffBreakDuration:     minBreak,
		MaxConsecutiveBookings:    maxConsecutiveBookings,
		AllowOvertime:             allowOvertime,
		OvertimePremiumRate:       overtimePremiumRate,
	}, nil
}

// OptimizationObjectives holds the four non-negative objective weights.
type OptimizationObjectives struct {
	CustomerSatisfaction float64
	StaffUtilization     float64
	CostMinimization     float64
	ScheduleStability    float64
	normalized           bool
}

func NewOptimizationObjectives(customerSatisfaction, staffUtilization, costMinimization, scheduleStability float64) (OptimizationObjectives, error) {
	for _, w := range []float64{customerSatisfaction, staffUtilization, costMinimization, scheduleStability} {
		if w < 0 {
			return OptimizationObjectives{}, fmt.Errorf("domain: objective weights must be non-negative")
		}
	}
	return OptimizationObjectives{
		CustomerSatisfaction: customerSatisfaction,
		StaffUtilization:     staffUtilization,
		CostMinimization:     costMinimization,
		ScheduleStability:    scheduleStability,
	}, nil
}

// NormalizeWeights scales the weights so they sum to 1.0, and returns the
// normalized copy. The optimizer refuses to build an objective from an
// OptimizationObjectives that has not been through this, unless its weights
// already sum to 1.0 (see IsNormalized).
func (o OptimizationObjectives) NormalizeWeights() (OptimizationObjectives, error) {
	total := o.CustomerSatisfaction + o.StaffUtilization + o.CostMinimization + o.ScheduleStability
	if total <= 0 {
		return OptimizationObjectives{}, fmt.Errorf("domain: objective weights sum to %f, cannot normalize", total)
	}
	return OptimizationObjectives{
		CustomerSatisfaction: o.CustomerSatisfaction / total,
		StaffUtilization:     o.StaffUtilization / total,
		CostMinimization:     o.CostMinimization / total,
		ScheduleStability:    o.ScheduleStability / total,
		normalized:           true,
	}, nil
}

// IsNormalized reports whether the weights sum to 1.0 within tolerance.
func (o OptimizationObjectives) IsNormalized() bool {
	if o.normalized {
		return true
	}
	const epsilon = 1e-9
	total := o.CustomerSatisfaction + o.StaffUtilization + o.CostMinimization + o.ScheduleStability
	diff := total - 1.0
	if diff < 0 {
		diff = -diff
	}
	return diff <= epsilon
}
