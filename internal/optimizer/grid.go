package optimizer

import (
	"time"

	"github.com/salonsys/scheduling-service/internal/domain"
)

// SlotDuration is the fixed discretization unit of the operating day.
const SlotDuration = 15 * time.Minute

// Grid discretizes one operating day into SlotDuration-sized slots.
// An empty grid (SlotCount == 0) means the salon is closed that weekday.
type Grid struct {
	Date      time.Time
	Weekday   int // 0=Monday .. 6=Sunday
	Open      domain.ClockTime
	Close     domain.ClockTime
	SlotCount int
}

// WeekdayIndex converts Go's time.Weekday (0=Sunday) to this package's
// day-of-week numbering (0=Monday .. 6=Sunday).
func WeekdayIndex(t time.Time) int {
	switch t.Weekday() {
	case time.Sunday:
		return 6
	default:
		return int(t.Weekday()) - 1
	}
}

// NewGrid builds the slot grid for scheduleDate's weekday from the salon's
// operating hours. If the weekday has no operating_hours entry, the grid is
// empty and the caller must treat this as the ClosedDay error.
func NewGrid(salon domain.SalonConstraints, scheduleDate time.Time) Grid {
	weekday := WeekdayIndex(scheduleDate)
	oc, ok := salon.OperatingHours[weekday]
	if !ok {
		return Grid{Date: scheduleDate, Weekday: weekday}
	}
	span := time.Duration(oc.Close - oc.Open)
	slots := int((span + SlotDuration - 1) / SlotDuration) // ceil
	return Grid{
		Date:      scheduleDate,
		Weekday:   weekday,
		Open:      oc.Open,
		Close:     oc.Close,
		SlotCount: slots,
	}
}

// Closed reports whether the salon has no operating hours for this weekday.
func (g Grid) Closed() bool {
	return g.SlotCount == 0
}

// SlotToClock maps a slot index to its absolute timestamp.
func (g Grid) SlotToClock(slot int) time.Time {
	base := time.Date(g.Date.Year(), g.Date.Month(), g.Date.Day(), 0, 0, 0, 0, g.Date.Location())
	return base.Add(time.Duration(g.Open) + time.Duration(slot)*SlotDuration)
}

// SlotsForDuration returns the number of consecutive slots (ceil) a span of
// duration d occupies.
func SlotsForDuration(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + SlotDuration - 1) / SlotDuration)
}

// ClockToSlot converts a ClockTime offset from the grid's Open time to a
// (possibly out-of-range) slot index; callers must bound-check the result.
func (g Grid) ClockToSlot(c domain.ClockTime) int {
	return int(time.Duration(c-g.Open) / SlotDuration)
}
