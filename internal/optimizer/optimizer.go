// Package optimizer implements the constraint-programming schedule
// optimizer: given staff, bookings, and three families of constraints for a
// single operating day, it produces either a conflict-free assignment of
// bookings to staff and start slots, or a structured declaration of why one
// could not be found.
package optimizer

import (
	"fmt"
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"

	"github.com/salonsys/scheduling-service/internal/domain"
)

// Status mirrors the result-record status taxonomy.
type Status string

const (
	StatusOptimal    Status = "optimal"
	StatusFeasible   Status = "feasible"
	StatusInfeasible Status = "infeasible"
	StatusUnknown    Status = "unknown"
)

// Stats carries the solve's diagnostic footprint.
type Stats struct {
	SolveTimeSeconds float64
	ObjectiveValue   float64
}

// Result is the optimizer's sole output. It owns no state shared with
// the caller's input snapshots.
type Result struct {
	Status   Status
	Schedule []ScheduleEntry
	Stats    Stats
	Message  string
}

// Input bundles the read-only snapshots and configuration one
// OptimizeSchedule call consumes.
type Input struct {
	Salon            domain.SalonConstraints
	Scheduling       domain.SchedulingConstraints
	Objectives       domain.OptimizationObjectives
	Staff            []*domain.Staff
	Bookings         []*domain.Booking
	ScheduleDate     time.Time
	ConstraintOpts   ConstraintOptions
	SolveTimeLimit   time.Duration // zero means no limit
}

// OptimizeSchedule is the single entry point of the package. It is synchronous,
// single-threaded, and not reentrant on a shared CpModelBuilder — each call
// builds its own model from scratch.
func OptimizeSchedule(in Input) Result {
	// Only Scheduled bookings are considered by the optimizer.
	bookings := make([]*domain.Booking, 0, len(in.Bookings))
	for _, b := range in.Bookings {
		if b.Status == domain.BookingScheduled {
			bookings = append(bookings, b)
		}
	}

	if len(in.Staff) == 0 {
		return infeasible("EmptyInputs: staff list is empty")
	}
	if len(bookings) == 0 {
		return infeasible("EmptyInputs: booking list is empty")
	}
	if !in.Objectives.IsNormalized() {
		return Result{Status: StatusUnknown, Message: "UnnormalizedObjectives: objective weights must be normalized before building the objective"}
	}

	grid := NewGrid(in.Salon, in.ScheduleDate)
	if grid.Closed() {
		return infeasible(fmt.Sprintf("ClosedDay: no operating hours for weekday %d", grid.Weekday))
	}

	staffByID := make(map[string]*domain.Staff, len(in.Staff))
	availableStaffCount := 0
	for _, s := range in.Staff {
		staffByID[s.ID] = s
		if len(s.AvailabilityOn(grid.Weekday)) > 0 {
			availableStaffCount++
		}
	}
	if in.Salon.MinStaffCount > availableStaffCount {
		return infeasible(fmt.Sprintf("OverCapacity: min_staff_count %d exceeds %d staff available on weekday %d", in.Salon.MinStaffCount, availableStaffCount, grid.Weekday))
	}

	bookingByID := make(map[string]*domain.Booking, len(bookings))
	for _, b := range bookings {
		bookingByID[b.ID] = b
	}

	eligibility := BuildEligibility(grid, in.Staff, bookings)
	if unservable := eligibility.Unservable(bookings); len(unservable) > 0 {
		return infeasible(fmt.Sprintf("UnservableBooking: no eligible staff for bookings %v", unservable))
	}

	model := cpmodel.NewCpModelBuilder()
	vars := BuildVariables(model, grid, in.Staff, staffByID, bookings, eligibility, in.Scheduling)

	if err := BuildConstraints(model, grid, vars, in.Staff, staffByID, bookings, eligibility, in.Salon, in.Scheduling, in.ConstraintOpts); err != nil {
		return infeasible(err.Error())
	}

	if err := BuildObjective(model, grid, vars, staffByID, bookingByID, in.Scheduling, in.Objectives); err != nil {
		return Result{Status: StatusUnknown, Message: err.Error()}
	}

	outcome, err := Solve(model, in.SolveTimeLimit)
	if err != nil {
		return Result{Status: StatusUnknown, Message: fmt.Sprintf("solver error: %v", err)}
	}

	switch outcome.Status {
	case cmpb.CpSolverStatus_OPTIMAL, cmpb.CpSolverStatus_FEASIBLE:
		entries, err := Extract(outcome.Response(), vars, staffByID, bookingByID)
		if err != nil {
			return Result{Status: StatusUnknown, Message: err.Error()}
		}
		status := StatusFeasible
		if outcome.Status == cmpb.CpSolverStatus_OPTIMAL {
			status = StatusOptimal
		}
		return Result{
			Status:   status,
			Schedule: entries,
			Stats: Stats{
				SolveTimeSeconds: outcome.WallTime.Seconds(),
				ObjectiveValue:   outcome.ObjectiveValue,
			},
		}
	case cmpb.CpSolverStatus_INFEASIBLE:
		return infeasible("SolverInfeasible: the solver proved no feasible assignment exists")
	default:
		return Result{Status: StatusUnknown, Message: "SolverTimeout: time budget exceeded with no feasible solution found"}
	}
}

func infeasible(message string) Result {
	return Result{Status: StatusInfeasible, Message: message}
}
