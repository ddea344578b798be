package optimizer

import (
	"fmt"
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	"github.com/shopspring/decimal"

	"github.com/salonsys/scheduling-service/internal/domain"
)

// WeightScale is the single integer scaling factor applied uniformly to all
// four normalized objective weights. An earlier version of this system
// used an inconsistent ×100 for some terms and ×10 for others; this target
// uses one documented factor everywhere.
const WeightScale = 1000

// BuildObjective emits the weighted linear expression and calls
// model.Maximize on it. objectives must already be normalized — callers are
// expected to have rejected an unnormalized set before reaching here
// (the UnnormalizedObjectives result status).
func BuildObjective(
	model *cpmodel.CpModelBuilder,
	grid Grid,
	vars *Variables,
	staffByID map[string]*domain.Staff,
	bookingByID map[string]*domain.Booking,
	sched domain.SchedulingConstraints,
	objectives domain.OptimizationObjectives,
) error {
	if !objectives.IsNormalized() {
		return fmt.Errorf("optimizer: objective weights are not normalized")
	}

	wPref := scaleWeight(objectives.CustomerSatisfaction)
	wUtil := scaleWeight(objectives.StaffUtilization)
	wCost := scaleWeight(objectives.CostMinimization)
	wStab := scaleWeight(objectives.ScheduleStability)

	objective := cpmodel.NewLinearExpr()

	for key, v := range vars.Assign {
		b := bookingByID[key.BookingID]

		// T_pref: preferred-staff assignments, weighted by the customer's
		// priority so VIP > High > Normal > Low preferences dominate.
		if b.Customer.Prefers(key.StaffID) {
			objective.AddTerm(v, wPref*b.Customer.Priority.Value())
		}

		// T_stab: reward assignments landing exactly on the originally
		// requested start time.
		if grid.SlotToClock(key.Slot).Equal(b.ScheduledStart) {
			objective.AddTerm(v, wStab)
		}
	}

	occByStaff := make(map[string][]cpmodel.BoolVar)
	for occKey, v := range vars.Occ {
		// T_util: reward staff being on duty during open slots.
		objective.AddTerm(v, wUtil)
		occByStaff[occKey.StaffID] = append(occByStaff[occKey.StaffID], v)
	}

	// T_cost: subtract the cost of each staff member's on-duty slots. Only
	// the slots beyond max_hours_per_day are costed at the overtime premium
	// rate; which slots those are isn't decided until the solver picks a
	// schedule, so the excess is modeled with its own bounded variable
	// rather than priced up front (see DESIGN.md).
	for staffID, occVars := range occByStaff {
		s := staffByID[staffID]
		regularCost := slotCostCents(s, 1.0)
		maxSlots := int64(s.MaxHoursPerDay) * int64(time.Hour/SlotDuration)

		if sched.AllowOvertime && maxSlots < int64(len(occVars)) {
			premiumCost := slotCostCents(s, sched.OvertimePremiumRate)

			total := cpmodel.NewLinearExpr()
			for _, v := range occVars {
				total.Add(v)
				objective.AddTerm(v, -wCost*regularCost)
			}

			excess := model.NewIntVar(0, int64(len(occVars))-maxSlots)
			total.AddTerm(excess, -1)
			model.AddLessOrEqual(total, cpmodel.NewConstant(maxSlots))

			// The premium only applies to the excess; the excess's own
			// regular-rate share was already added above.
			objective.AddTerm(excess, -wCost*(premiumCost-regularCost))
			continue
		}

		for _, v := range occVars {
			objective.AddTerm(v, -wCost*regularCost)
		}
	}

	model.Maximize(objective)
	return nil
}

func scaleWeight(w float64) int64 {
	return int64(w*WeightScale + 0.5)
}

// slotCostCents converts a staff member's hourly rate into cents for one
// SlotDuration-sized slot at the given rate multiplier (1.0 for the regular
// rate, sched.OvertimePremiumRate for the premium rate), rounding to the
// nearest cent. Decimal arithmetic is used throughout so the rate never
// passes through a float.
func slotCostCents(s *domain.Staff, rateMultiplier float64) int64 {
	rate := s.HourlyRate.Mul(decimal.NewFromFloat(rateMultiplier))
	fraction := decimal.NewFromInt(1).Div(decimal.NewFromInt(slotsPerHour))
	return rate.Mul(decimal.NewFromInt(100)).Mul(fraction).Round(0).IntPart()
}

// slotsPerHour assumes the fixed 15-minute SlotDuration.
const slotsPerHour = 4
