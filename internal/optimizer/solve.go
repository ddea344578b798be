package optimizer

import (
	"fmt"
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	sppb "github.com/google/or-tools/ortools/sat/proto/satparameters"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
	"google.golang.org/protobuf/proto"
)

// SolveOutcome is the solver's answer before it has been decoded into a
// domain-level schedule.
type SolveOutcome struct {
	Proto          *cmpb.CpSolverResponse
	WallTime       time.Duration
	ObjectiveValue float64
	Status         cmpb.CpSolverStatus
}

// Solve submits the built model to the CP-SAT solver. When timeLimit is zero
// or negative, the solver runs to completion (no time budget, the
// default).
func Solve(model *cpmodel.CpModelBuilder, timeLimit time.Duration) (SolveOutcome, error) {
	m, err := model.Model()
	if err != nil {
		return SolveOutcome{}, fmt.Errorf("optimizer: failed to instantiate CP model: %w", err)
	}

	var response *cmpb.CpSolverResponse
	if timeLimit > 0 {
		params := &sppb.SatParameters{
			MaxTimeInSeconds: proto.Float64(timeLimit.Seconds()),
		}
		response, err = cpmodel.SolveCpModelWithParameters(m, params)
	} else {
		response, err = cpmodel.SolveCpModel(m)
	}
	if err != nil {
		return SolveOutcome{}, fmt.Errorf("optimizer: solve failed: %w", err)
	}

	return SolveOutcome{
		Proto:          response,
		WallTime:       time.Duration(response.GetWallTime() * float64(time.Second)),
		ObjectiveValue: response.GetObjectiveValue(),
		Status:         response.GetStatus(),
	}, nil
}

// Response adapts the raw solver proto to the narrow ResponseReader
// interface the solution extractor depends on.
func (o SolveOutcome) Response() ResponseReader {
	return responseReader{o.Proto}
}

type responseReader struct {
	proto *cmpb.CpSolverResponse
}

func (r responseReader) BooleanValue(v cpmodel.BoolVar) bool {
	return cpmodel.SolutionBooleanValue(r.proto, v)
}
