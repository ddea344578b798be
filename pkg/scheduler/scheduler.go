// Package scheduler drives the one background job this service runs: a
// nightly re-optimization of tomorrow's schedule, so staff see an assigned
// roster before the day starts rather than only at first request.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/salonsys/scheduling-service/internal/service"
	"github.com/salonsys/scheduling-service/pkg/logger"
)

// DefaultRequestFunc builds the OptimizeRequest for a given schedule date.
// The salon/scheduling constraints and objective weights are not persisted
// entities — they are caller-supplied configuration — so the
// scheduler needs a way to produce them for whatever date it is about to
// run; callers typically close over a fixed configuration here.
type DefaultRequestFunc func(date time.Time) service.OptimizeRequest

// Scheduler runs the nightly re-optimization cron job.
type Scheduler struct {
	cron           *cron.Cron
	svc            *service.SchedulingService
	spec           string
	defaultRequest DefaultRequestFunc
	logger         *logger.Logger
}

// New creates a new scheduler. spec is a standard 5-field cron expression
// (e.g. "0 2 * * *" for 2am daily).
func New(svc *service.SchedulingService, spec string, defaultRequest DefaultRequestFunc, logger *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:           cron.New(),
		svc:            svc,
		spec:           spec,
		defaultRequest: defaultRequest,
		logger:         logger,
	}
}

// Start registers and starts the nightly re-optimization job.
func (s *Scheduler) Start() error {
	s.logger.Info("starting background scheduler", "spec", s.spec)
	_, err := s.cron.AddFunc(s.spec, s.runNightlyReoptimization)
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for any in-flight job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping background scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runNightlyReoptimization() {
	tomorrow := time.Now().AddDate(0, 0, 1)
	req := s.defaultRequest(tomorrow)

	s.logger.Info("running nightly re-optimization", "date", tomorrow.Format("2006-01-02"))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := s.svc.RunOptimization(ctx, req)
	if err != nil {
		s.logger.Error("nightly re-optimization failed", "error", err)
		return
	}
	s.logger.Info("nightly re-optimization finished", "status", result.Status, "entries", len(result.Schedule))
}
