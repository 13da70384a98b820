package batch

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/robfig/cron/v3"

	"github.com/iWorld-y/career_coach/internal/conf"
)

// Weekly, Sunday midnight.
const defaultCronSpec = "0 0 * * 0"

const runTimeout = 30 * time.Minute

// Scheduler runs the refresher on a cron spec. It satisfies the kratos
// transport.Server interface so the app manages its lifecycle like the HTTP
// server.
type Scheduler struct {
	cron      *cron.Cron
	refresher *Refresher
	spec      string
	log       *log.Helper
}

// NewScheduler builds the cron scheduler from config. An explicit "off"
// disables scheduled runs; manual triggering stays available.
func NewScheduler(c *conf.Coach, refresher *Refresher, logger log.Logger) *Scheduler {
	spec := defaultCronSpec
	if c != nil && c.Refresh != nil && c.Refresh.Cron != "" {
		spec = c.Refresh.Cron
	}
	return &Scheduler{
		cron:      cron.New(),
		refresher: refresher,
		spec:      spec,
		log:       log.NewHelper(logger),
	}
}

// Start registers the cron entry and starts the ticker. It returns
// immediately; jobs run on the cron goroutine.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.spec == "off" {
		s.log.Info("scheduled refresh disabled")
		return nil
	}
	_, err := s.cron.AddFunc(s.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		if err := s.refresher.RunOnce(ctx); err != nil {
			s.log.Errorf("scheduled refresh failed: %v", err)
		}
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	s.log.Infof("refresh scheduled with spec %q", s.spec)
	return nil
}

// Stop halts the ticker and waits for a running job to finish.
func (s *Scheduler) Stop(ctx context.Context) error {
	stopped := s.cron.Stop()
	select {
	case <-stopped.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}
