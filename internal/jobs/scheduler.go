// Package jobs runs the recurring background work on a cron schedule.
package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/bic-devsphere/devsphere-backend/internal/services"
)

type Scheduler struct {
	cron *cron.Cron
	log  *slog.Logger
}

// New wires the recurring jobs. An empty syncSpec disables the contributor
// reconciliation entry.
func New(contributors *services.ContributorService, syncSpec string, log *slog.Logger) (*Scheduler, error) {
	c := cron.New()
	if syncSpec != "" {
		_, err := c.AddFunc(syncSpec, func() {
			log.Info("contributor sync starting")
			contributors.SyncAll(context.Background())
			log.Info("contributor sync finished")
		})
		if err != nil {
			return nil, err
		}
	}
	return &Scheduler{cron: c, log: log}, nil
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop halts scheduling and waits for any running job.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
