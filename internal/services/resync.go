package services

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ResyncScheduler re-runs the calendar projection for every profile on a
// cron schedule, so calendars written weeks ago roll forward even without
// new period entries.
type ResyncScheduler struct {
	cycles   *CycleService
	repo     *CycleRepository
	log      *logrus.Logger
	schedule string
	runner   *cron.Cron
}

func NewResyncScheduler(cycles *CycleService, repo *CycleRepository, schedule string, log *logrus.Logger) *ResyncScheduler {
	return &ResyncScheduler{
		cycles:   cycles,
		repo:     repo,
		log:      log,
		schedule: schedule,
	}
}

func (scheduler *ResyncScheduler) Start(ctx context.Context) error {
	scheduler.runner = cron.New()
	if _, err := scheduler.runner.AddFunc(scheduler.schedule, scheduler.ResyncAll); err != nil {
		return err
	}
	scheduler.runner.Start()

	go func() {
		<-ctx.Done()
		scheduler.runner.Stop()
	}()
	return nil
}

// ResyncAll walks every stored profile and refreshes its calendar. Failures
// are per-user and never stop the sweep.
func (scheduler *ResyncScheduler) ResyncAll() {
	userIDs, err := scheduler.repo.ListUserIDs()
	if err != nil {
		scheduler.log.Errorf("calendar resync sweep aborted: %v", err)
		return
	}

	for _, userID := range userIDs {
		if _, err := scheduler.cycles.ResyncCalendar(userID); err != nil {
			scheduler.log.WithField("user_id", userID).Warnf("calendar resync failed: %v", err)
		}
	}
	scheduler.log.WithField("profiles", len(userIDs)).Info("calendar resync sweep finished")
}
