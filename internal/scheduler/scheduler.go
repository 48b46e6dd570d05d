package scheduler

import (
	botinterfaces "comicbot/internal/bot/interfaces"
	"comicbot/internal/notifier"
	"comicbot/internal/providers"
	"comicbot/internal/scheduler/interfaces"
	"comicbot/internal/structures"
	"context"
	"errors"
	"github.com/roylee0704/gron"
	"time"
)

var errNotifyAt = errors.New("invalid notify time")

type Scheduler struct {
	config     *structures.Config
	logger     providers.Logger
	notifier   notifier.NotifierInterface
	dispatcher botinterfaces.DispatcherInterface
	checkpoint *Checkpoint
	cron       *gron.Cron

	loc      *time.Location
	notifyAt string
	now      func() time.Time
}

func NewScheduler(config *structures.Config, logger providers.Logger, notifier notifier.NotifierInterface, dispatcher botinterfaces.DispatcherInterface, checkpoint *Checkpoint) interfaces.SchedulerInterface {
	loc, err := providers.LoadLocation(config.Scheduler.Timezone)
	if err != nil {
		logger.Warnf(providers.TypeScheduler, "Unknown timezone %q, using local time: %s", config.Scheduler.Timezone, err)
		loc = time.Local
	}
	// Empty when unparsable; Init then refuses to start the daily job.
	notifyAt, _ := providers.NormalizeNotifyAt(config.Scheduler.NotifyAt)
	return &Scheduler{
		config:     config,
		logger:     logger,
		notifier:   notifier,
		dispatcher: dispatcher,
		checkpoint: checkpoint,
		loc:        loc,
		notifyAt:   notifyAt,
		now:        time.Now,
	}
}

// Init starts the recurring tick. Ticks go through the dispatcher so they never overlap command handling.
func (s *Scheduler) Init() {
	if s.notifyAt == "" {
		s.logger.Errorf(providers.TypeScheduler, "%s %q, daily announcements disabled", errNotifyAt, s.config.Scheduler.NotifyAt)
		return
	}

	interval := s.config.Scheduler.Interval
	if interval <= 0 {
		interval = time.Minute
	}

	s.cron = gron.New()
	s.cron.AddFunc(gron.Every(interval), func() {
		s.dispatcher.Submit(func() {
			if err := s.Tick(context.Background()); err != nil {
				s.logger.Errorf(providers.TypeScheduler, "Daily pass failed, will retry on the next tick: %s", err)
			}
		})
	})
	s.cron.Start()
	s.logger.Infof(providers.TypeScheduler, "Scheduler started: every %s, daily pass at %s %s", interval, s.notifyAt, s.loc)
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Tick runs the daily pass when the local clock reads notifyAt and today has not been done yet.
// The checkpoint only moves on success, so a failed pass is retried by the next tick in the same minute.
func (s *Scheduler) Tick(ctx context.Context) error {
	now := s.now().In(s.loc)
	if s.notifyAt == "" || now.Format(providers.NotifyAtLayout) != s.notifyAt || s.checkpoint.Done(now) {
		return nil
	}

	s.logger.Infof(providers.TypeScheduler, "Running daily pass for %s", now.Format("2006-01-02"))
	if err := s.notifier.RunDailyPass(ctx); err != nil {
		return err
	}
	s.checkpoint.Mark(now)
	return nil
}
