package services

import (
	"context"
	"time"

	"github.com/madflojo/tasks"
	"go.uber.org/zap"

	"github.com/2HgO/fixedfloat-go/config"
)

const purgeTimeout = 30 * time.Second

type SchedulerService interface {
	ScheduleTokenPurge() (taskID string, err error)
	DropTask(taskID string)
}

func NewSchedulerService(scheduler *tasks.Scheduler, accountService AccountService, cfg *config.Config, log *zap.Logger) SchedulerService {
	return &schedulerService{
		service: service{
			accountService: accountService,
			cfg:            cfg,
			log:            log,
		},
		scheduler: scheduler,
	}
}

type schedulerService struct {
	service
	scheduler *tasks.Scheduler
}

func (s *schedulerService) DropTask(taskID string) {
	s.scheduler.Del(taskID)
}

// ScheduleTokenPurge removes expired session tokens every purge interval.
func (s *schedulerService) ScheduleTokenPurge() (string, error) {
	return s.scheduler.Add(&tasks.Task{
		Interval: s.cfg.Auth.PurgeInterval,
		TaskFunc: s.purgeExpiredTokens,
		ErrFunc: func(err error) {
			s.log.Error("purging expired access tokens", zap.Error(err))
		},
	})
}

func (s *schedulerService) purgeExpiredTokens() error {
	ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
	defer cancel()

	n, err := s.accountService.PurgeExpiredTokens(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		s.log.Info("purged expired access tokens", zap.Int64("count", n))
	}
	return nil
}
