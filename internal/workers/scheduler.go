package workers

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"

	"github.com/open-builders/questbot/internal/service/batch"
)

// AccountLister returns the ids of every managed account.
type AccountLister interface {
	IDs(ctx context.Context) ([]string, error)
}

// Enqueuer accepts batch jobs.
type Enqueuer interface {
	Enqueue(ctx context.Context, job batch.Job) (string, error)
}

// Scheduler periodically enqueues a daily claim for every account.
type Scheduler struct {
	sched    gocron.Scheduler
	accounts AccountLister
	queue    Enqueuer
	logger   zerolog.Logger
}

func NewScheduler(accounts AccountLister, queue Enqueuer, logger zerolog.Logger) (*Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	return &Scheduler{sched: sched, accounts: accounts, queue: queue, logger: logger}, nil
}

// Start registers the daily claim job at the given interval and starts the
// scheduler. A non-positive interval leaves the scheduler idle.
func (s *Scheduler) Start(ctx context.Context, interval time.Duration) error {
	if interval > 0 {
		_, err := s.sched.NewJob(
			gocron.DurationJob(interval),
			gocron.NewTask(func() { s.EnqueueDailyClaim(ctx) }),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			return err
		}
		s.logger.Info().Dur("interval", interval).Msg("Daily claim scheduled")
	}
	s.sched.Start()
	return nil
}

// EnqueueDailyClaim queues one daily claim batch over all accounts.
func (s *Scheduler) EnqueueDailyClaim(ctx context.Context) {
	ids, err := s.accounts.IDs(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("[Scheduler] Roster unavailable")
		return
	}
	if len(ids) == 0 {
		s.logger.Debug().Msg("[Scheduler] No accounts to claim")
		return
	}
	job := batch.NewJob(batch.KindClaim, ids)
	job.Group = "daily"
	if _, err := s.queue.Enqueue(ctx, job); err != nil {
		s.logger.Error().Err(err).Msg("[Scheduler] Daily claim not queued")
		return
	}
	s.logger.Info().Str("job_id", job.ID).Int("accounts", len(ids)).Msg("✅ Daily claim queued")
}

func (s *Scheduler) Shutdown() error {
	return s.sched.Shutdown()
}
