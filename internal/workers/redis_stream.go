package workers

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	go_redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	apperrors "github.com/open-builders/questbot/internal/common/errors"
	"github.com/open-builders/questbot/internal/platform/redis"
	"github.com/open-builders/questbot/internal/report"
	"github.com/open-builders/questbot/internal/service/batch"
)

const (
	streamKey       = "questbot:jobs"
	consumerGroup   = "questbot_batch_workers"
	consumerName    = "batch_worker_1"
	jobStatusPrefix = "jobs:status:"
	statusRetention = 7 * 24 * time.Hour
)

type State string

const (
	StateQueued  State = "queued"
	StateRunning State = "running"
	StateDone    State = "done"
	StateFailed  State = "failed"
)

// Status is the lifecycle record of a queued job.
type Status struct {
	ID        string     `json:"id"`
	Kind      batch.Kind `json:"kind"`
	State     State      `json:"state"`
	Error     string     `json:"error,omitempty"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// JobQueue enqueues batch jobs on a Redis stream and tracks their status.
type JobQueue struct {
	rdb *redis.Client
}

func NewJobQueue(rdb *redis.Client) *JobQueue {
	return &JobQueue{rdb: rdb}
}

// Enqueue validates job and appends it to the stream.
func (q *JobQueue) Enqueue(ctx context.Context, job batch.Job) (string, error) {
	if err := job.Validate(); err != nil {
		return "", err
	}
	payload, err := json.Marshal(job)
	if err != nil {
		return "", apperrors.NewQueueError("encode job", err)
	}
	if err := q.setStatus(ctx, Status{ID: job.ID, Kind: job.Kind, State: StateQueued}); err != nil {
		return "", err
	}
	err = q.rdb.XAdd(ctx, &go_redis.XAddArgs{
		Stream: streamKey,
		Values: map[string]interface{}{"type": string(job.Kind), "payload": payload},
	}).Err()
	if err != nil {
		return "", apperrors.NewQueueError("enqueue job", err)
	}
	return job.ID, nil
}

// Status returns the last recorded state of a job.
func (q *JobQueue) Status(ctx context.Context, id string) (*Status, error) {
	raw, err := q.rdb.Get(ctx, jobStatusPrefix+id).Result()
	if errors.Is(err, go_redis.Nil) {
		return nil, apperrors.NewNotFoundError("job", id)
	}
	if err != nil {
		return nil, apperrors.NewQueueError("read job status", err)
	}
	var s Status
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, apperrors.NewQueueError("decode job status", err)
	}
	return &s, nil
}

func (q *JobQueue) setStatus(ctx context.Context, s Status) error {
	s.UpdatedAt = time.Now().UTC()
	raw, err := json.Marshal(s)
	if err != nil {
		return apperrors.NewQueueError("encode job status", err)
	}
	if err := q.rdb.Set(ctx, jobStatusPrefix+s.ID, raw, statusRetention).Err(); err != nil {
		return apperrors.NewQueueError("write job status", err)
	}
	return nil
}

// Runner executes a batch job.
type Runner interface {
	Run(ctx context.Context, job batch.Job, out report.Reporter) error
}

// RedisStreamWorker consumes the job stream and runs jobs one at a time, so
// batches never overlap.
type RedisStreamWorker struct {
	rdb     *redis.Client
	queue   *JobQueue
	runner  Runner
	reports func(jobID string) report.Reporter
	logger  zerolog.Logger
	block   time.Duration
}

func NewRedisStreamWorker(rdb *redis.Client, queue *JobQueue, runner Runner, reports func(jobID string) report.Reporter, logger zerolog.Logger) *RedisStreamWorker {
	return &RedisStreamWorker{
		rdb:     rdb,
		queue:   queue,
		runner:  runner,
		reports: reports,
		logger:  logger,
		block:   5 * time.Second,
	}
}

// Start begins listening to the job stream until ctx is done.
func (w *RedisStreamWorker) Start(ctx context.Context) {
	err := w.rdb.XGroupCreateMkStream(ctx, streamKey, consumerGroup, "0").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		w.logger.Error().Err(err).Msg("Error creating consumer group")
	}

	w.logger.Info().Msg("Starting job stream worker...")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("Stopping job stream worker...")
			return
		default:
			entries, err := w.rdb.XReadGroup(ctx, &go_redis.XReadGroupArgs{
				Group:    consumerGroup,
				Consumer: consumerName,
				Streams:  []string{streamKey, ">"},
				Count:    1,
				Block:    w.block,
			}).Result()

			if err != nil {
				if !errors.Is(err, go_redis.Nil) && ctx.Err() == nil {
					w.logger.Error().Err(err).Msg("Error reading from stream")
					time.Sleep(1 * time.Second)
				}
				continue
			}

			for _, stream := range entries {
				for _, msg := range stream.Messages {
					w.processMessage(ctx, msg.Values)
					w.rdb.XAck(ctx, streamKey, consumerGroup, msg.ID)
				}
			}
		}
	}
}

func (w *RedisStreamWorker) processMessage(ctx context.Context, values map[string]interface{}) {
	payload, ok := values["payload"].(string)
	if !ok {
		w.logger.Warn().Interface("values", values).Msg("Job without payload")
		return
	}
	var job batch.Job
	if err := json.Unmarshal([]byte(payload), &job); err != nil {
		w.logger.Error().Err(err).Msg("Undecodable job")
		return
	}

	log := w.logger.With().Str("job_id", job.ID).Str("kind", string(job.Kind)).Logger()
	if err := w.queue.setStatus(ctx, Status{ID: job.ID, Kind: job.Kind, State: StateRunning}); err != nil {
		log.Warn().Err(err).Msg("Job status not updated")
	}

	status := Status{ID: job.ID, Kind: job.Kind, State: StateDone}
	if err := w.runner.Run(ctx, job, w.reports(job.ID)); err != nil {
		log.Error().Err(err).Msg("Job failed")
		status.State, status.Error = StateFailed, err.Error()
	}
	if err := w.queue.setStatus(ctx, status); err != nil {
		log.Warn().Err(err).Msg("Job status not updated")
	}
}
