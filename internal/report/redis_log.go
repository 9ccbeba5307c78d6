package report

import (
	"context"
	"encoding/json"
	"time"

	apperrors "github.com/open-builders/questbot/internal/common/errors"
	rplatform "github.com/open-builders/questbot/internal/platform/redis"
)

const (
	jobReportPrefix  = "jobs:report:"
	DefaultRetention = 7 * 24 * time.Hour
)

// RedisLog persists job reports as Redis lists so operators can read them back.
type RedisLog struct {
	client    *rplatform.Client
	retention time.Duration
}

func NewRedisLog(client *rplatform.Client, retention time.Duration) *RedisLog {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &RedisLog{client: client, retention: retention}
}

func reportKey(jobID string) string { return jobReportPrefix + jobID }

// For returns a reporter appending to the report of jobID.
func (l *RedisLog) For(jobID string) Reporter {
	return jobLog{log: l, jobID: jobID}
}

// Lines reads the full report of jobID in the order it was written.
func (l *RedisLog) Lines(ctx context.Context, jobID string) ([]Line, error) {
	raw, err := l.client.LRange(ctx, reportKey(jobID), 0, -1).Result()
	if err != nil {
		return nil, apperrors.NewStorageError("read job report", err)
	}
	lines := make([]Line, 0, len(raw))
	for _, r := range raw {
		var line Line
		if err := json.Unmarshal([]byte(r), &line); err != nil {
			return nil, apperrors.NewStorageError("decode job report", err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

type jobLog struct {
	log   *RedisLog
	jobID string
}

func (j jobLog) Report(ctx context.Context, lines ...Line) error {
	if len(lines) == 0 {
		return nil
	}
	values := make([]interface{}, len(lines))
	for i, line := range lines {
		b, err := json.Marshal(line)
		if err != nil {
			return apperrors.NewStorageError("encode job report", err)
		}
		values[i] = b
	}

	key := reportKey(j.jobID)
	pipe := j.log.client.TxPipeline()
	pipe.RPush(ctx, key, values...)
	pipe.Expire(ctx, key, j.log.retention)
	if _, err := pipe.Exec(ctx); err != nil {
		return apperrors.NewStorageError("append job report", err)
	}
	return nil
}
