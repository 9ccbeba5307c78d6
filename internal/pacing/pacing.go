// Package pacing spaces out platform requests so automated traffic does not
// arrive at fixed intervals.
package pacing

import (
	"context"
	"time"

	"github.com/open-builders/questbot/internal/utils/random"
)

// Pacer suspends the caller for a delay derived from base.
type Pacer interface {
	Pause(ctx context.Context, base time.Duration) error
}

// Jittered sleeps base plus a uniform jitter in [0, base).
type Jittered struct{}

func (Jittered) Pause(ctx context.Context, base time.Duration) error {
	d := Delay(base)
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Delay is the total pause for base: base + jitter.
func Delay(base time.Duration) time.Duration {
	if base <= 0 {
		return 0
	}
	return base + random.Jitter(base)
}

// Recorder collects requested delays without sleeping.
type Recorder struct {
	Pauses []time.Duration
}

func (r *Recorder) Pause(ctx context.Context, base time.Duration) error {
	r.Pauses = append(r.Pauses, base)
	return ctx.Err()
}
