// Package retry wraps store operations with classified retry behaviour and
// exponential backoff.
package retry

import (
	"context"
	"time"

	logx "github.com/sherpa-concierge-poc/server/pkg/logger"
)

// Class is the retry classification of a failure.
type Class int

const (
	// Transient failures are retried until attempts are exhausted.
	Transient Class = iota
	// Permanent failures are re-raised immediately without retry or delay.
	Permanent
)

// Classifier decides whether a failure is worth retrying.
type Classifier func(error) Class

const (
	DefaultAttempts  = 3
	DefaultBaseDelay = time.Second
)

// Policy retries an operation with exponential backoff between attempts
// (base, 2*base, ...). No delay precedes the first attempt and none follows
// the final failure. A nil Classify treats every failure as transient.
type Policy struct {
	Attempts  int
	BaseDelay time.Duration
	Classify  Classifier

	// Sleep is injectable for tests; nil uses a context-aware wait.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Do runs op, retrying transient failures. The last error is returned once
// attempts are exhausted; the caller is expected to apply its own fallback.
func (p Policy) Do(ctx context.Context, op func() error) error {
	attempts := p.Attempts
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	base := p.BaseDelay
	if base <= 0 {
		base = DefaultBaseDelay
	}

	var err error
	for i := 0; i < attempts; i++ {
		if err = op(); err == nil {
			return nil
		}
		if p.classify(err) == Permanent {
			return err
		}
		if i == attempts-1 {
			break
		}
		delay := base << i
		logx.Warn().Err(err).Int("attempt", i+1).Dur("delay", delay).Msg("store operation failed, retrying")
		if sleepErr := p.sleep(ctx, delay); sleepErr != nil {
			// Context cancelled mid-backoff: surface the operation error so
			// the caller's fallback still applies.
			return err
		}
	}
	return err
}

func (p Policy) classify(err error) Class {
	if p.Classify == nil {
		return Transient
	}
	return p.Classify(err)
}

func (p Policy) sleep(ctx context.Context, d time.Duration) error {
	if p.Sleep != nil {
		return p.Sleep(ctx, d)
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
