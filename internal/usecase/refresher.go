package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"FlipPulse/internal/domain/models"
	drepo "FlipPulse/internal/domain/repository"
	"FlipPulse/internal/services/flip"
	xlogger "FlipPulse/pkg/logger"
)

// ErrRefreshInFlight is returned when a refresh is requested while another
// one is still running.
var ErrRefreshInFlight = errors.New("refresh already in progress")

// Refresher periodically fetches a market snapshot, evaluates it and keeps
// the latest ranked result for the API layer. At most one evaluation runs at
// a time; concurrent triggers are rejected rather than queued.
type Refresher struct {
	source   drepo.MarketSource
	metrics  drepo.Metrics
	params   models.Params
	interval time.Duration
	logger   *xlogger.Logger

	mu        sync.RWMutex
	result    flip.Result
	updatedAt time.Time

	inFlight atomic.Bool
}

// NewRefresher creates a Refresher. metrics and logger may be nil.
func NewRefresher(source drepo.MarketSource, metrics drepo.Metrics, params models.Params, interval time.Duration, logger *xlogger.Logger) *Refresher {
	return &Refresher{
		source:   source,
		metrics:  metrics,
		params:   params,
		interval: interval,
		logger:   logger,
	}
}

// Start runs an immediate refresh and then keeps refreshing on the interval
// until the context is cancelled.
func (r *Refresher) Start(ctx context.Context) {
	go func() {
		if err := r.Refresh(ctx); err != nil {
			r.logError("initial refresh failed", err)
		}

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := r.Refresh(ctx); err != nil && !errors.Is(err, ErrRefreshInFlight) {
					r.logError("scheduled refresh failed", err)
				}
			}
		}
	}()
}

// Refresh fetches and evaluates one snapshot, then swaps it in. On fetch
// failure the previous result stays served.
func (r *Refresher) Refresh(ctx context.Context) error {
	if !r.inFlight.CompareAndSwap(false, true) {
		return ErrRefreshInFlight
	}
	defer r.inFlight.Store(false)

	start := time.Now()
	data, err := r.source.Fetch(ctx)
	if err != nil {
		return err
	}

	res := flip.Evaluate(data, r.params, time.Now())

	r.mu.Lock()
	r.result = res
	r.updatedAt = data.FetchedAt
	r.mu.Unlock()

	r.record(res, time.Since(start))
	if r.logger != nil {
		r.logger.Info("refresh complete",
			xlogger.Int("items", len(data.Items)),
			xlogger.Int("candidates", len(res.Candidates)),
			xlogger.Duration("took", time.Since(start)),
		)
	}
	return nil
}

func (r *Refresher) record(res flip.Result, took time.Duration) {
	if r.metrics == nil {
		return
	}
	top := 0.0
	if len(res.Candidates) > 0 {
		top = res.Candidates[0].Score
	}
	r.metrics.RecordEvaluation(len(res.Candidates), top)
	r.metrics.RecordRejections(res.Rejections)
	r.metrics.RecordLatency("refresh", took.Seconds())
}

func (r *Refresher) logError(msg string, err error) {
	if r.logger != nil {
		r.logger.Error(msg, xlogger.Error(err))
	}
}

// Snapshot returns the latest ranked candidates and when they were fetched.
// The returned slice is shared; callers must not mutate it.
func (r *Refresher) Snapshot() ([]models.FlipCandidate, time.Time) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.result.Candidates, r.updatedAt
}

// Rejections returns the per-stage rejection counts of the latest pass.
func (r *Refresher) Rejections() map[string]int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]int, len(r.result.Rejections))
	for k, v := range r.result.Rejections {
		out[k] = v
	}
	return out
}

// InFlight reports whether a refresh is currently running.
func (r *Refresher) InFlight() bool { return r.inFlight.Load() }

// Params returns the evaluation parameters in use.
func (r *Refresher) Params() models.Params { return r.params }
