package presence

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/vovakirdan/presencechat/internal/core"
)

const (
	// DefaultReapInterval is how often the reaper scans for stale participants.
	DefaultReapInterval = 15 * time.Second
	// DefaultStaleTimeout is how long a participant may stay silent.
	DefaultStaleTimeout = 10 * time.Second
)

// BatchRecorder appends several chat events at once.
type BatchRecorder interface {
	AppendBatch(ctx context.Context, msgs []core.Message) ([]*core.Message, error)
}

// ReaperConfig tunes the eviction cycle.
type ReaperConfig struct {
	Interval time.Duration
	Timeout  time.Duration
}

// Reaper periodically evicts stale participants and records their departure.
type Reaper struct {
	registry *Registry
	notices  BatchRecorder
	interval time.Duration
	timeout  time.Duration
	log      *zerolog.Logger
}

// SweepResult describes one eviction cycle.
type SweepResult struct {
	// Evicted lists the participants removed in this cycle.
	Evicted []string
	// Notified is false when departure notices could not be appended.
	Notified bool
}

// NewReaper builds a reaper over registry that records departures through notices.
func NewReaper(registry *Registry, notices BatchRecorder, cfg ReaperConfig, logger *zerolog.Logger) *Reaper {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultReapInterval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultStaleTimeout
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Reaper{
		registry: registry,
		notices:  notices,
		interval: cfg.Interval,
		timeout:  cfg.Timeout,
		log:      logger,
	}
}

// Run sweeps every interval until ctx is cancelled.
// A cycle is bounded by one interval; ticks missed while a cycle runs are dropped.
func (r *Reaper) Run(ctx context.Context) {
	r.log.Info().
		Dur("interval", r.interval).
		Dur("timeout", r.timeout).
		Msg("presence reaper started")

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Info().Msg("presence reaper stopped")
			return
		case <-ticker.C:
			cycleCtx, cancel := context.WithTimeout(ctx, r.interval)
			_, _ = r.Sweep(cycleCtx) //nolint:errcheck // Sweep logs its own failures
			cancel()
		}
	}
}

// Sweep runs one scan/evict/notify cycle.
// A scan or eviction failure skips the cycle without evicting anyone.
// A notice failure is returned after eviction has already taken effect.
func (r *Reaper) Sweep(ctx context.Context) (SweepResult, error) {
	stale, err := r.registry.ScanStale(ctx, r.timeout)
	if err != nil {
		r.log.Warn().Err(err).Msg("stale scan failed, skipping cycle")
		return SweepResult{}, err
	}
	if len(stale) == 0 {
		return SweepResult{Notified: true}, nil
	}

	evicted, err := r.registry.EvictStale(ctx, stale)
	if err != nil {
		r.log.Warn().Err(err).Int("stale", len(stale)).Msg("eviction failed, skipping cycle")
		return SweepResult{}, err
	}
	if len(evicted) == 0 {
		return SweepResult{Notified: true}, nil
	}

	notices := lo.Map(evicted, func(name string, _ int) core.Message {
		return core.StatusMessage(name, core.LeftText)
	})
	if _, err := r.notices.AppendBatch(ctx, notices); err != nil {
		r.log.Error().Err(err).Strs("participants", evicted).Msg("departure notices lost")
		return SweepResult{Evicted: evicted}, err
	}

	r.log.Info().Strs("participants", evicted).Msg("evicted stale participants")
	return SweepResult{Evicted: evicted, Notified: true}, nil
}
