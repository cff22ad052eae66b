// Package presence tracks which participants are in the room and evicts the
// ones that stop sending heartbeats.
package presence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/vovakirdan/presencechat/internal/core"
	"github.com/vovakirdan/presencechat/internal/store"
	"github.com/vovakirdan/presencechat/internal/validation"
)

// Recorder appends chat events on behalf of the registry.
type Recorder interface {
	Append(ctx context.Context, msg core.Message) (*core.Message, error)
}

// Registry owns the set of active participants.
type Registry struct {
	store     store.ParticipantStore
	directory *Directory
	recorder  Recorder
	clock     core.Clock
	locks     *nameLocks
	log       *zerolog.Logger
}

// NewRegistry creates a registry backed by st that records join notices through rec.
func NewRegistry(st store.ParticipantStore, rec Recorder, clock core.Clock, logger *zerolog.Logger) *Registry {
	if clock == nil {
		clock = core.SystemClock{}
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Registry{
		store:     st,
		directory: NewDirectory(st),
		recorder:  rec,
		clock:     clock,
		locks:     newNameLocks(),
		log:       logger,
	}
}

// Join registers name and records a "joined" status message.
// The participant insert and the notice append are independent: when the
// append fails the participant stays registered and the error is returned.
func (r *Registry) Join(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if err := validation.ParticipantName(name); err != nil {
		return err
	}

	release := r.locks.lock(name)
	err := r.insert(ctx, name)
	release()
	if err != nil {
		return err
	}

	if _, err := r.recorder.Append(ctx, core.StatusMessage(name, core.JoinedText)); err != nil {
		r.log.Warn().Err(err).Str("participant", name).Msg("participant joined without join notice")
		return err
	}

	r.log.Info().Str("participant", name).Msg("participant joined")
	return nil
}

func (r *Registry) insert(ctx context.Context, name string) error {
	exists, err := r.directory.Exists(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return core.ErrConflict
	}

	p := &core.Participant{Name: name, LastHeartbeat: r.clock.Now()}
	if err := r.store.CreateParticipant(ctx, p); err != nil {
		if errors.Is(err, store.ErrParticipantExists) {
			return core.ErrConflict
		}
		return core.Unavailable("insert participant", err)
	}
	return nil
}

// List returns a snapshot of all active participants.
func (r *Registry) List(ctx context.Context) ([]core.Participant, error) {
	participants, err := r.store.ListParticipants(ctx)
	if err != nil {
		return nil, core.Unavailable("list participants", err)
	}
	return lo.Map(participants, func(p *core.Participant, _ int) core.Participant {
		return *p
	}), nil
}

// Heartbeat refreshes the presence timestamp of name.
func (r *Registry) Heartbeat(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if err := validation.ParticipantName(name); err != nil {
		return err
	}

	release := r.locks.lock(name)
	defer release()

	if err := r.store.TouchParticipant(ctx, name, r.clock.Now()); err != nil {
		if errors.Is(err, store.ErrParticipantNotFound) {
			return core.ErrNotFound
		}
		return core.Unavailable("refresh heartbeat", err)
	}
	return nil
}

// Exists reports whether name is currently present.
func (r *Registry) Exists(ctx context.Context, name string) (bool, error) {
	return r.directory.Exists(ctx, name)
}

// ScanStale returns participants silent for longer than timeout. It does not mutate.
func (r *Registry) ScanStale(ctx context.Context, timeout time.Duration) ([]core.Participant, error) {
	cutoff := r.clock.Now().Add(-timeout)
	participants, err := r.store.ListStaleParticipants(ctx, cutoff)
	if err != nil {
		return nil, core.Unavailable("scan stale participants", err)
	}
	return lo.Map(participants, func(p *core.Participant, _ int) core.Participant {
		return *p
	}), nil
}

// EvictMany removes names from the active set. Absent names are ignored.
func (r *Registry) EvictMany(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}

	release := r.locks.lockAll(names)
	defer release()

	if err := r.store.DeleteParticipants(ctx, names); err != nil {
		return core.Unavailable("evict participants", err)
	}
	return nil
}

// EvictStale removes participants found by ScanStale whose heartbeat has not
// moved since, and returns the names actually removed.
func (r *Registry) EvictStale(ctx context.Context, stale []core.Participant) ([]string, error) {
	if len(stale) == 0 {
		return nil, nil
	}

	names := lo.Map(stale, func(p core.Participant, _ int) string { return p.Name })
	release := r.locks.lockAll(names)
	defer release()

	removed, err := r.store.DeleteParticipantsIfUnchanged(ctx, lo.ToSlicePtr(stale))
	if err != nil {
		return nil, core.Unavailable("evict stale participants", err)
	}
	return removed, nil
}
