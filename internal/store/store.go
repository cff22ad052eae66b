//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks

package store

import (
	"context"
	"errors"
	"time"

	"github.com/vovakirdan/presencechat/internal/core"
)

var (
	// ErrParticipantExists is returned when inserting a name that is already present.
	ErrParticipantExists = errors.New("participant already exists")
	// ErrParticipantNotFound is returned when the named participant is absent.
	ErrParticipantNotFound = errors.New("participant not found")
)

// ParticipantStore handles presence persistence.
type ParticipantStore interface {
	// CreateParticipant inserts p. Fails with ErrParticipantExists on a duplicate name.
	CreateParticipant(ctx context.Context, p *core.Participant) error

	// GetParticipant retrieves a participant by name.
	GetParticipant(ctx context.Context, name string) (*core.Participant, error)

	// ListParticipants lists every present participant ordered by name.
	ListParticipants(ctx context.Context) ([]*core.Participant, error)

	// TouchParticipant sets the last heartbeat of name to at.
	// Fails with ErrParticipantNotFound when name is absent.
	TouchParticipant(ctx context.Context, name string, at time.Time) error

	// ListStaleParticipants lists participants whose last heartbeat is strictly before cutoff.
	ListStaleParticipants(ctx context.Context, cutoff time.Time) ([]*core.Participant, error)

	// DeleteParticipants removes the given names. Absent names are ignored.
	DeleteParticipants(ctx context.Context, names []string) error

	// DeleteParticipantsIfUnchanged removes each participant only while its stored
	// heartbeat still equals the given one, and returns the names removed.
	DeleteParticipantsIfUnchanged(ctx context.Context, participants []*core.Participant) ([]string, error)
}

// MessageStore handles append-only message persistence.
type MessageStore interface {
	// SaveMessage appends msg and assigns its ID.
	SaveMessage(ctx context.Context, msg *core.Message) error

	// SaveMessages appends msgs atomically in slice order.
	SaveMessages(ctx context.Context, msgs []*core.Message) error

	// ListMessagesFor returns messages addressed to the broadcast target or to viewer,
	// or sent by viewer, in insertion order.
	// A positive limit keeps only the most recent limit messages.
	ListMessagesFor(ctx context.Context, viewer string, limit int) ([]*core.Message, error)
}

// Store aggregates all storage interfaces.
type Store interface {
	ParticipantStore
	MessageStore

	// Close closes the underlying database.
	Close() error
}
