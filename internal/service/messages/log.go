// Package messages is the append-only chat log with recipient-filtered reads.
package messages

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/vovakirdan/presencechat/internal/core"
	"github.com/vovakirdan/presencechat/internal/store"
	"github.com/vovakirdan/presencechat/internal/validation"
)

// Directory tells the log which senders are currently present.
type Directory interface {
	Exists(ctx context.Context, name string) (bool, error)
}

// Log appends chat events and serves history.
type Log struct {
	store     store.MessageStore
	directory Directory
	clock     core.Clock
	maxLimit  int
	log       *zerolog.Logger
}

// Option configures a Log.
type Option func(*Log)

// WithMaxLimit caps the number of messages a single query returns. Zero disables the cap.
func WithMaxLimit(n int) Option {
	return func(l *Log) {
		if n > 0 {
			l.maxLimit = n
		}
	}
}

// NewLog creates a message log over st that gates chat senders through dir.
func NewLog(st store.MessageStore, dir Directory, clock core.Clock, logger *zerolog.Logger, opts ...Option) *Log {
	if clock == nil {
		clock = core.SystemClock{}
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	l := &Log{
		store:     st,
		directory: dir,
		clock:     clock,
		log:       logger,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Append validates msg, checks that chat senders are present, stamps the
// current time and stores it.
func (l *Log) Append(ctx context.Context, msg core.Message) (*core.Message, error) {
	if err := l.admit(ctx, &msg); err != nil {
		return nil, err
	}

	msg.Stamp(l.clock.Now())
	if err := l.store.SaveMessage(ctx, &msg); err != nil {
		return nil, core.Unavailable("append message", err)
	}

	l.log.Debug().
		Int64("message_id", msg.ID).
		Str("from", msg.From).
		Str("to", msg.To).
		Str("kind", string(msg.Kind)).
		Msg("message appended")
	return &msg, nil
}

// AppendBatch appends msgs in order as one store operation.
// Every message is checked before anything is stored.
func (l *Log) AppendBatch(ctx context.Context, msgs []core.Message) ([]*core.Message, error) {
	if len(msgs) == 0 {
		return nil, nil
	}

	now := l.clock.Now()
	batch := make([]*core.Message, 0, len(msgs))
	for _, m := range msgs {
		msg := m
		if err := l.admit(ctx, &msg); err != nil {
			return nil, err
		}
		msg.Stamp(now)
		batch = append(batch, &msg)
	}

	if err := l.store.SaveMessages(ctx, batch); err != nil {
		return nil, core.Unavailable("append messages", err)
	}
	return batch, nil
}

// Query returns the messages visible to viewer in chronological order.
// When limit is set it must be positive, and only the most recent limit
// messages are returned.
func (l *Log) Query(ctx context.Context, viewer string, limit *int) ([]core.Message, error) {
	viewer = strings.TrimSpace(viewer)
	if err := validation.ParticipantName(viewer); err != nil {
		return nil, err
	}
	if err := validation.Limit(limit); err != nil {
		return nil, err
	}

	n := 0
	if limit != nil {
		n = *limit
	}
	if l.maxLimit > 0 && (n == 0 || n > l.maxLimit) {
		n = l.maxLimit
	}

	msgs, err := l.store.ListMessagesFor(ctx, viewer, n)
	if err != nil {
		return nil, core.Unavailable("query messages", err)
	}
	return lo.Map(msgs, func(m *core.Message, _ int) core.Message { return *m }), nil
}

func (l *Log) admit(ctx context.Context, msg *core.Message) error {
	msg.From = strings.TrimSpace(msg.From)
	msg.To = strings.TrimSpace(msg.To)
	if err := validation.Message(*msg); err != nil {
		return err
	}
	if !msg.Kind.RequiresSender() {
		return nil
	}

	present, err := l.directory.Exists(ctx, msg.From)
	if err != nil {
		return err
	}
	if !present {
		return core.ErrUnknownSender
	}
	return nil
}
