// Package badger stores participants and messages in an embedded Badger database.
//
// Keys:
//
//	participant:{name}          -> participantRecord
//	msg:{id zero-padded to 20}  -> messageRecord
//
// Message ids come from a Badger sequence, so lexicographic key order is insertion order.
package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"

	"github.com/vovakirdan/presencechat/internal/core"
	"github.com/vovakirdan/presencechat/internal/store"
)

const (
	participantPrefix = "participant:"
	messagePrefix     = "msg:"
	messageSeqKey     = "seq:messages"

	seqBandwidth  = 64
	maxTxnRetries = 5
)

// BadgerStore implements store.Store on top of Badger.
type BadgerStore struct {
	db  *badger.DB
	seq *badger.Sequence
}

type participantRecord struct {
	Name          string `json:"name"`
	LastHeartbeat int64  `json:"last_heartbeat_ms"`
}

type messageRecord struct {
	ID        int64     `json:"id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Text      string    `json:"text"`
	Kind      string    `json:"kind"`
	Time      string    `json:"time"`
	CreatedAt time.Time `json:"created_at"`
}

// New opens (or creates) a Badger database in dir. An empty dir keeps everything in memory.
func New(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLoggingLevel(badger.ERROR)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}

	seq, err := db.GetSequence([]byte(messageSeqKey), seqBandwidth)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("message sequence: %w", err)
	}

	return &BadgerStore{db: db, seq: seq}, nil
}

// Close releases the id sequence and closes the database.
func (s *BadgerStore) Close() error {
	seqErr := s.seq.Release()
	dbErr := s.db.Close()
	return errors.Join(seqErr, dbErr)
}

// update runs fn in a read-write transaction, retrying on optimistic conflicts.
func (s *BadgerStore) update(ctx context.Context, fn func(txn *badger.Txn) error) error {
	var err error
	for i := 0; i < maxTxnRetries; i++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		err = s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return err
}

// ==== ParticipantStore implementation ====

// CreateParticipant inserts a participant.
func (s *BadgerStore) CreateParticipant(ctx context.Context, p *core.Participant) error {
	key := participantKey(p.Name)
	value, err := json.Marshal(toParticipantRecord(p))
	if err != nil {
		return fmt.Errorf("encode participant: %w", err)
	}

	return s.update(ctx, func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		switch {
		case err == nil:
			return store.ErrParticipantExists
		case !errors.Is(err, badger.ErrKeyNotFound):
			return fmt.Errorf("get participant: %w", err)
		}
		if err := txn.Set(key, value); err != nil {
			return fmt.Errorf("insert participant: %w", err)
		}
		return nil
	})
}

// GetParticipant retrieves a participant by name.
func (s *BadgerStore) GetParticipant(ctx context.Context, name string) (*core.Participant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var p *core.Participant
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		p, err = readParticipant(txn, name)
		return err
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListParticipants lists every present participant ordered by name.
func (s *BadgerStore) ListParticipants(ctx context.Context) ([]*core.Participant, error) {
	return s.scanParticipants(ctx, func(*core.Participant) bool { return true })
}

// TouchParticipant refreshes the heartbeat of name.
func (s *BadgerStore) TouchParticipant(ctx context.Context, name string, at time.Time) error {
	return s.update(ctx, func(txn *badger.Txn) error {
		p, err := readParticipant(txn, name)
		if err != nil {
			return err
		}
		p.LastHeartbeat = at
		value, err := json.Marshal(toParticipantRecord(p))
		if err != nil {
			return fmt.Errorf("encode participant: %w", err)
		}
		return txn.Set(participantKey(name), value)
	})
}

// ListStaleParticipants lists participants with a heartbeat strictly before cutoff.
func (s *BadgerStore) ListStaleParticipants(ctx context.Context, cutoff time.Time) ([]*core.Participant, error) {
	cutoffMillis := cutoff.UnixMilli()
	return s.scanParticipants(ctx, func(p *core.Participant) bool {
		return p.LastHeartbeat.UnixMilli() < cutoffMillis
	})
}

// DeleteParticipants removes participants by name; missing names are skipped.
func (s *BadgerStore) DeleteParticipants(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}
	return s.update(ctx, func(txn *badger.Txn) error {
		for _, name := range names {
			if err := txn.Delete(participantKey(name)); err != nil {
				return fmt.Errorf("delete participant: %w", err)
			}
		}
		return nil
	})
}

// DeleteParticipantsIfUnchanged removes participants whose heartbeat has not moved since the scan.
func (s *BadgerStore) DeleteParticipantsIfUnchanged(ctx context.Context, participants []*core.Participant) ([]string, error) {
	if len(participants) == 0 {
		return nil, nil
	}

	var removed []string
	err := s.update(ctx, func(txn *badger.Txn) error {
		removed = removed[:0]
		for _, want := range participants {
			current, err := readParticipant(txn, want.Name)
			if errors.Is(err, store.ErrParticipantNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			if current.LastHeartbeat.UnixMilli() != want.LastHeartbeat.UnixMilli() {
				continue
			}
			if err := txn.Delete(participantKey(want.Name)); err != nil {
				return fmt.Errorf("delete participant: %w", err)
			}
			removed = append(removed, want.Name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

func (s *BadgerStore) scanParticipants(ctx context.Context, keep func(*core.Participant) bool) ([]*core.Participant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var participants []*core.Participant
	err := s.db.View(func(txn *badger.Txn) error {
		prefix := []byte(participantPrefix)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec participantRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return fmt.Errorf("decode participant: %w", err)
			}
			p := rec.toParticipant()
			if keep(p) {
				participants = append(participants, p)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan participants: %w", err)
	}
	return participants, nil
}

// ==== MessageStore implementation ====

// SaveMessage appends a message.
func (s *BadgerStore) SaveMessage(ctx context.Context, msg *core.Message) error {
	return s.SaveMessages(ctx, []*core.Message{msg})
}

// SaveMessages appends messages in one transaction, in slice order.
func (s *BadgerStore) SaveMessages(ctx context.Context, msgs []*core.Message) error {
	if len(msgs) == 0 {
		return nil
	}

	ids := make([]int64, len(msgs))
	for i := range msgs {
		next, err := s.seq.Next()
		if err != nil {
			return fmt.Errorf("next message id: %w", err)
		}
		// Sequences start at zero; ids start at one like the SQLite store.
		ids[i] = int64(next) + 1
	}

	err := s.update(ctx, func(txn *badger.Txn) error {
		for i, msg := range msgs {
			rec := toMessageRecord(msg)
			rec.ID = ids[i]
			value, err := json.Marshal(rec)
			if err != nil {
				return fmt.Errorf("encode message: %w", err)
			}
			if err := txn.Set(messageKey(rec.ID), value); err != nil {
				return fmt.Errorf("insert message: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for i, msg := range msgs {
		msg.ID = ids[i]
	}
	return nil
}

// ListMessagesFor walks the log newest first when a limit is set, so only the
// tail of the history is decoded.
func (s *BadgerStore) ListMessagesFor(ctx context.Context, viewer string, limit int) ([]*core.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var messages []*core.Message
	err := s.db.View(func(txn *badger.Txn) error {
		prefix := []byte(messagePrefix)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.Reverse = limit > 0
		it := txn.NewIterator(opts)
		defer it.Close()

		seek := prefix
		if opts.Reverse {
			// Past the last possible key with this prefix.
			seek = append([]byte(messagePrefix), 0xFF)
		}

		for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
			var rec messageRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return fmt.Errorf("decode message: %w", err)
			}
			msg := rec.toMessage()
			if !msg.VisibleTo(viewer) {
				continue
			}
			messages = append(messages, msg)
			if limit > 0 && len(messages) == limit {
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}

	if limit > 0 {
		messages = lo.Reverse(messages)
	}
	return messages, nil
}

func readParticipant(txn *badger.Txn, name string) (*core.Participant, error) {
	item, err := txn.Get(participantKey(name))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, store.ErrParticipantNotFound
		}
		return nil, fmt.Errorf("get participant: %w", err)
	}
	var rec participantRecord
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &rec)
	}); err != nil {
		return nil, fmt.Errorf("decode participant: %w", err)
	}
	return rec.toParticipant(), nil
}

func participantKey(name string) []byte {
	return []byte(participantPrefix + name)
}

func messageKey(id int64) []byte {
	return []byte(fmt.Sprintf("%s%020d", messagePrefix, id))
}

func toParticipantRecord(p *core.Participant) participantRecord {
	return participantRecord{Name: p.Name, LastHeartbeat: p.LastHeartbeat.UnixMilli()}
}

func (r participantRecord) toParticipant() *core.Participant {
	return &core.Participant{Name: r.Name, LastHeartbeat: time.UnixMilli(r.LastHeartbeat)}
}

func toMessageRecord(m *core.Message) messageRecord {
	return messageRecord{
		ID:        m.ID,
		From:      m.From,
		To:        m.To,
		Text:      m.Text,
		Kind:      string(m.Kind),
		Time:      m.Time,
		CreatedAt: m.CreatedAt,
	}
}

func (r messageRecord) toMessage() *core.Message {
	return &core.Message{
		ID:        r.ID,
		From:      r.From,
		To:        r.To,
		Text:      r.Text,
		Kind:      core.Kind(r.Kind),
		Time:      r.Time,
		CreatedAt: r.CreatedAt,
	}
}
