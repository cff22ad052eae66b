// Package storetest holds behaviour checks shared by every store.Store backend.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/presencechat/internal/core"
	"github.com/vovakirdan/presencechat/internal/store"
)

// Factory opens an empty store for one subtest.
type Factory func(t *testing.T) store.Store

// Run exercises the full store.Store contract against fresh stores from newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("participants", func(t *testing.T) { testParticipants(t, newStore(t)) })
	t.Run("stale scan and conditional delete", func(t *testing.T) { testStale(t, newStore(t)) })
	t.Run("message filter and limit", func(t *testing.T) { testMessages(t, newStore(t)) })
	t.Run("message batch", func(t *testing.T) { testBatch(t, newStore(t)) })
}

var base = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func testParticipants(t *testing.T, st store.Store) {
	ctx := context.Background()

	if err := st.CreateParticipant(ctx, &core.Participant{Name: "alice", LastHeartbeat: base}); err != nil {
		t.Fatalf("create alice: %v", err)
	}
	err := st.CreateParticipant(ctx, &core.Participant{Name: "alice", LastHeartbeat: base})
	if !errors.Is(err, store.ErrParticipantExists) {
		t.Fatalf("expected ErrParticipantExists, got %v", err)
	}
	if err := st.CreateParticipant(ctx, &core.Participant{Name: "bob", LastHeartbeat: base}); err != nil {
		t.Fatalf("create bob: %v", err)
	}

	p, err := st.GetParticipant(ctx, "alice")
	if err != nil {
		t.Fatalf("get alice: %v", err)
	}
	if !p.LastHeartbeat.Equal(base) {
		t.Errorf("expected heartbeat %v, got %v", base, p.LastHeartbeat)
	}
	if _, err := st.GetParticipant(ctx, "ghost"); !errors.Is(err, store.ErrParticipantNotFound) {
		t.Fatalf("expected ErrParticipantNotFound, got %v", err)
	}

	later := base.Add(5 * time.Second)
	if err := st.TouchParticipant(ctx, "alice", later); err != nil {
		t.Fatalf("touch alice: %v", err)
	}
	if err := st.TouchParticipant(ctx, "ghost", later); !errors.Is(err, store.ErrParticipantNotFound) {
		t.Fatalf("expected ErrParticipantNotFound on touch, got %v", err)
	}

	list, err := st.ListParticipants(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Name != "alice" || list[1].Name != "bob" {
		t.Fatalf("unexpected participants: %+v", list)
	}
	if !list[0].LastHeartbeat.Equal(later) {
		t.Errorf("expected refreshed heartbeat %v, got %v", later, list[0].LastHeartbeat)
	}

	if err := st.DeleteParticipants(ctx, []string{"alice", "ghost"}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := st.DeleteParticipants(ctx, []string{"alice"}); err != nil {
		t.Fatalf("repeat delete should be a no-op: %v", err)
	}
	list, err = st.ListParticipants(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Name != "bob" {
		t.Fatalf("expected only bob, got %+v", list)
	}
}

func testStale(t *testing.T, st store.Store) {
	ctx := context.Background()

	for name, at := range map[string]time.Time{
		"old":    base,
		"edge":   base.Add(10 * time.Second),
		"recent": base.Add(20 * time.Second),
	} {
		if err := st.CreateParticipant(ctx, &core.Participant{Name: name, LastHeartbeat: at}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	stale, err := st.ListStaleParticipants(ctx, base.Add(10*time.Second))
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(stale) != 1 || stale[0].Name != "old" {
		t.Fatalf("expected only old to be stale, got %+v", stale)
	}

	stale, err = st.ListStaleParticipants(ctx, base.Add(15*time.Second))
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(stale) != 2 {
		t.Fatalf("expected 2 stale participants, got %+v", stale)
	}

	// edge heartbeats after the scan and must survive.
	if err := st.TouchParticipant(ctx, "edge", base.Add(30*time.Second)); err != nil {
		t.Fatalf("touch edge: %v", err)
	}
	removed, err := st.DeleteParticipantsIfUnchanged(ctx, stale)
	if err != nil {
		t.Fatalf("conditional delete: %v", err)
	}
	if len(removed) != 1 || removed[0] != "old" {
		t.Fatalf("expected only old removed, got %v", removed)
	}

	removed, err = st.DeleteParticipantsIfUnchanged(ctx, stale)
	if err != nil {
		t.Fatalf("repeat conditional delete: %v", err)
	}
	if len(removed) != 0 {
		t.Fatalf("repeat delete should remove nothing, got %v", removed)
	}

	if _, err := st.GetParticipant(ctx, "edge"); err != nil {
		t.Fatalf("edge should still be present: %v", err)
	}
}

func testMessages(t *testing.T, st store.Store) {
	ctx := context.Background()

	seed := []core.Message{
		{From: "alice", To: core.BroadcastTarget, Text: "hello all", Kind: core.KindMessage},
		{From: "alice", To: "carol", Text: "psst carol", Kind: core.KindPrivateMessage},
		{From: "bob", To: "alice", Text: "hey alice", Kind: core.KindPrivateMessage},
		{From: "carol", To: "dave", Text: "for dave", Kind: core.KindPrivateMessage},
		{From: "dave", To: core.BroadcastTarget, Text: "entra na sala...", Kind: core.KindStatus},
	}
	for i := range seed {
		msg := seed[i]
		msg.Stamp(base.Add(time.Duration(i) * time.Second))
		if err := st.SaveMessage(ctx, &msg); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
		if msg.ID == 0 {
			t.Fatalf("save %d: expected assigned id", i)
		}
	}

	tests := []struct {
		name   string
		viewer string
		limit  int
		want   []string
	}{
		{name: "carol sees broadcast and her private", viewer: "carol", want: []string{"hello all", "psst carol", "for dave", "entra na sala..."}},
		{name: "alice sees sent and received", viewer: "alice", want: []string{"hello all", "psst carol", "hey alice", "entra na sala..."}},
		{name: "stranger sees broadcasts only", viewer: "erin", want: []string{"hello all", "entra na sala..."}},
		{name: "limit keeps most recent in order", viewer: "alice", limit: 2, want: []string{"hey alice", "entra na sala..."}},
		{name: "limit larger than history", viewer: "erin", limit: 10, want: []string{"hello all", "entra na sala..."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := st.ListMessagesFor(ctx, tt.viewer, tt.limit)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d messages, got %d: %+v", len(tt.want), len(got), got)
			}
			for i, msg := range got {
				if msg.Text != tt.want[i] {
					t.Errorf("index %d: expected %q, got %q", i, tt.want[i], msg.Text)
				}
			}
		})
	}

	got, err := st.ListMessagesFor(ctx, "dave", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	last := got[len(got)-1]
	if last.Kind != core.KindStatus || last.Time != "12:00:04" || !last.CreatedAt.Equal(base.Add(4*time.Second)) {
		t.Errorf("fields not round-tripped: %+v", last)
	}
}

func testBatch(t *testing.T, st store.Store) {
	ctx := context.Background()

	batch := make([]*core.Message, 0, 3)
	for _, name := range []string{"x", "y", "z"} {
		msg := core.StatusMessage(name, core.LeftText)
		msg.Stamp(base)
		batch = append(batch, &msg)
	}
	if err := st.SaveMessages(ctx, batch); err != nil {
		t.Fatalf("save batch: %v", err)
	}
	if err := st.SaveMessages(ctx, nil); err != nil {
		t.Fatalf("empty batch should be a no-op: %v", err)
	}

	got, err := st.ListMessagesFor(ctx, "anyone", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(got))
	}
	for i, name := range []string{"x", "y", "z"} {
		if got[i].From != name || got[i].ID != batch[i].ID {
			t.Errorf("index %d: expected %s/%d, got %s/%d", i, name, batch[i].ID, got[i].From, got[i].ID)
		}
	}
}
