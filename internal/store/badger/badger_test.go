package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/presencechat/internal/core"
	"github.com/vovakirdan/presencechat/internal/store"
	"github.com/vovakirdan/presencechat/internal/store/storetest"
)

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		s, err := New(t.TempDir())
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		return s
	})
}

func TestInMemoryStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		s, err := New("")
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		return s
	})
}

func TestMessagesSurviveReopen(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	dir := t.TempDir()

	s, err := New(dir)
	req.NoError(err)

	first := core.Message{From: "alice", To: core.BroadcastTarget, Text: "before restart", Kind: core.KindMessage}
	first.Stamp(time.Now())
	req.NoError(s.SaveMessage(ctx, &first))
	req.NoError(s.Close())

	s, err = New(dir)
	req.NoError(err)
	defer s.Close()

	second := core.Message{From: "alice", To: core.BroadcastTarget, Text: "after restart", Kind: core.KindMessage}
	second.Stamp(time.Now())
	req.NoError(s.SaveMessage(ctx, &second))
	req.Greater(second.ID, first.ID)

	got, err := s.ListMessagesFor(ctx, "bob", 0)
	req.NoError(err)
	req.Len(got, 2)
	req.Equal("before restart", got[0].Text)
	req.Equal("after restart", got[1].Text)
}
