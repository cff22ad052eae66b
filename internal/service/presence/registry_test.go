package presence

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vovakirdan/presencechat/internal/core"
	"github.com/vovakirdan/presencechat/internal/store/mocks"
)

func TestJoin_DuplicateNameConflicts(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	ctx := context.Background()

	req.NoError(f.registry.Join(ctx, "alice"))
	req.ErrorIs(f.registry.Join(ctx, "alice"), core.ErrConflict)
	req.ErrorIs(f.registry.Join(ctx, "  alice "), core.ErrConflict)

	req.Equal([]string{"alice"}, f.names(t))
	req.Equal(1, f.statusFrom(t, "alice", core.JoinedText))
}

func TestJoin_RecordsBroadcastStatus(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	req.NoError(f.registry.Join(context.Background(), "alice"))

	msgs, err := f.log.Query(context.Background(), "bob", nil)
	req.NoError(err)
	req.Len(msgs, 1)
	req.Equal(core.Message{
		ID:        msgs[0].ID,
		From:      "alice",
		To:        core.BroadcastTarget,
		Text:      core.JoinedText,
		Kind:      core.KindStatus,
		Time:      "12:00:00",
		CreatedAt: msgs[0].CreatedAt,
	}, msgs[0])
}

func TestJoin_RejectsEmptyName(t *testing.T) {
	f := newFixture(t)
	require.ErrorIs(t, f.registry.Join(context.Background(), ""), core.ErrInvalidInput)
	require.ErrorIs(t, f.registry.Join(context.Background(), "   "), core.ErrInvalidInput)
	require.Empty(t, f.names(t))
}

func TestJoin_ConcurrentSameNameAdmitsOne(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	ctx := context.Background()

	const attempts = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := f.registry.Join(ctx, "alice")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, core.ErrConflict):
				conflicts++
			default:
				t.Errorf("unexpected join error: %v", err)
			}
		}()
	}
	wg.Wait()

	req.Equal(1, succeeded)
	req.Equal(attempts-1, conflicts)
	req.Equal(1, f.statusFrom(t, "alice", core.JoinedText))
}

func TestJoin_NoticeFailureKeepsParticipant(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	msgStore := mocks.NewMockMessageStore(ctrl)
	msgStore.EXPECT().SaveMessage(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	f := newFixture(t)
	chatLog := messagesLogWithStore(msgStore, f)
	registry := NewRegistry(f.store, chatLog, f.clock, nil)

	err := registry.Join(context.Background(), "alice")
	req.ErrorIs(err, core.ErrStoreUnavailable)

	exists, err := registry.Exists(context.Background(), "alice")
	req.NoError(err)
	req.True(exists, "participant insert is not rolled back when the notice fails")
	req.ErrorIs(registry.Join(context.Background(), "alice"), core.ErrConflict)
}

func TestJoin_StoreFailureIsUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockParticipantStore(ctrl)
	st.EXPECT().GetParticipant(gomock.Any(), "alice").Return(nil, errors.New("database is locked"))

	registry := NewRegistry(st, nil, nil, nil)
	require.ErrorIs(t, registry.Join(context.Background(), "alice"), core.ErrStoreUnavailable)
}

func TestHeartbeat(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	ctx := context.Background()

	req.ErrorIs(f.registry.Heartbeat(ctx, "ghost"), core.ErrNotFound)
	req.ErrorIs(f.registry.Heartbeat(ctx, ""), core.ErrInvalidInput)

	req.NoError(f.registry.Join(ctx, "alice"))
	f.clock.Advance(7 * time.Second)
	req.NoError(f.registry.Heartbeat(ctx, "alice"))

	participants, err := f.registry.List(ctx)
	req.NoError(err)
	req.Len(participants, 1)
	req.True(participants[0].LastHeartbeat.Equal(f.clock.Now()))
}

func TestScanStale_IsStrictAndReadOnly(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	ctx := context.Background()

	req.NoError(f.registry.Join(ctx, "alice"))

	f.clock.Advance(testTimeout)
	stale, err := f.registry.ScanStale(ctx, testTimeout)
	req.NoError(err)
	req.Empty(stale, "exactly timeout old is not stale yet")

	f.clock.Advance(time.Millisecond)
	stale, err = f.registry.ScanStale(ctx, testTimeout)
	req.NoError(err)
	req.Len(stale, 1)
	req.Equal("alice", stale[0].Name)

	req.Equal([]string{"alice"}, f.names(t), "scan must not evict")
}

func TestEvictMany_IsIdempotent(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	ctx := context.Background()

	req.NoError(f.registry.Join(ctx, "alice"))
	req.NoError(f.registry.Join(ctx, "bob"))

	req.NoError(f.registry.EvictMany(ctx, []string{"alice", "ghost"}))
	req.NoError(f.registry.EvictMany(ctx, []string{"alice"}))
	req.NoError(f.registry.EvictMany(ctx, nil))
	req.Equal([]string{"bob"}, f.names(t))

	exists, err := f.registry.Exists(ctx, "alice")
	req.NoError(err)
	req.False(exists)
}

func TestEvictStale_SparesRefreshedParticipants(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	ctx := context.Background()

	req.NoError(f.registry.Join(ctx, "alice"))
	req.NoError(f.registry.Join(ctx, "bob"))
	f.clock.Advance(testTimeout + time.Second)

	stale, err := f.registry.ScanStale(ctx, testTimeout)
	req.NoError(err)
	req.Len(stale, 2)

	// bob heartbeats between the scan and the eviction.
	req.NoError(f.registry.Heartbeat(ctx, "bob"))

	removed, err := f.registry.EvictStale(ctx, stale)
	req.NoError(err)
	req.Equal([]string{"alice"}, removed)
	req.Equal([]string{"bob"}, f.names(t))
}
