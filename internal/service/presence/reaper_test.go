package presence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vovakirdan/presencechat/internal/core"
	"github.com/vovakirdan/presencechat/internal/service/messages"
	"github.com/vovakirdan/presencechat/internal/store/mocks"
)

func TestSweep_EvictsSilentParticipantOnce(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	ctx := context.Background()

	req.NoError(f.registry.Join(ctx, "alice"))
	req.NoError(f.registry.Join(ctx, "bob"))

	f.clock.Advance(testTimeout + 15*time.Second)
	req.NoError(f.registry.Heartbeat(ctx, "alice"))

	result, err := f.reaper.Sweep(ctx)
	req.NoError(err)
	req.Equal([]string{"bob"}, result.Evicted)
	req.True(result.Notified)

	req.Equal([]string{"alice"}, f.names(t))
	req.Equal(1, f.statusFrom(t, "bob", core.LeftText))

	// Already evicted names are not detected again.
	result, err = f.reaper.Sweep(ctx)
	req.NoError(err)
	req.Empty(result.Evicted)
	req.Equal(1, f.statusFrom(t, "bob", core.LeftText))

	msgs, err := f.log.Query(ctx, "carol", nil)
	req.NoError(err)
	last := msgs[len(msgs)-1]
	req.Equal(core.BroadcastTarget, last.To)
	req.Equal(core.KindStatus, last.Kind)
	req.Equal("12:00:25", last.Time)
}

func TestSweep_HeartbeatingParticipantSurvives(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	ctx := context.Background()

	req.NoError(f.registry.Join(ctx, "alice"))

	for i := 0; i < 20; i++ {
		f.clock.Advance(testTimeout)
		req.NoError(f.registry.Heartbeat(ctx, "alice"))

		result, err := f.reaper.Sweep(ctx)
		req.NoError(err)
		req.Empty(result.Evicted)
	}

	req.Equal([]string{"alice"}, f.names(t))
	req.Zero(f.statusFrom(t, "alice", core.LeftText))
}

func TestSweep_RejoinAfterEviction(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	ctx := context.Background()

	req.NoError(f.registry.Join(ctx, "bob"))
	f.clock.Advance(testTimeout + time.Second)

	_, err := f.reaper.Sweep(ctx)
	req.NoError(err)
	req.ErrorIs(f.registry.Heartbeat(ctx, "bob"), core.ErrNotFound)

	req.NoError(f.registry.Join(ctx, "bob"))
	req.Equal([]string{"bob"}, f.names(t))
	req.Equal(2, f.statusFrom(t, "bob", core.JoinedText))
}

func TestSweep_ScanFailureSkipsCycle(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	st := mocks.NewMockParticipantStore(ctrl)
	notices := mocks.NewMockMessageStore(ctrl)

	st.EXPECT().ListStaleParticipants(gomock.Any(), gomock.Any()).Return(nil, errors.New("unable to open database file"))
	// No delete and no notice may follow a failed scan.

	clock := core.NewManualClock(time.Now())
	chatLog := messages.NewLog(notices, NewDirectory(st), clock, nil)
	reaper := NewReaper(NewRegistry(st, chatLog, clock, nil), chatLog, ReaperConfig{}, nil)

	result, err := reaper.Sweep(context.Background())
	req.ErrorIs(err, core.ErrStoreUnavailable)
	req.Empty(result.Evicted)
}

func TestSweep_EvictionFailureSendsNoNotices(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	st := mocks.NewMockParticipantStore(ctrl)
	notices := mocks.NewMockMessageStore(ctrl)

	clock := core.NewManualClock(time.Now())
	stale := []*core.Participant{{Name: "bob", LastHeartbeat: clock.Now().Add(-time.Minute)}}
	st.EXPECT().ListStaleParticipants(gomock.Any(), gomock.Any()).Return(stale, nil)
	st.EXPECT().DeleteParticipantsIfUnchanged(gomock.Any(), gomock.Len(1)).Return(nil, errors.New("database is locked"))

	chatLog := messages.NewLog(notices, NewDirectory(st), clock, nil)
	reaper := NewReaper(NewRegistry(st, chatLog, clock, nil), chatLog, ReaperConfig{}, nil)

	result, err := reaper.Sweep(context.Background())
	req.ErrorIs(err, core.ErrStoreUnavailable)
	req.Empty(result.Evicted)
}

func TestSweep_NoticeFailureStillEvicts(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	notices := mocks.NewMockMessageStore(ctrl)
	notices.EXPECT().SaveMessages(gomock.Any(), gomock.Len(2)).Return(errors.New("disk I/O error"))

	f := newFixture(t)
	ctx := context.Background()
	req.NoError(f.registry.Join(ctx, "bob"))
	req.NoError(f.registry.Join(ctx, "carol"))
	f.clock.Advance(time.Minute)

	failingLog := messagesLogWithStore(notices, f)
	reaper := NewReaper(f.registry, failingLog, ReaperConfig{Timeout: testTimeout}, nil)

	result, err := reaper.Sweep(ctx)
	req.ErrorIs(err, core.ErrStoreUnavailable)
	req.Equal([]string{"bob", "carol"}, result.Evicted)
	req.False(result.Notified)
	req.Empty(f.names(t), "eviction is authoritative even when notices are lost")

	// The next cycle does not retry the lost notices.
	result, err = f.reaper.Sweep(ctx)
	req.NoError(err)
	req.Empty(result.Evicted)
	req.Zero(f.statusFrom(t, "bob", core.LeftText))
}

func TestRun_SweepsPeriodicallyUntilCancelled(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, f.registry.Join(ctx, "bob"))
	f.clock.Advance(time.Minute)

	reaper := NewReaper(f.registry, f.log, ReaperConfig{Interval: 5 * time.Millisecond, Timeout: testTimeout}, nil)
	done := make(chan struct{})
	go func() {
		reaper.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return len(f.names(t)) == 0
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("reaper did not stop after cancellation")
	}
	require.Equal(t, 1, f.statusFrom(t, "bob", core.LeftText))
}
