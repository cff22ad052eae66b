package messages

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vovakirdan/presencechat/internal/core"
	"github.com/vovakirdan/presencechat/internal/store/mocks"
	"github.com/vovakirdan/presencechat/internal/store/sqlite"
)

type staticDirectory map[string]bool

func (d staticDirectory) Exists(_ context.Context, name string) (bool, error) {
	return d[name], nil
}

func newTestLog(t *testing.T, dir Directory, opts ...Option) (*Log, *core.ManualClock) {
	t.Helper()

	st, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	clock := core.NewManualClock(time.Date(2024, 5, 1, 9, 5, 7, 0, time.Local))
	return NewLog(st, dir, clock, nil, opts...), clock
}

func texts(msgs []core.Message) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.Text)
	}
	return out
}

func intPtr(n int) *int { return &n }

func TestAppend_RejectsUnknownSender(t *testing.T) {
	req := require.New(t)
	log, _ := newTestLog(t, staticDirectory{"alice": true})
	ctx := context.Background()

	_, err := log.Append(ctx, core.Message{From: "mallory", To: core.BroadcastTarget, Text: "hi", Kind: core.KindMessage})
	req.ErrorIs(err, core.ErrUnknownSender)

	_, err = log.Append(ctx, core.Message{From: "mallory", To: "alice", Text: "hi", Kind: core.KindPrivateMessage})
	req.ErrorIs(err, core.ErrUnknownSender)

	got, err := log.Query(ctx, "alice", nil)
	req.NoError(err)
	req.Empty(got, "rejected messages must not be appended")
}

func TestAppend_StatusNeedsNoPresentSender(t *testing.T) {
	req := require.New(t)
	log, _ := newTestLog(t, staticDirectory{})

	msg, err := log.Append(context.Background(), core.StatusMessage("bob", core.LeftText))
	req.NoError(err)
	req.Equal(core.KindStatus, msg.Kind)
	req.Equal(core.BroadcastTarget, msg.To)
}

func TestAppend_RejectsInvalidMessages(t *testing.T) {
	log, _ := newTestLog(t, staticDirectory{"alice": true})

	tests := []struct {
		name string
		msg  core.Message
	}{
		{name: "missing text", msg: core.Message{From: "alice", To: core.BroadcastTarget, Kind: core.KindMessage}},
		{name: "missing recipient", msg: core.Message{From: "alice", Text: "hi", Kind: core.KindMessage}},
		{name: "missing sender", msg: core.Message{To: core.BroadcastTarget, Text: "hi", Kind: core.KindMessage}},
		{name: "kind outside enum", msg: core.Message{From: "alice", To: core.BroadcastTarget, Text: "hi", Kind: "shout"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := log.Append(context.Background(), tt.msg)
			require.ErrorIs(t, err, core.ErrInvalidInput)
		})
	}
}

func TestAppend_SamplesTimePerEvent(t *testing.T) {
	req := require.New(t)
	log, clock := newTestLog(t, staticDirectory{"alice": true})
	ctx := context.Background()

	first, err := log.Append(ctx, core.Message{From: "alice", To: core.BroadcastTarget, Text: "one", Kind: core.KindMessage})
	req.NoError(err)
	clock.Advance(3*time.Hour + 55*time.Second)
	second, err := log.Append(ctx, core.Message{From: "alice", To: core.BroadcastTarget, Text: "two", Kind: core.KindMessage})
	req.NoError(err)

	req.Equal("09:05:07", first.Time)
	req.Equal("12:06:02", second.Time)
}

func TestQuery_FiltersByRecipient(t *testing.T) {
	req := require.New(t)
	log, _ := newTestLog(t, staticDirectory{"alice": true, "bob": true})
	ctx := context.Background()

	for _, m := range []core.Message{
		{From: "alice", To: core.BroadcastTarget, Text: "everyone", Kind: core.KindMessage},
		{From: "alice", To: "carol", Text: "hi carol", Kind: core.KindPrivateMessage},
		{From: "bob", To: "alice", Text: "hi alice", Kind: core.KindPrivateMessage},
	} {
		_, err := log.Append(ctx, m)
		req.NoError(err)
	}

	got, err := log.Query(ctx, "carol", nil)
	req.NoError(err)
	req.Equal([]string{"everyone", "hi carol"}, texts(got))

	got, err = log.Query(ctx, "dave", nil)
	req.NoError(err)
	req.Equal([]string{"everyone"}, texts(got))

	got, err = log.Query(ctx, "alice", nil)
	req.NoError(err)
	req.Equal([]string{"everyone", "hi carol", "hi alice"}, texts(got))
}

func TestQuery_LimitKeepsMostRecentInOrder(t *testing.T) {
	req := require.New(t)
	log, _ := newTestLog(t, staticDirectory{"alice": true})
	ctx := context.Background()

	for _, text := range []string{"1", "2", "3", "4", "5"} {
		_, err := log.Append(ctx, core.Message{From: "alice", To: core.BroadcastTarget, Text: text, Kind: core.KindMessage})
		req.NoError(err)
	}

	got, err := log.Query(ctx, "bob", intPtr(2))
	req.NoError(err)
	req.Equal([]string{"4", "5"}, texts(got))

	got, err = log.Query(ctx, "bob", intPtr(50))
	req.NoError(err)
	req.Equal([]string{"1", "2", "3", "4", "5"}, texts(got))

	_, err = log.Query(ctx, "bob", intPtr(0))
	req.ErrorIs(err, core.ErrInvalidInput)
	_, err = log.Query(ctx, "bob", intPtr(-3))
	req.ErrorIs(err, core.ErrInvalidInput)
}

func TestQuery_MaxLimitCapsResults(t *testing.T) {
	req := require.New(t)
	log, _ := newTestLog(t, staticDirectory{"alice": true}, WithMaxLimit(2))
	ctx := context.Background()

	for _, text := range []string{"1", "2", "3"} {
		_, err := log.Append(ctx, core.Message{From: "alice", To: core.BroadcastTarget, Text: text, Kind: core.KindMessage})
		req.NoError(err)
	}

	got, err := log.Query(ctx, "bob", nil)
	req.NoError(err)
	req.Equal([]string{"2", "3"}, texts(got))

	got, err = log.Query(ctx, "bob", intPtr(1))
	req.NoError(err)
	req.Equal([]string{"3"}, texts(got))
}

func TestQuery_RequiresViewer(t *testing.T) {
	log, _ := newTestLog(t, staticDirectory{})
	_, err := log.Query(context.Background(), " ", nil)
	require.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestAppendBatch_ValidatesBeforeStoring(t *testing.T) {
	req := require.New(t)
	log, _ := newTestLog(t, staticDirectory{})
	ctx := context.Background()

	_, err := log.AppendBatch(ctx, []core.Message{
		core.StatusMessage("bob", core.LeftText),
		{From: "carol", To: core.BroadcastTarget, Kind: core.KindStatus},
	})
	req.ErrorIs(err, core.ErrInvalidInput)

	got, err := log.Query(ctx, "anyone", nil)
	req.NoError(err)
	req.Empty(got)

	stored, err := log.AppendBatch(ctx, []core.Message{
		core.StatusMessage("bob", core.LeftText),
		core.StatusMessage("carol", core.LeftText),
	})
	req.NoError(err)
	req.Len(stored, 2)
	req.Less(stored[0].ID, stored[1].ID)
}

func TestAppend_StoreFailureIsUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockMessageStore(ctrl)
	st.EXPECT().SaveMessage(gomock.Any(), gomock.Any()).Return(errors.New("disk I/O error"))
	st.EXPECT().ListMessagesFor(gomock.Any(), "alice", 0).Return(nil, errors.New("database is locked"))

	log := NewLog(st, staticDirectory{"alice": true}, nil, nil)
	ctx := context.Background()

	_, err := log.Append(ctx, core.Message{From: "alice", To: core.BroadcastTarget, Text: "hi", Kind: core.KindMessage})
	require.ErrorIs(t, err, core.ErrStoreUnavailable)

	_, err = log.Query(ctx, "alice", nil)
	require.ErrorIs(t, err, core.ErrStoreUnavailable)
}
