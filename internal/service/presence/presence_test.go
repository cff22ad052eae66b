package presence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/presencechat/internal/core"
	"github.com/vovakirdan/presencechat/internal/service/messages"
	"github.com/vovakirdan/presencechat/internal/store"
	"github.com/vovakirdan/presencechat/internal/store/sqlite"
)

const testTimeout = 10 * time.Second

type fixture struct {
	store    store.Store
	clock    *core.ManualClock
	log      *messages.Log
	registry *Registry
	reaper   *Reaper
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	clock := core.NewManualClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	chatLog := messages.NewLog(st, NewDirectory(st), clock, nil)
	registry := NewRegistry(st, chatLog, clock, nil)
	reaper := NewReaper(registry, chatLog, ReaperConfig{Interval: 15 * time.Second, Timeout: testTimeout}, nil)

	return &fixture{store: st, clock: clock, log: chatLog, registry: registry, reaper: reaper}
}

// messagesLogWithStore builds a log sharing the fixture's clock and directory
// but writing to st.
func messagesLogWithStore(st store.MessageStore, f *fixture) *messages.Log {
	return messages.NewLog(st, NewDirectory(f.store), f.clock, nil)
}

func (f *fixture) names(t *testing.T) []string {
	t.Helper()
	participants, err := f.registry.List(context.Background())
	require.NoError(t, err)
	out := make([]string, 0, len(participants))
	for _, p := range participants {
		out = append(out, p.Name)
	}
	return out
}

func (f *fixture) statusFrom(t *testing.T, name, text string) int {
	t.Helper()
	msgs, err := f.log.Query(context.Background(), "observer", nil)
	require.NoError(t, err)
	count := 0
	for _, m := range msgs {
		if m.Kind == core.KindStatus && m.From == name && m.Text == text {
			count++
		}
	}
	return count
}
