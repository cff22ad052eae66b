package presence

import (
	"context"
	"errors"

	"github.com/vovakirdan/presencechat/internal/core"
	"github.com/vovakirdan/presencechat/internal/store"
)

// Directory answers whether a name is currently present.
type Directory struct {
	store store.ParticipantStore
}

// NewDirectory creates a Directory reading from st.
func NewDirectory(st store.ParticipantStore) *Directory {
	return &Directory{store: st}
}

// Exists reports whether name is an active participant.
func (d *Directory) Exists(ctx context.Context, name string) (bool, error) {
	_, err := d.store.GetParticipant(ctx, name)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, store.ErrParticipantNotFound):
		return false, nil
	default:
		return false, core.Unavailable("lookup participant", err)
	}
}
