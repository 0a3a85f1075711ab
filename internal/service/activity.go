package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bdf/cockpit/internal/database/repository"
)

// ActivityLogger records completed state transitions. It is fire-and-forget:
// a failed insert is logged and swallowed, never surfaced to the transition
// that produced it.
type ActivityLogger struct {
	Repo *repository.ActivityRepo
	Log  *slog.Logger
}

func (l *ActivityLogger) Record(ctx context.Context, e repository.ActivityEvent) {
	if l.Repo == nil {
		return
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if err := l.Repo.Insert(ctx, e); err != nil && l.Log != nil {
		l.Log.Warn("activity log insert failed", "action", e.Action, "err", err)
	}
}
