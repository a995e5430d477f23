// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/danielhkuo/ballot-box/models"
)

// MaxLimit caps ListRecent
const MaxLimit = 1000

// Writer appends an entry inside an open transaction. *store.Tx satisfies it.
type Writer interface {
	InsertAudit(ctx context.Context, e models.AuditEntry) (int64, error)
}

// Lister reads the audit trail. *store.Store satisfies it.
type Lister interface {
	ListAudit(ctx context.Context, limit int) ([]models.AuditEntry, error)
}

type Recorder struct {
	entries Lister
	now     func() time.Time
	logger  *slog.Logger
}

func NewRecorder(entries Lister, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{
		entries: entries,
		now:     func() time.Time { return time.Now().UTC() },
		logger:  logger,
	}
}

// Record appends one entry through w, which must be the transaction that
// carries the state change being documented. If that transaction rolls back
// the entry goes with it; if the insert fails the caller must abort.
func (r *Recorder) Record(ctx context.Context, w Writer, action, details string) error {
	entry := models.AuditEntry{
		Action:    action,
		Details:   details,
		Timestamp: r.now(),
	}
	if _, err := w.InsertAudit(ctx, entry); err != nil {
		r.logger.Error("failed to record audit entry", "action", action, "error", err)
		return err
	}
	return nil
}

// ListRecent returns the newest entries first.
// A limit of zero or less means DefaultAuditLimit.
func (r *Recorder) ListRecent(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	if limit <= 0 {
		limit = models.DefaultAuditLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	entries, err := r.entries.ListAudit(ctx, limit)
	if err != nil {
		r.logger.Error("failed to list audit entries", "error", err)
		return nil, err
	}
	return entries, nil
}
