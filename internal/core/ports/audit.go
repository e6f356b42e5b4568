package ports

import (
	"context"

	"github.com/veridian/identity-service/internal/core/domain"
)

// AuditSink receives authentication and authorization outcomes. Sinks must
// tolerate high fan-in; delivery is best-effort and never blocks a login or
// verification call.
type AuditSink interface {
	Record(ctx context.Context, event domain.AuditEvent) error
}

// AuditQuery reads back recorded events, newest first.
type AuditQuery interface {
	ListRecent(ctx context.Context, limit int64) ([]domain.AuditEvent, error)
}
