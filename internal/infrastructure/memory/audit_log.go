package memory

import (
	"context"
	"sync"
	"time"

	"github.com/veridian/identity-service/internal/core/domain"
)

const auditLogCapacity = 1024

// AuditLog is a bounded in-memory audit trail. It implements the sink, query,
// and publisher ports; Publish records synchronously, which suits tests and
// single-process development where the sharded dispatcher is overkill.
type AuditLog struct {
	mu     sync.RWMutex
	events []domain.AuditEvent
}

func NewAuditLog() *AuditLog {
	return &AuditLog{}
}

func (l *AuditLog) Record(_ context.Context, event domain.AuditEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	l.events = append(l.events, event)
	if len(l.events) > auditLogCapacity {
		l.events = l.events[len(l.events)-auditLogCapacity:]
	}
	return nil
}

func (l *AuditLog) Publish(event domain.AuditEvent) {
	_ = l.Record(context.Background(), event)
}

// ListRecent returns up to limit events, newest first.
func (l *AuditLog) ListRecent(_ context.Context, limit int64) ([]domain.AuditEvent, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if limit <= 0 || limit > int64(len(l.events)) {
		limit = int64(len(l.events))
	}
	out := make([]domain.AuditEvent, 0, limit)
	for i := len(l.events) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		out = append(out, l.events[i])
	}
	return out, nil
}
