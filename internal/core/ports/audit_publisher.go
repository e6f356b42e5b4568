package ports

import "github.com/veridian/identity-service/internal/core/domain"

// AuditPublisher hands an event to the asynchronous audit pipeline without
// blocking the calling request. Implementations stamp the timestamp when the
// caller leaves it zero.
type AuditPublisher interface {
	Publish(event domain.AuditEvent)
}
