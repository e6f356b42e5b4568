package domain

import "time"

// AuditEventType classifies an entry in the authentication audit trail.
type AuditEventType string

const (
	AuditLoginSucceeded AuditEventType = "login_succeeded"
	AuditLoginFailed    AuditEventType = "login_failed"
	AuditTokenRejected  AuditEventType = "token_rejected"
	AuditTokenRefreshed AuditEventType = "token_refreshed"
	AuditAccessDenied   AuditEventType = "access_denied"
)

// AuditEvent records a single authentication or authorization outcome.
// Detail carries the internal failure cause (e.g. the exact decode error)
// that is collapsed to a single opaque variant at the API boundary; the
// audit trail is the only place where that detail survives. Detail must
// never contain secret material.
type AuditEvent struct {
	Type      AuditEventType `json:"type"`
	Username  string         `json:"username,omitempty"`
	Detail    string         `json:"detail,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}
