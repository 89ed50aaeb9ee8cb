package ports

import (
	"context"

	"github.com/taskflow/taskboard/internal/core/domain"
)

// AuditRepository persists the authentication audit trail.
type AuditRepository interface {
	InsertAuditEvent(ctx context.Context, event *domain.AuditEvent) error
}

// AuditRecorder accepts audit events without blocking the caller.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}

// LoginLimiter throttles repeated failed logins for one email.
type LoginLimiter interface {
	// Allowed reports whether another attempt for email may be evaluated.
	Allowed(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}
