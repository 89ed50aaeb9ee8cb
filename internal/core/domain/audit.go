package domain

import "time"

// AuditKind names an authentication-related occurrence.
type AuditKind string

const (
	AuditLoginSucceeded AuditKind = "login_succeeded"
	AuditLoginFailed    AuditKind = "login_failed"
	AuditLogout         AuditKind = "logout"
	AuditAccessDenied   AuditKind = "access_denied"
)

// AuditEvent is one entry of the authentication audit trail.
type AuditEvent struct {
	Kind   AuditKind `json:"kind"`
	UserID string    `json:"userId,omitempty"`
	Email  string    `json:"email,omitempty"`
	Role   Role      `json:"role,omitempty"`
	Path   string    `json:"path,omitempty"`
	IP     string    `json:"ip,omitempty"`
	At     time.Time `json:"at"`
}
