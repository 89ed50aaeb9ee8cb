package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskflow/taskboard/internal/core/domain"
)

// AuditRepository implements ports.AuditRepository on PostgreSQL.
type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

// InsertAuditEvent persists an event to the auth_events table.
func (r *AuditRepository) InsertAuditEvent(ctx context.Context, event *domain.AuditEvent) error {
	const query = `
		INSERT INTO auth_events (id, kind, user_id, email, role, path, ip, at)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), $8)
	`
	_, err := r.pool.Exec(ctx, query,
		uuid.NewString(),
		string(event.Kind),
		event.UserID,
		event.Email,
		string(event.Role),
		event.Path,
		event.IP,
		event.At.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
