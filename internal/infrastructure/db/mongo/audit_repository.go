package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskflow/taskboard/internal/core/domain"
)

const collectionAuthEvents = "auth_events"

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	db *mongo.Database
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{db: db}
}

// InsertAuditEvent persists an event to the auth_events collection.
func (r *AuditRepository) InsertAuditEvent(ctx context.Context, event *domain.AuditEvent) error {
	doc := bson.M{
		"kind":        string(event.Kind),
		"at":          event.At.UTC(),
		"recorded_at": time.Now().UTC(),
	}
	if event.UserID != "" {
		doc["user_id"] = event.UserID
	}
	if event.Email != "" {
		doc["email"] = event.Email
	}
	if event.Role != "" {
		doc["role"] = string(event.Role)
	}
	if event.Path != "" {
		doc["path"] = event.Path
	}
	if event.IP != "" {
		doc["ip"] = event.IP
	}

	if _, err := r.db.Collection(collectionAuthEvents).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
