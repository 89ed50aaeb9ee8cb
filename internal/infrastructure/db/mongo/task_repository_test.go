package mongo

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/taskflow/taskboard/internal/core/domain"
)

func TestUndatedLast(t *testing.T) {
	d1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	in := []*domain.Task{{ID: "none-1"}, {ID: "none-2"}, {ID: "jan", DueDate: &d1}, {ID: "feb", DueDate: &d2}}

	got := undatedLast(in)
	want := []string{"jan", "feb", "none-1", "none-2"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestSetRef(t *testing.T) {
	project := "p-1"
	ref := &project
	var detached *string

	set, unset := bson.M{}, bson.M{}
	setRef(set, unset, "project_id", &ref)
	setRef(set, unset, "assigned_to_id", &detached)
	setRef(set, unset, "other", nil)

	if set["project_id"] != "p-1" {
		t.Fatalf("expected project_id to be set, got %v", set)
	}
	if _, ok := unset["assigned_to_id"]; !ok {
		t.Fatalf("expected assigned_to_id to be unset, got %v", unset)
	}
	if _, ok := set["other"]; ok {
		t.Fatal("nil ref must leave the field alone")
	}
}

func TestFindByID_MalformedIDIsNotFound(t *testing.T) {
	// ObjectID parsing happens before any I/O, so a nil collection is fine.
	repo := &TaskRepository{}
	if _, err := repo.FindByID(context.Background(), "not-an-object-id"); err != domain.ErrTaskNotFound {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
	users := &UserRepository{}
	if _, err := users.FindByID(context.Background(), "xyz"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
