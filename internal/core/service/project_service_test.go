package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/taskflow/taskboard/internal/core/domain"
	"github.com/taskflow/taskboard/internal/core/ports"
)

func TestProjectService_Create_JoinsAssignee(t *testing.T) {
	users := newStubUserRepo()
	owner := seedUser(t, users, "pm@example.com", "pm123", domain.RoleProjectManager)
	svc := NewProjectService(newStubProjectRepo(), users, zerolog.Nop())

	view, err := svc.Create(context.Background(), ports.CreateProjectInput{Name: "Apollo", AssignedToID: owner.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if view.AssignedTo.Name != owner.Name || view.AssignedTo.ID != owner.ID {
		t.Fatalf("unexpected assignee: %+v", view.AssignedTo)
	}

	list, err := svc.List(context.Background())
	if err != nil || len(list) != 1 || list[0].AssignedTo.Name != owner.Name {
		t.Fatalf("unexpected list: %+v (%v)", list, err)
	}
}

func TestProjectService_Create_Validation(t *testing.T) {
	svc := NewProjectService(newStubProjectRepo(), newStubUserRepo(), zerolog.Nop())

	if _, err := svc.Create(context.Background(), ports.CreateProjectInput{AssignedToID: "u"}); !errors.Is(err, domain.ErrMissingField) {
		t.Fatalf("expected missing name, got %v", err)
	}
	if _, err := svc.Create(context.Background(), ports.CreateProjectInput{Name: "x"}); !errors.Is(err, domain.ErrMissingField) {
		t.Fatalf("expected missing assignee, got %v", err)
	}
	if _, err := svc.Create(context.Background(), ports.CreateProjectInput{Name: "x", AssignedToID: "ghost"}); !errors.Is(err, domain.ErrInvalidField) {
		t.Fatalf("expected invalid assignee, got %v", err)
	}
}

func TestProjectService_DeleteMissing(t *testing.T) {
	svc := NewProjectService(newStubProjectRepo(), newStubUserRepo(), zerolog.Nop())
	if err := svc.Delete(context.Background(), "nope"); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}
