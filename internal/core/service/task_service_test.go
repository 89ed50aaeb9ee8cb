package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/taskflow/taskboard/internal/core/domain"
	"github.com/taskflow/taskboard/internal/core/ports"
)

func newTaskFixture(t *testing.T) (*TaskService, *stubTaskRepo, *domain.User, *domain.Project) {
	t.Helper()
	users := newStubUserRepo()
	projects := newStubProjectRepo()
	tasks := newStubTaskRepo()
	u := seedUser(t, users, "colab@example.com", "colab123", domain.RoleCollaborator)
	p, _ := projects.Create(context.Background(), &domain.Project{Name: "Apollo", AssignedToID: u.ID})
	return NewTaskService(tasks, projects, users, zerolog.Nop()), tasks, u, p
}

func TestTaskService_Create_DefaultsToPending(t *testing.T) {
	svc, _, u, p := newTaskFixture(t)

	view, err := svc.Create(context.Background(), ports.CreateTaskInput{
		Title: "Write report", ProjectID: p.ID, AssignedToID: u.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if view.Status != domain.TaskPending {
		t.Fatalf("expected Pending, got %s", view.Status)
	}
	if view.AssignedTo == nil || view.AssignedTo.Name != u.Name {
		t.Fatalf("expected assignee to be joined, got %+v", view.AssignedTo)
	}
}

func TestTaskService_Create_RejectsUnknownRefs(t *testing.T) {
	svc, _, _, _ := newTaskFixture(t)

	if _, err := svc.Create(context.Background(), ports.CreateTaskInput{Title: "x", ProjectID: "ghost"}); !errors.Is(err, domain.ErrInvalidField) {
		t.Fatalf("expected invalid project, got %v", err)
	}
	if _, err := svc.Create(context.Background(), ports.CreateTaskInput{Title: "x", Status: "Done"}); !errors.Is(err, domain.ErrInvalidField) {
		t.Fatalf("expected invalid status, got %v", err)
	}
	if _, err := svc.Create(context.Background(), ports.CreateTaskInput{}); !errors.Is(err, domain.ErrMissingField) {
		t.Fatalf("expected missing title, got %v", err)
	}
}

func TestTaskService_Update_DisconnectsRelations(t *testing.T) {
	svc, repo, u, p := newTaskFixture(t)
	created, _ := svc.Create(context.Background(), ports.CreateTaskInput{Title: "x", ProjectID: p.ID, AssignedToID: u.ID})

	empty := ""
	status := "Review"
	view, err := svc.Update(context.Background(), created.ID, ports.UpdateTaskInput{
		ProjectID: &empty, AssignedToID: &empty, Status: &status,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if view.ProjectID != nil || view.AssignedToID != nil || view.AssignedTo != nil {
		t.Fatalf("expected relations to be cleared: %+v", view)
	}
	if repo.byID[created.ID].Status != domain.TaskReview {
		t.Fatalf("status not persisted")
	}
	if repo.byID[created.ID].Title != "x" {
		t.Fatalf("absent fields must be left untouched")
	}
}

func TestTaskService_Update_Missing(t *testing.T) {
	svc, _, _, _ := newTaskFixture(t)
	title := "y"
	if _, err := svc.Update(context.Background(), "nope", ports.UpdateTaskInput{Title: &title}); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestDashboardService_Progress(t *testing.T) {
	svc, tasks, u, p := newTaskFixture(t)
	ctx := context.Background()
	for _, st := range []string{"Pending", "Pending", "In_process", "Review", "Finished"} {
		if _, err := svc.Create(ctx, ports.CreateTaskInput{Title: st, Status: st, ProjectID: p.ID, AssignedToID: u.ID}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if _, err := svc.Create(ctx, ports.CreateTaskInput{Title: "loose"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	dash := NewDashboardService(svc.projects, tasks)
	rows, err := dash.Progress(ctx)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one project row, got %d", len(rows))
	}
	want := ports.ProjectProgress{Project: "Apollo", Pending: 2, InProgress: 1, InReview: 1, Done: 1}
	if rows[0] != want {
		t.Fatalf("got %+v, want %+v", rows[0], want)
	}
}
