package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskflow/taskboard/internal/core/domain"
	"github.com/taskflow/taskboard/internal/core/ports"
)

// TaskService implements task management for the board.
type TaskService struct {
	tasks    ports.TaskRepository
	projects ports.ProjectRepository
	users    ports.UserRepository
	log      zerolog.Logger
}

func NewTaskService(tasks ports.TaskRepository, projects ports.ProjectRepository, users ports.UserRepository, log zerolog.Logger) *TaskService {
	return &TaskService{tasks: tasks, projects: projects, users: users, log: log}
}

// List returns every task ordered by due date, joined with its assignee.
func (s *TaskService) List(ctx context.Context) ([]ports.TaskView, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	people, err := userDirectory(ctx, s.users)
	if err != nil {
		return nil, err
	}

	out := make([]ports.TaskView, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskView(t, people))
	}
	return out, nil
}

func (s *TaskService) Create(ctx context.Context, in ports.CreateTaskInput) (*ports.TaskView, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.MissingField("title")
	}

	status := domain.TaskPending
	if in.Status != "" {
		st, err := domain.ParseTaskStatus(in.Status)
		if err != nil {
			return nil, domain.InvalidField("status", "must be one of Pending, In_process, Review, Finished")
		}
		status = st
	}

	task := &domain.Task{
		Title:       title,
		Description: in.Description,
		Status:      status,
		DueDate:     in.DueDate,
	}
	if in.ProjectID != "" {
		if err := s.checkProject(ctx, in.ProjectID); err != nil {
			return nil, err
		}
		id := in.ProjectID
		task.ProjectID = &id
	}
	if in.AssignedToID != "" {
		if err := s.checkAssignee(ctx, in.AssignedToID); err != nil {
			return nil, err
		}
		id := in.AssignedToID
		task.AssignedToID = &id
	}

	now := time.Now().UTC()
	task.CreatedAt, task.UpdatedAt = now, now

	created, err := s.tasks.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	s.log.Info().Str("task_id", created.ID).Str("status", string(created.Status)).Msg("task created")

	return s.view(ctx, created)
}

// Update applies the present fields of in. An empty ProjectID or
// AssignedToID disconnects the relation.
func (s *TaskService) Update(ctx context.Context, id string, in ports.UpdateTaskInput) (*ports.TaskView, error) {
	var upd ports.TaskUpdate
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, domain.MissingField("title")
		}
		upd.Title = &title
	}
	upd.Description = in.Description
	if in.Status != nil {
		st, err := domain.ParseTaskStatus(*in.Status)
		if err != nil {
			return nil, domain.InvalidField("status", "must be one of Pending, In_process, Review, Finished")
		}
		upd.Status = &st
	}
	upd.DueDate = in.DueDate

	if in.ProjectID != nil {
		var ref *string
		if *in.ProjectID != "" {
			if err := s.checkProject(ctx, *in.ProjectID); err != nil {
				return nil, err
			}
			ref = in.ProjectID
		}
		upd.ProjectID = &ref
	}
	if in.AssignedToID != nil {
		var ref *string
		if *in.AssignedToID != "" {
			if err := s.checkAssignee(ctx, *in.AssignedToID); err != nil {
				return nil, err
			}
			ref = in.AssignedToID
		}
		upd.AssignedToID = &ref
	}

	updated, err := s.tasks.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, updated)
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("task_id", id).Msg("task deleted")
	return nil
}

func (s *TaskService) view(ctx context.Context, t *domain.Task) (*ports.TaskView, error) {
	people := map[string]*domain.User{}
	if t.AssignedToID != nil {
		u, err := s.users.FindByID(ctx, *t.AssignedToID)
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("find assignee: %w", err)
		}
		if u != nil {
			people[u.ID] = u
		}
	}
	v := taskView(t, people)
	return &v, nil
}

func (s *TaskService) checkProject(ctx context.Context, id string) error {
	if _, err := s.projects.FindByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			return domain.InvalidField("project", "does not reference a project")
		}
		return fmt.Errorf("find project: %w", err)
	}
	return nil
}

func (s *TaskService) checkAssignee(ctx context.Context, id string) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.InvalidField("assignedTo", "does not reference a user")
		}
		return fmt.Errorf("find assignee: %w", err)
	}
	return nil
}

func taskView(t *domain.Task, people map[string]*domain.User) ports.TaskView {
	v := ports.TaskView{Task: *t}
	if t.AssignedToID != nil {
		a := toAssignee(*t.AssignedToID, people[*t.AssignedToID])
		v.AssignedTo = &a
	}
	return v
}
