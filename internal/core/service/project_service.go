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

// ProjectService implements project management.
type ProjectService struct {
	projects ports.ProjectRepository
	users    ports.UserRepository
	log      zerolog.Logger
}

func NewProjectService(projects ports.ProjectRepository, users ports.UserRepository, log zerolog.Logger) *ProjectService {
	return &ProjectService{projects: projects, users: users, log: log}
}

// List returns every project joined with its assignee.
func (s *ProjectService) List(ctx context.Context) ([]ports.ProjectView, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	people, err := s.directory(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ports.ProjectView, 0, len(projects))
	for _, p := range projects {
		out = append(out, projectView(p, people[p.AssignedToID]))
	}
	return out, nil
}

func (s *ProjectService) Create(ctx context.Context, in ports.CreateProjectInput) (*ports.ProjectView, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.MissingField("name")
	}
	if in.AssignedToID == "" {
		return nil, domain.MissingField("assignedToId")
	}
	assignee, err := s.assignee(ctx, in.AssignedToID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.projects.Create(ctx, &domain.Project{
		Name:         name,
		Description:  in.Description,
		AssignedToID: in.AssignedToID,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	s.log.Info().Str("project_id", created.ID).Msg("project created")
	view := projectView(created, assignee)
	return &view, nil
}

// Update applies the non-empty fields of in.
func (s *ProjectService) Update(ctx context.Context, id string, in ports.UpdateProjectInput) error {
	var upd ports.ProjectUpdate
	if name := strings.TrimSpace(in.Name); name != "" {
		upd.Name = &name
	}
	if in.Description != "" {
		desc := in.Description
		upd.Description = &desc
	}
	if in.AssignedToID != "" {
		if _, err := s.assignee(ctx, in.AssignedToID); err != nil {
			return err
		}
		assigned := in.AssignedToID
		upd.AssignedToID = &assigned
	}
	return s.projects.Update(ctx, id, upd)
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("project_id", id).Msg("project deleted")
	return nil
}

func (s *ProjectService) assignee(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.InvalidField("assignedToId", "does not reference a user")
		}
		return nil, fmt.Errorf("find assignee: %w", err)
	}
	return u, nil
}

func (s *ProjectService) directory(ctx context.Context) (map[string]*domain.User, error) {
	return userDirectory(ctx, s.users)
}

func projectView(p *domain.Project, assignee *domain.User) ports.ProjectView {
	return ports.ProjectView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		AssignedTo:  toAssignee(p.AssignedToID, assignee),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toAssignee(id string, u *domain.User) ports.Assignee {
	if u == nil {
		return ports.Assignee{ID: id}
	}
	return ports.Assignee{ID: u.ID, Name: u.Name, Image: u.AvatarURL}
}

func userDirectory(ctx context.Context, users ports.UserRepository) (map[string]*domain.User, error) {
	list, err := users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make(map[string]*domain.User, len(list))
	for _, u := range list {
		out[u.ID] = u
	}
	return out, nil
}
