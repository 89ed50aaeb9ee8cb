package service

import (
	"context"
	"fmt"

	"github.com/taskflow/taskboard/internal/core/domain"
	"github.com/taskflow/taskboard/internal/core/ports"
)

// DashboardService aggregates task progress per project.
type DashboardService struct {
	projects ports.ProjectRepository
	tasks    ports.TaskRepository
}

func NewDashboardService(projects ports.ProjectRepository, tasks ports.TaskRepository) *DashboardService {
	return &DashboardService{projects: projects, tasks: tasks}
}

// Progress counts each project's tasks by status. Tasks without a project
// are not charted.
func (s *DashboardService) Progress(ctx context.Context) ([]ports.ProjectProgress, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	byProject := make(map[string]*ports.ProjectProgress, len(projects))
	out := make([]ports.ProjectProgress, len(projects))
	for i, p := range projects {
		out[i] = ports.ProjectProgress{Project: p.Name}
		byProject[p.ID] = &out[i]
	}

	for _, t := range tasks {
		if t.ProjectID == nil {
			continue
		}
		row, ok := byProject[*t.ProjectID]
		if !ok {
			continue
		}
		switch t.Status {
		case domain.TaskPending:
			row.Pending++
		case domain.TaskInProcess:
			row.InProgress++
		case domain.TaskReview:
			row.InReview++
		case domain.TaskFinished:
			row.Done++
		}
	}
	return out, nil
}
