package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskflow/taskboard/internal/core/domain"
	"github.com/taskflow/taskboard/internal/core/ports"
)

const taskColumns = `id, title, description, status, due_date, project_id, assigned_to_id, created_at, updated_at`

// TaskRepository implements ports.TaskRepository on PostgreSQL.
type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	var status string
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &status, &t.DueDate, &t.ProjectID, &t.AssignedToID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.Status = domain.TaskStatus(status)
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	if t.DueDate != nil {
		due := t.DueDate.UTC()
		t.DueDate = &due
	}
	return &t, nil
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	const query = `
		INSERT INTO tasks (id, title, description, status, due_date, project_id, assigned_to_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + taskColumns

	created, err := scanTask(r.pool.QueryRow(ctx, query,
		uuid.NewString(),
		t.Title,
		t.Description,
		string(t.Status),
		t.DueDate,
		t.ProjectID,
		t.AssignedToID,
		t.CreatedAt,
		t.UpdatedAt,
	))
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return created, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	t, err := scanTask(r.pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return t, nil
}

// List returns every task ordered by due date; tasks without one come last.
func (r *TaskRepository) List(ctx context.Context) ([]*domain.Task, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY due_date ASC NULLS LAST, id`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var out []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TaskRepository) Update(ctx context.Context, id string, upd ports.TaskUpdate) (*domain.Task, error) {
	set := newAssignments(id)
	if upd.Title != nil {
		set.add("title", *upd.Title)
	}
	if upd.Description != nil {
		set.add("description", *upd.Description)
	}
	if upd.Status != nil {
		set.add("status", string(*upd.Status))
	}
	if upd.DueDate != nil {
		set.add("due_date", *upd.DueDate)
	}
	// A pointer to nil binds SQL NULL and detaches the relation.
	if upd.ProjectID != nil {
		set.add("project_id", *upd.ProjectID)
	}
	if upd.AssignedToID != nil {
		set.add("assigned_to_id", *upd.AssignedToID)
	}

	t, err := scanTask(r.pool.QueryRow(ctx,
		`UPDATE tasks SET `+set.clause()+` WHERE id = $1 RETURNING `+taskColumns, set.args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("update task: %w", err)
	}
	return t, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}
