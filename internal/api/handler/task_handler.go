package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskflow/taskboard/internal/api/metrics"
	"github.com/taskflow/taskboard/internal/core/domain"
	"github.com/taskflow/taskboard/internal/core/ports"
)

// TaskHandler handles the task board.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

type createTaskRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	Status      string  `json:"status" validate:"omitempty,oneof=Pending In_process Review Finished"`
	DueDate     string  `json:"dueDate"`
	Project     string  `json:"project"`
	AssignedTo  string  `json:"assignedTo"`
}

// updateTaskRequest uses pointers so absent fields stay untouched.
type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status" validate:"omitempty,oneof=Pending In_process Review Finished"`
	DueDate     *string `json:"dueDate"`
	Project     *string `json:"project"`
	AssignedTo  *string `json:"assignedTo"`
}

// parseDueDate accepts RFC 3339 timestamps and plain yyyy-mm-dd dates.
func parseDueDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, domain.InvalidField("dueDate", "must be an ISO date (yyyy-mm-dd)")
}

// List handles GET /api/tasks. Tasks are ordered by due date, undated last.
//
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Success      200  {array}   ports.TaskView
// @Failure      401  {object}  errorBody
// @Router       /api/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	tasks, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

// Create handles POST /api/tasks.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  ports.TaskView
// @Failure      400   {object}  errorBody
// @Router       /api/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	var req createTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	due, err := parseDueDate(req.DueDate)
	if err != nil {
		return err
	}

	view, err := h.service.Create(c.Request().Context(), ports.CreateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		Status:       req.Status,
		DueDate:      due,
		ProjectID:    req.Project,
		AssignedToID: req.AssignedTo,
	})
	if err != nil {
		return err
	}
	metrics.RecordsCreatedTotal.WithLabelValues("task").Inc()
	return c.JSON(http.StatusCreated, view)
}

// Update handles PUT /api/tasks/:id. Only present fields change; an empty
// project or assignedTo detaches the task.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Task id"
// @Param        body  body      updateTaskRequest  true  "Fields to change"
// @Success      200   {object}  ports.TaskView
// @Failure      400   {object}  errorBody
// @Failure      404   {object}  errorBody
// @Router       /api/tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	var req updateTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	in := ports.UpdateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		Status:       req.Status,
		ProjectID:    req.Project,
		AssignedToID: req.AssignedTo,
	}
	if req.DueDate != nil {
		due, err := parseDueDate(*req.DueDate)
		if err != nil {
			return err
		}
		in.DueDate = due
	}

	view, err := h.service.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Delete handles DELETE /api/tasks/:id.
//
// @Summary      Delete a task
// @Tags         tasks
// @Param        id  path  string  true  "Task id"
// @Success      204
// @Failure      404  {object}  errorBody
// @Router       /api/tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
