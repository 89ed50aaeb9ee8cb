package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskflow/taskboard/internal/api/metrics"
	"github.com/taskflow/taskboard/internal/core/ports"
)

// ProjectHandler handles project management.
type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

type createProjectRequest struct {
	Name         string  `json:"name" validate:"required"`
	Description  *string `json:"description"`
	AssignedToID string  `json:"assignedToId" validate:"required"`
}

type updateProjectRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	AssignedToID string `json:"assignedToId"`
}

// List handles GET /api/projects.
//
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Success      200  {array}   ports.ProjectView
// @Failure      401  {object}  errorBody
// @Router       /api/projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	projects, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}

// Create handles POST /api/projects.
//
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        body  body      createProjectRequest  true  "Project details"
// @Success      201   {object}  ports.ProjectView
// @Failure      400   {object}  errorBody
// @Failure      403   {object}  errorBody
// @Router       /api/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	var req createProjectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	view, err := h.service.Create(c.Request().Context(), ports.CreateProjectInput{
		Name:         req.Name,
		Description:  req.Description,
		AssignedToID: req.AssignedToID,
	})
	if err != nil {
		return err
	}
	metrics.RecordsCreatedTotal.WithLabelValues("project").Inc()
	return c.JSON(http.StatusCreated, view)
}

// Update handles PUT /api/projects/:id. Empty fields are left unchanged.
//
// @Summary      Update a project
// @Tags         projects
// @Accept       json
// @Param        id    path  string                true  "Project id"
// @Param        body  body  updateProjectRequest  true  "Fields to change"
// @Success      200
// @Failure      400   {object}  errorBody
// @Failure      404   {object}  errorBody
// @Router       /api/projects/{id} [put]
func (h *ProjectHandler) Update(c echo.Context) error {
	var req updateProjectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateProjectInput{
		Name:         req.Name,
		Description:  req.Description,
		AssignedToID: req.AssignedToID,
	})
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

// Delete handles DELETE /api/projects/:id.
//
// @Summary      Delete a project
// @Tags         projects
// @Param        id  path  string  true  "Project id"
// @Success      204
// @Failure      404  {object}  errorBody
// @Router       /api/projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
