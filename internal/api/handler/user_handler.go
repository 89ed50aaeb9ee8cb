package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskflow/taskboard/internal/api/metrics"
	"github.com/taskflow/taskboard/internal/core/domain"
	"github.com/taskflow/taskboard/internal/core/ports"
)

// UserHandler handles account management. Mounted for administrators only.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type createUserRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required,oneof=Administrator Project_Manager Colaborator"`
	Password string `json:"password" validate:"required"`
}

type updateUserRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email" validate:"omitempty,email"`
	Role     string `json:"role" validate:"omitempty,oneof=Administrator Project_Manager Colaborator"`
	Password string `json:"password"`
}

type userProfile struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

type userResponse struct {
	ID    string      `json:"id"`
	User  userProfile `json:"user"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

func toUserResponse(u *domain.User) userResponse {
	var image string
	if u.AvatarURL != nil {
		image = *u.AvatarURL
	}
	return userResponse{ID: u.ID, User: userProfile{Name: u.Name, Image: image}, Email: u.Email, Role: u.Role}
}

// List handles GET /api/users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {array}   userResponse
// @Failure      401  {object}  errorBody
// @Failure      403  {object}  errorBody
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return c.JSON(http.StatusOK, out)
}

// Create handles POST /api/users.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "Account details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorBody
// @Failure      409   {object}  errorBody
// @Router       /api/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	u, err := h.service.Create(c.Request().Context(), ports.CreateUserInput{
		FullName: req.FullName,
		Email:    req.Email,
		Role:     req.Role,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	metrics.RecordsCreatedTotal.WithLabelValues("user").Inc()
	return c.JSON(http.StatusCreated, toUserResponse(u))
}

// Update handles PUT /api/users/:id. Empty fields are left unchanged.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Param        id    path  string             true  "User id"
// @Param        body  body  updateUserRequest  true  "Fields to change"
// @Success      200
// @Failure      400   {object}  errorBody
// @Failure      404   {object}  errorBody
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateUserInput{
		FullName: req.FullName,
		Email:    req.Email,
		Role:     req.Role,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

// Delete handles DELETE /api/users/:id.
//
// @Summary      Delete a user
// @Tags         users
// @Param        id  path  string  true  "User id"
// @Success      204
// @Failure      404  {object}  errorBody
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
