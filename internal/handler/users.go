package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/streamlinehq/streamline/internal/domain"
	"github.com/streamlinehq/streamline/internal/middleware"
	"github.com/streamlinehq/streamline/internal/server"
	"github.com/streamlinehq/streamline/internal/service"
	"github.com/streamlinehq/streamline/internal/validation"
)

// UsersHandler exposes account member management, including the bulk
// admin actions.
type UsersHandler struct {
	Handler
	users *service.UserService
}

func NewUsersHandler(s *server.Server, users *service.UserService) *UsersHandler {
	return &UsersHandler{Handler: NewHandler(s), users: users}
}

type CreateUserRequest struct {
	ClerkID   string `json:"clerk_id" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
	Phone     string `json:"phone" validate:"omitempty,max=20"`
	Role      string `json:"role" validate:"required,oneof=admin dispatcher technician sales"`
}

func (r *CreateUserRequest) Validate() error {
	return validation.Struct(r)
}

// Create adds an account member. Admin only.
func (h *UsersHandler) Create(c echo.Context, req *CreateUserRequest) (*domain.User, error) {
	return h.users.Create(c.Request().Context(), middleware.GetUserID(c), service.CreateUserInput{
		ClerkID:   req.ClerkID,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Role:      domain.Role(req.Role),
	})
}

type ListUsersRequest struct{}

func (r *ListUsersRequest) Validate() error { return nil }

// List returns all account members.
func (h *UsersHandler) List(c echo.Context, _ *ListUsersRequest) ([]domain.User, error) {
	return h.users.List(c.Request().Context(), middleware.GetUserID(c))
}

type MeRequest struct{}

func (r *MeRequest) Validate() error { return nil }

// Me returns the caller's own record.
func (h *UsersHandler) Me(c echo.Context, _ *MeRequest) (*domain.User, error) {
	return h.users.Me(c.Request().Context(), middleware.GetUserID(c))
}

type BulkUserActionRequest struct {
	Action  string   `json:"action" validate:"required,oneof=activate deactivate set_role"`
	UserIDs []string `json:"user_ids" validate:"required,min=1,max=100,dive,uuid"`
	Role    string   `json:"role" validate:"omitempty,oneof=admin dispatcher technician sales"`
}

func (r *BulkUserActionRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	if r.Action == string(domain.BulkActionSetRole) && r.Role == "" {
		return validation.CustomValidationErrors{
			{Field: "role", Message: "is required for the set_role action"},
		}
	}
	return nil
}

// BulkActionResponse reports per-user outcomes of a bulk action.
type BulkActionResponse struct {
	Results []domain.BulkUserResult `json:"results"`
}

// BulkAction applies an action to many users at once. Admin only.
func (h *UsersHandler) BulkAction(c echo.Context, req *BulkUserActionRequest) (*BulkActionResponse, error) {
	results, err := h.users.BulkAction(c.Request().Context(), middleware.GetUserID(c), service.BulkActionInput{
		Action:  domain.BulkUserAction(req.Action),
		UserIDs: req.UserIDs,
		Role:    domain.Role(req.Role),
	})
	if err != nil {
		return nil, err
	}
	return &BulkActionResponse{Results: results}, nil
}
