package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/streamlinehq/streamline/internal/domain"
	"github.com/streamlinehq/streamline/internal/middleware"
	"github.com/streamlinehq/streamline/internal/server"
	"github.com/streamlinehq/streamline/internal/service"
	"github.com/streamlinehq/streamline/internal/validation"
)

// ContactsHandler exposes customer record CRUD.
type ContactsHandler struct {
	Handler
	contacts *service.ContactService
}

func NewContactsHandler(s *server.Server, contacts *service.ContactService) *ContactsHandler {
	return &ContactsHandler{Handler: NewHandler(s), contacts: contacts}
}

type CreateContactRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" validate:"omitempty,max=20"`
	Address   string `json:"address" validate:"max=200"`
	City      string `json:"city" validate:"max=100"`
	State     string `json:"state" validate:"max=50"`
	Zip       string `json:"zip" validate:"max=20"`
	Notes     string `json:"notes" validate:"max=2000"`
}

func (r *CreateContactRequest) Validate() error {
	return validation.Struct(r)
}

func (r *CreateContactRequest) toDomain() *domain.Contact {
	return &domain.Contact{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		Address:   r.Address,
		City:      r.City,
		State:     r.State,
		Zip:       r.Zip,
		Notes:     r.Notes,
	}
}

// Create stores a new contact.
func (h *ContactsHandler) Create(c echo.Context, req *CreateContactRequest) (*domain.Contact, error) {
	return h.contacts.Create(c.Request().Context(), middleware.GetUserID(c), req.toDomain())
}

type GetContactRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *GetContactRequest) Validate() error {
	return validation.Struct(r)
}

// Get fetches one contact.
func (h *ContactsHandler) Get(c echo.Context, req *GetContactRequest) (*domain.Contact, error) {
	return h.contacts.Get(c.Request().Context(), middleware.GetUserID(c), req.ID)
}

type ListContactsRequest struct {
	Search string `query:"search" validate:"max=100"`
	Limit  int    `query:"limit" validate:"min=0,max=200"`
	Offset int    `query:"offset" validate:"min=0"`
}

func (r *ListContactsRequest) Validate() error {
	return validation.Struct(r)
}

// List returns contacts matching an optional search term.
func (h *ContactsHandler) List(c echo.Context, req *ListContactsRequest) ([]domain.Contact, error) {
	return h.contacts.List(c.Request().Context(), middleware.GetUserID(c), req.Search, req.Limit, req.Offset)
}

type UpdateContactRequest struct {
	ID string `param:"id" validate:"required,uuid"`
	CreateContactRequest
}

func (r *UpdateContactRequest) Validate() error {
	return validation.Struct(r)
}

// Update overwrites a contact's fields.
func (h *ContactsHandler) Update(c echo.Context, req *UpdateContactRequest) (*domain.Contact, error) {
	contact := req.toDomain()
	contact.ID = req.ID
	return h.contacts.Update(c.Request().Context(), middleware.GetUserID(c), contact)
}

type DeleteContactRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *DeleteContactRequest) Validate() error {
	return validation.Struct(r)
}

// Delete removes a contact. Admin and dispatcher only.
func (h *ContactsHandler) Delete(c echo.Context, req *DeleteContactRequest) error {
	return h.contacts.Delete(c.Request().Context(), middleware.GetUserID(c), req.ID)
}
