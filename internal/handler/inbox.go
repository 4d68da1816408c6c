package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/streamlinehq/streamline/internal/domain"
	"github.com/streamlinehq/streamline/internal/lib/inbox"
	"github.com/streamlinehq/streamline/internal/middleware"
	"github.com/streamlinehq/streamline/internal/server"
	"github.com/streamlinehq/streamline/internal/service"
	"github.com/streamlinehq/streamline/internal/validation"
)

// InboxHandler exposes conversations, messages, and routing.
type InboxHandler struct {
	Handler
	inbox *service.InboxService
}

func NewInboxHandler(s *server.Server, inboxService *service.InboxService) *InboxHandler {
	return &InboxHandler{Handler: NewHandler(s), inbox: inboxService}
}

type CreateConversationRequest struct {
	ContactID    string `json:"contact_id" validate:"omitempty,uuid"`
	ContactPhone string `json:"contact_phone" validate:"omitempty,max=20"`
	Channel      string `json:"channel" validate:"required,oneof=sms email web"`
	Subject      string `json:"subject" validate:"max=200"`
}

func (r *CreateConversationRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	if (r.ContactID == "") == (r.ContactPhone == "") {
		return validation.CustomValidationErrors{
			{Field: "contact_id", Message: "exactly one of contact_id or contact_phone is required"},
		}
	}
	return nil
}

// CreateConversation opens a thread with a contact, identified by id
// or by phone number.
func (h *InboxHandler) CreateConversation(c echo.Context, req *CreateConversationRequest) (*domain.Conversation, error) {
	return h.inbox.CreateConversation(c.Request().Context(), middleware.GetUserID(c), service.CreateConversationInput{
		ContactID:    req.ContactID,
		ContactPhone: req.ContactPhone,
		Channel:      domain.Channel(req.Channel),
		Subject:      req.Subject,
	})
}

type ListConversationsRequest struct {
	Mine   bool `query:"mine"`
	Limit  int  `query:"limit" validate:"min=0,max=200"`
	Offset int  `query:"offset" validate:"min=0"`
}

func (r *ListConversationsRequest) Validate() error {
	return validation.Struct(r)
}

// ListConversations returns the inbox, most recently active first.
func (h *InboxHandler) ListConversations(c echo.Context, req *ListConversationsRequest) ([]domain.Conversation, error) {
	return h.inbox.ListConversations(c.Request().Context(), middleware.GetUserID(c), req.Mine, req.Limit, req.Offset)
}

type GetConversationRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *GetConversationRequest) Validate() error {
	return validation.Struct(r)
}

// ConversationResponse is a thread with its messages.
type ConversationResponse struct {
	Conversation *domain.Conversation `json:"conversation"`
	Messages     []domain.Message     `json:"messages"`
}

// GetConversation fetches a conversation with its messages.
func (h *InboxHandler) GetConversation(c echo.Context, req *GetConversationRequest) (*ConversationResponse, error) {
	conv, messages, err := h.inbox.GetConversation(c.Request().Context(), middleware.GetUserID(c), req.ID)
	if err != nil {
		return nil, err
	}
	return &ConversationResponse{Conversation: conv, Messages: messages}, nil
}

type AddMessageRequest struct {
	ConversationID string `param:"id" validate:"required,uuid"`
	Direction      string `json:"direction" validate:"required,oneof=inbound outbound"`
	Body           string `json:"body" validate:"required,max=10000"`
}

func (r *AddMessageRequest) Validate() error {
	return validation.Struct(r)
}

// MessageResponse is an appended message plus the routing decision, if
// the message triggered one.
type MessageResponse struct {
	Message    *domain.Message   `json:"message"`
	Assignment *inbox.Assignment `json:"assignment,omitempty"`
}

// AddMessage appends a message to a conversation. Inbound messages on
// unassigned threads are routed automatically.
func (h *InboxHandler) AddMessage(c echo.Context, req *AddMessageRequest) (*MessageResponse, error) {
	message, assignment, err := h.inbox.AddMessage(c.Request().Context(), middleware.GetUserID(c), service.AddMessageInput{
		ConversationID: req.ConversationID,
		Direction:      domain.Direction(req.Direction),
		Body:           req.Body,
	})
	if err != nil {
		return nil, err
	}
	return &MessageResponse{Message: message, Assignment: assignment}, nil
}

type RouteConversationRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *RouteConversationRequest) Validate() error {
	return validation.Struct(r)
}

// Route re-runs routing against the latest inbound message.
func (h *InboxHandler) Route(c echo.Context, req *RouteConversationRequest) (*inbox.Assignment, error) {
	return h.inbox.RouteConversation(c.Request().Context(), middleware.GetUserID(c), req.ID)
}

type AssignConversationRequest struct {
	ID     string  `param:"id" validate:"required,uuid"`
	UserID *string `json:"user_id" validate:"omitempty,uuid"`
}

func (r *AssignConversationRequest) Validate() error {
	return validation.Struct(r)
}

// Assign manually sets or clears the assigned user.
func (h *InboxHandler) Assign(c echo.Context, req *AssignConversationRequest) (*domain.Conversation, error) {
	return h.inbox.AssignConversation(c.Request().Context(), middleware.GetUserID(c), req.ID, req.UserID)
}
