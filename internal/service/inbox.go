package service

import (
	"context"

	"github.com/streamlinehq/streamline/internal/domain"
	"github.com/streamlinehq/streamline/internal/errs"
	"github.com/streamlinehq/streamline/internal/lib/inbox"
	"github.com/streamlinehq/streamline/internal/lib/phone"
	"github.com/streamlinehq/streamline/internal/repository"
	"github.com/streamlinehq/streamline/internal/server"
)

// InboxService manages conversations, messages, and keyword-based
// routing of inbound messages to the best-suited user.
type InboxService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewInboxService(s *server.Server, repos *repository.Repositories) *InboxService {
	return &InboxService{server: s, repos: repos}
}

// routableRoles is every role the router considers as a candidate.
var routableRoles = []domain.Role{
	domain.RoleAdmin,
	domain.RoleDispatcher,
	domain.RoleTechnician,
	domain.RoleSales,
}

// CreateConversationInput identifies the contact either directly or,
// for threads opened from an inbound phone number, by that number.
type CreateConversationInput struct {
	ContactID    string
	ContactPhone string
	Channel      domain.Channel
	Subject      string
}

// CreateConversation opens a thread with a contact. When only a phone
// number is given, the thread attaches to the contact holding it.
func (s *InboxService) CreateConversation(ctx context.Context, actorClerkID string, in CreateConversationInput) (*domain.Conversation, error) {
	if _, err := resolveActor(ctx, s.repos, actorClerkID); err != nil {
		return nil, err
	}
	if !domain.ValidChannel(in.Channel) {
		return nil, errs.NewBadRequestError("Unknown channel.", true, nil, nil, nil)
	}

	contactID := in.ContactID
	if contactID == "" {
		normalized, err := phone.Normalize(in.ContactPhone)
		if err != nil {
			return nil, errs.NewBadRequestError("Validation failed", true, nil, []errs.FieldError{
				{Field: "contact_phone", Error: "must be a valid phone number"},
			}, nil)
		}
		contact, err := s.repos.Contacts.GetByPhone(ctx, normalized)
		if err != nil {
			return nil, err
		}
		contactID = contact.ID
	} else if _, err := s.repos.Contacts.GetByID(ctx, contactID); err != nil {
		return nil, err
	}

	return s.repos.Conversations.Create(ctx, &domain.Conversation{
		ContactID: contactID,
		Channel:   in.Channel,
		Subject:   in.Subject,
	})
}

// GetConversation fetches a conversation with its messages.
func (s *InboxService) GetConversation(ctx context.Context, actorClerkID, id string) (*domain.Conversation, []domain.Message, error) {
	if _, err := resolveActor(ctx, s.repos, actorClerkID); err != nil {
		return nil, nil, err
	}
	conv, err := s.repos.Conversations.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	messages, err := s.repos.Conversations.ListMessages(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return conv, messages, nil
}

// ListConversations returns the inbox, most recently active first.
// When mine is set, only the caller's assigned threads are returned.
func (s *InboxService) ListConversations(ctx context.Context, actorClerkID string, mine bool, limit, offset int) ([]domain.Conversation, error) {
	actor, err := resolveActor(ctx, s.repos, actorClerkID)
	if err != nil {
		return nil, err
	}
	assignedUserID := ""
	if mine {
		assignedUserID = actor.ID
	}
	return s.repos.Conversations.List(ctx, assignedUserID, clampLimit(limit), offset)
}

// AddMessageInput carries one message to append to a conversation.
type AddMessageInput struct {
	ConversationID string
	Direction      domain.Direction
	Body           string
}

// AddMessage appends a message. Outbound messages are attributed to
// the caller. An inbound message landing on an unassigned conversation
// triggers routing, so fresh customer messages never sit unowned.
func (s *InboxService) AddMessage(ctx context.Context, actorClerkID string, in AddMessageInput) (*domain.Message, *inbox.Assignment, error) {
	actor, err := resolveActor(ctx, s.repos, actorClerkID)
	if err != nil {
		return nil, nil, err
	}

	conv, err := s.repos.Conversations.GetByID(ctx, in.ConversationID)
	if err != nil {
		return nil, nil, err
	}

	message := &domain.Message{
		ConversationID: in.ConversationID,
		Direction:      in.Direction,
		Body:           in.Body,
	}
	if in.Direction == domain.DirectionOutbound {
		message.SenderUserID = &actor.ID
	}

	created, err := s.repos.Conversations.AddMessage(ctx, message)
	if err != nil {
		return nil, nil, err
	}

	var assignment *inbox.Assignment
	if in.Direction == domain.DirectionInbound && conv.AssignedUserID == nil {
		assignment, err = s.route(ctx, conv.ID, in.Body)
		if err != nil {
			// Routing failure should not lose the message; the thread
			// stays unassigned for manual triage.
			s.server.Logger.Error().Err(err).Str("conversation_id", conv.ID).Msg("failed to route inbound message")
		}
	}

	return created, assignment, nil
}

// RouteConversation re-runs routing for a conversation against its
// latest inbound message and applies the resulting assignment.
func (s *InboxService) RouteConversation(ctx context.Context, actorClerkID, conversationID string) (*inbox.Assignment, error) {
	if _, err := resolveActor(ctx, s.repos, actorClerkID); err != nil {
		return nil, err
	}

	conv, err := s.repos.Conversations.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	messages, err := s.repos.Conversations.ListMessages(ctx, conv.ID)
	if err != nil {
		return nil, err
	}
	body := ""
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Direction == domain.DirectionInbound {
			body = messages[i].Body
			break
		}
	}
	if body == "" {
		return nil, errs.NewConflictError("The conversation has no inbound message to route.", true, nil)
	}

	return s.route(ctx, conv.ID, body)
}

// AssignConversation manually sets or clears the assigned user.
func (s *InboxService) AssignConversation(ctx context.Context, actorClerkID, conversationID string, userID *string) (*domain.Conversation, error) {
	if _, err := resolveActor(ctx, s.repos, actorClerkID); err != nil {
		return nil, err
	}
	if userID != nil {
		if _, err := s.repos.Users.GetByID(ctx, *userID); err != nil {
			return nil, err
		}
	}
	return s.repos.Conversations.Assign(ctx, conversationID, userID)
}

// route scores the message against all active users and persists the
// winning assignment. A fallback with no configured default assignee
// leaves the conversation unassigned.
func (s *InboxService) route(ctx context.Context, conversationID, body string) (*inbox.Assignment, error) {
	users, err := s.repos.Users.ListActiveByRoles(ctx, routableRoles)
	if err != nil {
		return nil, err
	}

	candidates := make([]inbox.Candidate, 0, len(users))
	for _, u := range users {
		candidates = append(candidates, inbox.Candidate{
			UserID:    u.ID,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
		})
	}

	assignment := inbox.Route(body, candidates, s.server.Config.Inbox.DefaultAssigneeID)

	if assignment.UserID != "" {
		if _, err := s.repos.Conversations.Assign(ctx, conversationID, &assignment.UserID); err != nil {
			return nil, err
		}
	}

	s.server.Logger.Info().
		Str("conversation_id", conversationID).
		Str("assigned_user_id", assignment.UserID).
		Int("score", assignment.Score).
		Int("confidence", assignment.Confidence).
		Bool("fallback", assignment.Fallback).
		Msg("routed inbound message")

	return &assignment, nil
}
