package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/streamlinehq/streamline/internal/domain"
)

// ConversationsRepository persists inbox threads and messages.
type ConversationsRepository struct {
	pool *pgxpool.Pool
}

const conversationColumns = `id, contact_id, channel, subject, assigned_user_id, last_message_at, created_at`
const messageColumns = `id, conversation_id, direction, sender_user_id, body, created_at`

func scanConversation(row pgx.Row) (*domain.Conversation, error) {
	var c domain.Conversation
	err := row.Scan(&c.ID, &c.ContactID, &c.Channel, &c.Subject, &c.AssignedUserID, &c.LastMessageAt, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func scanMessage(row pgx.Row) (*domain.Message, error) {
	var m domain.Message
	err := row.Scan(&m.ID, &m.ConversationID, &m.Direction, &m.SenderUserID, &m.Body, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create opens a conversation thread.
func (r *ConversationsRepository) Create(ctx context.Context, c *domain.Conversation) (*domain.Conversation, error) {
	row := r.pool.QueryRow(ctx, `
		insert into conversations (contact_id, channel, subject, assigned_user_id)
		values ($1, $2, $3, $4)
		returning `+conversationColumns,
		c.ContactID, c.Channel, c.Subject, c.AssignedUserID,
	)
	return scanConversation(row)
}

// GetByID fetches a conversation by primary key.
func (r *ConversationsRepository) GetByID(ctx context.Context, id string) (*domain.Conversation, error) {
	row := r.pool.QueryRow(ctx, `select `+conversationColumns+` from conversations where id = $1`, id)
	conv, err := scanConversation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("conversations", err)
	}
	return conv, err
}

// List returns conversations most recently active first. A non-empty
// assignedUserID filters to one user's queue.
func (r *ConversationsRepository) List(ctx context.Context, assignedUserID string, limit, offset int) ([]domain.Conversation, error) {
	rows, err := r.pool.Query(ctx, `
		select `+conversationColumns+` from conversations
		where $1 = '' or assigned_user_id = $1::uuid
		order by last_message_at desc nulls last, created_at desc, id
		limit $2 offset $3`,
		assignedUserID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conversations []domain.Conversation
	for rows.Next() {
		conv, err := scanConversation(rows)
		if err != nil {
			return nil, err
		}
		conversations = append(conversations, *conv)
	}
	return conversations, rows.Err()
}

// AddMessage appends a message and bumps the conversation's
// last_message_at inside one transaction.
func (r *ConversationsRepository) AddMessage(ctx context.Context, m *domain.Message) (*domain.Message, error) {
	var created *domain.Message

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			insert into messages (conversation_id, direction, sender_user_id, body)
			values ($1, $2, $3, $4)
			returning `+messageColumns,
			m.ConversationID, m.Direction, m.SenderUserID, m.Body,
		)
		var err error
		created, err = scanMessage(row)
		if err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `
			update conversations set last_message_at = $2 where id = $1`,
			m.ConversationID, created.CreatedAt,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return notFound("conversations", pgx.ErrNoRows)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ListMessages returns a conversation's messages oldest first.
func (r *ConversationsRepository) ListMessages(ctx context.Context, conversationID string) ([]domain.Message, error) {
	rows, err := r.pool.Query(ctx, `
		select `+messageColumns+` from messages
		where conversation_id = $1
		order by created_at, id`,
		conversationID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, *m)
	}
	return messages, rows.Err()
}

// Assign sets or clears a conversation's assigned user.
func (r *ConversationsRepository) Assign(ctx context.Context, id string, userID *string) (*domain.Conversation, error) {
	row := r.pool.QueryRow(ctx, `
		update conversations set assigned_user_id = $2
		where id = $1
		returning `+conversationColumns,
		id, userID,
	)
	conv, err := scanConversation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("conversations", err)
	}
	return conv, err
}
