package domain

import "time"

// Channel is the medium a conversation arrived through.
type Channel string

const (
	ChannelSMS   Channel = "sms"
	ChannelEmail Channel = "email"
	ChannelWeb   Channel = "web"
)

// ValidChannel reports whether ch is a known channel.
func ValidChannel(ch Channel) bool {
	switch ch {
	case ChannelSMS, ChannelEmail, ChannelWeb:
		return true
	}
	return false
}

// Direction distinguishes customer messages from staff replies.
type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

// Conversation is an inbox thread with a contact. AssignedUserID is
// set by the message router or manually by staff.
type Conversation struct {
	ID             string     `json:"id"`
	ContactID      string     `json:"contact_id"`
	Channel        Channel    `json:"channel"`
	Subject        string     `json:"subject,omitempty"`
	AssignedUserID *string    `json:"assigned_user_id,omitempty"`
	LastMessageAt  *time.Time `json:"last_message_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Message is a single message within a conversation. SenderUserID is
// nil for inbound customer messages.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Direction      Direction `json:"direction"`
	SenderUserID   *string   `json:"sender_user_id,omitempty"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}
