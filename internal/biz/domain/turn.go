package domain

import "time"

// Direction represents the direction of a logged conversation turn
type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

// ConversationTurn represents one logged message in a conversation, inbound or outbound
type ConversationTurn struct {
	ID            int64
	Handle        string
	Direction     Direction
	Body          string
	AutoGenerated bool
	SentAt        time.Time
}

// IsInbound checks if the turn came from the remote party
func (t *ConversationTurn) IsInbound() bool {
	return t.Direction == DirectionInbound
}
