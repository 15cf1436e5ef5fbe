package domain

import "time"

// InboundMessage represents one message observed in the Messages store
type InboundMessage struct {
	ID        string // store-native GUID
	Handle    string // sender phone number or iMessage handle
	Body      string // plain text, possibly decoded from the attributedBody blob
	Timestamp time.Time
}

// IsBefore checks if the message arrived before the specified time
func (m *InboundMessage) IsBefore(t time.Time) bool {
	return m.Timestamp.Before(t)
}
