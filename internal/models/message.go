package models

import "time"

// MessageStatus is the delivery state of a message as observed by its
// receiver. Transitions are expected to only move forward:
// sent → delivered → seen. The store does not enforce this; callers are
// trusted to never move a status backward.
type MessageStatus string

const (
	StatusSent      MessageStatus = "sent"
	StatusDelivered MessageStatus = "delivered"
	StatusSeen      MessageStatus = "seen"
)

// SelfDestruct schedules unconditional deletion of a message a fixed number
// of seconds after send time.
type SelfDestruct struct {
	Enabled bool `json:"enabled"`
	Timeout int  `json:"timeout"`
}

// Message is a single chat message. Content holds ciphertext at rest when
// Encrypted is set; decryption happens only in the in-memory projection,
// never in storage.
type Message struct {
	ID           string        `json:"id"`
	SenderID     string        `json:"senderId"`
	ReceiverID   string        `json:"receiverId"`
	Content      string        `json:"content"`
	Timestamp    time.Time     `json:"timestamp"`
	Status       MessageStatus `json:"status"`
	Encrypted    bool          `json:"encrypted"`
	SelfDestruct *SelfDestruct `json:"selfDestruct,omitempty"`
}

// IncomingFor reports whether the message is addressed to the given user.
func (m *Message) IncomingFor(userID string) bool {
	return m.ReceiverID == userID
}

// Involves reports whether the given user is the sender or the receiver.
func (m *Message) Involves(userID string) bool {
	return m.SenderID == userID || m.ReceiverID == userID
}

// Clone returns a deep copy of the message.
func (m Message) Clone() Message {
	c := m
	if m.SelfDestruct != nil {
		sd := *m.SelfDestruct
		c.SelfDestruct = &sd
	}
	return c
}
