package models

import "time"

// Chat is a two-party message thread keyed by its unordered participant
// pair. At most one chat exists per pair. Messages are stored in insertion
// order, which is also chronological order.
type Chat struct {
	ID                   string     `json:"id"`
	Participants         []string   `json:"participants"`
	Messages             []Message  `json:"messages"`
	LastMessageTimestamp *time.Time `json:"lastMessageTimestamp,omitempty"`
}

// HasParticipant reports whether the given user takes part in the chat.
func (c *Chat) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// HasParticipants reports whether the chat is between the two given users,
// in either order.
func (c *Chat) HasParticipants(userA, userB string) bool {
	return c.HasParticipant(userA) && c.HasParticipant(userB)
}

// OtherParticipant returns the participant that is not the given user.
// The second return value is false when the user is not in the chat.
func (c *Chat) OtherParticipant(userID string) (string, bool) {
	if !c.HasParticipant(userID) {
		return "", false
	}
	for _, p := range c.Participants {
		if p != userID {
			return p, true
		}
	}
	return "", false
}

// UnreadCount returns the number of messages addressed to the given user
// that have not been seen yet.
func (c *Chat) UnreadCount(userID string) int {
	n := 0
	for i := range c.Messages {
		if c.Messages[i].IncomingFor(userID) && c.Messages[i].Status != StatusSeen {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the chat.
func (c Chat) Clone() Chat {
	cp := c
	cp.Participants = append([]string(nil), c.Participants...)
	cp.Messages = make([]Message, len(c.Messages))
	for i := range c.Messages {
		cp.Messages[i] = c.Messages[i].Clone()
	}
	if c.LastMessageTimestamp != nil {
		t := *c.LastMessageTimestamp
		cp.LastMessageTimestamp = &t
	}
	return cp
}
