// Package models defines the data records persisted by GophChat: users,
// chats, and messages. All types are value-shaped and JSON-serializable;
// the key-value store is their sole durable owner.
package models

import "time"

// User is a registered account. LastSeen and Online are presence fields,
// updated on login and on visibility changes; they are optional and absent
// until first set.
type User struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Avatar   string     `json:"avatar,omitempty"`
	LastSeen *time.Time `json:"lastSeen,omitempty"`
	Online   *bool      `json:"online,omitempty"`
}

// IsOnline reports the online flag, treating an absent flag as offline.
func (u *User) IsOnline() bool {
	return u.Online != nil && *u.Online
}

// Clone returns a deep copy of the user.
func (u User) Clone() User {
	c := u
	if u.LastSeen != nil {
		t := *u.LastSeen
		c.LastSeen = &t
	}
	if u.Online != nil {
		b := *u.Online
		c.Online = &b
	}
	return c
}
