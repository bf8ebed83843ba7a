// Package chats implements the conversation store: two-party chat threads
// and their messages, persisted as a single collection in the key-value
// namespace.
package chats

import (
	"context"

	"github.com/dmitrijs2005/gophchat/internal/models"
)

// Repository describes CRUD and query operations over chat threads.
//
// A chat is identified by its unordered participant pair; at most one chat
// exists per pair. Callers pre-encrypt message content; the store persists
// whatever it is handed.
type Repository interface {
	// List returns every chat.
	List(ctx context.Context) ([]models.Chat, error)

	// ListByParticipant returns the chats the given user takes part in.
	ListByParticipant(ctx context.Context, userID string) ([]models.Chat, error)

	// FindOrCreate looks a chat up by its unordered participant pair,
	// creating and persisting an empty one if none exists.
	FindOrCreate(ctx context.Context, userA, userB string) (*models.Chat, error)

	// Send appends a new message with status "sent" to the pair's chat
	// (creating the chat when needed), refreshes the chat's last-message
	// timestamp, and returns the stored message.
	Send(ctx context.Context, senderID, receiverID, content string, encrypted bool, selfDestruct *models.SelfDestruct) (*models.Message, error)

	// UpdateStatus overwrites the status of the message with the given id,
	// wherever it is. Missing ids are a logged no-op. The transition is not
	// validated; callers are trusted to only move status forward.
	UpdateStatus(ctx context.Context, messageID string, status models.MessageStatus) error

	// RemoveMessage deletes the message with the given id from every chat.
	RemoveMessage(ctx context.Context, messageID string) error

	// GetByID returns the chat with the given id, or common.ErrNotFound.
	GetByID(ctx context.Context, chatID string) (*models.Chat, error)

	// GetByParticipants returns the pair's chat, or common.ErrNotFound.
	GetByParticipants(ctx context.Context, userA, userB string) (*models.Chat, error)
}
