package chats

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophchat/internal/common"
	"github.com/dmitrijs2005/gophchat/internal/kvstore"
	"github.com/dmitrijs2005/gophchat/internal/logging"
	"github.com/dmitrijs2005/gophchat/internal/models"
	"github.com/google/uuid"
)

// chatsKey is the fixed key the whole chat collection lives under.
const chatsKey = "chats"

// KVRepository implements Repository over a kvstore.Store. Every mutation is
// a read-modify-write of the full collection; there is no locking, so
// concurrent writers can lose updates (accepted, see DESIGN.md).
type KVRepository struct {
	store kvstore.Store
	log   logging.Logger
}

// NewKVRepository returns a KVRepository bound to the given store.
func NewKVRepository(store kvstore.Store, log logging.Logger) *KVRepository {
	return &KVRepository{store: store, log: log}
}

func (r *KVRepository) loadChats() ([]models.Chat, error) {
	var chats []models.Chat
	if _, err := r.store.Get(chatsKey, &chats); err != nil {
		return nil, fmt.Errorf("loading chats: %w", err)
	}
	return chats, nil
}

func (r *KVRepository) saveChats(chats []models.Chat) error {
	if err := r.store.Set(chatsKey, chats); err != nil {
		return fmt.Errorf("saving chats: %w", err)
	}
	return nil
}

func (r *KVRepository) List(ctx context.Context) ([]models.Chat, error) {
	return r.loadChats()
}

func (r *KVRepository) ListByParticipant(ctx context.Context, userID string) ([]models.Chat, error) {
	chats, err := r.loadChats()
	if err != nil {
		return nil, err
	}
	visible := make([]models.Chat, 0, len(chats))
	for i := range chats {
		if chats[i].HasParticipant(userID) {
			visible = append(visible, chats[i])
		}
	}
	return visible, nil
}

func (r *KVRepository) FindOrCreate(ctx context.Context, userA, userB string) (*models.Chat, error) {
	chats, err := r.loadChats()
	if err != nil {
		return nil, err
	}

	for i := range chats {
		if chats[i].HasParticipants(userA, userB) {
			chat := chats[i].Clone()
			return &chat, nil
		}
	}

	now := time.Now()
	chat := models.Chat{
		ID:                   uuid.NewString(),
		Participants:         []string{userA, userB},
		Messages:             []models.Message{},
		LastMessageTimestamp: &now,
	}
	chats = append(chats, chat)
	if err := r.saveChats(chats); err != nil {
		return nil, err
	}

	return &chat, nil
}

func (r *KVRepository) Send(ctx context.Context, senderID, receiverID, content string, encrypted bool, selfDestruct *models.SelfDestruct) (*models.Message, error) {
	chats, err := r.loadChats()
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range chats {
		if chats[i].HasParticipants(senderID, receiverID) {
			idx = i
			break
		}
	}
	if idx < 0 {
		chats = append(chats, models.Chat{
			ID:           uuid.NewString(),
			Participants: []string{senderID, receiverID},
			Messages:     []models.Message{},
		})
		idx = len(chats) - 1
	}

	msg := models.Message{
		ID:           uuid.NewString(),
		SenderID:     senderID,
		ReceiverID:   receiverID,
		Content:      content,
		Timestamp:    time.Now(),
		Status:       models.StatusSent,
		Encrypted:    encrypted,
		SelfDestruct: selfDestruct,
	}

	chats[idx].Messages = append(chats[idx].Messages, msg)
	ts := msg.Timestamp
	chats[idx].LastMessageTimestamp = &ts

	if err := r.saveChats(chats); err != nil {
		return nil, err
	}

	stored := msg.Clone()
	return &stored, nil
}

func (r *KVRepository) UpdateStatus(ctx context.Context, messageID string, status models.MessageStatus) error {
	chats, err := r.loadChats()
	if err != nil {
		return err
	}

	found := false
	for i := range chats {
		for j := range chats[i].Messages {
			if chats[i].Messages[j].ID == messageID {
				chats[i].Messages[j].Status = status
				found = true
			}
		}
	}
	if !found {
		r.log.Warn(ctx, "status update for unknown message", "messageID", messageID, "status", status)
		return nil
	}

	return r.saveChats(chats)
}

func (r *KVRepository) RemoveMessage(ctx context.Context, messageID string) error {
	chats, err := r.loadChats()
	if err != nil {
		return err
	}

	for i := range chats {
		kept := chats[i].Messages[:0]
		for j := range chats[i].Messages {
			if chats[i].Messages[j].ID != messageID {
				kept = append(kept, chats[i].Messages[j])
			}
		}
		chats[i].Messages = kept
	}

	return r.saveChats(chats)
}

func (r *KVRepository) GetByID(ctx context.Context, chatID string) (*models.Chat, error) {
	chats, err := r.loadChats()
	if err != nil {
		return nil, err
	}
	for i := range chats {
		if chats[i].ID == chatID {
			chat := chats[i].Clone()
			return &chat, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *KVRepository) GetByParticipants(ctx context.Context, userA, userB string) (*models.Chat, error) {
	chats, err := r.loadChats()
	if err != nil {
		return nil, err
	}
	for i := range chats {
		if chats[i].HasParticipants(userA, userB) {
			chat := chats[i].Clone()
			return &chat, nil
		}
	}
	return nil, common.ErrNotFound
}
