package services

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophchat/internal/cryptox"
	"github.com/dmitrijs2005/gophchat/internal/logging"
	"github.com/dmitrijs2005/gophchat/internal/models"
	"github.com/dmitrijs2005/gophchat/internal/repositories/chats"
	"github.com/dmitrijs2005/gophchat/internal/repositories/users"
)

// ChatState is the renderable snapshot of the chat controller: the chats
// visible to the signed-in user (with message content decrypted), the other
// users, and the active chat selection.
//
// The in-memory projection is a read-through cache: each poll cycle rebuilds
// it wholesale from storage. The persisted copy always keeps ciphertext;
// only this projection holds plaintext.
type ChatState struct {
	Chats      []models.Chat
	Users      []models.User
	ActiveChat string
	Loading    bool
	Err        string
}

// Generic user-facing error strings; original failure detail goes to the
// log only.
const (
	msgLoadFailed = "Failed to load chat data"
	msgSendFailed = "Failed to send message"
)

// ChatService orchestrates sending, receiving, status propagation, the
// polling-based sync loop, and self-destruct expiry.
type ChatService struct {
	mu      sync.Mutex
	session *SessionService
	chats   chats.Repository
	users   users.Repository
	cipher  *cryptox.Cipher
	log     logging.Logger
	state   ChatState
}

// NewChatService wires the chat controller to its stores, the session
// controller, and the message cipher.
func NewChatService(session *SessionService, chatRepo chats.Repository, userRepo users.Repository, cipher *cryptox.Cipher, log logging.Logger) *ChatService {
	return &ChatService{
		session: session,
		chats:   chatRepo,
		users:   userRepo,
		cipher:  cipher,
		log:     log,
		state:   ChatState{Loading: true},
	}
}

// State returns a deep copy of the current chat state.
func (s *ChatService) State() ChatState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	st.Chats = make([]models.Chat, len(s.state.Chats))
	for i := range s.state.Chats {
		st.Chats[i] = s.state.Chats[i].Clone()
	}
	st.Users = make([]models.User, len(s.state.Users))
	for i := range s.state.Users {
		st.Users[i] = s.state.Users[i].Clone()
	}
	return st
}

// ClearError drops the current error message.
func (s *ChatService) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Err = ""
}

// Load builds the initial projection for the signed-in user: every other
// user, every chat the user takes part in, with encrypted message content
// decrypted in memory only.
func (s *ChatService) Load(ctx context.Context) {
	user := s.session.User()
	if user == nil {
		return
	}

	s.mu.Lock()
	s.state.Loading = true
	s.mu.Unlock()

	allUsers, err := s.users.List(ctx)
	if err != nil {
		s.fail(ctx, "loading users", msgLoadFailed, err)
		return
	}
	others := make([]models.User, 0, len(allUsers))
	for i := range allUsers {
		if allUsers[i].ID != user.ID {
			others = append(others, allUsers[i])
		}
	}

	visible, err := s.chats.ListByParticipant(ctx, user.ID)
	if err != nil {
		s.fail(ctx, "loading chats", msgLoadFailed, err)
		return
	}
	s.decryptChats(ctx, user.ID, visible)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Users = others
	s.state.Chats = visible
	s.state.Loading = false
	s.state.Err = ""
}

// Run drives the polling loop: every interval the visible chats are
// reloaded, re-decrypted, and swapped into the projection wholesale, and
// every incoming message still in "sent" is advanced to "delivered". This
// is the only mechanism by which a second party observes new messages.
//
// Run blocks until ctx is cancelled or authentication ends.
func (s *ChatService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !s.session.Authenticated() {
				return
			}
			s.poll(ctx)
		}
	}
}

func (s *ChatService) poll(ctx context.Context) {
	user := s.session.User()
	if user == nil {
		return
	}

	visible, err := s.chats.ListByParticipant(ctx, user.ID)
	if err != nil {
		s.log.Error(ctx, "poll: loading chats", "error", err)
		return
	}
	s.decryptChats(ctx, user.ID, visible)

	// Ack newly arrived messages.
	for i := range visible {
		for j := range visible[i].Messages {
			m := &visible[i].Messages[j]
			if m.IncomingFor(user.ID) && m.Status == models.StatusSent {
				if err := s.chats.UpdateStatus(ctx, m.ID, models.StatusDelivered); err != nil {
					s.log.Error(ctx, "poll: advancing status", "messageID", m.ID, "error", err)
					continue
				}
				m.Status = models.StatusDelivered
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Chats = visible
}

// Send encrypts (when requested), persists, and locally echoes a message.
// The echo carries the plaintext so the sender sees the message instantly;
// the persisted copy keeps the ciphertext. A self-destruct directive, when
// enabled, schedules an unconditional one-shot deletion.
func (s *ChatService) Send(ctx context.Context, receiverID, content string, encrypted bool, selfDestruct *models.SelfDestruct) {
	user := s.session.User()
	if user == nil {
		return
	}

	payload := content
	if encrypted {
		ct, err := s.cipher.Encrypt(content)
		if err != nil {
			s.fail(ctx, "encrypting message", msgSendFailed, err)
			return
		}
		payload = ct
	}

	msg, err := s.chats.Send(ctx, user.ID, receiverID, payload, encrypted, selfDestruct)
	if err != nil {
		s.fail(ctx, "sending message", msgSendFailed, err)
		return
	}

	echo := msg.Clone()
	echo.Content = content
	s.applyEcho(ctx, user.ID, receiverID, echo)

	if selfDestruct != nil && selfDestruct.Enabled {
		id := msg.ID
		time.AfterFunc(time.Duration(selfDestruct.Timeout)*time.Second, func() {
			s.destroyMessage(id)
		})
	}
}

// applyEcho reflects a just-sent message into the in-memory projection.
func (s *ChatService) applyEcho(ctx context.Context, senderID, receiverID string, echo models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Chats {
		if s.state.Chats[i].HasParticipants(senderID, receiverID) {
			s.state.Chats[i].Messages = append(s.state.Chats[i].Messages, echo)
			ts := echo.Timestamp
			s.state.Chats[i].LastMessageTimestamp = &ts
			s.state.Err = ""
			return
		}
	}

	// First message of a new chat: pick the persisted chat up so the
	// projection carries its real identifier.
	chat, err := s.chats.GetByParticipants(ctx, senderID, receiverID)
	if err != nil {
		s.log.Error(ctx, "echo: loading new chat", "error", err)
		return
	}
	chat.Messages = []models.Message{echo}
	ts := echo.Timestamp
	chat.LastMessageTimestamp = &ts
	s.state.Chats = append(s.state.Chats, *chat)
	s.state.Err = ""
}

// destroyMessage removes a self-destructed message from storage and from
// the projection. Deletion is unconditional: a message already removed by a
// concurrent path is simply gone.
func (s *ChatService) destroyMessage(id string) {
	ctx := context.Background()
	if err := s.chats.RemoveMessage(ctx, id); err != nil {
		s.log.Error(ctx, "self-destruct: removing message", "messageID", id, "error", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Chats {
		kept := s.state.Chats[i].Messages[:0]
		for j := range s.state.Chats[i].Messages {
			if s.state.Chats[i].Messages[j].ID != id {
				kept = append(kept, s.state.Chats[i].Messages[j])
			}
		}
		s.state.Chats[i].Messages = kept
	}
}

// SelectChat makes the chat active and marks every incoming message that is
// not yet seen as seen, in storage and in the projection.
func (s *ChatService) SelectChat(ctx context.Context, chatID string) {
	user := s.session.User()
	if user == nil {
		return
	}

	s.mu.Lock()
	s.state.ActiveChat = chatID
	s.mu.Unlock()

	chat, err := s.chats.GetByID(ctx, chatID)
	if err != nil {
		s.log.Error(ctx, "selecting chat", "chatID", chatID, "error", err)
		return
	}

	for i := range chat.Messages {
		m := &chat.Messages[i]
		if m.IncomingFor(user.ID) && m.Status != models.StatusSeen {
			s.advanceToSeen(ctx, m.ID)
		}
	}
}

// MarkSeen advances a single message to seen.
func (s *ChatService) MarkSeen(ctx context.Context, messageID string) {
	s.advanceToSeen(ctx, messageID)
}

func (s *ChatService) advanceToSeen(ctx context.Context, messageID string) {
	if err := s.chats.UpdateStatus(ctx, messageID, models.StatusSeen); err != nil {
		s.log.Error(ctx, "marking seen", "messageID", messageID, "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Chats {
		for j := range s.state.Chats[i].Messages {
			if s.state.Chats[i].Messages[j].ID == messageID {
				s.state.Chats[i].Messages[j].Status = models.StatusSeen
			}
		}
	}
}

// OtherParticipant resolves the user record of the chat participant that is
// not the signed-in user.
func (s *ChatService) OtherParticipant(chatID string) (*models.User, bool) {
	user := s.session.User()
	if user == nil {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Chats {
		if s.state.Chats[i].ID != chatID {
			continue
		}
		otherID, ok := s.state.Chats[i].OtherParticipant(user.ID)
		if !ok {
			return nil, false
		}
		for j := range s.state.Users {
			if s.state.Users[j].ID == otherID {
				u := s.state.Users[j].Clone()
				return &u, true
			}
		}
		return nil, false
	}
	return nil, false
}

// decryptChats decrypts, in place, the content of every encrypted message
// the given user is party to. Per-message failures are logged and leave the
// ciphertext visible rather than failing the whole load.
func (s *ChatService) decryptChats(ctx context.Context, userID string, chatList []models.Chat) {
	for i := range chatList {
		for j := range chatList[i].Messages {
			m := &chatList[i].Messages[j]
			if !m.Encrypted || !m.Involves(userID) {
				continue
			}
			pt, err := s.cipher.Decrypt(m.Content)
			if err != nil {
				s.log.Error(ctx, "decrypting message", "messageID", m.ID, "error", err)
				continue
			}
			m.Content = pt
		}
	}
}

func (s *ChatService) fail(ctx context.Context, op, userMsg string, err error) {
	s.log.Error(ctx, op, "error", err)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = false
	s.state.Err = userMsg
}
