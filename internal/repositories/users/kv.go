package users

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophchat/internal/common"
	"github.com/dmitrijs2005/gophchat/internal/kvstore"
	"github.com/dmitrijs2005/gophchat/internal/models"
	"github.com/google/uuid"
)

// Fixed keys in the key-value namespace. The password table lives under its
// own key, separate from the user records.
const (
	usersKey       = "users"
	currentUserKey = "current-user"
	passwordsKey   = "user-passwords"
)

// KVRepository implements Repository over a kvstore.Store.
type KVRepository struct {
	store kvstore.Store
}

// NewKVRepository returns a KVRepository bound to the given store.
func NewKVRepository(store kvstore.Store) *KVRepository {
	return &KVRepository{store: store}
}

func (r *KVRepository) loadUsers() ([]models.User, error) {
	var users []models.User
	if _, err := r.store.Get(usersKey, &users); err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}
	return users, nil
}

func (r *KVRepository) loadPasswords() (map[string]string, error) {
	passwords := map[string]string{}
	if _, err := r.store.Get(passwordsKey, &passwords); err != nil {
		return nil, fmt.Errorf("loading password table: %w", err)
	}
	return passwords, nil
}

func (r *KVRepository) List(ctx context.Context) ([]models.User, error) {
	return r.loadUsers()
}

func (r *KVRepository) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	users, err := r.loadUsers()
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].Email == email {
			return nil, common.ErrDuplicateEmail
		}
	}

	now := time.Now()
	online := true
	user := models.User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		LastSeen: &now,
		Online:   &online,
	}

	passwords, err := r.loadPasswords()
	if err != nil {
		return nil, err
	}
	passwords[email] = password
	if err := r.store.Set(passwordsKey, passwords); err != nil {
		return nil, fmt.Errorf("saving password table: %w", err)
	}

	users = append(users, user)
	if err := r.store.Set(usersKey, users); err != nil {
		return nil, fmt.Errorf("saving users: %w", err)
	}
	if err := r.store.Set(currentUserKey, user); err != nil {
		return nil, fmt.Errorf("saving session pointer: %w", err)
	}

	return &user, nil
}

func (r *KVRepository) Login(ctx context.Context, email, password string) (*models.User, error) {
	users, err := r.loadUsers()
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range users {
		if users[i].Email == email {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, common.ErrUserNotFound
	}

	passwords, err := r.loadPasswords()
	if err != nil {
		return nil, err
	}
	if passwords[email] != password {
		return nil, common.ErrInvalidCredentials
	}

	now := time.Now()
	online := true
	users[idx].LastSeen = &now
	users[idx].Online = &online

	if err := r.store.Set(usersKey, users); err != nil {
		return nil, fmt.Errorf("saving users: %w", err)
	}
	if err := r.store.Set(currentUserKey, users[idx]); err != nil {
		return nil, fmt.Errorf("saving session pointer: %w", err)
	}

	user := users[idx].Clone()
	return &user, nil
}

// Logout clears the session pointer. The user's online flag is deliberately
// left untouched (parity with the original behavior).
func (r *KVRepository) Logout(ctx context.Context) error {
	if err := r.store.Remove(currentUserKey); err != nil {
		return fmt.Errorf("clearing session pointer: %w", err)
	}
	return nil
}

func (r *KVRepository) CurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	ok, err := r.store.Get(currentUserKey, &user)
	if err != nil {
		return nil, fmt.Errorf("loading session pointer: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r *KVRepository) UpdatePresence(ctx context.Context, user *models.User, online bool) (*models.User, error) {
	now := time.Now()
	updated := user.Clone()
	updated.LastSeen = &now
	updated.Online = &online

	users, err := r.loadUsers()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == updated.ID {
			users[i] = updated
			break
		}
	}

	if err := r.store.Set(usersKey, users); err != nil {
		return nil, fmt.Errorf("saving users: %w", err)
	}
	if err := r.store.Set(currentUserKey, updated); err != nil {
		return nil, fmt.Errorf("saving session pointer: %w", err)
	}

	return &updated, nil
}
