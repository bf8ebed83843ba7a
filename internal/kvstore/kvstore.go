// Package kvstore provides the persistence medium: a small key-value
// contract over JSON-serializable values, backed by gitlab.com/elixxir/ekv.
//
// There are no transactional guarantees across keys and no locking;
// concurrent writers race and the last writer wins per key.
package kvstore

import (
	"fmt"

	"github.com/dmitrijs2005/gophchat/internal/common"
	"gitlab.com/elixxir/ekv"
)

// Store is the three-operation persistence contract every repository is
// built on.
type Store interface {
	// Get loads the value stored under key into the given pointer. The
	// boolean reports whether the key was present.
	Get(key string, into any) (bool, error)

	// Set serializes value and persists it under key. Fails with
	// common.ErrStorageFailure when the medium rejects the write.
	Set(key string, value any) error

	// Remove deletes the value stored under key.
	Remove(key string) error
}

// EkvStore implements Store on top of an ekv.KeyValue backend.
type EkvStore struct {
	kv ekv.KeyValue
}

// NewFileStore opens (or creates) a durable store rooted at dir. The
// password encrypts the backing files at rest.
func NewFileStore(dir, password string) (*EkvStore, error) {
	fs, err := ekv.NewFilestore(dir, password)
	if err != nil {
		return nil, fmt.Errorf("opening filestore: %w", err)
	}
	return &EkvStore{kv: fs}, nil
}

// NewMemStore returns a volatile in-memory store, used in tests.
func NewMemStore() *EkvStore {
	return &EkvStore{kv: ekv.MakeMemstore()}
}

func (s *EkvStore) Get(key string, into any) (bool, error) {
	if err := s.kv.GetInterface(key, into); err != nil {
		if !ekv.Exists(err) {
			return false, nil
		}
		return false, fmt.Errorf("%w: reading %q: %v", common.ErrStorageFailure, key, err)
	}
	return true, nil
}

func (s *EkvStore) Set(key string, value any) error {
	if err := s.kv.SetInterface(key, value); err != nil {
		return fmt.Errorf("%w: writing %q: %v", common.ErrStorageFailure, key, err)
	}
	return nil
}

func (s *EkvStore) Remove(key string) error {
	if err := s.kv.Delete(key); err != nil {
		if !ekv.Exists(err) {
			return nil
		}
		return fmt.Errorf("%w: removing %q: %v", common.ErrStorageFailure, key, err)
	}
	return nil
}
