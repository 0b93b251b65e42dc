package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/vende6/ChatWithMe/internal/domain"
)

// identityKey is the fixed namespace key the serialized current user lives
// under. Its presence decides whether startup goes to the login flow or
// straight into the session.
const identityKey = "chatwithme/session/current_user"

// IdentityStore persists the authenticated identity across restarts.
type IdentityStore struct {
	db *badger.DB
}

// OpenIdentityStore opens (or creates) the badger store at dir.
func OpenIdentityStore(dir string) (*IdentityStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open identity store: %w", err)
	}
	return &IdentityStore{db: db}, nil
}

// Save writes the current user under the fixed key.
func (s *IdentityStore) Save(u domain.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("failed to serialize identity: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(identityKey), data)
	})
}

// Load returns the stored identity, if any. A missing record is not an
// error; it just means the login flow is needed.
func (s *IdentityStore) Load() (domain.User, bool, error) {
	var u domain.User
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(identityKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			if err := json.Unmarshal(v, &u); err != nil {
				return fmt.Errorf("failed to parse stored identity: %w", err)
			}
			found = true
			return nil
		})
	})
	if err != nil {
		return domain.User{}, false, err
	}
	return u, found, nil
}

// Clear removes the stored identity, forcing the login flow on next start.
func (s *IdentityStore) Clear() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(identityKey))
	})
}

func (s *IdentityStore) Close() error {
	return s.db.Close()
}
