package credential

import (
	"fmt"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/arloliu/mozcdata/errs"
)

// PasswordFileName is the file NewPlatformStore creates in its directory.
const PasswordFileName = "password.db"

var (
	bucketPassword = []byte("password")
	keySession     = []byte("session")
)

// BoltStore keeps the password in a bbolt database file. The stored value is
// passed through the platform protector, so on Windows it is bound to the
// current user with DPAPI.
type BoltStore struct {
	db *bolt.DB
}

var _ Store = (*BoltStore)(nil)

// OpenBoltStore opens (or creates) the password database at path.
func OpenBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("credential: bbolt open: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// NewPlatformStore opens the password store of the current platform inside
// dir, typically the user profile directory.
func NewPlatformStore(dir string) (*BoltStore, error) {
	return OpenBoltStore(filepath.Join(dir, PasswordFileName))
}

// Close closes the underlying database.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *BoltStore) Path() string {
	return s.db.Path()
}

func (s *BoltStore) SetPassword(password string) error {
	sealed, err := protect([]byte(password))
	if err != nil {
		return fmt.Errorf("credential: protect: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketPassword)
		if err != nil {
			return err
		}

		return b.Put(keySession, sealed)
	})
}

func (s *BoltStore) GetPassword() (string, error) {
	var sealed []byte

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPassword)
		if b == nil {
			return nil
		}
		// bbolt slices are only valid within the transaction
		if v := b.Get(keySession); v != nil {
			sealed = append([]byte{}, v...)
		}

		return nil
	})
	if err != nil {
		return "", err
	}
	if sealed == nil {
		return "", errs.ErrPasswordNotFound
	}

	plain, err := unprotect(sealed)
	if err != nil {
		return "", fmt.Errorf("credential: unprotect: %w", err)
	}

	return string(plain), nil
}

func (s *BoltStore) RemovePassword() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPassword)
		if b == nil {
			return nil
		}

		return b.Delete(keySession)
	})
}
