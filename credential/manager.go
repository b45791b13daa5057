package credential

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/arloliu/mozcdata/errs"
	"github.com/arloliu/mozcdata/internal/logging"
	"github.com/arloliu/mozcdata/internal/options"
)

// DefaultPasswordBytes is the entropy of a generated session password.
const DefaultPasswordBytes = 16

// Manager serializes access to the session password kept in a Store and
// creates the password on first use. It never caches the password itself.
type Manager struct {
	mu     sync.Mutex
	store  Store
	logger *slog.Logger
	size   int
}

// ManagerOption configures a Manager.
type ManagerOption = options.Option[*Manager]

// WithLogger sets the logger for password lifecycle events.
func WithLogger(logger *slog.Logger) ManagerOption {
	return options.NoError(func(m *Manager) {
		m.logger = logging.OrDiscard(logger)
	})
}

// WithPasswordBytes sets how many random bytes a generated password encodes.
func WithPasswordBytes(n int) ManagerOption {
	return options.New(func(m *Manager) error {
		if n <= 0 {
			return fmt.Errorf("credential: password size %d must be positive", n)
		}
		m.size = n

		return nil
	})
}

// NewManager creates a Manager backed by store.
func NewManager(store Store, opts ...ManagerOption) (*Manager, error) {
	if store == nil {
		return nil, errors.New("credential: nil store")
	}

	m := &Manager{store: store, logger: logging.Discard(), size: DefaultPasswordBytes}
	if err := options.Apply(m, opts...); err != nil {
		return nil, err
	}

	return m, nil
}

// InitPassword makes sure a password exists. It does nothing when the store
// already holds one; otherwise, or when the stored password cannot be read
// back, it generates and stores a new random password.
func (m *Manager) InitPassword() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, err := m.initLocked()

	return err
}

func (m *Manager) initLocked() (string, error) {
	password, err := m.store.GetPassword()
	if err == nil && password != "" {
		return password, nil
	}
	if err != nil && !errors.Is(err, errs.ErrPasswordNotFound) {
		m.logger.Warn("stored password is unreadable, generating a new one", "error", err)
	}

	password, err = m.generate()
	if err != nil {
		return "", err
	}
	if err := m.store.SetPassword(password); err != nil {
		return "", fmt.Errorf("credential: store password: %w", err)
	}
	m.logger.Debug("session password created")

	return password, nil
}

// GetPassword returns the session password, creating it if needed.
func (m *Manager) GetPassword() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.initLocked()
}

// RemovePassword deletes the stored password.
func (m *Manager) RemovePassword() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.RemovePassword(); err != nil {
		return fmt.Errorf("credential: remove password: %w", err)
	}
	m.logger.Debug("session password removed")

	return nil
}

func (m *Manager) generate() (string, error) {
	buf := make([]byte, m.size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("credential: generate password: %w", err)
	}

	return hex.EncodeToString(buf), nil
}
