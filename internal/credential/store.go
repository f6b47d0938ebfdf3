package credential

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// APIKeyName is the fixed name the API key is stored under.
const APIKeyName = "geminiApiKey"

// Messages shown by the options surface.
const (
	SavedMessage      = "API Key saved!"
	EmptyInputMessage = "Please enter an API Key."
)

// ErrEmptyAPIKey is returned by SaveAPIKey when the input is blank.
var ErrEmptyAPIKey = errors.New(EmptyInputMessage)

// Store persists named string values.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Reader is the read half of Store.
type Reader interface {
	Get(ctx context.Context, key string) (string, bool, error)
}

// Drivers accepted by Open.
const (
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
	DriverMemory = "memory"
)

// DefaultPath returns the default store location for driver.
func DefaultPath(driver string) string {
	home, _ := os.UserHomeDir()
	dir := filepath.Join(home, ".local", "state", "wordlens")
	if driver == DriverBolt {
		return filepath.Join(dir, "credentials.bolt")
	}
	return filepath.Join(dir, "credentials.db")
}

// Open opens the store selected by driver at path. An empty path uses
// DefaultPath.
func Open(driver, path string) (Store, error) {
	if driver == "" {
		driver = DriverSQLite
	}
	if path == "" {
		path = DefaultPath(driver)
	}

	switch driver {
	case DriverSQLite:
		return OpenSQLite(path)
	case DriverBolt:
		return OpenBolt(path)
	case DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver: %s", driver)
	}
}

// SaveAPIKey trims raw and stores it under APIKeyName. Blank input returns
// ErrEmptyAPIKey without touching the store.
func SaveAPIKey(ctx context.Context, store Store, raw string) error {
	key := strings.TrimSpace(raw)
	if key == "" {
		return ErrEmptyAPIKey
	}
	if err := store.Set(ctx, APIKeyName, key); err != nil {
		return fmt.Errorf("failed to save API key: %w", err)
	}
	return nil
}

// LoadAPIKey returns the stored API key, or "" when none is set.
func LoadAPIKey(ctx context.Context, store Reader) (string, error) {
	key, ok, err := store.Get(ctx, APIKeyName)
	if err != nil {
		return "", fmt.Errorf("failed to load API key: %w", err)
	}
	if !ok {
		return "", nil
	}
	return key, nil
}

// Mask hides all but the last four characters of key.
func Mask(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

// MemoryStore keeps values in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryStore) Close() error { return nil }

// EnvStore reads a key from an environment variable first and falls back to
// the wrapped store. Writes go to the wrapped store.
type EnvStore struct {
	Store
	envVar string
}

// WithEnv overlays envVar on store for reads of APIKeyName.
func WithEnv(store Store, envVar string) *EnvStore {
	return &EnvStore{Store: store, envVar: envVar}
}

func (e *EnvStore) Get(ctx context.Context, key string) (string, bool, error) {
	if key == APIKeyName && e.envVar != "" {
		if v := os.Getenv(e.envVar); v != "" {
			return v, true, nil
		}
	}
	return e.Store.Get(ctx, key)
}
