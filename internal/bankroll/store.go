// Package bankroll keeps a player's bankroll between sessions and tops it up
// when the player can no longer cover a bet.
package bankroll

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/fileutil"
)

// ErrCorruptRecord is returned when a saved record cannot be used
var ErrCorruptRecord = errors.New("corrupt bankroll record")

// Record is what gets persisted between sessions
type Record struct {
	Bankroll  int       `json:"bankroll"`
	LastBet   int       `json:"lastBet"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DefaultRecord is the record of a player who has never played
func DefaultRecord() Record {
	return Record{
		Bankroll: blackjack.DefaultInitialBankroll,
		LastBet:  blackjack.DefaultBaseBet,
	}
}

// Store loads and saves a Record
type Store interface {
	Load() (Record, error)
	Save(Record) error
}

// FileStore keeps the record in a JSON file
type FileStore struct {
	path  string
	clock quartz.Clock
	mu    sync.Mutex
}

// FileStoreOption configures a FileStore
type FileStoreOption func(*FileStore)

// WithStoreClock sets the clock used to stamp saved records
func WithStoreClock(clock quartz.Clock) FileStoreOption {
	return func(s *FileStore) {
		s.clock = clock
	}
}

// NewFileStore creates a store backed by path
func NewFileStore(path string, opts ...FileStoreOption) *FileStore {
	s := &FileStore{path: path, clock: quartz.NewReal()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultPath returns the bankroll file under the user's config directory
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "blackjack", "bankroll.json"), nil
}

// Path returns the file backing the store
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the record. A missing file yields DefaultRecord.
func (s *FileStore) Load() (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rec Record
	found, err := fileutil.ReadJSON(s.path, &rec)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	if !found {
		return DefaultRecord(), nil
	}

	if rec.Bankroll < 0 {
		return Record{}, fmt.Errorf("%w: negative bankroll %d", ErrCorruptRecord, rec.Bankroll)
	}
	if rec.LastBet <= 0 {
		rec.LastBet = blackjack.DefaultBaseBet
	}
	return rec, nil
}

// Save writes rec, stamping UpdatedAt
func (s *FileStore) Save(rec Record) error {
	if rec.Bankroll < 0 {
		return fmt.Errorf("refusing to save negative bankroll %d", rec.Bankroll)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec.UpdatedAt = s.clock.Now().UTC()
	return fileutil.WriteJSONAtomic(s.path, rec, 0o600)
}

// MemoryStore keeps the record in memory. It is used when persistence is
// turned off.
type MemoryStore struct {
	mu  sync.Mutex
	rec *Record
}

// Load returns the last saved record or DefaultRecord
func (m *MemoryStore) Load() (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rec == nil {
		return DefaultRecord(), nil
	}
	return *m.rec, nil
}

// Save keeps rec
func (m *MemoryStore) Save(rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec = &rec
	return nil
}
