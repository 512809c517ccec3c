package server

import (
	"errors"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"maskeraser"
)

// ErrNotFound is returned for unknown or evicted session ids.
var ErrNotFound = errors.New("image session not found")

// Session is one uploaded image and its transient editing state. Nothing is
// persisted; sessions live in memory until evicted or the process exits.
type Session struct {
	mu sync.Mutex

	ID     string
	Source []byte
	MIME   string
	Width  int
	Height int

	selection *maskeraser.Selection
	maskPNG   []byte
}

// SetSelection replaces the committed selection wholesale.
func (s *Session) SetSelection(sel *maskeraser.Selection, maskPNG []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = sel
	s.maskPNG = maskPNG
}

// ClearSelection drops the committed selection and its mask.
func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = nil
	s.maskPNG = nil
}

// Selection returns the committed selection and its PNG encoding, both nil
// when no selection is active.
func (s *Session) Selection() (*maskeraser.Selection, []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection, s.maskPNG
}

// Store is a bounded in-memory session store. Least recently used sessions
// are evicted first once the bound is reached.
type Store struct {
	cache *lru.Cache[string, *Session]
}

// NewStore creates a store bounded to max sessions.
func NewStore(max int) (*Store, error) {
	cache, err := lru.New[string, *Session](max)
	if err != nil {
		return nil, err
	}
	return &Store{cache: cache}, nil
}

// Put registers a session under its id.
func (st *Store) Put(s *Session) {
	st.cache.Add(s.ID, s)
}

// Get looks a session up, marking it recently used.
func (st *Store) Get(id string) (*Session, error) {
	s, ok := st.cache.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Len reports the number of live sessions.
func (st *Store) Len() int { return st.cache.Len() }
