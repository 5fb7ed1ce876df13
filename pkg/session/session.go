// Package session holds the signed-in user, the bearer token and the last
// known location for a front end. State is created explicitly and passed to
// whatever needs it.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"health-management/pkg/client"
)

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// Snapshot is the persisted form of State.
type Snapshot struct {
	User     *User            `json:"user,omitempty"`
	Token    string           `json:"token,omitempty"`
	Location *client.Location `json:"location,omitempty"`
}

type Store interface {
	Load() (Snapshot, error)
	Save(Snapshot) error
}

// FileStore keeps the snapshot as a JSON file.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load returns an empty snapshot when the file does not exist yet.
func (s *FileStore) Load() (Snapshot, error) {
	var snap Snapshot
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return snap, nil
	}
	if err != nil {
		return snap, fmt.Errorf("failed to read session file: %w", err)
	}
	if len(data) == 0 {
		return snap, nil
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode session file: %w", err)
	}
	return snap, nil
}

func (s *FileStore) Save(snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return os.Rename(tmp, s.Path)
}

type State struct {
	store Store

	mu       sync.RWMutex
	user     *User
	token    string
	location *client.Location
}

func NewState(store Store) *State {
	return &State{store: store}
}

// Load hydrates the state from the store, replacing whatever it held.
func (s *State) Load() error {
	snap, err := s.store.Load()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = snap.User
	s.token = snap.Token
	s.location = snap.Location
	return nil
}

func (s *State) SignIn(user User, token string) error {
	if user.ID == "" {
		return errors.New("user id is required")
	}

	s.mu.Lock()
	s.user = &user
	s.token = token
	snap := s.snapshotLocked()
	s.mu.Unlock()

	return s.store.Save(snap)
}

func (s *State) SetLocation(loc client.Location) error {
	s.mu.Lock()
	s.location = &loc
	snap := s.snapshotLocked()
	s.mu.Unlock()

	return s.store.Save(snap)
}

// Logout clears the user, token and location and persists the empty state.
func (s *State) Logout() error {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.location = nil
	snap := s.snapshotLocked()
	s.mu.Unlock()

	return s.store.Save(snap)
}

func (s *State) User() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

// Token is usable as a client.WithTokenSource function.
func (s *State) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *State) Location() (client.Location, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.location == nil {
		return client.Location{}, false
	}
	return *s.location, true
}

func (s *State) snapshotLocked() Snapshot {
	snap := Snapshot{Token: s.token}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	if s.location != nil {
		l := *s.location
		snap.Location = &l
	}
	return snap
}
