// Package playlist holds the locally persisted playlist aggregate and
// the operations that mutate it.
package playlist

import (
	"encoding/json"
	"os"
	"sync"

	"go.uber.org/zap"
)

const storageFile = "playlists.json"

// Store persists the full playlist aggregate as one JSON blob. Every
// save overwrites the whole file; there is no incremental write.
type Store struct {
	mu  sync.Mutex
	log *zap.Logger
}

// NewStore returns a Store logging through the given zap logger.
func NewStore(log *zap.Logger) *Store {
	return &Store{log: log}
}

// Load reads the persisted aggregate. A missing or malformed file
// yields an empty slice, never an error: the caller always gets a
// usable aggregate. Identifiers are regenerated during decode, so a
// loaded playlist's ID is not the ID it had before the last save.
func (s *Store) Load() []Playlist {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(storageFile)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("failed to open playlist storage", zap.Error(err))
		}
		return []Playlist{}
	}
	defer f.Close()

	var playlists []Playlist
	if err := json.NewDecoder(f).Decode(&playlists); err != nil {
		s.log.Warn("failed to decode playlist storage", zap.Error(err))
		return []Playlist{}
	}
	if playlists == nil {
		playlists = []Playlist{}
	}
	return playlists
}

// Save serializes the full aggregate over the stored blob. Failures
// are logged and swallowed: the local store degrades silently rather
// than interrupting the user.
func (s *Store) Save(playlists []Playlist) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Create(storageFile)
	if err != nil {
		s.log.Error("failed to create playlist storage", zap.Error(err))
		return
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(playlists); err != nil {
		s.log.Error("failed to encode playlists", zap.Error(err))
	}
}
