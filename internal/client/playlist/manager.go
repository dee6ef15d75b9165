package playlist

import (
	"errors"

	"github.com/google/uuid"
)

// ErrOutOfRange reports a playlist index that does not name a current
// playlist. Correctly-bounded UI input never produces it.
var ErrOutOfRange = errors.New("playlist index out of range")

// Manager owns the in-memory playlist aggregate and persists it
// through the Store after every mutation. All calls come from the
// single foreground actor, so the Manager itself is not locked.
type Manager struct {
	playlists []Playlist
	store     *Store
}

// NewManager loads the persisted aggregate and wraps it in a Manager.
func NewManager(store *Store) *Manager {
	return &Manager{playlists: store.Load(), store: store}
}

// Playlists returns the current aggregate in display order.
func (m *Manager) Playlists() []Playlist {
	return m.playlists
}

// CreatePlaylist appends a new empty playlist with the given name and
// persists. An empty name is a silent no-op.
func (m *Manager) CreatePlaylist(name string) {
	if name == "" {
		return
	}
	m.playlists = append(m.playlists, Playlist{
		ID:     uuid.New(),
		Name:   name,
		Tracks: []SongTrack{},
	})
	m.store.Save(m.playlists)
}

// DeletePlaylist removes the playlist at index and persists.
func (m *Manager) DeletePlaylist(index int) error {
	if index < 0 || index >= len(m.playlists) {
		return ErrOutOfRange
	}
	m.playlists = append(m.playlists[:index], m.playlists[index+1:]...)
	m.store.Save(m.playlists)
	return nil
}

// AddTrack appends a track with a fresh identifier to the playlist at
// index and persists. Repeated adds of the same title/URL are allowed
// and produce independent entries.
func (m *Manager) AddTrack(index int, title, url string) error {
	if index < 0 || index >= len(m.playlists) {
		return ErrOutOfRange
	}
	m.playlists[index].Tracks = append(m.playlists[index].Tracks, SongTrack{
		ID:    uuid.New(),
		Title: title,
		URL:   url,
	})
	m.store.Save(m.playlists)
	return nil
}

// RemoveTrack removes the first track whose identifier equals trackID
// from the playlist at index. Matching is on identifier only; titles
// may repeat. A missing identifier is not an error: the aggregate is
// re-persisted unchanged.
func (m *Manager) RemoveTrack(index int, trackID uuid.UUID) error {
	if index < 0 || index >= len(m.playlists) {
		return ErrOutOfRange
	}
	tracks := m.playlists[index].Tracks
	for i, t := range tracks {
		if t.ID == trackID {
			m.playlists[index].Tracks = append(tracks[:i], tracks[i+1:]...)
			break
		}
	}
	m.store.Save(m.playlists)
	return nil
}
