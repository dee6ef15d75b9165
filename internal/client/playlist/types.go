package playlist

import (
	"encoding/json"

	"github.com/google/uuid"
)

// SongTrack is a persisted track reference inside a playlist. The ID is
// assigned locally when the track is created and is not part of the
// wire format: every decode assigns a fresh one.
type SongTrack struct {
	ID    uuid.UUID `json:"-"`
	Title string    `json:"title"`
	URL   string    `json:"url"`
}

// Playlist is a named, ordered list of song tracks. Insertion order is
// display order; duplicate titles and URLs are allowed, uniqueness
// holds on ID only. Like SongTrack, the ID is local-only and
// regenerated on every decode.
type Playlist struct {
	ID     uuid.UUID   `json:"-"`
	Name   string      `json:"name"`
	Tracks []SongTrack `json:"tracks"`
}

func (t *SongTrack) UnmarshalJSON(data []byte) error {
	type alias SongTrack
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*t = SongTrack(a)
	t.ID = uuid.New()
	return nil
}

func (p *Playlist) UnmarshalJSON(data []byte) error {
	type alias Playlist
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*p = Playlist(a)
	p.ID = uuid.New()
	if p.Tracks == nil {
		p.Tracks = []SongTrack{}
	}
	return nil
}
