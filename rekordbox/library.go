package rekordbox

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

var (
	ErrTrackNotFound    = errors.New("track not found")
	ErrPlaylistNotFound = errors.New("playlist not found")
)

// Library is a loaded rekordbox XML document with lookup indexes.
type Library struct {
	path       string
	doc        *Document
	byID       map[string]int
	byLocation map[string]int
}

// Playlist is a flattened playlist node. Path joins parent folder names
// with "/".
type Playlist struct {
	Name     string
	Path     string
	TrackIDs []string
}

// Load reads and parses a rekordbox XML export.
func Load(path string) (*Library, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rekordbox xml: %w", err)
	}
	defer f.Close()

	lib, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	lib.path = path

	log.Info("Loaded rekordbox library", "path", path, "tracks", len(lib.doc.Collection.Tracks), "playlists", len(lib.Playlists()))
	return lib, nil
}

// Parse decodes a rekordbox XML document from r.
func Parse(r io.Reader) (*Library, error) {
	var doc Document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode rekordbox xml: %w", err)
	}

	lib := &Library{
		doc:        &doc,
		byID:       make(map[string]int, len(doc.Collection.Tracks)),
		byLocation: make(map[string]int, len(doc.Collection.Tracks)),
	}
	for i, track := range doc.Collection.Tracks {
		if track.TrackID == "" {
			continue
		}
		if _, dup := lib.byID[track.TrackID]; dup {
			log.Warn("Duplicate TrackID in collection", "trackID", track.TrackID)
			continue
		}
		lib.byID[track.TrackID] = i
		if track.Location != "" {
			lib.byLocation[track.Location] = i
		}
	}
	return lib, nil
}

// Path is the file the library was loaded from; empty for Parse.
func (l *Library) Path() string {
	return l.path
}

// Document exposes the underlying document.
func (l *Library) Document() *Document {
	return l.doc
}

// Tracks returns the number of tracks in the collection.
func (l *Library) Tracks() int {
	return len(l.doc.Collection.Tracks)
}

// Track looks up a collection track by TrackID. The returned pointer
// aliases the document.
func (l *Library) Track(id string) (*Track, bool) {
	i, ok := l.byID[id]
	if !ok {
		return nil, false
	}
	return &l.doc.Collection.Tracks[i], true
}

// Playlists lists every playlist node, depth first, skipping folders.
func (l *Library) Playlists() []Playlist {
	var out []Playlist
	for _, node := range l.doc.Playlists.Nodes {
		out = l.collectPlaylists(node, nil, out)
	}
	return out
}

func (l *Library) collectPlaylists(node Node, parents []string, out []Playlist) []Playlist {
	if node.Type == NodeTypePlaylist {
		if node.Name == "" {
			return out
		}
		out = append(out, Playlist{
			Name:     node.Name,
			Path:     strings.Join(append(append([]string{}, parents...), node.Name), "/"),
			TrackIDs: l.resolveEntries(node),
		})
		return out
	}

	// The ROOT folder is implicit and left out of paths.
	next := parents
	if !(len(parents) == 0 && strings.EqualFold(node.Name, "ROOT")) {
		next = append(append([]string{}, parents...), node.Name)
	}
	for _, child := range node.Nodes {
		out = l.collectPlaylists(child, next, out)
	}
	return out
}

func (l *Library) resolveEntries(node Node) []string {
	ids := make([]string, 0, len(node.Tracks))
	for _, entry := range node.Tracks {
		if entry.Key == "" {
			continue
		}
		if node.KeyType == KeyTypeLocation {
			i, ok := l.byLocation[entry.Key]
			if !ok {
				log.Warn("Playlist entry location not in collection", "playlist", node.Name, "location", entry.Key)
				continue
			}
			ids = append(ids, l.doc.Collection.Tracks[i].TrackID)
			continue
		}
		ids = append(ids, entry.Key)
	}
	return ids
}

// Playlist finds a playlist by folder path ("Sets/Friday") or, failing
// that, by bare name. The first match in document order wins.
func (l *Library) Playlist(name string) (Playlist, error) {
	playlists := l.Playlists()
	for _, p := range playlists {
		if p.Path == name {
			return p, nil
		}
	}
	for _, p := range playlists {
		if p.Name == name {
			return p, nil
		}
	}
	return Playlist{}, fmt.Errorf("%w: %q", ErrPlaylistNotFound, name)
}

// PlaylistTracks returns the collection tracks of a playlist in playlist
// order. Entries missing from the collection are logged and dropped.
func (l *Library) PlaylistTracks(name string) ([]*Track, error) {
	playlist, err := l.Playlist(name)
	if err != nil {
		return nil, err
	}

	tracks := make([]*Track, 0, len(playlist.TrackIDs))
	for _, id := range playlist.TrackIDs {
		track, ok := l.Track(id)
		if !ok {
			log.Warn("Playlist references unknown track", "playlist", playlist.Path, "trackID", id)
			continue
		}
		tracks = append(tracks, track)
	}
	return tracks, nil
}
