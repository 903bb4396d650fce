package rekordbox

import "encoding/xml"

// Document mirrors a rekordbox XML export. Attributes and elements the tool
// does not interpret are kept in Attrs/Extra so they survive a round trip.
type Document struct {
	XMLName    xml.Name     `xml:"DJ_PLAYLISTS"`
	Version    string       `xml:"Version,attr,omitempty"`
	Attrs      []xml.Attr   `xml:",any,attr"`
	Product    *RawElement  `xml:"PRODUCT"`
	Collection Collection   `xml:"COLLECTION"`
	Playlists  Playlists    `xml:"PLAYLISTS"`
	Extra      []RawElement `xml:",any"`
}

// RawElement carries an element verbatim.
type RawElement struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Inner   []byte     `xml:",innerxml"`
}

// Collection holds every track in the library.
type Collection struct {
	Entries string     `xml:"Entries,attr,omitempty"`
	Attrs   []xml.Attr `xml:",any,attr"`
	Tracks  []Track    `xml:"TRACK"`
}

// Track is a COLLECTION/TRACK element. Numeric attributes are kept as the
// original strings so untouched tracks serialize byte-for-byte.
type Track struct {
	TrackID    string         `xml:"TrackID,attr"`
	Name       string         `xml:"Name,attr,omitempty"`
	Artist     string         `xml:"Artist,attr,omitempty"`
	AverageBpm string         `xml:"AverageBpm,attr,omitempty"`
	TotalTime  string         `xml:"TotalTime,attr,omitempty"`
	Tonality   string         `xml:"Tonality,attr,omitempty"`
	Location   string         `xml:"Location,attr,omitempty"`
	Attrs      []xml.Attr     `xml:",any,attr"`
	Tempos     []Tempo        `xml:"TEMPO"`
	Marks      []PositionMark `xml:"POSITION_MARK"`
	Extra      []RawElement   `xml:",any"`
}

// Tempo is one beat-grid anchor.
type Tempo struct {
	Inizio  string     `xml:"Inizio,attr"`
	Bpm     string     `xml:"Bpm,attr"`
	Metro   string     `xml:"Metro,attr,omitempty"`
	Battito string     `xml:"Battito,attr,omitempty"`
	Attrs   []xml.Attr `xml:",any,attr"`
}

// PositionMark is a cue or loop. Num -1 is a memory cue, 0-7 a hot cue slot.
type PositionMark struct {
	Name  string     `xml:"Name,attr"`
	Type  string     `xml:"Type,attr"`
	Start string     `xml:"Start,attr"`
	End   string     `xml:"End,attr,omitempty"`
	Num   string     `xml:"Num,attr"`
	Red   string     `xml:"Red,attr,omitempty"`
	Green string     `xml:"Green,attr,omitempty"`
	Blue  string     `xml:"Blue,attr,omitempty"`
	Attrs []xml.Attr `xml:",any,attr"`
}

// Mark types.
const (
	MarkTypeCue  = "0"
	MarkTypeFade = "1"
	MarkTypeLoad = "3"
	MarkTypeLoop = "4"
)

// Node types in the PLAYLISTS tree.
const (
	NodeTypeFolder   = "0"
	NodeTypePlaylist = "1"
)

// Playlist entry key types.
const (
	KeyTypeTrackID  = "0"
	KeyTypeLocation = "1"
)

// Playlists is the PLAYLISTS tree.
type Playlists struct {
	Attrs []xml.Attr `xml:",any,attr"`
	Nodes []Node     `xml:"NODE"`
}

// Node is a folder or playlist.
type Node struct {
	Type    string          `xml:"Type,attr"`
	Name    string          `xml:"Name,attr"`
	Count   string          `xml:"Count,attr,omitempty"`
	KeyType string          `xml:"KeyType,attr,omitempty"`
	Entries string          `xml:"Entries,attr,omitempty"`
	Attrs   []xml.Attr      `xml:",any,attr"`
	Nodes   []Node          `xml:"NODE"`
	Tracks  []PlaylistEntry `xml:"TRACK"`
}

// PlaylistEntry references a collection track by TrackID or Location.
type PlaylistEntry struct {
	Key   string     `xml:"Key,attr"`
	Attrs []xml.Attr `xml:",any,attr"`
}
