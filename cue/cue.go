package cue

// BeatsPerBar is fixed: every track is treated as 4/4.
const BeatsPerBar = 4

// Type is the persistence category of a generated cue.
type Type string

const (
	TypeMemory Type = "memory"
	TypeHot    Type = "hot"
)

// Color names understood by the library writer.
type Color string

const (
	ColorOrange Color = "orange"
	ColorYellow Color = "yellow"
	ColorRed    Color = "red"
	ColorBlue   Color = "blue"
	ColorAqua   Color = "aqua"
)

// Offset is a signed distance from the drop, in bars.
type Offset int

// Slot is one fixed entry of the cue layout.
type Slot struct {
	Offset Offset `json:"offset"`
	Type   Type   `json:"type"`
	Label  string `json:"label"`
	Color  Color  `json:"color"`
}

// Point is a generated cue, positioned in seconds from track start.
// OffGrid is set when grid snapping was requested but the cue kept its
// raw time.
type Point struct {
	Offset  Offset  `json:"offset"`
	Time    float64 `json:"time"`
	Type    Type    `json:"type"`
	Label   string  `json:"label"`
	Color   Color   `json:"color"`
	OffGrid bool    `json:"off_grid,omitempty"`
}

// layout is ordered by offset. Generation walks it front to back, so the
// emitted points are always in ascending time order.
var layout = []Slot{
	{Offset: -32, Type: TypeMemory, Label: "-32 bars", Color: ColorOrange},
	{Offset: -16, Type: TypeMemory, Label: "-16 bars", Color: ColorYellow},
	{Offset: 0, Type: TypeHot, Label: "Drop", Color: ColorRed},
	{Offset: 16, Type: TypeMemory, Label: "+16 bars", Color: ColorBlue},
	{Offset: 32, Type: TypeMemory, Label: "+32 bars", Color: ColorAqua},
}

// Layout returns a copy of the cue layout table.
func Layout() []Slot {
	slots := make([]Slot, len(layout))
	copy(slots, layout)
	return slots
}

// SlotFor looks up the layout entry for an offset.
func SlotFor(offset Offset) (Slot, bool) {
	for _, slot := range layout {
		if slot.Offset == offset {
			return slot, true
		}
	}
	return Slot{}, false
}

func (s Slot) at(seconds float64) Point {
	return Point{
		Offset: s.Offset,
		Time:   seconds,
		Type:   s.Type,
		Label:  s.Label,
		Color:  s.Color,
	}
}

// IsHot reports whether the point is persisted as a hot cue.
func (p Point) IsHot() bool {
	return p.Type == TypeHot
}
