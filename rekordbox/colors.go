package rekordbox

import "github.com/zenibako/autocue/cue"

// RGB is a rekordbox cue colour.
type RGB struct {
	R, G, B uint8
}

// Hot cue palette entries for the layout colours.
var palette = map[cue.Color]RGB{
	cue.ColorRed:    {R: 230, G: 40, B: 40},
	cue.ColorOrange: {R: 224, G: 100, B: 27},
	cue.ColorYellow: {R: 195, G: 175, B: 4},
	cue.ColorBlue:   {R: 48, G: 90, B: 255},
	cue.ColorAqua:   {R: 16, G: 177, B: 118},
}

// ColorRGB maps a layout colour onto the rekordbox palette.
func ColorRGB(c cue.Color) (RGB, bool) {
	rgb, ok := palette[c]
	return rgb, ok
}
