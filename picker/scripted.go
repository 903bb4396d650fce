package picker

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"

	"github.com/zenibako/autocue/session"
)

// ScriptedPicker answers from a fixed table of drops, for unattended runs.
// Tracks it has no entry for get Fallback (skip when unset).
type ScriptedPicker struct {
	Drops    map[string]float64
	Skip     map[string]bool
	Fallback session.Action
}

// Pick implements session.Picker.
func (p *ScriptedPicker) Pick(ctx context.Context, req session.Request) (session.Decision, error) {
	if err := ctx.Err(); err != nil {
		return session.Decision{}, err
	}

	id := req.Track.ID
	if p.Skip[id] {
		return session.Decision{Action: session.ActionSkip}, nil
	}
	if drop, ok := p.Drops[id]; ok {
		return session.Decision{Action: session.ActionMark, Drop: drop}, nil
	}

	fallback := p.Fallback
	if fallback == "" {
		fallback = session.ActionSkip
	}
	log.Debug("No scripted drop for track", "trackID", id, "action", fallback)
	return session.Decision{Action: fallback}, nil
}

type dropsFile struct {
	Drops map[string]any `toml:"drops"`
	Skip  []string       `toml:"skip"`
}

// LoadDropsFile reads a TOML drops file:
//
//	skip = ["12"]
//
//	[drops]
//	"10" = "1:23.5"
//	"11" = 96.0
//
// Keys are TrackIDs; values are seconds or any ParseDropTime form.
func LoadDropsFile(path string) (*ScriptedPicker, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read drops file: %w", err)
	}

	var file dropsFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse drops file %s: %w", path, err)
	}

	p := &ScriptedPicker{
		Drops: make(map[string]float64, len(file.Drops)),
		Skip:  make(map[string]bool, len(file.Skip)),
	}
	for _, id := range file.Skip {
		p.Skip[id] = true
	}

	ids := make([]string, 0, len(file.Drops))
	for id := range file.Drops {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		drop, err := dropValue(file.Drops[id])
		if err != nil {
			return nil, fmt.Errorf("drops file %s: track %s: %w", path, id, err)
		}
		if p.Skip[id] {
			return nil, fmt.Errorf("drops file %s: track %s is both dropped and skipped", path, id)
		}
		p.Drops[id] = drop
	}

	log.Info("Loaded drops file", "path", path, "drops", len(p.Drops), "skips", len(p.Skip))
	return p, nil
}

func dropValue(v any) (float64, error) {
	switch value := v.(type) {
	case float64:
		if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
			return 0, fmt.Errorf("%w: %v", ErrInvalidTime, value)
		}
		return value, nil
	case int64:
		if value < 0 {
			return 0, fmt.Errorf("%w: %d", ErrInvalidTime, value)
		}
		return float64(value), nil
	case string:
		return ParseDropTime(value)
	default:
		return 0, fmt.Errorf("%w: unsupported value %v", ErrInvalidTime, v)
	}
}
