package messages

import (
	"fmt"
	"strings"
)

// OSC message types and address patterns published while a batch runs.

// Message types
type MessageType string

const (
	// Session messages
	MsgSessionStart    MessageType = "session_start"
	MsgSessionComplete MessageType = "session_complete"
	MsgSessionQuit     MessageType = "session_quit"

	// Track messages
	MsgTrackMarked  MessageType = "track_marked"
	MsgTrackSkipped MessageType = "track_skipped"

	// Export messages
	MsgExportDone MessageType = "export_done"
)

// Root is the namespace every address lives under.
const Root = "/autocue"

// OSC Address patterns
const (
	// Session level
	AddrSessionStart    = Root + "/session/{session_id}/start"
	AddrSessionComplete = Root + "/session/{session_id}/complete"
	AddrSessionQuit     = Root + "/session/{session_id}/quit"

	// Track level
	AddrTrackMarked  = Root + "/session/{session_id}/track/{track_id}/marked"
	AddrTrackSkipped = Root + "/session/{session_id}/track/{track_id}/skipped"

	// Export level
	AddrExportDone = Root + "/session/{session_id}/export"
)

var addresses = map[MessageType]string{
	MsgSessionStart:    AddrSessionStart,
	MsgSessionComplete: AddrSessionComplete,
	MsgSessionQuit:     AddrSessionQuit,
	MsgTrackMarked:     AddrTrackMarked,
	MsgTrackSkipped:    AddrTrackSkipped,
	MsgExportDone:      AddrExportDone,
}

// OSCAddressBuilder fills address patterns for one session.
type OSCAddressBuilder struct {
	sessionID string
}

// NewOSCAddressBuilder creates a new address builder
func NewOSCAddressBuilder(sessionID string) *OSCAddressBuilder {
	return &OSCAddressBuilder{
		sessionID: sessionID,
	}
}

// BuildAddress builds an OSC address from a message type and parameters.
// Unknown message types give "".
func (b *OSCAddressBuilder) BuildAddress(msgType MessageType, params map[string]string) string {
	address, ok := addresses[msgType]
	if !ok {
		return ""
	}

	if b.sessionID != "" {
		address = strings.ReplaceAll(address, "{session_id}", b.sessionID)
	}

	for key, value := range params {
		placeholder := fmt.Sprintf("{%s}", key)
		address = strings.ReplaceAll(address, placeholder, escape(value))
	}

	return address
}

// BuildTrackAddress is BuildAddress for the per-track messages.
func (b *OSCAddressBuilder) BuildTrackAddress(msgType MessageType, trackID string) string {
	return b.BuildAddress(msgType, map[string]string{"track_id": trackID})
}

// SessionPrefix returns the address prefix shared by a session's messages.
func (b *OSCAddressBuilder) SessionPrefix() string {
	if b.sessionID == "" {
		return ""
	}
	return fmt.Sprintf("%s/session/%s", Root, b.sessionID)
}

// escape keeps a value inside one address segment. OSC pattern characters
// would otherwise be read as wildcards by receivers.
func escape(value string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', ' ', '#', '*', ',', '?', '[', ']', '{', '}':
			return '_'
		}
		return r
	}, value)
}
