// Package notify publishes batch progress over OSC so lighting desks,
// show control or a second screen can follow along.
package notify

import (
	"github.com/charmbracelet/log"
	"github.com/hypebeast/go-osc/osc"

	"github.com/zenibako/autocue/export"
	"github.com/zenibako/autocue/messages"
	"github.com/zenibako/autocue/session"
)

// Notifier follows a session and hears about the final export.
type Notifier interface {
	session.Observer
	SessionStarted(id string, total int)
	ExportDone(report export.Report, artifact string)
}

// Nop discards every notification.
type Nop struct{}

func (Nop) SessionStarted(string, int) {}
func (Nop) TrackDecided(session.Track, session.Outcome, int, int) {}
func (Nop) SessionEnded(session.Snapshot) {}
func (Nop) ExportDone(export.Report, string) {}

type sender interface {
	Send(packet osc.Packet) error
}

// OSCNotifier sends one fire-and-forget OSC message per event. Send
// failures are logged and never interrupt the session.
type OSCNotifier struct {
	client  sender
	builder *messages.OSCAddressBuilder
}

// NewOSCNotifier targets an OSC receiver at host:port.
func NewOSCNotifier(host string, port int) *OSCNotifier {
	return newOSCNotifier(osc.NewClient(host, port))
}

func newOSCNotifier(client sender) *OSCNotifier {
	return &OSCNotifier{
		client:  client,
		builder: messages.NewOSCAddressBuilder(""),
	}
}

// SessionStarted binds the notifier to a session ID; it must be called
// before the other events.
func (n *OSCNotifier) SessionStarted(id string, total int) {
	n.builder = messages.NewOSCAddressBuilder(id)
	n.send(n.builder.BuildAddress(messages.MsgSessionStart, nil), int32(total))
}

// TrackDecided implements session.Observer.
func (n *OSCNotifier) TrackDecided(track session.Track, outcome session.Outcome, index, total int) {
	switch outcome.State {
	case session.Marked:
		n.send(n.builder.BuildTrackAddress(messages.MsgTrackMarked, track.ID),
			track.DisplayName(), float32(outcome.Drop), int32(index+1), int32(total))
	case session.Skipped:
		n.send(n.builder.BuildTrackAddress(messages.MsgTrackSkipped, track.ID),
			track.DisplayName(), int32(index+1), int32(total))
	}
}

// SessionEnded implements session.Observer.
func (n *OSCNotifier) SessionEnded(snap session.Snapshot) {
	msgType := messages.MsgSessionComplete
	if !snap.Complete {
		msgType = messages.MsgSessionQuit
	}
	n.send(n.builder.BuildAddress(msgType, nil), int32(snap.Marked()), int32(len(snap.Tracks)))
}

// ExportDone reports the artifact path and the summary counts.
func (n *OSCNotifier) ExportDone(report export.Report, artifact string) {
	s := report.Summary()
	n.send(n.builder.BuildAddress(messages.MsgExportDone, nil),
		artifact, int32(s.Exported), int32(s.Invalidated), int32(s.Skipped), int32(s.Cues))
}

func (n *OSCNotifier) send(address string, args ...any) {
	msg := osc.NewMessage(address)
	for _, arg := range args {
		msg.Append(arg)
	}
	log.Debugf("Sending OSC notification: %s %v", address, args)
	if err := n.client.Send(msg); err != nil {
		log.Warn("OSC notification failed", "address", address, "error", err)
	}
}
