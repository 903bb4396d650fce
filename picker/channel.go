package picker

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/zenibako/autocue/session"
)

// PickRequest is handed to the sender for every track.
type PickRequest struct {
	RequestID string          `json:"request_id"`
	Request   session.Request `json:"request"`
}

// PickResponse answers a PickRequest with the same RequestID.
type PickResponse struct {
	RequestID string           `json:"request_id"`
	Decision  session.Decision `json:"decision"`
}

// ChannelPicker forwards each request to an external front end and waits
// for the matching response via Submit. Late responses to requests that
// were abandoned by a cancelled Pick are discarded. Pick must not be
// called concurrently.
type ChannelPicker struct {
	responses chan PickResponse
	send      func(PickRequest) error
	seq       int
	abandoned map[string]bool
}

// NewChannelPicker returns a picker that calls send for every track.
func NewChannelPicker(send func(PickRequest) error) *ChannelPicker {
	return &ChannelPicker{
		responses: make(chan PickResponse, 1),
		send:      send,
		abandoned: make(map[string]bool),
	}
}

// Pick implements session.Picker.
func (p *ChannelPicker) Pick(ctx context.Context, req session.Request) (session.Decision, error) {
	p.seq++
	requestID := fmt.Sprintf("pick-%d-%d-%s", p.seq, req.Index, req.Track.ID)

	if err := p.send(PickRequest{RequestID: requestID, Request: req}); err != nil {
		return session.Decision{}, fmt.Errorf("failed to send pick request: %w", err)
	}

	for {
		select {
		case resp := <-p.responses:
			if resp.RequestID == requestID {
				return resp.Decision, nil
			}
			if p.abandoned[resp.RequestID] {
				delete(p.abandoned, resp.RequestID)
				log.Debug("Discarding late pick response", "requestID", resp.RequestID)
				continue
			}
			return session.Decision{}, fmt.Errorf("request ID mismatch: expected %s, got %s", requestID, resp.RequestID)
		case <-ctx.Done():
			p.abandoned[requestID] = true
			return session.Decision{}, ctx.Err()
		}
	}
}

// Submit delivers a response. It blocks until the picker has room for it
// or ctx is done.
func (p *ChannelPicker) Submit(ctx context.Context, resp PickResponse) error {
	select {
	case p.responses <- resp:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
