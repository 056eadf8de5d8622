package eventbus

import (
	"encoding/json"
	"fmt"

	"github.com/mazadksa/mazad/pkg/domain/common"
	"github.com/mazadksa/mazad/pkg/domain/events"
)

// envelope wraps an event for transport so consumers can pick the
// concrete type before decoding the payload.
type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// decodeEnvelope reconstructs the concrete event from an envelope.
// Events are returned by value so handlers see the same types the
// in-process bus delivers.
func decodeEnvelope(env envelope) (common.Event, error) {
	switch env.Type {
	case events.EventTypeBidPlaced:
		var e events.BidPlaced
		if err := json.Unmarshal(env.Payload, &e); err != nil {
			return nil, err
		}
		return e, nil
	case events.EventTypeAuctionEnded:
		var e events.AuctionEnded
		if err := json.Unmarshal(env.Payload, &e); err != nil {
			return nil, err
		}
		return e, nil
	case events.EventTypeUserRegistered:
		var e events.UserRegistered
		if err := json.Unmarshal(env.Payload, &e); err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, fmt.Errorf("unknown event type: %s", env.Type)
	}
}
