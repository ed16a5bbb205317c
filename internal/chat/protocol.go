package chat

import (
	"encoding/json"
	"fmt"
	"time"
)

// Everyone is the target name that addresses the whole room.
const Everyone = "Global Chat"

// Event names carried in the envelope of every frame.
const (
	EventAnnounceConnection = "announce-connection"
	EventJoin               = "join"
	EventRosterUpdate       = "roster-update"
	EventChat               = "chat"
	EventJoinRejected       = "join-rejected"
)

// Envelope is the JSON frame exchanged over the wire in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// AnnounceConnection tells the room that a new connection has opened.
type AnnounceConnection struct {
	ConnectionID  ConnID `json:"connectionId"`
	SuggestedName string `json:"suggestedName,omitempty"`
}

// JoinRequest is the client half of the join handshake.
type JoinRequest struct {
	Name         string `json:"name"`
	ConnectionID ConnID `json:"connectionId"`
}

// RosterUpdate carries the current roster snapshot.
type RosterUpdate struct {
	Names []string `json:"names"`
}

// JoinRejected is only sent when rejection notices are enabled.
type JoinRejected struct {
	Name   string       `json:"name"`
	Reason RejectReason `json:"reason"`
}

// ChatMessage is the routed chat payload. It is never stored.
type ChatMessage struct {
	TargetName string    `json:"targetName"`
	SenderName string    `json:"senderName"`
	Body       string    `json:"body"`
	Timestamp  time.Time `json:"timestamp"`
}

// Broadcast reports whether the message addresses the whole room.
func (m ChatMessage) Broadcast() bool {
	return m.TargetName == Everyone
}

// Encode wraps data into an envelope and marshals it.
func Encode(event string, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", event, err)
	}
	return json.Marshal(Envelope{Event: event, Data: raw})
}

// Decode parses one inbound frame into its envelope.
func Decode(frame []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if env.Event == "" {
		return Envelope{}, fmt.Errorf("%w: missing event name", ErrMalformedPayload)
	}
	return env, nil
}

func decodePayload(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return fmt.Errorf("%w: empty data", ErrMalformedPayload)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return nil
}
