// Package notify publishes room activity notices to NATS so that external
// consumers (audit, dashboards) can follow the room without touching it.
package notify

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/Tyrowin/chatroom/internal/chat"
)

// Publisher is the part of *nats.Conn the observer needs.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Notice is the JSON body of every published message.
type Notice struct {
	Kind         string    `json:"kind"`
	ConnectionID string    `json:"connectionId"`
	Name         string    `json:"name,omitempty"`
	Reason       string    `json:"reason,omitempty"`
	SenderName   string    `json:"senderName,omitempty"`
	TargetName   string    `json:"targetName,omitempty"`
	Recipients   int       `json:"recipients,omitempty"`
	At           time.Time `json:"at"`
}

// NATSObserver implements chat.Observer by publishing one notice per room
// event on "<prefix>.<kind>". Message bodies are never published.
type NATSObserver struct {
	pub    Publisher
	prefix string
	log    *zap.Logger
	now    func() time.Time
}

// NewNATSObserver returns an observer publishing through pub.
func NewNATSObserver(pub Publisher, prefix string, log *zap.Logger) *NATSObserver {
	if prefix == "" {
		prefix = "chatroom"
	}
	return &NATSObserver{pub: pub, prefix: prefix, log: log.Named("notify"), now: time.Now}
}

// Connect dials url and returns the connection for use as a Publisher.
func Connect(url, name string, log *zap.Logger) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(500*time.Millisecond),
		nats.Timeout(3*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn("nats disconnected", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("nats reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
	)
}

func (o *NATSObserver) Connected(id chat.ConnID) {
	o.publish(Notice{Kind: "connected", ConnectionID: string(id)})
}

func (o *NATSObserver) Disconnected(id chat.ConnID, name string) {
	o.publish(Notice{Kind: "disconnected", ConnectionID: string(id), Name: name})
}

func (o *NATSObserver) Bound(id chat.ConnID, name string) {
	o.publish(Notice{Kind: "bound", ConnectionID: string(id), Name: name})
}

func (o *NATSObserver) Unbound(id chat.ConnID, name string) {
	o.publish(Notice{Kind: "unbound", ConnectionID: string(id), Name: name})
}

func (o *NATSObserver) JoinRejected(id chat.ConnID, name string, reason chat.RejectReason) {
	o.publish(Notice{Kind: "join-rejected", ConnectionID: string(id), Name: name, Reason: string(reason)})
}

func (o *NATSObserver) Routed(from chat.ConnID, msg chat.ChatMessage, recipients int) {
	o.publish(Notice{
		Kind:         "routed",
		ConnectionID: string(from),
		SenderName:   msg.SenderName,
		TargetName:   msg.TargetName,
		Recipients:   recipients,
		At:           msg.Timestamp,
	})
}

func (o *NATSObserver) publish(n Notice) {
	if n.At.IsZero() {
		n.At = o.now().UTC()
	}
	data, err := json.Marshal(n)
	if err != nil {
		o.log.Error("encoding notice", zap.Error(err))
		return
	}
	if err := o.pub.Publish(o.prefix+"."+n.Kind, data); err != nil {
		o.log.Debug("publishing notice", zap.String("kind", n.Kind), zap.Error(err))
	}
}
