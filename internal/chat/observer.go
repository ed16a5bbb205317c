//go:generate go run go.uber.org/mock/mockgen -source=observer.go -destination=mocks/mock_observer.go -package=mocks

package chat

import "go.uber.org/zap"

// Observer receives informational room events. Calls are made from the room
// goroutine, so implementations must return quickly; nothing they do can
// change a routing decision.
type Observer interface {
	Connected(id ConnID)
	Disconnected(id ConnID, name string)
	Bound(id ConnID, name string)
	Unbound(id ConnID, name string)
	JoinRejected(id ConnID, name string, reason RejectReason)
	Routed(from ConnID, msg ChatMessage, recipients int)
}

// Observers fans one event out to several observers.
type Observers []Observer

// Connected forwards a new session to every observer.
func (o Observers) Connected(id ConnID) {
	for _, obs := range o {
		obs.Connected(id)
	}
}

// Disconnected forwards a closed session to every observer.
func (o Observers) Disconnected(id ConnID, name string) {
	for _, obs := range o {
		obs.Disconnected(id, name)
	}
}

// Bound forwards a successful join to every observer.
func (o Observers) Bound(id ConnID, name string) {
	for _, obs := range o {
		obs.Bound(id, name)
	}
}

// Unbound forwards a released name to every observer.
func (o Observers) Unbound(id ConnID, name string) {
	for _, obs := range o {
		obs.Unbound(id, name)
	}
}

// JoinRejected forwards a dropped join to every observer.
func (o Observers) JoinRejected(id ConnID, name string, reason RejectReason) {
	for _, obs := range o {
		obs.JoinRejected(id, name, reason)
	}
}

// Routed forwards a routed chat message to every observer.
func (o Observers) Routed(from ConnID, msg ChatMessage, recipients int) {
	for _, obs := range o {
		obs.Routed(from, msg, recipients)
	}
}

// LogObserver writes every room event to a zap logger.
type LogObserver struct {
	log *zap.Logger
}

// NewLogObserver returns an observer logging through log.
func NewLogObserver(log *zap.Logger) *LogObserver {
	return &LogObserver{log: log.Named("room")}
}

// Connected logs a new session.
func (l *LogObserver) Connected(id ConnID) {
	l.log.Info("new connection", zap.String("conn", string(id)))
}

// Disconnected logs a closed session and the name it held, if any.
func (l *LogObserver) Disconnected(id ConnID, name string) {
	l.log.Info("connection closed", zap.String("conn", string(id)), zap.String("name", name))
}

// Bound logs the name a session joined with.
func (l *LogObserver) Bound(id ConnID, name string) {
	l.log.Info("user joined", zap.String("conn", string(id)), zap.String("name", name))
}

// Unbound logs a name leaving the roster.
func (l *LogObserver) Unbound(id ConnID, name string) {
	l.log.Info("user left", zap.String("conn", string(id)), zap.String("name", name))
}

// JoinRejected logs a dropped join with its reason.
func (l *LogObserver) JoinRejected(id ConnID, name string, reason RejectReason) {
	l.log.Debug("join dropped",
		zap.String("conn", string(id)),
		zap.String("name", name),
		zap.String("reason", string(reason)))
}

// Routed logs the sender, target and recipient count of a chat message.
func (l *LogObserver) Routed(from ConnID, msg ChatMessage, recipients int) {
	l.log.Info("chat routed",
		zap.String("conn", string(from)),
		zap.String("from", msg.SenderName),
		zap.String("to", msg.TargetName),
		zap.Int("recipients", recipients))
}
