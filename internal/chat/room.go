package chat

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Options tune a Room.
type Options struct {
	// EventBuffer is the capacity of the room's inbound event queue.
	EventBuffer int
	// RejectionNotices sends join-rejected to a session whose join was
	// dropped. Off by default: dropped joins are silent.
	RejectionNotices bool
	// StrictIdentity requires joins to match the verified name, if any.
	StrictIdentity bool
}

type eventKind int

const (
	kindConnect eventKind = iota
	kindDisconnect
	kindJoin
	kindChat
	kindRoster
)

type roomEvent struct {
	kind         eventKind
	id           ConnID
	outbox       Outbox
	verifiedName string
	payload      json.RawMessage
	at           time.Time
	reply        chan []string
}

// Room is the single shared chat room. One goroutine (Run) owns the session
// table and the presence registry and handles every event to completion
// before taking the next, so none of that state is locked.
type Room struct {
	sessions *sessionTable
	registry *PresenceRegistry
	binder   *Binder
	router   *Router

	observer Observer
	log      *zap.Logger
	opts     Options

	// gate orders enqueues against the loop closing; once closed is set no
	// event can enter events, so the final drain sees everything.
	gate   sync.RWMutex
	closed bool

	events chan roomEvent
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRoom creates a room ready to Run. A nil observer or logger is allowed.
func NewRoom(log *zap.Logger, observer Observer, opts Options) *Room {
	if log == nil {
		log = zap.NewNop()
	}
	if observer == nil {
		observer = Observers{}
	}
	if opts.EventBuffer <= 0 {
		opts.EventBuffer = 1024
	}

	sessions := newSessionTable()
	registry := NewPresenceRegistry()
	ctx, cancel := context.WithCancel(context.Background())

	return &Room{
		sessions: sessions,
		registry: registry,
		binder:   NewBinder(registry, opts.StrictIdentity),
		router:   newRouter(registry, sessions),
		observer: observer,
		log:      log.Named("room"),
		opts:     opts,
		events:   make(chan roomEvent, opts.EventBuffer),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

// Connect opens a session for outbox and returns its connection id. The
// announcement reaches every session, the new one included. verifiedName
// is the identity collaborator's name for this connection, or "".
func (r *Room) Connect(ctx context.Context, outbox Outbox, verifiedName string) (ConnID, error) {
	id := NewConnID()
	err := r.enqueue(ctx, roomEvent{kind: kindConnect, id: id, outbox: outbox, verifiedName: verifiedName})
	if err != nil {
		return "", err
	}
	return id, nil
}

// Disconnect closes the session. Once queued the cleanup always runs; it can
// only fail when the room itself has stopped. Unknown ids are ignored.
func (r *Room) Disconnect(id ConnID) error {
	return r.enqueue(context.Background(), roomEvent{kind: kindDisconnect, id: id})
}

// Dispatch hands one inbound client event to the room.
func (r *Room) Dispatch(ctx context.Context, id ConnID, event string, payload json.RawMessage) error {
	ev := roomEvent{id: id, payload: payload, at: time.Now().UTC()}
	switch event {
	case EventJoin:
		ev.kind = kindJoin
	case EventChat:
		ev.kind = kindChat
	default:
		return ErrUnknownEvent
	}
	return r.enqueue(ctx, ev)
}

// Roster returns the current roster snapshot as seen by the room goroutine.
func (r *Room) Roster(ctx context.Context) ([]string, error) {
	reply := make(chan []string, 1)
	if err := r.enqueue(ctx, roomEvent{kind: kindRoster, reply: reply}); err != nil {
		return nil, err
	}
	select {
	case names := <-reply:
		return names, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-r.done:
		return nil, ErrRoomClosed
	}
}

func (r *Room) enqueue(ctx context.Context, ev roomEvent) error {
	r.gate.RLock()
	defer r.gate.RUnlock()

	if r.closed {
		return ErrRoomClosed
	}
	select {
	case <-r.ctx.Done():
		return ErrRoomClosed
	default:
	}

	select {
	case r.events <- ev:
		return nil
	case <-r.ctx.Done():
		return ErrRoomClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run is the room's event loop. It returns after Shutdown.
func (r *Room) Run() {
	defer close(r.done)

	for {
		select {
		case <-r.ctx.Done():
			r.gate.Lock()
			r.closed = true
			r.gate.Unlock()

			r.drainPending()
			r.shutdownSessions()
			return
		case ev := <-r.events:
			r.handle(ev)
		}
	}
}

func (r *Room) handle(ev roomEvent) {
	switch ev.kind {
	case kindConnect:
		r.handleConnect(ev)
	case kindDisconnect:
		if s, ok := r.sessions.get(ev.id); ok {
			r.drop(s)
		}
	case kindJoin:
		r.handleJoin(ev)
	case kindChat:
		r.handleChat(ev)
	case kindRoster:
		ev.reply <- r.registry.Names()
	}
}

func (r *Room) handleConnect(ev roomEvent) {
	if ev.outbox == nil {
		r.log.Warn("connect without outbox; skipping", zap.String("conn", string(ev.id)))
		return
	}

	s := &Session{ID: ev.id, VerifiedName: ev.verifiedName, Outbox: ev.outbox}
	r.sessions.add(s)
	r.observer.Connected(s.ID)

	announce, err := Encode(EventAnnounceConnection, AnnounceConnection{ConnectionID: s.ID})
	if err != nil {
		r.log.Error("encoding announcement", zap.Error(err))
		return
	}

	if s.VerifiedName == "" {
		r.deliver(r.sessions.ids(), announce)
		return
	}

	others := make([]ConnID, 0, r.sessions.len())
	for _, id := range r.sessions.ids() {
		if id != s.ID {
			others = append(others, id)
		}
	}
	own, err := Encode(EventAnnounceConnection, AnnounceConnection{ConnectionID: s.ID, SuggestedName: s.VerifiedName})
	if err != nil {
		r.log.Error("encoding announcement", zap.Error(err))
		return
	}
	r.deliver([]ConnID{s.ID}, own)
	r.deliver(others, announce)
}

func (r *Room) handleJoin(ev roomEvent) {
	s, ok := r.sessions.get(ev.id)
	if !ok {
		return
	}

	var req JoinRequest
	if err := decodePayload(ev.payload, &req); err != nil {
		r.log.Debug("dropping join", zap.String("conn", string(s.ID)), zap.Error(err))
		return
	}

	reason := r.binder.Bind(s, req)
	if reason != RejectNone {
		r.observer.JoinRejected(s.ID, req.Name, reason)
		if r.opts.RejectionNotices {
			r.notifyRejected(s, req.Name, reason)
		}
		return
	}

	r.observer.Bound(s.ID, s.DisplayName)
	r.broadcastRoster()
}

func (r *Room) notifyRejected(s *Session, name string, reason RejectReason) {
	frame, err := Encode(EventJoinRejected, JoinRejected{Name: name, Reason: reason})
	if err != nil {
		r.log.Error("encoding join rejection", zap.Error(err))
		return
	}
	r.deliver([]ConnID{s.ID}, frame)
}

func (r *Room) handleChat(ev roomEvent) {
	if _, ok := r.sessions.get(ev.id); !ok {
		return
	}

	var in struct {
		TargetName string          `json:"targetName"`
		SenderName string          `json:"senderName"`
		Body       string          `json:"body"`
		Timestamp  json.RawMessage `json:"timestamp"`
	}
	if err := decodePayload(ev.payload, &in); err != nil {
		r.log.Debug("dropping chat", zap.String("conn", string(ev.id)), zap.Error(err))
		return
	}
	msg := ChatMessage{
		TargetName: in.TargetName,
		SenderName: in.SenderName,
		Body:       in.Body,
		Timestamp:  clientTimestamp(in.Timestamp, ev.at),
	}

	recipients := r.router.Recipients(msg)
	r.observer.Routed(ev.id, msg, len(recipients))
	if len(recipients) == 0 {
		return
	}

	frame, err := json.Marshal(Envelope{Event: EventChat, Data: ev.payload})
	if err != nil {
		r.log.Error("encoding chat", zap.Error(err))
		return
	}
	r.deliver(recipients, frame)
}

// clientTimestamp returns the timestamp the client sent, or received when
// it sent none or one that is not RFC 3339.
func clientTimestamp(raw json.RawMessage, received time.Time) time.Time {
	if len(raw) == 0 {
		return received
	}
	var ts time.Time
	if err := json.Unmarshal(raw, &ts); err != nil || ts.IsZero() {
		return received
	}
	return ts
}

func (r *Room) broadcastRoster() {
	frame, err := Encode(EventRosterUpdate, RosterUpdate{Names: r.registry.Names()})
	if err != nil {
		r.log.Error("encoding roster", zap.Error(err))
		return
	}
	r.log.Debug("roster changed", zap.Int("online", r.registry.Len()))
	r.deliver(r.sessions.ids(), frame)
}

// deliver queues frame on each listed session. Sessions whose outbox refuses
// the frame are dropped afterwards, exactly like a disconnect.
func (r *Room) deliver(ids []ConnID, frame []byte) {
	var failed []*Session
	for _, id := range ids {
		s, ok := r.sessions.get(id)
		if !ok {
			continue
		}
		if !s.Outbox.Deliver(frame) {
			failed = append(failed, s)
		}
	}

	for _, s := range failed {
		if _, still := r.sessions.get(s.ID); !still {
			continue
		}
		r.log.Warn("dropping session after failed delivery", zap.String("conn", string(s.ID)))
		r.drop(s)
	}
}

// drop removes s from the room, unbinding its name and announcing the new
// roster when it had one.
func (r *Room) drop(s *Session) {
	r.sessions.remove(s.ID)
	unbound := r.binder.Unbind(s)
	s.Outbox.Close()

	r.observer.Disconnected(s.ID, s.DisplayName)
	if unbound {
		r.observer.Unbound(s.ID, s.DisplayName)
		r.broadcastRoster()
	}
}

// drainPending discards events queued before the room closed. A pending
// connect still owns its outbox, so that outbox is closed here.
func (r *Room) drainPending() {
	for {
		select {
		case ev := <-r.events:
			if ev.kind == kindConnect && ev.outbox != nil {
				ev.outbox.Close()
			}
		default:
			return
		}
	}
}

func (r *Room) shutdownSessions() {
	sessions := r.sessions.ordered()
	for _, s := range sessions {
		r.sessions.remove(s.ID)
		r.binder.Unbind(s)
		s.Outbox.Close()
	}
	r.log.Info("room closed", zap.Int("sessions", len(sessions)))
}

// Shutdown stops the event loop and closes every session's outbox. It
// returns context.DeadlineExceeded if the loop does not finish in time.
func (r *Room) Shutdown(timeout time.Duration) error {
	r.cancel()

	select {
	case <-r.done:
		return nil
	case <-time.After(timeout):
		return context.DeadlineExceeded
	}
}

// Done is closed once Run has returned.
func (r *Room) Done() <-chan struct{} {
	return r.done
}

// IsClosed reports whether err means the room is no longer accepting events.
func IsClosed(err error) bool {
	return errors.Is(err, ErrRoomClosed)
}
