//go:generate go run go.uber.org/mock/mockgen -source=session.go -destination=mocks/mock_session.go -package=mocks

package chat

import (
	"cmp"
	"slices"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// ConnID identifies one open connection for its lifetime.
type ConnID string

// NewConnID returns a fresh random connection identifier.
func NewConnID() ConnID {
	return ConnID(uuid.NewString())
}

// Outbox is the transport side of a session. Deliver must not block; it
// returns false when the frame could not be queued, which the room treats as
// a transport failure. Close is called once when the room drops the session.
type Outbox interface {
	Deliver(frame []byte) bool
	Close()
}

// Session is the room's record of one open connection.
type Session struct {
	ID ConnID
	// DisplayName is empty until the join handshake completes and never
	// changes afterwards.
	DisplayName string
	// VerifiedName comes from the identity collaborator, if any.
	VerifiedName string
	Outbox       Outbox
	seq          uint64
}

// Bound reports whether the session completed the join handshake.
func (s *Session) Bound() bool {
	return s.DisplayName != ""
}

// sessionTable owns every open session keyed by connection id. Iteration
// follows connect order.
type sessionTable struct {
	byID map[ConnID]*Session
	next uint64
}

func newSessionTable() *sessionTable {
	return &sessionTable{byID: make(map[ConnID]*Session)}
}

func (t *sessionTable) add(s *Session) {
	t.next++
	s.seq = t.next
	t.byID[s.ID] = s
}

func (t *sessionTable) get(id ConnID) (*Session, bool) {
	s, ok := t.byID[id]
	return s, ok
}

func (t *sessionTable) remove(id ConnID) (*Session, bool) {
	s, ok := t.byID[id]
	if ok {
		delete(t.byID, id)
	}
	return s, ok
}

func (t *sessionTable) len() int {
	return len(t.byID)
}

func (t *sessionTable) ids() []ConnID {
	return lo.Map(t.ordered(), func(s *Session, _ int) ConnID { return s.ID })
}

func (t *sessionTable) ordered() []*Session {
	sessions := lo.Values(t.byID)
	slices.SortFunc(sessions, func(a, b *Session) int { return cmp.Compare(a.seq, b.seq) })
	return sessions
}
