package chat

import "strings"

// RejectReason explains why a join request was dropped.
type RejectReason string

const (
	RejectNone               RejectReason = ""
	RejectDuplicateName      RejectReason = "duplicate-name"
	RejectAlreadyBound       RejectReason = "already-bound"
	RejectEmptyName          RejectReason = "empty-name"
	RejectConnectionMismatch RejectReason = "connection-mismatch"
	RejectIdentityMismatch   RejectReason = "identity-mismatch"
	RejectUnverified         RejectReason = "unverified"
)

// Binder runs the join handshake. It is the only writer of the presence
// registry.
type Binder struct {
	registry *PresenceRegistry
	// strict requires a join to use the session's verified name. Sessions
	// without one cannot bind at all.
	strict bool
}

// NewBinder returns a binder writing to registry.
func NewBinder(registry *PresenceRegistry, strict bool) *Binder {
	return &Binder{registry: registry, strict: strict}
}

// Bind moves an unbound session to bound under req.Name, stored exactly as
// sent. On rejection the session and registry are left untouched.
func (b *Binder) Bind(s *Session, req JoinRequest) RejectReason {
	name := req.Name
	switch {
	case s.Bound():
		return RejectAlreadyBound
	case strings.TrimSpace(name) == "":
		return RejectEmptyName
	case req.ConnectionID != "" && req.ConnectionID != s.ID:
		return RejectConnectionMismatch
	case b.strict && s.VerifiedName == "":
		return RejectUnverified
	case b.strict && name != s.VerifiedName:
		return RejectIdentityMismatch
	case b.registry.Contains(name):
		return RejectDuplicateName
	}

	b.registry.Insert(name, s.ID)
	s.DisplayName = name
	return RejectNone
}

// Unbind removes the session's name from the registry. It reports false for
// a session that never bound, in which case nothing changed.
func (b *Binder) Unbind(s *Session) bool {
	if !s.Bound() {
		return false
	}
	return b.registry.Remove(s.DisplayName)
}
