package chat

import "github.com/samber/lo"

// Router makes the per-message delivery decision. It only reads the
// registry.
type Router struct {
	registry *PresenceRegistry
	sessions *sessionTable
}

// newRouter returns a router resolving names through registry and
// addressing the sessions in sessions.
func newRouter(registry *PresenceRegistry, sessions *sessionTable) *Router {
	return &Router{registry: registry, sessions: sessions}
}

// Recipients returns the connections that should receive msg.
//
// A message for Everyone goes to every open connection, bound or not. Any
// other target delivers to the target's connection plus an echo to the
// sender's, both resolved by name. A target that is not registered receives
// nothing and neither does the sender; an unregistered sender only loses
// the echo.
func (r *Router) Recipients(msg ChatMessage) []ConnID {
	if msg.Broadcast() {
		return r.sessions.ids()
	}

	target, ok := r.registry.Lookup(msg.TargetName)
	if !ok {
		return nil
	}
	ids := []ConnID{target}
	if sender, ok := r.registry.Lookup(msg.SenderName); ok {
		ids = append([]ConnID{sender}, ids...)
	}
	return lo.Uniq(ids)
}
