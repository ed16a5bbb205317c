package chat

import "github.com/samber/lo"

// PresenceRegistry maps display names to the connection that owns them.
// It is the single source of truth for who is online and is owned by one
// Room; it does no locking of its own.
type PresenceRegistry struct {
	byName map[string]ConnID
	order  []string
}

// NewPresenceRegistry returns an empty registry.
func NewPresenceRegistry() *PresenceRegistry {
	return &PresenceRegistry{byName: make(map[string]ConnID)}
}

// Insert adds name unless it is already present. First writer wins.
func (p *PresenceRegistry) Insert(name string, id ConnID) bool {
	if _, taken := p.byName[name]; taken {
		return false
	}
	p.byName[name] = id
	p.order = append(p.order, name)
	return true
}

// Remove deletes name and reports whether it was present.
func (p *PresenceRegistry) Remove(name string) bool {
	if _, ok := p.byName[name]; !ok {
		return false
	}
	delete(p.byName, name)
	p.order = lo.Without(p.order, name)
	return true
}

// Lookup resolves a display name to its connection.
func (p *PresenceRegistry) Lookup(name string) (ConnID, bool) {
	id, ok := p.byName[name]
	return id, ok
}

// Contains reports whether name is registered.
func (p *PresenceRegistry) Contains(name string) bool {
	_, ok := p.byName[name]
	return ok
}

// Names returns the roster snapshot in join order.
func (p *PresenceRegistry) Names() []string {
	names := make([]string, len(p.order))
	copy(names, p.order)
	return names
}

// Len returns the number of registered names.
func (p *PresenceRegistry) Len() int {
	return len(p.byName)
}
