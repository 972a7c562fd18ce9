package listing

import "sync"

// Registry keeps one View per (session, screen), the server-side stand-in
// for a mounted list component.
type Registry struct {
	mu    sync.Mutex
	views map[string]map[string]any
}

func NewRegistry() *Registry {
	return &Registry{views: make(map[string]map[string]any)}
}

// ViewFor returns the session's view of screen, creating it on first use.
func ViewFor[T any](r *Registry, sessionID, screen string, cfg Config[T]) *View[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	screens, ok := r.views[sessionID]
	if !ok {
		screens = make(map[string]any)
		r.views[sessionID] = screens
	}
	if v, ok := screens[screen].(*View[T]); ok {
		return v
	}
	v := NewView(cfg)
	screens[screen] = v
	return v
}

// DropSession forgets every view of a session.
func (r *Registry) DropSession(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.views, sessionID)
}

// Sessions is the number of sessions holding views.
func (r *Registry) Sessions() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

// SessionIDs lists the sessions currently holding views.
func (r *Registry) SessionIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.views))
	for id := range r.views {
		ids = append(ids, id)
	}
	return ids
}
