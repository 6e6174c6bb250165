package object

// Registry owns the set of live participants. Iteration follows insertion
// order so that ticks and collision passes are deterministic.
//
// Registry is not safe for concurrent use.
type Registry struct {
	objects []*Participant
	byID    map[ID]*Participant
	lastID  ID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID: make(map[ID]*Participant),
	}
}

// Add assigns a fresh ID to p and makes it live.
func (r *Registry) Add(p *Participant) ID {
	r.lastID++
	p.ID = r.lastID
	r.objects = append(r.objects, p)
	r.byID[p.ID] = p
	return p.ID
}

// Remove takes the participant with the given ID out of the live set.
// Returns false if it was not live.
func (r *Registry) Remove(id ID) (*Participant, bool) {
	p, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	delete(r.byID, id)

	kept := r.objects[:0]
	for _, obj := range r.objects {
		if obj != p {
			kept = append(kept, obj)
		}
	}
	clear(r.objects[len(kept):])
	r.objects = kept
	return p, true
}

// Get returns the live participant with the given ID.
func (r *Registry) Get(id ID) (*Participant, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// Contains reports whether the ID refers to a live participant.
func (r *Registry) Contains(id ID) bool {
	_, ok := r.byID[id]
	return ok
}

// Len returns the number of live participants.
func (r *Registry) Len() int {
	return len(r.objects)
}

// Count returns the number of live participants of the given kind.
func (r *Registry) Count(kind Kind) int {
	n := 0
	for _, p := range r.objects {
		if p.Kind == kind {
			n++
		}
	}
	return n
}

// All returns a snapshot of the live participants in insertion order.
// The slice is safe to hold while the registry is mutated.
func (r *Registry) All() []*Participant {
	out := make([]*Participant, len(r.objects))
	copy(out, r.objects)
	return out
}

// OfKind returns a snapshot of the live participants of one kind.
func (r *Registry) OfKind(kind Kind) []*Participant {
	var out []*Participant
	for _, p := range r.objects {
		if p.Kind == kind {
			out = append(out, p)
		}
	}
	return out
}

// Clear removes every participant and returns them in insertion order.
// IDs keep increasing across Clear.
func (r *Registry) Clear() []*Participant {
	removed := r.objects
	r.objects = nil
	clear(r.byID)
	return removed
}
