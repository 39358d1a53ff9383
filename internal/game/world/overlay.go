package world

// ObjectRef identifies an object across the whole world.
type ObjectRef struct {
	Room string
	ID   string
}

// ObjectState is the per-session mutable state of one object.
type ObjectState struct {
	// Discovered marks a dug hidden cache.
	Discovered bool
	// Fading marks an npc in its vanish animation.
	Fading bool
	// Removed hides the object for the rest of the session.
	Removed bool
	// Triggered marks a one-shot interaction as started.
	Triggered bool
}

// Overlay is a sparse per-session layer over the immutable templates. Only
// objects whose state differs from the zero value are stored.
type Overlay struct {
	states map[ObjectRef]ObjectState
}

// NewOverlay returns an empty overlay.
func NewOverlay() *Overlay {
	return &Overlay{states: make(map[ObjectRef]ObjectState)}
}

// State returns the current state of ref.
func (o *Overlay) State(ref ObjectRef) ObjectState {
	return o.states[ref]
}

// Update applies fn to the state of ref.
//
// Postcondition: a state equal to the zero value is not retained.
func (o *Overlay) Update(ref ObjectRef, fn func(*ObjectState)) {
	s := o.states[ref]
	fn(&s)
	if s == (ObjectState{}) {
		delete(o.states, ref)
		return
	}
	o.states[ref] = s
}

// Len returns the number of objects with non-default state.
func (o *Overlay) Len() int { return len(o.states) }

// Reset discards all session state.
func (o *Overlay) Reset() {
	clear(o.states)
}

// Objects returns the room's objects that have not been removed, in
// template order.
func (o *Overlay) Objects(r *Room) []*Object {
	out := make([]*Object, 0, len(r.Objects))
	for _, obj := range r.Objects {
		if o.states[ObjectRef{Room: r.Key, ID: obj.ID}].Removed {
			continue
		}
		out = append(out, obj)
	}
	return out
}

// ObjectAt returns the first non-removed object at (x, y) in r.
func (o *Overlay) ObjectAt(r *Room, x, y int) (*Object, bool) {
	for _, obj := range r.Objects {
		if obj.X != x || obj.Y != y {
			continue
		}
		if o.states[ObjectRef{Room: r.Key, ID: obj.ID}].Removed {
			continue
		}
		return obj, true
	}
	return nil, false
}
