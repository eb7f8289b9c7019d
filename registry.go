package main

import "sort"

// DirtySet is what the network layer reads at each sync boundary
type DirtySet struct {
	Full    []ObjectID
	Part    []ObjectID
	Deleted []ObjectID
}

// Empty reports whether the set carries nothing to send
func (d DirtySet) Empty() bool {
	return len(d.Full) == 0 && len(d.Part) == 0 && len(d.Deleted) == 0
}

// idSet is an insertion-ordered set of ids
type idSet struct {
	order []ObjectID
	index map[ObjectID]int
}

func newIDSet() idSet {
	return idSet{index: make(map[ObjectID]int)}
}

func (s *idSet) add(id ObjectID) {
	if _, ok := s.index[id]; ok {
		return
	}
	s.index[id] = len(s.order)
	s.order = append(s.order, id)
}

func (s *idSet) has(id ObjectID) bool {
	_, ok := s.index[id]
	return ok
}

func (s *idSet) remove(id ObjectID) {
	i, ok := s.index[id]
	if !ok {
		return
	}
	copy(s.order[i:], s.order[i+1:])
	s.order = s.order[:len(s.order)-1]
	delete(s.index, id)
	for j := i; j < len(s.order); j++ {
		s.index[s.order[j]] = j
	}
}

// take returns the ids in insertion order and clears the set
func (s *idSet) take() []ObjectID {
	out := s.order
	s.order = nil
	s.index = make(map[ObjectID]int)
	return out
}

// ObjectRegistry owns id assignment and per-sync dirty bookkeeping.
// It also keeps the spatial grid in step with registration.
type ObjectRegistry struct {
	grid    *SpatialGrid
	objects map[ObjectID]GameObject
	nextID  ObjectID

	full    idSet
	part    idSet
	fresh   idSet // registered since the last flush
	deleted []ObjectID
}

// NewObjectRegistry creates a registry indexing objects into grid (may be nil)
func NewObjectRegistry(grid *SpatialGrid) *ObjectRegistry {
	return &ObjectRegistry{
		grid:    grid,
		objects: make(map[ObjectID]GameObject),
		nextID:  1,
		full:    newIDSet(),
		part:    newIDSet(),
		fresh:   newIDSet(),
	}
}

// Register assigns a new id, indexes the object and schedules its initial snapshot
func (r *ObjectRegistry) Register(obj GameObject) ObjectID {
	id := r.nextID
	r.nextID++
	obj.bind(id, r)
	r.objects[id] = obj
	r.full.add(id)
	r.fresh.add(id)
	if r.grid != nil {
		r.grid.Insert(obj)
	}
	return id
}

// Unregister removes the object from the id map, the dirty sets and the grid
func (r *ObjectRegistry) Unregister(obj GameObject) {
	id := obj.ID()
	if _, ok := r.objects[id]; !ok {
		return
	}
	if r.grid != nil {
		r.grid.Remove(obj)
	}
	delete(r.objects, id)
	r.full.remove(id)
	r.part.remove(id)
	if r.fresh.has(id) {
		// never synced, clients do not know it
		r.fresh.remove(id)
	} else {
		r.deleted = append(r.deleted, id)
	}
	obj.bind(id, nil)
}

// SetDirty marks a full resync; it supersedes a pending partial one
func (r *ObjectRegistry) SetDirty(id ObjectID) {
	if _, ok := r.objects[id]; !ok {
		return
	}
	r.part.remove(id)
	r.full.add(id)
}

// SetPartDirty marks a lightweight resync unless a full one is pending
func (r *ObjectRegistry) SetPartDirty(id ObjectID) {
	if _, ok := r.objects[id]; !ok {
		return
	}
	if r.full.has(id) {
		return
	}
	r.part.add(id)
}

// IsDirty reports whether a full resync is pending
func (r *ObjectRegistry) IsDirty(id ObjectID) bool {
	return r.full.has(id)
}

// IsPartDirty reports whether a partial resync is pending
func (r *ObjectRegistry) IsPartDirty(id ObjectID) bool {
	return r.part.has(id)
}

// FlushDirty returns and clears the dirty sets accumulated since the last call
func (r *ObjectRegistry) FlushDirty() DirtySet {
	set := DirtySet{
		Full:    r.full.take(),
		Part:    r.part.take(),
		Deleted: r.deleted,
	}
	r.deleted = nil
	r.fresh.take()
	return set
}

// Get returns a registered object by id
func (r *ObjectRegistry) Get(id ObjectID) (GameObject, bool) {
	obj, ok := r.objects[id]
	return obj, ok
}

// Len returns the number of registered objects
func (r *ObjectRegistry) Len() int {
	return len(r.objects)
}

// Objects returns all registered objects in registration order
func (r *ObjectRegistry) Objects() []GameObject {
	out := make([]GameObject, 0, len(r.objects))
	for _, obj := range r.objects {
		out = append(out, obj)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID() < out[j].ID()
	})
	return out
}
