package main

import (
	"slices"
	"testing"
)

func TestRegistryRegisterAssignsUniqueIDs(t *testing.T) {
	reg := NewObjectRegistry(nil)
	a := NewPlayer("a", V2(0, 0), 0)
	b := NewPlayer("b", V2(0, 0), 0)

	idA := reg.Register(a)
	idB := reg.Register(b)
	if idA == 0 || idB == 0 || idA == idB {
		t.Errorf("expected distinct non-zero ids, got %d and %d", idA, idB)
	}
	if a.ID() != idA {
		t.Errorf("object should carry its id, got %d want %d", a.ID(), idA)
	}
	if got, ok := reg.Get(idB); !ok || got != b {
		t.Error("Get should return the registered object")
	}
}

func TestRegistryNewObjectInNextFlush(t *testing.T) {
	reg := NewObjectRegistry(nil)
	p := NewPlayer("p", V2(0, 0), 0)
	id := reg.Register(p)

	// mutations during the same tick must not move it out of the full set
	p.SetDir(V2(0, 1))

	dirty := reg.FlushDirty()
	if !slices.Equal(dirty.Full, []ObjectID{id}) {
		t.Errorf("expected new object in full set, got %v", dirty.Full)
	}
	if len(dirty.Part) != 0 {
		t.Errorf("new object should not be partially dirty, got %v", dirty.Part)
	}

	if again := reg.FlushDirty(); !again.Empty() {
		t.Errorf("flush should clear the sets, got %+v", again)
	}
}

func TestRegistryDirtySetsDisjoint(t *testing.T) {
	reg := NewObjectRegistry(nil)
	p := NewPlayer("p", V2(0, 0), 0)
	id := reg.Register(p)
	reg.FlushDirty()

	reg.SetPartDirty(id)
	reg.SetPartDirty(id)
	if !reg.IsPartDirty(id) || reg.IsDirty(id) {
		t.Fatal("expected only partial dirty")
	}

	reg.SetDirty(id)
	reg.SetDirty(id)
	reg.SetPartDirty(id)

	dirty := reg.FlushDirty()
	if !slices.Equal(dirty.Full, []ObjectID{id}) {
		t.Errorf("expected id once in full set, got %v", dirty.Full)
	}
	if len(dirty.Part) != 0 {
		t.Errorf("full dirty should supersede partial, got %v", dirty.Part)
	}
}

func TestRegistryFlushKeepsMarkOrder(t *testing.T) {
	reg := NewObjectRegistry(nil)
	var ids []ObjectID
	for i := 0; i < 4; i++ {
		ids = append(ids, reg.Register(NewPlayer("p", V2(0, 0), 0)))
	}
	reg.FlushDirty()

	reg.SetPartDirty(ids[2])
	reg.SetPartDirty(ids[0])
	reg.SetDirty(ids[3])
	reg.SetDirty(ids[1])

	dirty := reg.FlushDirty()
	if !slices.Equal(dirty.Part, []ObjectID{ids[2], ids[0]}) {
		t.Errorf("unexpected partial order %v", dirty.Part)
	}
	if !slices.Equal(dirty.Full, []ObjectID{ids[3], ids[1]}) {
		t.Errorf("unexpected full order %v", dirty.Full)
	}
}

func TestRegistryUnknownIDIgnored(t *testing.T) {
	reg := NewObjectRegistry(nil)
	reg.SetDirty(99)
	reg.SetPartDirty(99)
	if !reg.FlushDirty().Empty() {
		t.Error("marking an unknown id should be a no-op")
	}
}

func TestRegistryUnregisterRemovesEverywhere(t *testing.T) {
	grid := NewSpatialGrid(100, 100, DefaultCellSize)
	reg := NewObjectRegistry(grid)
	p := NewPlayer("p", V2(10, 10), 0)
	id := reg.Register(p)
	reg.FlushDirty()

	p.SetPartDirty()
	reg.Unregister(p)

	if _, ok := reg.Get(id); ok {
		t.Error("unregistered object should not be retrievable")
	}
	if grid.Contains(p) {
		t.Error("unregistered object should leave the grid")
	}

	dirty := reg.FlushDirty()
	if slices.Contains(dirty.Full, id) || slices.Contains(dirty.Part, id) {
		t.Errorf("dead id must not be in dirty sets: %+v", dirty)
	}
	if !slices.Equal(dirty.Deleted, []ObjectID{id}) {
		t.Errorf("expected id in deleted list, got %v", dirty.Deleted)
	}

	// detached objects no longer reach the registry
	p.SetDirty()
	if !reg.FlushDirty().Empty() {
		t.Error("detached object should not mark anything dirty")
	}
}

func TestRegistryUnregisterBeforeFirstSync(t *testing.T) {
	reg := NewObjectRegistry(nil)
	p := NewPlayer("p", V2(10, 10), 0)
	reg.Register(p)
	reg.Unregister(p)

	dirty := reg.FlushDirty()
	if !dirty.Empty() {
		t.Errorf("object never synced should leave no trace, got %+v", dirty)
	}
}

func TestRegistryIDsNeverReused(t *testing.T) {
	reg := NewObjectRegistry(nil)
	p := NewPlayer("p", V2(0, 0), 0)
	first := reg.Register(p)
	reg.Unregister(p)
	second := reg.Register(NewPlayer("q", V2(0, 0), 0))
	if second <= first {
		t.Errorf("ids must keep increasing, got %d after %d", second, first)
	}
}

func TestRegistryObjectsSorted(t *testing.T) {
	reg := NewObjectRegistry(nil)
	for i := 0; i < 10; i++ {
		reg.Register(NewPlayer("p", V2(0, 0), 0))
	}
	objs := reg.Objects()
	if len(objs) != reg.Len() {
		t.Fatalf("expected %d objects, got %d", reg.Len(), len(objs))
	}
	for i := 1; i < len(objs); i++ {
		if objs[i-1].ID() >= objs[i].ID() {
			t.Fatalf("objects not sorted at %d", i)
		}
	}
}
