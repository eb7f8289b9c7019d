package main

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// ObjectFull carries the whole state of an object that changed wholesale or is new
type ObjectFull struct {
	ID    ObjectID   `msgpack:"id"`
	Kind  ObjectKind `msgpack:"k"`
	Pos   Vec2       `msgpack:"p"`
	Layer int        `msgpack:"l"`
	State any        `msgpack:"s"`
}

// ObjectPart carries only the mutable subset of an object
type ObjectPart struct {
	ID    ObjectID `msgpack:"id"`
	State any      `msgpack:"s"`
}

// SyncFrame is one network sync: the registry's dirty sets plus queued map pings
type SyncFrame struct {
	Tick    uint64       `msgpack:"tick"`
	Full    []ObjectFull `msgpack:"f"`
	Part    []ObjectPart `msgpack:"pt"`
	Deleted []ObjectID   `msgpack:"d"`
	Pings   []MapPing    `msgpack:"pg"`
}

// Empty reports whether the frame carries nothing worth sending
func (f *SyncFrame) Empty() bool {
	return len(f.Full) == 0 && len(f.Part) == 0 && len(f.Deleted) == 0 && len(f.Pings) == 0
}

// BuildSyncFrame resolves dirty ids against the registry. Ids that are no longer
// registered are skipped.
func BuildSyncFrame(tick uint64, reg *ObjectRegistry, dirty DirtySet, pings []MapPing) *SyncFrame {
	f := &SyncFrame{Tick: tick, Deleted: dirty.Deleted, Pings: pings}
	for _, id := range dirty.Full {
		obj, ok := reg.Get(id)
		if !ok {
			continue
		}
		f.Full = append(f.Full, fullOf(obj))
	}
	for _, id := range dirty.Part {
		obj, ok := reg.Get(id)
		if !ok {
			continue
		}
		f.Part = append(f.Part, ObjectPart{ID: id, State: obj.PartState()})
	}
	return f
}

func fullOf(obj GameObject) ObjectFull {
	return ObjectFull{
		ID:    obj.ID(),
		Kind:  obj.Kind(),
		Pos:   obj.Pos(),
		Layer: obj.Layer(),
		State: obj.FullState(),
	}
}

// EncodeFrame marshals a frame to msgpack
func EncodeFrame(f *SyncFrame) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.UseCompactInts(true)
	if err := enc.Encode(f); err != nil {
		return nil, fmt.Errorf("encode sync frame: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeFrame is the inverse of EncodeFrame. Object states decode as maps.
func DecodeFrame(data []byte) (*SyncFrame, error) {
	var f SyncFrame
	if err := msgpack.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode sync frame: %w", err)
	}
	return &f, nil
}
