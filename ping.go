package main

// PingKind is the category tag of a map marker
type PingKind string

const (
	PingAirdrop   PingKind = "ping_airdrop"
	PingAirstrike PingKind = "ping_airstrike"
)

// MapPing is a marker shown on every player's map
type MapPing struct {
	Kind PingKind `msgpack:"k"`
	Pos  Vec2     `msgpack:"p"`
}

// PingBoard buffers pings until the next sync picks them up
type PingBoard struct {
	pings []MapPing
}

// AddMapPing queues a ping for the next sync
func (b *PingBoard) AddMapPing(kind PingKind, pos Vec2) {
	b.pings = append(b.pings, MapPing{Kind: kind, Pos: pos})
}

// Drain returns queued pings and empties the board
func (b *PingBoard) Drain() []MapPing {
	out := b.pings
	b.pings = nil
	return out
}
