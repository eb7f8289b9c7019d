package main

const (
	PlayerRadius = 1.0
	PlayerMaxHP  = 100.0
)

// Player is a participant in the match. Movement and input live elsewhere;
// the core only needs pose, health and the damage receiver.
type Player struct {
	objectBase
	Name       string
	Health     float64
	Dead       bool
	dir        Vec2
	collider   Collider
	LastDamage DamageParams
	DamageHits int
}

// NewPlayer creates a player at pos facing +X
func NewPlayer(name string, pos Vec2, layer int) *Player {
	return &Player{
		objectBase: objectBase{kind: KindPlayer, pos: pos, layer: layer},
		Name:       name,
		Health:     PlayerMaxHP,
		dir:        V2(1, 0),
		collider:   NewCircle(pos, PlayerRadius),
	}
}

func (p *Player) Collider() Collider { return p.collider }

// Dir returns the facing direction
func (p *Player) Dir() Vec2 { return p.dir }

// SetDir changes the facing direction
func (p *Player) SetDir(dir Vec2) {
	p.dir = dir
	p.SetPartDirty()
}

// MoveTo teleports the player and re-buckets it in the grid
func (p *Player) MoveTo(pos Vec2, grid *SpatialGrid) {
	p.pos = pos
	p.collider = NewCircle(pos, PlayerRadius)
	if grid != nil {
		grid.Update(p)
	}
	p.SetPartDirty()
}

// Damage reduces health; reaching zero kills the player
func (p *Player) Damage(params DamageParams) {
	if p.Dead {
		return
	}
	p.LastDamage = params
	p.DamageHits++
	p.Health -= params.Amount
	if p.Health <= 0 {
		p.Health = 0
		p.Dead = true
	}
	p.SetDirty()
}

type playerFull struct {
	Name   string  `msgpack:"n"`
	Dir    Vec2    `msgpack:"d"`
	Health float64 `msgpack:"hp"`
	Dead   bool    `msgpack:"dd"`
}

type playerPart struct {
	Pos Vec2 `msgpack:"p"`
	Dir Vec2 `msgpack:"d"`
}

func (p *Player) FullState() any {
	return playerFull{Name: p.Name, Dir: p.dir, Health: p.Health, Dead: p.Dead}
}

func (p *Player) PartState() any {
	return playerPart{Pos: p.pos, Dir: p.dir}
}
