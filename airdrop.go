package main

import "log/slog"

const (
	// obstacleCrushDamage is large enough to destroy any obstacle
	obstacleCrushDamage = 1e10
	airdropLayer        = 0
	// remaining fall time below this counts as landed
	fallTimeEpsilon = 1e-9
)

// AirdropBarn owns the airdrops currently falling or waiting for removal
type AirdropBarn struct {
	airdrops []*Airdrop
	cfg      AirdropConfig
	defs     *Defs
	registry *ObjectRegistry
	grid     *SpatialGrid
	terrain  TerrainGenerator
	pinger   MapPinger
	events   EventTracker
	log      *slog.Logger
}

// NewAirdropBarn wires a barn to the world services it needs
func NewAirdropBarn(cfg AirdropConfig, defs *Defs, registry *ObjectRegistry, grid *SpatialGrid,
	terrain TerrainGenerator, pinger MapPinger, events EventTracker, log *slog.Logger) *AirdropBarn {
	if cfg.FallTime <= 0 {
		log.Warn("airdrop: non-positive fall time, crates land on their first update", "fall_time", cfg.FallTime)
	}
	return &AirdropBarn{
		cfg:      cfg,
		defs:     defs,
		registry: registry,
		grid:     grid,
		terrain:  terrain,
		pinger:   pinger,
		events:   events,
		log:      log,
	}
}

// AddAirdrop spawns a falling crate. Requests at the cap are dropped.
func (b *AirdropBarn) AddAirdrop(pos Vec2, obstacleType string) *Airdrop {
	if len(b.airdrops) >= b.cfg.MaxActive {
		b.log.Warn("airdrop limit reached, dropping request",
			"active", len(b.airdrops), "max", b.cfg.MaxActive, "type", obstacleType)
		b.track(EvtAirdropRejected, 0, map[string]any{"type": obstacleType, "x": pos.X, "y": pos.Y})
		return nil
	}

	a := NewAirdrop(b, pos, obstacleType)
	b.airdrops = append(b.airdrops, a)
	b.pinger.AddMapPing(PingAirdrop, pos)
	b.registry.Register(a)

	b.log.Info("airdrop created",
		"id", a.ID(), "type", b.defs.Name(a.Type), "active", len(b.airdrops), "max", b.cfg.MaxActive)
	b.track(EvtAirdropSpawn, a.ID(), map[string]any{"type": b.defs.Name(a.Type), "x": pos.X, "y": pos.Y})
	return a
}

// Update advances every live airdrop in spawn order
func (b *AirdropBarn) Update(dt float64) {
	for _, a := range b.airdrops {
		a.Update(dt)
	}
}

// Flush destroys landed airdrops. Runs after Update so collision side
// effects never see the slice shrink underneath them.
func (b *AirdropBarn) Flush() {
	kept := b.airdrops[:0]
	for _, a := range b.airdrops {
		if a.Landed {
			b.registry.Unregister(a)
			continue
		}
		kept = append(kept, a)
	}
	for i := len(kept); i < len(b.airdrops); i++ {
		b.airdrops[i] = nil
	}
	b.airdrops = kept
}

// Len returns the number of active airdrops
func (b *AirdropBarn) Len() int {
	return len(b.airdrops)
}

// Airdrops returns the active airdrops in spawn order
func (b *AirdropBarn) Airdrops() []*Airdrop {
	return b.airdrops
}

func (b *AirdropBarn) track(evtType string, id ObjectID, data map[string]any) {
	if b.events == nil {
		return
	}
	b.events.Track(evtType, id, EventData(data))
}

// Airdrop is a crate falling from the plane. It lands once fallT reaches 1,
// crushes what it lands on and leaves an obstacle behind.
type Airdrop struct {
	objectBase
	barn *AirdropBarn

	Type           ObstacleType
	FallT          float64
	Landed         bool
	fallTime       float64
	fallTimeTotal  float64
	crateCollision Collider
}

// NewAirdrop resolves the obstacle type and fixes the crate shape at pos
func NewAirdrop(barn *AirdropBarn, pos Vec2, obstacleType string) *Airdrop {
	t, ok := barn.defs.ResolveObstacle(obstacleType)
	if !ok {
		barn.log.Warn("airdrop: invalid obstacle type, using default",
			"type", obstacleType, "default", barn.defs.Name(t))
	}
	def, _ := barn.defs.Def(t)
	return &Airdrop{
		objectBase:     objectBase{kind: KindAirdrop, pos: pos, layer: airdropLayer},
		barn:           barn,
		Type:           t,
		fallTime:       barn.cfg.FallTime,
		fallTimeTotal:  barn.cfg.FallTime,
		crateCollision: TransformCollider(def.Collision, pos, 0, 1),
	}
}

func (a *Airdrop) Collider() Collider { return a.crateCollision }

// Update advances the fall. Landed airdrops do nothing.
func (a *Airdrop) Update(dt float64) {
	if a.Landed {
		return
	}
	if dt < 0 {
		dt = 0
	}
	a.fallTime -= dt
	if a.fallTimeTotal <= 0 || a.fallTime <= fallTimeEpsilon {
		a.fallTime = 0
		a.FallT = 1
	} else {
		a.FallT = Clamp(Remap(a.fallTime, 0, a.fallTimeTotal, 1, 0), 0, 1)
	}

	if a.FallT == 1 {
		a.land()
		return
	}
	// only fallT changes while falling
	a.SetPartDirty()
}

func (a *Airdrop) land() {
	a.Landed = true
	a.SetDirty()

	b := a.barn
	for _, obj := range b.grid.Query(a.crateCollision) {
		if !SameLayer(obj.Layer(), a.layer) {
			continue
		}
		switch target := obj.(type) {
		case *Player:
			if TestColliders(target.Collider(), a.crateCollision) {
				target.Damage(DamageParams{
					Amount:     b.cfg.CrushDamage,
					DamageType: DamageAirdrop,
					Dir:        damageDir(target),
				})
				b.track(EvtAirdropCrush, a.ID(), map[string]any{"target": target.ID(), "kind": "player"})
			}
		case *Obstacle:
			if TestColliders(target.Collider(), a.crateCollision) {
				target.Damage(DamageParams{
					Amount:     obstacleCrushDamage,
					DamageType: DamageAirdrop,
					Dir:        damageDir(target),
				})
				b.track(EvtAirdropCrush, a.ID(), map[string]any{"target": target.ID(), "kind": "obstacle"})
			}
		case *Building:
			if target.CrushCeiling(a.crateCollision) {
				b.track(EvtCeilingDestroyed, a.ID(), map[string]any{"building": target.ID()})
			}
		}
	}

	t, ok := b.defs.ValidateObstacle(a.Type)
	if !ok {
		b.log.Error("airdrop: invalid obstacle type at landing, using default",
			"id", a.ID(), "type", a.Type, "default", b.defs.Name(t))
		a.Type = t
	}
	b.terrain.GenObstacle(t, a.pos, 0)
	b.track(EvtAirdropLand, a.ID(), map[string]any{"type": b.defs.Name(t), "x": a.pos.X, "y": a.pos.Y})
}

type airdropFull struct {
	Type   string  `msgpack:"t"`
	Landed bool    `msgpack:"l"`
	FallT  float64 `msgpack:"ft"`
}

type airdropPart struct {
	FallT float64 `msgpack:"ft"`
}

func (a *Airdrop) FullState() any {
	return airdropFull{Type: a.barn.defs.Name(a.Type), Landed: a.Landed, FallT: a.FallT}
}

func (a *Airdrop) PartState() any {
	return airdropPart{FallT: a.FallT}
}
