package main

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
)

// FrameSink receives every encoded sync frame. Implementations must not block.
type FrameSink interface {
	SendFrame(data []byte)
}

// GameStats is a point-in-time summary for health checks
type GameStats struct {
	GameID   string `json:"game_id"`
	Tick     uint64 `json:"tick"`
	Objects  int    `json:"objects"`
	Airdrops int    `json:"airdrops"`
}

// Game holds the world of one match and advances it at a fixed tick
type Game struct {
	mu       sync.RWMutex
	ID       string
	cfg      *Config
	log      *slog.Logger
	defs     *Defs
	grid     *SpatialGrid
	registry *ObjectRegistry
	gameMap  *GameMap
	pings    *PingBoard
	airdrops *AirdropBarn
	sinks    []FrameSink
	tick     uint64

	rng        *rand.Rand
	spawnTimer float64
	nextType   int
}

// NewGameID returns a fresh match identifier
func NewGameID() string {
	return uuid.NewString()
}

// NewGame builds the world from config. events may be nil.
func NewGame(id string, cfg *Config, defs *Defs, events EventTracker, log *slog.Logger) *Game {
	log = log.With("game", id)

	grid := NewSpatialGrid(cfg.Sim.WorldWidth, cfg.Sim.WorldHeight, cfg.Sim.CellSize)
	registry := NewObjectRegistry(grid)
	gameMap := NewGameMap(defs, registry, log)
	pings := &PingBoard{}

	seed := uint64(cfg.Sim.Seed)
	g := &Game{
		ID:       id,
		cfg:      cfg,
		log:      log,
		defs:     defs,
		grid:     grid,
		registry: registry,
		gameMap:  gameMap,
		pings:    pings,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
	g.airdrops = NewAirdropBarn(cfg.Airdrop, defs, registry, grid, gameMap, pings, events, log)
	return g
}

// AddSink attaches a frame consumer
func (g *Game) AddSink(s FrameSink) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sinks = append(g.sinks, s)
}

// Run ticks the world until ctx is cancelled
func (g *Game) Run(ctx context.Context) error {
	tickDuration := time.Second / time.Duration(g.cfg.Sim.TickRate)
	dt := 1.0 / float64(g.cfg.Sim.TickRate)

	ticker := time.NewTicker(tickDuration)
	defer ticker.Stop()

	g.log.Info("game loop started", "tick_rate", g.cfg.Sim.TickRate, "broadcast_every", g.cfg.BroadcastEvery())
	for {
		select {
		case <-ticker.C:
			g.Step(dt)
		case <-ctx.Done():
			g.log.Info("game loop stopped", "tick", g.Tick())
			return nil
		}
	}
}

// Step runs one tick of dt seconds
func (g *Game) Step(dt float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.step(dt)
}

func (g *Game) step(dt float64) {
	g.tick++

	g.airdrops.Update(dt)
	g.spawnScheduled(dt)

	if g.tick%uint64(g.cfg.BroadcastEvery()) == 0 {
		g.sync()
		// landed crates stay registered until a sync has carried their landed state
		g.airdrops.Flush()
	}
}

// spawnScheduled drops crates at a fixed interval. Positions come from the
// seeded rng so a given config always replays the same drops.
func (g *Game) spawnScheduled(dt float64) {
	ac := g.cfg.Airdrop
	if ac.Interval <= 0 || len(ac.Types) == 0 {
		return
	}
	g.spawnTimer += dt
	for g.spawnTimer >= ac.Interval {
		g.spawnTimer -= ac.Interval
		pos := V2(g.rng.Float64()*g.cfg.Sim.WorldWidth, g.rng.Float64()*g.cfg.Sim.WorldHeight)
		typ := ac.Types[g.nextType%len(ac.Types)]
		g.nextType++
		g.airdrops.AddAirdrop(pos, typ)
	}
}

// sync flushes the dirty sets and hands the encoded frame to every sink
func (g *Game) sync() {
	dirty := g.registry.FlushDirty()
	pings := g.pings.Drain()
	if dirty.Empty() && len(pings) == 0 {
		return
	}

	frame := BuildSyncFrame(g.tick, g.registry, dirty, pings)
	data, err := EncodeFrame(frame)
	if err != nil {
		g.log.Error("sync: encode frame", "tick", g.tick, "err", err)
		return
	}
	for _, s := range g.sinks {
		s.SendFrame(data)
	}
}

// Snapshot encodes every registered object as a full frame for late joiners
func (g *Game) Snapshot() ([]byte, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.snapshot()
}

// Subscribe hands a snapshot to join while holding the world lock. A sink
// registered inside join receives every sync after that snapshot.
func (g *Game) Subscribe(join func(snapshot []byte) error) error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	snapshot, err := g.snapshot()
	if err != nil {
		return err
	}
	return join(snapshot)
}

func (g *Game) snapshot() ([]byte, error) {
	objs := g.registry.Objects()
	frame := &SyncFrame{Tick: g.tick, Full: make([]ObjectFull, 0, len(objs))}
	for _, obj := range objs {
		frame.Full = append(frame.Full, fullOf(obj))
	}
	return EncodeFrame(frame)
}

// AddAirdrop requests a crate drop. Returns nil when the cap is reached.
func (g *Game) AddAirdrop(pos Vec2, obstacleType string) *Airdrop {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.airdrops.AddAirdrop(pos, obstacleType)
}

// AddPlayer registers a player
func (g *Game) AddPlayer(name string, pos Vec2, layer int) *Player {
	g.mu.Lock()
	defer g.mu.Unlock()

	p := NewPlayer(name, pos, layer)
	g.registry.Register(p)
	return p
}

// MovePlayer teleports a registered player
func (g *Game) MovePlayer(id ObjectID, pos Vec2) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	obj, ok := g.registry.Get(id)
	if !ok {
		return false
	}
	p, ok := obj.(*Player)
	if !ok {
		return false
	}
	p.MoveTo(pos, g.grid)
	return true
}

// AddBuilding registers a building
func (g *Game) AddBuilding(name string, pos Vec2, layer int, bounds Collider, regions []ZoomRegion, wallsToDestroy int) *Building {
	g.mu.Lock()
	defer g.mu.Unlock()

	b := NewBuilding(name, pos, layer, bounds, regions, wallsToDestroy)
	g.registry.Register(b)
	return b
}

// AddObstacle places an obstacle by definition name. Unknown names use the default.
func (g *Game) AddObstacle(name string, pos Vec2, ori int) *Obstacle {
	g.mu.Lock()
	defer g.mu.Unlock()

	t, ok := g.defs.ResolveObstacle(name)
	if !ok {
		g.log.Warn("add obstacle: invalid obstacle type, using default", "type", name, "default", g.defs.Name(t))
	}
	return g.gameMap.GenObstacle(t, pos, ori)
}

// Tick returns the number of ticks run so far
func (g *Game) Tick() uint64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.tick
}

// Stats summarizes the world for health checks
func (g *Game) Stats() GameStats {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return GameStats{
		GameID:   g.ID,
		Tick:     g.tick,
		Objects:  g.registry.Len(),
		Airdrops: g.airdrops.Len(),
	}
}
