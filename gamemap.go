package main

import "log/slog"

//go:generate go tool mockgen -source=gamemap.go -destination=mock_gamemap_test.go -package=main

// TerrainGenerator materializes static obstacles in the world
type TerrainGenerator interface {
	GenObstacle(t ObstacleType, pos Vec2, ori int) *Obstacle
}

// MapPinger receives fire-and-forget map marker events
type MapPinger interface {
	AddMapPing(kind PingKind, pos Vec2)
}

// GameMap places definition-backed obstacles on the ground layer
type GameMap struct {
	defs     *Defs
	registry *ObjectRegistry
	log      *slog.Logger
}

// NewGameMap creates a map bound to a definition table and registry
func NewGameMap(defs *Defs, registry *ObjectRegistry, log *slog.Logger) *GameMap {
	return &GameMap{defs: defs, registry: registry, log: log}
}

// GenObstacle registers a new obstacle. Unknown types fall back to the default.
func (m *GameMap) GenObstacle(t ObstacleType, pos Vec2, ori int) *Obstacle {
	valid, ok := m.defs.ValidateObstacle(t)
	if !ok {
		m.log.Error("gen obstacle: invalid obstacle type, using default",
			"type", t, "default", m.defs.Name(valid))
	}
	def, _ := m.defs.Def(valid)
	obs := NewObstacle(def, valid, pos, 0, ori)
	m.registry.Register(obs)
	return obs
}
