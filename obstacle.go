package main

// Obstacle is a definition-backed static object placed on the map
type Obstacle struct {
	objectBase
	Type         ObstacleType
	TypeName     string
	Ori          int
	Scale        float64
	Health       float64
	Destructible bool
	Dead         bool
	collider     Collider
}

// NewObstacle places an obstacle of a resolved type at pos
func NewObstacle(def *ObstacleDef, t ObstacleType, pos Vec2, layer, ori int) *Obstacle {
	return &Obstacle{
		objectBase:   objectBase{kind: KindObstacle, pos: pos, layer: layer},
		Type:         t,
		TypeName:     def.Name,
		Ori:          ori,
		Scale:        def.Scale,
		Health:       def.Health,
		Destructible: def.Destructible,
		collider:     TransformCollider(def.Collision, pos, OriToRad(ori), def.Scale),
	}
}

func (o *Obstacle) Collider() Collider { return o.collider }

// Damage applies damage to destructible obstacles
func (o *Obstacle) Damage(params DamageParams) {
	if o.Dead || !o.Destructible {
		return
	}
	o.Health -= params.Amount
	if o.Health <= 0 {
		o.Health = 0
		o.Dead = true
		o.SetDirty()
		return
	}
	o.SetPartDirty()
}

type obstacleFull struct {
	Type  string  `msgpack:"t"`
	Ori   int     `msgpack:"o"`
	Scale float64 `msgpack:"s"`
	Dead  bool    `msgpack:"dd"`
}

type obstaclePart struct {
	Health float64 `msgpack:"hp"`
}

func (o *Obstacle) FullState() any {
	return obstacleFull{Type: o.TypeName, Ori: o.Ori, Scale: o.Scale, Dead: o.Dead}
}

func (o *Obstacle) PartState() any {
	return obstaclePart{Health: o.Health}
}
