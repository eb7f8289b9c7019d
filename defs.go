package main

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed defs/obstacles.json
var defaultObstacleDefs []byte

//go:embed defs/obstacles.schema.json
var obstacleDefsSchema []byte

const obstacleSchemaURL = "obstacles.schema.json"

// ObstacleType is an obstacle identifier resolved against a Defs table.
// The zero value never names a definition.
type ObstacleType uint16

const ObstacleNone ObstacleType = 0

// ObstacleDef is the static definition of an obstacle type
type ObstacleDef struct {
	Name         string
	Health       float64
	Destructible bool
	Scale        float64
	Airdrop      bool
	Collision    Collider
}

// Defs is the immutable obstacle definition table
type Defs struct {
	defs        []ObstacleDef // index = ObstacleType - 1
	index       map[string]ObstacleType
	defaultType ObstacleType
}

type defsDoc struct {
	Default   string        `json:"default"`
	Obstacles []obstacleDoc `json:"obstacles"`
}

type obstacleDoc struct {
	ID           string       `json:"id"`
	Health       float64      `json:"health"`
	Destructible bool         `json:"destructible"`
	Scale        float64      `json:"scale"`
	Airdrop      bool         `json:"airdrop"`
	Collision    collisionDoc `json:"collision"`
}

type collisionDoc struct {
	Type string     `json:"type"`
	Pos  [2]float64 `json:"pos"`
	Rad  float64    `json:"rad"`
	Min  [2]float64 `json:"min"`
	Max  [2]float64 `json:"max"`
}

func (c collisionDoc) collider() Collider {
	if c.Type == "circle" {
		return NewCircle(V2(c.Pos[0], c.Pos[1]), c.Rad)
	}
	return NewAabb(V2(c.Min[0], c.Min[1]), V2(c.Max[0], c.Max[1]))
}

// LoadDefaultDefs loads the definition table compiled into the binary
func LoadDefaultDefs() (*Defs, error) {
	return LoadDefs(defaultObstacleDefs)
}

// LoadDefsFile loads a definition table from disk
func LoadDefsFile(path string) (*Defs, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read defs: %w", err)
	}
	return LoadDefs(raw)
}

// LoadDefs validates raw JSON against the obstacle schema and builds the table
func LoadDefs(raw []byte) (*Defs, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(obstacleSchemaURL, bytes.NewReader(obstacleDefsSchema)); err != nil {
		return nil, fmt.Errorf("add defs schema: %w", err)
	}
	schema, err := compiler.Compile(obstacleSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile defs schema: %w", err)
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("parse defs: %w", err)
	}
	if err := schema.Validate(generic); err != nil {
		return nil, fmt.Errorf("validate defs: %w", err)
	}

	var doc defsDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode defs: %w", err)
	}

	d := &Defs{index: make(map[string]ObstacleType, len(doc.Obstacles))}
	for _, o := range doc.Obstacles {
		if _, dup := d.index[o.ID]; dup {
			return nil, fmt.Errorf("duplicate obstacle definition %q", o.ID)
		}
		scale := o.Scale
		if scale == 0 {
			scale = 1
		}
		d.defs = append(d.defs, ObstacleDef{
			Name:         o.ID,
			Health:       o.Health,
			Destructible: o.Destructible,
			Scale:        scale,
			Airdrop:      o.Airdrop,
			Collision:    o.Collision.collider(),
		})
		d.index[o.ID] = ObstacleType(len(d.defs))
	}

	def, ok := d.index[doc.Default]
	if !ok {
		return nil, fmt.Errorf("default obstacle %q is not defined", doc.Default)
	}
	d.defaultType = def
	return d, nil
}

// Lookup resolves a name without substitution
func (d *Defs) Lookup(name string) (ObstacleType, bool) {
	t, ok := d.index[name]
	return t, ok
}

// Def returns the definition for a type
func (d *Defs) Def(t ObstacleType) (*ObstacleDef, bool) {
	if t == ObstacleNone || int(t) > len(d.defs) {
		return nil, false
	}
	return &d.defs[t-1], true
}

// Name returns the identifier of a type, or "" if it is not defined
func (d *Defs) Name(t ObstacleType) string {
	if def, ok := d.Def(t); ok {
		return def.Name
	}
	return ""
}

// Default is the type substituted for unknown identifiers
func (d *Defs) Default() ObstacleType {
	return d.defaultType
}

// ResolveObstacle maps a name to a type, falling back to the default.
// ok is false when the fallback was used.
func (d *Defs) ResolveObstacle(name string) (ObstacleType, bool) {
	if t, ok := d.index[name]; ok {
		return t, true
	}
	return d.defaultType, false
}

// ValidateObstacle returns t unchanged if it names a definition, otherwise the default.
// ok is false when the fallback was used.
func (d *Defs) ValidateObstacle(t ObstacleType) (ObstacleType, bool) {
	if _, ok := d.Def(t); ok {
		return t, true
	}
	return d.defaultType, false
}

// Names lists every defined identifier in table order
func (d *Defs) Names() []string {
	names := make([]string, len(d.defs))
	for i, def := range d.defs {
		names[i] = def.Name
	}
	return names
}
