package main

// ObjectID identifies a registered object for its whole lifetime
type ObjectID uint32

// ObjectKind tags the entity variant
type ObjectKind uint8

const (
	KindInvalid ObjectKind = iota
	KindPlayer
	KindObstacle
	KindBuilding
	KindAirdrop
)

func (k ObjectKind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindObstacle:
		return "obstacle"
	case KindBuilding:
		return "building"
	case KindAirdrop:
		return "airdrop"
	}
	return "invalid"
}

// DamageType is the cause attached to a damage application
type DamageType uint8

const (
	DamagePlayer DamageType = iota
	DamageBleeding
	DamageGas
	DamageAirdrop
	DamageAirstrike
)

// DamageParams describes one damage application
type DamageParams struct {
	Amount     float64
	DamageType DamageType
	Dir        Vec2
}

// GameObject is the contract shared by every entity variant.
// The unexported bind method keeps the set of variants closed to this package.
type GameObject interface {
	ID() ObjectID
	Kind() ObjectKind
	Pos() Vec2
	Layer() int
	Collider() Collider
	// FullState is sent when the object is fully dirty or first seen
	FullState() any
	// PartState is the lightweight mutable subset
	PartState() any

	bind(id ObjectID, reg *ObjectRegistry)
}

// Damageable objects accept damage from the simulation
type Damageable interface {
	Damage(params DamageParams)
}

// Facer is implemented by objects that expose a facing direction
type Facer interface {
	Dir() Vec2
}

// objectBase carries identity, pose and dirty plumbing for all variants
type objectBase struct {
	id    ObjectID
	kind  ObjectKind
	pos   Vec2
	layer int
	reg   *ObjectRegistry
}

func (o *objectBase) ID() ObjectID     { return o.id }
func (o *objectBase) Kind() ObjectKind { return o.kind }
func (o *objectBase) Pos() Vec2        { return o.pos }
func (o *objectBase) Layer() int       { return o.layer }

func (o *objectBase) bind(id ObjectID, reg *ObjectRegistry) {
	o.id = id
	o.reg = reg
}

// SetDirty schedules a full resync of the object
func (o *objectBase) SetDirty() {
	if o.reg != nil {
		o.reg.SetDirty(o.id)
	}
}

// SetPartDirty schedules a lightweight resync of the object
func (o *objectBase) SetPartDirty() {
	if o.reg != nil {
		o.reg.SetPartDirty(o.id)
	}
}

// damageDir picks the direction recorded with a damage application
func damageDir(obj GameObject) Vec2 {
	if f, ok := obj.(Facer); ok {
		return f.Dir()
	}
	return Vec2{}
}
