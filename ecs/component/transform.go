package component

// Transform mirrors the physics position for front-ends.
type Transform struct {
	X float64
	Y float64
}

var TransformComponent = NewComponent[Transform]()

// Spawn is where a fighter returns to on round reset.
type Spawn struct {
	X      float64
	Y      float64
	Facing Facing
}

var SpawnComponent = NewComponent[Spawn]()
