package event

// World events. Coordinates are grid cells, Y grows upward.

type ActorDied struct {
	UnitID uint64
	Kind   string
	Name   string
	X, Y   int
}

type ActorTeleported struct {
	UnitID       uint64
	Kind         string
	Name         string
	FromX, FromY int
	ToX, ToY     int
}

// Detonated is emitted when ammo terminates or burning gasoline burns out.
type Detonated struct {
	Kind string
	X, Y int
	Area bool
}
