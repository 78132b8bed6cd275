package models

// Player is a chat participant as known to the transport's user directory
type Player struct {
	ID   string `json:"id" cbor:"1,keyasint"`
	Name string `json:"name" cbor:"2,keyasint"`
}

// IsZero reports whether p carries no identity
func (p Player) IsZero() bool {
	return p.ID == ""
}

// Seat binds a player to the stable slot number assigned at game start
type Seat struct {
	Slot   int    `json:"slot" cbor:"1,keyasint"`
	Player Player `json:"player" cbor:"2,keyasint"`
}
