package game

// Player identifies one side. PlayerA plays the white discs and moves first.
type Player int

const (
	PlayerA Player = iota
	PlayerB
)

// Other returns the opposing player.
func (p Player) Other() Player {
	return 1 - p
}

// String returns the short label used in logs: "A" or "B".
func (p Player) String() string {
	if p == PlayerB {
		return "B"
	}
	return "A"
}

// Colour returns the player's disc colour name.
func (p Player) Colour() string {
	if p == PlayerB {
		return "black"
	}
	return "white"
}

// affinity is +1 between discs of the same owner and -1 between opponents.
func affinity(a, b Player) int {
	if a == b {
		return 1
	}
	return -1
}
