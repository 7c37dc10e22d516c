package pkg

// Command words of the line protocol. Incoming words are matched
// case-insensitively.
const (
	Ok    = "OK"
	Shoot = "SHOOT"
	Hit   = "HIT"
	Miss  = "MISS"
	Sunk  = "SUNK"
	Win   = "WIN"
	Lose  = "LOSE"
	Error = "ERROR"
)

const (
	DefaultPort     = 9900
	DefaultGridSize = 10
	WebsocketPath   = "/ws"
)
