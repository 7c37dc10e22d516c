package protocol

type ResponseType int

const (
	Ok ResponseType = iota + 1
	Shoot
	Miss
	Hit
	Sunk
	Win
	Lose
	Error
	Unknown
)

func (t ResponseType) String() string {
	switch t {
	case Ok:
		return "Ok"
	case Shoot:
		return "Shoot"
	case Miss:
		return "Miss"
	case Hit:
		return "Hit"
	case Sunk:
		return "Sunk"
	case Win:
		return "Win"
	case Lose:
		return "Lose"
	case Error:
		return "Error"
	default:
		return "Unknown"
	}
}

// Response is a decoded server-to-client message.
type Response struct {
	Type ResponseType
	// Value holds the ship id of a Sunk response.
	Value int
	// GridSize holds n of an Ok response.
	GridSize int
	// FullMessage keeps the raw line of Error and Unknown responses.
	FullMessage string
}

func BuildResponse(t ResponseType) Response {
	return Response{Type: t}
}

func BuildSunkResponse(shipID int) Response {
	return Response{
		Type:  Sunk,
		Value: shipID,
	}
}
