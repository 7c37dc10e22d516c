package protocol

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rallen090/BattleShip/pkg"
)

// ErrMalformed is returned for a recognized command whose payload cannot be
// parsed. Sessions treat it as fatal.
var ErrMalformed = errors.New("malformed message")

// DecodeResponse decodes one line sent by the server. Unrecognized commands
// decode to Unknown without an error.
func DecodeResponse(line string) (Response, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Response{Type: Unknown, FullMessage: line}, nil
	}

	switch strings.ToUpper(fields[0]) {
	case pkg.Ok:
		// the announcement carries 2·n² tokens
		n := int(math.Sqrt(float64((len(fields) - 1) / 2)))
		if n < 1 {
			return Response{}, fmt.Errorf("%s with %d tokens: %w", pkg.Ok, len(fields)-1, ErrMalformed)
		}
		return Response{Type: Ok, GridSize: n}, nil
	case pkg.Shoot:
		return BuildResponse(Shoot), nil
	case pkg.Hit:
		return BuildResponse(Hit), nil
	case pkg.Miss:
		return BuildResponse(Miss), nil
	case pkg.Sunk:
		if len(fields) < 2 {
			return Response{}, fmt.Errorf("%s without ship id: %w", pkg.Sunk, ErrMalformed)
		}
		id, err := strconv.Atoi(fields[1])
		if err != nil {
			return Response{}, fmt.Errorf("%s ship id %q: %w", pkg.Sunk, fields[1], ErrMalformed)
		}
		return BuildSunkResponse(id), nil
	case pkg.Win:
		return BuildResponse(Win), nil
	case pkg.Lose:
		return BuildResponse(Lose), nil
	case pkg.Error:
		return Response{Type: Error, FullMessage: line}, nil
	default:
		return Response{Type: Unknown, FullMessage: line}, nil
	}
}

// EncodeResponse encodes a shot outcome the way the server sends it.
func EncodeResponse(r Response) (string, error) {
	switch r.Type {
	case Hit:
		return pkg.Hit, nil
	case Miss:
		return pkg.Miss, nil
	case Sunk:
		return fmt.Sprintf("%s %d", pkg.Sunk, r.Value), nil
	case Win:
		return pkg.Win, nil
	case Lose:
		return pkg.Lose, nil
	default:
		return "", fmt.Errorf("cannot encode %s response", r.Type)
	}
}

// EncodeGridSize builds the OK announcement for an n×n grid.
func EncodeGridSize(n int) string {
	var b strings.Builder
	b.WriteString(pkg.Ok)
	for i := 0; i < 2*n*n; i++ {
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(i))
	}
	return b.String()
}

func EncodeShoot(extra ...string) string {
	return strings.Join(append([]string{pkg.Shoot}, extra...), " ")
}

func EncodeError(text string) string {
	return pkg.Error + " " + text
}

// EncodeAction encodes the target location a client shoots at.
func EncodeAction(targetLocation int) string {
	return strconv.Itoa(targetLocation)
}

func DecodeAction(line string) (int, error) {
	target, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("target %q: %w", line, ErrMalformed)
	}
	return target, nil
}
