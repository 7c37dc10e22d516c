package player

import (
	"net"
	"testing"

	"github.com/rallen090/BattleShip/pkg/game"
	"github.com/rallen090/BattleShip/pkg/protocol"
	"github.com/rallen090/BattleShip/server/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayer_Shoot(t *testing.T) {
	// given
	fleet := []*game.Ship{{ID: 1, Length: 1}}
	b := board.NewBoard(2, fleet)
	require.NoError(t, b.PlaceShip(fleet[0], 1, 1, game.Horizontal))
	p := &Player{Board: b}
	opponent := &Player{Board: board.NewBoard(2, nil)}

	// when
	miss, err := p.Shoot(0)
	require.NoError(t, err)
	win, err := p.Shoot(3)
	require.NoError(t, err)

	// then
	assert.Equal(t, protocol.BuildResponse(protocol.Miss), miss)
	assert.Equal(t, protocol.BuildResponse(protocol.Win), win)
	assert.True(t, opponent.Defeated(p))
	assert.False(t, p.Defeated(opponent))
}

func TestTCPConnection(t *testing.T) {
	// given
	server, client := net.Pipe()
	conn := NewTCPConnection(server)
	defer conn.Close()

	go func() {
		_, _ = client.Write([]byte("\n  \n 42 \r\n"))
	}()

	// when
	line, err := conn.ReadLine()

	// then
	require.NoError(t, err)
	assert.Equal(t, "42", line)

	go func() {
		buf := make([]byte, 16)
		n, _ := client.Read(buf)
		_, _ = client.Write(buf[:n])
		_ = client.Close()
	}()
	require.NoError(t, conn.WriteLine("HIT"))
	echoed, err := conn.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "HIT", echoed)

	_, err = conn.ReadLine()
	assert.Error(t, err)
}
