package session

import (
	"context"
	"errors"
	"io"
	"strconv"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/rallen090/BattleShip/pkg/commander"
	cmdmock "github.com/rallen090/BattleShip/pkg/commander/automock"
	"github.com/rallen090/BattleShip/pkg/game"
	"github.com/rallen090/BattleShip/pkg/protocol"
	"github.com/rallen090/BattleShip/pkg/transport"
	"github.com/rallen090/BattleShip/pkg/transport/automock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var discard = log.New(io.Discard)

// script builds a channel answering with lines in order and expecting the
// given targets to be sent, and a commander choosing those targets.
func script(lines []string, receiveErr error, targets []int) (*automock.Channel, *cmdmock.Commander) {
	ch := &automock.Channel{}
	ch.On("Connect", mock.Anything).Return(nil).Once()
	for _, line := range lines {
		ch.On("ReceiveLine", mock.Anything).Return(line, nil).Once()
	}
	if receiveErr != nil {
		ch.On("ReceiveLine", mock.Anything).Return("", receiveErr).Once()
	}
	ch.On("Close").Return(nil).Once()

	cmd := &cmdmock.Commander{}
	for _, target := range targets {
		cmd.On("NextTarget", mock.Anything, mock.Anything).Return(target, nil).Once()
		ch.On("SendLine", strconv.Itoa(target)).Return(nil).Once()
	}
	return ch, cmd
}

func TestSession_Play(t *testing.T) {
	okLine := protocol.EncodeGridSize(2)

	testCases := []struct {
		Name           string
		Lines          []string
		ReceiveErr     error
		Targets        []int
		ExpectedResult Result
		ExpectedErr    error
	}{
		{
			Name:    "win",
			Lines:   []string{"WELCOME", "SHOOT", okLine, "SHOOT", "HIT", "SHOOT", "MISS", "SHOOT", "SUNK 5", "SHOOT", "WIN"},
			Targets: []int{0, 1, 2, 3},
			ExpectedResult: Result{
				State:   Won,
				Shots:   4,
				Hits:    3,
				Misses:  1,
				Victory: true,
			},
		},
		{
			Name:    "lose",
			Lines:   []string{okLine, "SHOOT", "MISS", "LOSE"},
			Targets: []int{3},
			ExpectedResult: Result{
				State:  Lost,
				Shots:  1,
				Misses: 1,
			},
		},
		{
			Name:    "server error ends the session",
			Lines:   []string{okLine, "SHOOT", "ERROR invalid target"},
			Targets: []int{1},
			ExpectedResult: Result{
				State:  Terminated,
				Shots:  1,
				Reason: "ERROR invalid target",
			},
		},
		{
			Name:  "unknown message ends the session",
			Lines: []string{okLine, "TIMEOUT 30"},
			ExpectedResult: Result{
				State:  Terminated,
				Reason: "TIMEOUT 30",
			},
		},
		{
			Name:        "malformed message",
			Lines:       []string{okLine, "SHOOT", "SUNK carrier"},
			Targets:     []int{0},
			ExpectedErr: protocol.ErrMalformed,
			ExpectedResult: Result{
				State: Terminated,
				Shots: 1,
			},
		},
		{
			Name:        "result without a shot",
			Lines:       []string{okLine, "HIT"},
			ExpectedErr: ErrProtocol,
			ExpectedResult: Result{
				State: Terminated,
			},
		},
		{
			Name:        "sunk ship not in the fleet",
			Lines:       []string{okLine, "SHOOT", "SUNK 9"},
			Targets:     []int{2},
			ExpectedErr: ErrProtocol,
			ExpectedResult: Result{
				State: Terminated,
				Shots: 1,
			},
		},
		{
			Name:        "channel failure",
			Lines:       []string{okLine, "SHOOT"},
			ReceiveErr:  transport.ErrClosed,
			Targets:     []int{0},
			ExpectedErr: transport.ErrClosed,
			ExpectedResult: Result{
				State: Terminated,
				Shots: 1,
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(t *testing.T) {
			// given
			ch, cmd := script(testCase.Lines, testCase.ReceiveErr, testCase.Targets)
			s := New(ch, cmd, discard)

			// when
			result, err := s.Play(context.Background())

			// then
			if testCase.ExpectedErr != nil {
				assert.ErrorIs(t, err, testCase.ExpectedErr)
				assert.Equal(t, err.Error(), result.Reason)
				result.Reason = ""
			} else {
				require.NoError(t, err)
			}
			expected := testCase.ExpectedResult
			expected.SessionID = s.ID()
			assert.Equal(t, expected, result)
			assert.Equal(t, expected.State, s.State())
			ch.AssertExpectations(t)
			cmd.AssertExpectations(t)
		})
	}
}

func TestSession_PlayUpdatesGrid(t *testing.T) {
	// given
	ch, cmd := script([]string{
		protocol.EncodeGridSize(2), "SHOOT", "HIT", "SHOOT", "MISS", "SHOOT", "SUNK 5", "SHOOT", "WIN",
	}, nil, []int{0, 1, 2, 3})
	s := New(ch, cmd, discard)

	// when
	_, err := s.Play(context.Background())

	// then
	require.NoError(t, err)
	require.Equal(t, 2, s.Grid().Size())
	states := make([]game.CellState, 0, 4)
	for _, cell := range s.Grid().Cells() {
		states = append(states, cell.State)
	}
	assert.Equal(t, []game.CellState{game.Hit, game.Miss, game.Hit, game.Hit}, states)
	for _, ship := range s.Ships() {
		assert.Equal(t, ship.ID == 5, ship.Sunk, ship.Name)
	}
}

func TestSession_Play_Failures(t *testing.T) {
	t.Run("fail to connect", func(t *testing.T) {
		// given
		dialErr := errors.New("connection refused")
		ch := &automock.Channel{}
		ch.On("Connect", mock.Anything).Return(dialErr).Once()
		ch.On("Close").Return(nil).Once()

		// when
		result, err := New(ch, &cmdmock.Commander{}, discard).Play(context.Background())

		// then
		assert.ErrorIs(t, err, dialErr)
		assert.Equal(t, Terminated, result.State)
		ch.AssertExpectations(t)
	})

	t.Run("fail to send", func(t *testing.T) {
		// given
		ch, cmd := script([]string{protocol.EncodeGridSize(2), "SHOOT"}, nil, nil)
		cmd.On("NextTarget", mock.Anything, mock.Anything).Return(1, nil).Once()
		ch.On("SendLine", "1").Return(transport.ErrClosed).Once()

		// when
		result, err := New(ch, cmd, discard).Play(context.Background())

		// then
		assert.ErrorIs(t, err, transport.ErrClosed)
		assert.Equal(t, Terminated, result.State)
		ch.AssertExpectations(t)
	})

	t.Run("fail without a target", func(t *testing.T) {
		// given
		ch, cmd := script([]string{protocol.EncodeGridSize(2), "SHOOT"}, nil, nil)
		cmd.On("NextTarget", mock.Anything, mock.Anything).Return(0, commander.ErrNoTarget).Once()

		// when
		result, err := New(ch, cmd, discard).Play(context.Background())

		// then
		assert.ErrorIs(t, err, commander.ErrNoTarget)
		assert.Equal(t, 0, result.Shots)
		cmd.AssertExpectations(t)
	})

	t.Run("fail on a second shoot before the result", func(t *testing.T) {
		// given
		ch, cmd := script([]string{protocol.EncodeGridSize(2), "SHOOT", "SHOOT"}, nil, []int{0})

		// when
		_, err := New(ch, cmd, discard).Play(context.Background())

		// then
		assert.ErrorIs(t, err, ErrProtocol)
		ch.AssertExpectations(t)
	})
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "awaiting grid size", AwaitingGridSize.String())
	assert.Equal(t, "won", Won.String())
	assert.Equal(t, "unknown", State(0).String())
}
