package protocol

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeResponse(t *testing.T) {
	// given
	tokens := make([]string, 200)
	for i := range tokens {
		tokens[i] = "7"
	}
	testCases := []struct {
		Name             string
		Line             string
		ExpectedResponse Response
	}{
		{
			Name:             "grid size announcement",
			Line:             "OK " + strings.Join(tokens, " "),
			ExpectedResponse: Response{Type: Ok, GridSize: 10},
		},
		{
			Name:             "grid size announcement with extra whitespace",
			Line:             "ok  " + strings.Join(tokens[:32], "\t") + "  ",
			ExpectedResponse: Response{Type: Ok, GridSize: 4},
		},
		{
			Name:             "grid size rounds down",
			Line:             "OK " + strings.Join(tokens[:9], " "),
			ExpectedResponse: Response{Type: Ok, GridSize: 2},
		},
		{
			Name:             "shoot ignores payload",
			Line:             "SHOOT 0 0 -99 3",
			ExpectedResponse: Response{Type: Shoot},
		},
		{
			Name:             "hit lower case",
			Line:             "hit",
			ExpectedResponse: Response{Type: Hit},
		},
		{
			Name:             "miss",
			Line:             "MISS",
			ExpectedResponse: Response{Type: Miss},
		},
		{
			Name:             "sunk",
			Line:             "SUNK 3",
			ExpectedResponse: Response{Type: Sunk, Value: 3},
		},
		{
			Name:             "win",
			Line:             "Win",
			ExpectedResponse: Response{Type: Win},
		},
		{
			Name:             "lose",
			Line:             "LOSE",
			ExpectedResponse: Response{Type: Lose},
		},
		{
			Name:             "error keeps the message",
			Line:             "ERROR invalid target",
			ExpectedResponse: Response{Type: Error, FullMessage: "ERROR invalid target"},
		},
		{
			Name:             "unknown keeps the message",
			Line:             "HELLO there",
			ExpectedResponse: Response{Type: Unknown, FullMessage: "HELLO there"},
		},
		{
			Name:             "empty line is unknown",
			Line:             "   ",
			ExpectedResponse: Response{Type: Unknown, FullMessage: "   "},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(t *testing.T) {
			// when
			resp, err := DecodeResponse(testCase.Line)

			// then
			require.NoError(t, err)
			assert.Equal(t, testCase.ExpectedResponse, resp)
		})
	}
}

func TestDecodeResponse_Malformed(t *testing.T) {
	testCases := []struct {
		Name string
		Line string
	}{
		{Name: "non numeric ship id", Line: "SUNK carrier"},
		{Name: "missing ship id", Line: "SUNK"},
		{Name: "grid size without tokens", Line: "OK"},
		{Name: "grid size too small", Line: "OK 1"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(t *testing.T) {
			_, err := DecodeResponse(testCase.Line)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestEncodeResponse(t *testing.T) {
	testCases := []struct {
		Name     string
		Response Response
		Expected string
	}{
		{Name: "hit", Response: BuildResponse(Hit), Expected: "HIT"},
		{Name: "miss", Response: BuildResponse(Miss), Expected: "MISS"},
		{Name: "sunk", Response: BuildSunkResponse(5), Expected: "SUNK 5"},
		{Name: "win", Response: BuildResponse(Win), Expected: "WIN"},
		{Name: "lose", Response: BuildResponse(Lose), Expected: "LOSE"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(t *testing.T) {
			line, err := EncodeResponse(testCase.Response)
			require.NoError(t, err)
			assert.Equal(t, testCase.Expected, line)

			decoded, err := DecodeResponse(line)
			require.NoError(t, err)
			assert.Equal(t, testCase.Response, decoded)
		})
	}

	t.Run("fail for shoot", func(t *testing.T) {
		_, err := EncodeResponse(BuildResponse(Shoot))
		assert.EqualError(t, err, "cannot encode Shoot response")
	})
}

func TestEncodeGridSize(t *testing.T) {
	line := EncodeGridSize(10)
	assert.True(t, strings.HasPrefix(line, "OK 0 1 2 "))
	assert.True(t, strings.HasSuffix(line, " 199"))
	assert.Len(t, strings.Fields(line), 201)

	resp, err := DecodeResponse(line)
	require.NoError(t, err)
	assert.Equal(t, 10, resp.GridSize)
}

func TestAction(t *testing.T) {
	assert.Equal(t, "42", EncodeAction(42))

	target, err := DecodeAction(" 42\r")
	require.NoError(t, err)
	assert.Equal(t, 42, target)

	_, err = DecodeAction("A5")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestEncodeShootAndError(t *testing.T) {
	assert.Equal(t, "SHOOT", EncodeShoot())
	assert.Equal(t, "SHOOT 0 1 -99", EncodeShoot("0 1", "-99"))
	assert.Equal(t, "ERROR bad target", EncodeError("bad target"))
}
