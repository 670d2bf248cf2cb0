package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPosition(t *testing.T) {
	t.Run("Key is canonical", func(t *testing.T) {
		// Given: two equal positions built differently
		a := NewPosition(-3, 7)
		b := Position{X: -3, Y: 7}

		// Then: they share the key
		assert.Equal(t, "-3:7", a.Key())
		assert.Equal(t, a.Key(), b.Key())
		assert.Equal(t, a, b)
	})

	t.Run("Serializes as x and y", func(t *testing.T) {
		// When: marshaling a position
		data, err := json.Marshal(NewPosition(1, -2))

		// Then: the wire form is used
		require.NoError(t, err)
		assert.JSONEq(t, `{"x":1,"y":-2}`, string(data))
	})

	t.Run("Add and Neg", func(t *testing.T) {
		// When: stepping from (2, 2) in the negated (1, -1) direction
		pos := NewPosition(2, 2).Add(NewPosition(1, -1).Neg())

		// Then: the step lands on (1, 3)
		assert.Equal(t, NewPosition(1, 3), pos)
	})
}

func TestMark(t *testing.T) {
	t.Run("Opponent", func(t *testing.T) {
		assert.Equal(t, MarkO, MarkX.Opponent())
		assert.Equal(t, MarkX, MarkO.Opponent())
	})

	t.Run("ParseMark rejects unknown marks", func(t *testing.T) {
		// When: parsing a foreign mark
		_, err := ParseMark("Z")

		// Then: ErrInvalidMark is returned
		require.ErrorIs(t, err, ErrInvalidMark)
	})
}

func TestBoard_Place(t *testing.T) {
	t.Run("Records the position under the mark", func(t *testing.T) {
		// Given: an empty board
		board := NewBoard()

		// When: X is placed at (1, 1)
		err := board.Place(MarkX, NewPosition(1, 1))

		// Then: X owns the cell
		require.NoError(t, err)
		owner, ok := board.Owner("1:1")
		assert.True(t, ok)
		assert.Equal(t, MarkX, owner)
		assert.Equal(t, 1, board.Count(MarkX))
		assert.Equal(t, 0, board.Count(MarkO))
	})

	t.Run("A cell is never claimed twice", func(t *testing.T) {
		// Given: X at (1, 1)
		board := NewBoard()
		require.NoError(t, board.Place(MarkX, NewPosition(1, 1)))

		// When: O claims the same cell
		err := board.Place(MarkO, NewPosition(1, 1))

		// Then: ErrCellOccupied is returned and X keeps the cell
		require.ErrorIs(t, err, ErrCellOccupied)
		assert.True(t, board.Has(MarkX, "1:1"))
		assert.False(t, board.Has(MarkO, "1:1"))
	})

	t.Run("Placing the same mark again is a no-op", func(t *testing.T) {
		// Given: X at (1, 1)
		board := NewBoard()
		require.NoError(t, board.Place(MarkX, NewPosition(1, 1)))

		// When: X is placed there again
		err := board.Place(MarkX, NewPosition(1, 1))

		// Then: nothing changes
		require.NoError(t, err)
		assert.Equal(t, 1, board.Count(MarkX))
	})

	t.Run("Invalid mark", func(t *testing.T) {
		// When: placing an unknown mark
		err := NewBoard().Place(Mark("?"), NewPosition(0, 0))

		// Then: ErrInvalidMark is returned
		require.ErrorIs(t, err, ErrInvalidMark)
	})
}

func TestNewBoardFromScan(t *testing.T) {
	t.Run("Builds both marks", func(t *testing.T) {
		// When: building a board from a snapshot
		board, err := NewBoardFromScan(
			[]Position{{X: 2, Y: 0}, {X: 0, Y: 0}},
			[]Position{{X: 1, Y: 1}},
		)

		// Then: positions are sorted per mark
		require.NoError(t, err)
		assert.Equal(t, []Position{{X: 0, Y: 0}, {X: 2, Y: 0}}, board.Positions(MarkX))
		assert.Equal(t, []Position{{X: 1, Y: 1}}, board.Positions(MarkO))
		assert.False(t, board.Empty())
	})

	t.Run("Rejects a cell claimed by both marks", func(t *testing.T) {
		// When: X and O share a cell in the snapshot
		_, err := NewBoardFromScan([]Position{{X: 0, Y: 0}}, []Position{{X: 0, Y: 0}})

		// Then: ErrCellOccupied is returned
		require.ErrorIs(t, err, ErrCellOccupied)
	})
}

func TestBoard_Clone(t *testing.T) {
	// Given: a board with one mark
	board := NewBoard()
	require.NoError(t, board.Place(MarkO, NewPosition(0, 0)))

	// When: the clone is extended
	clone := board.Clone()
	require.NoError(t, clone.Place(MarkX, NewPosition(1, 0)))

	// Then: the source board keeps its cells
	assert.Equal(t, 0, board.Count(MarkX))
	assert.Equal(t, 1, clone.Count(MarkX))
	assert.True(t, clone.Has(MarkO, "0:0"))
}

func TestTurn(t *testing.T) {
	t.Run("MyTurn when the server waits for the bot", func(t *testing.T) {
		assert.True(t, Turn{Sign: MarkX, WaitingFor: MarkX}.MyTurn())
		assert.False(t, Turn{Sign: MarkX, WaitingFor: MarkO}.MyTurn())
		assert.False(t, Turn{Sign: MarkX}.MyTurn())
		assert.False(t, Turn{}.MyTurn())
	})

	t.Run("Observe expects the other mark next", func(t *testing.T) {
		// Given: the bot plays O and X is expected
		turn := Turn{Sign: MarkO, WaitingFor: MarkX}

		// When: X plays
		turn = turn.Observe(MarkX)

		// Then: O is expected and it is the bot's turn
		assert.Equal(t, MarkO, turn.WaitingFor)
		assert.True(t, turn.MyTurn())

		// When: O plays
		turn = turn.Observe(MarkO)

		// Then: X is expected again
		assert.Equal(t, MarkX, turn.WaitingFor)
		assert.False(t, turn.MyTurn())
	})
}
