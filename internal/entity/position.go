package entity

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	MarkX Mark = "X"
	MarkO Mark = "O"
)

var ErrInvalidMark = errors.New("invalid mark")

// Mark - symbol that identifies a player on the board.
type Mark string

func ParseMark(value string) (Mark, error) {
	mark := Mark(value)
	if !mark.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidMark, value)
	}

	return mark, nil
}

func (that Mark) Valid() bool {
	return that == MarkX || that == MarkO
}

// Opponent - returns the mark of the other player.
func (that Mark) Opponent() Mark {
	if that == MarkX {
		return MarkO
	}
	return MarkX
}

// Position - a cell of the unbounded grid.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func NewPosition(x, y int) Position {
	return Position{X: x, Y: y}
}

// Key - canonical string form of the position, used to index the board.
func (that Position) Key() string {
	return strconv.Itoa(that.X) + ":" + strconv.Itoa(that.Y)
}

func (that Position) Add(other Position) Position {
	return Position{X: that.X + other.X, Y: that.Y + other.Y}
}

func (that Position) Neg() Position {
	return Position{X: -that.X, Y: -that.Y}
}

// Less - orders positions by x, then by y.
func (that Position) Less(other Position) bool {
	if that.X != other.X {
		return that.X < other.X
	}
	return that.Y < other.Y
}

func (that Position) String() string {
	return fmt.Sprintf("(%d, %d)", that.X, that.Y)
}
