package rules

import (
	"fmt"

	apperrors "github.com/J-Double-J/deckForge-sub001/internal/errors"
)

// TurnHandler tracks the circular turn order and whose turn it is.
type TurnHandler struct {
	order      []int
	cursor     int
	turnNumber int
}

// NewTurnHandler creates a turn order over ids, starting with the first.
// The order must be non-empty and free of duplicates.
func NewTurnHandler(ids []int) (*TurnHandler, error) {
	if len(ids) == 0 {
		return nil, apperrors.New(apperrors.CodeInvalidTurnOrder, "turn order must contain at least one player")
	}
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return nil, apperrors.Newf(apperrors.CodeInvalidTurnOrder, "player %d appears twice in turn order", id)
		}
		seen[id] = struct{}{}
	}
	return &TurnHandler{
		order:      append([]int(nil), ids...),
		turnNumber: 1,
	}, nil
}

// Order returns the current order.
func (th *TurnHandler) Order() []int {
	return append([]int(nil), th.order...)
}

// Len returns the number of players in the order.
func (th *TurnHandler) Len() int {
	return len(th.order)
}

// Current returns the player whose turn it is.
func (th *TurnHandler) Current() int {
	return th.order[th.cursor]
}

// Advance passes the turn to the next player and returns them.
func (th *TurnHandler) Advance() int {
	th.cursor = (th.cursor + 1) % len(th.order)
	th.turnNumber++
	return th.Current()
}

// Reset moves the turn back to the head of the order. The turn number
// keeps counting.
func (th *TurnHandler) Reset() {
	th.cursor = 0
}

// TurnNumber returns the current turn number (1-based).
func (th *TurnHandler) TurnNumber() int {
	return th.turnNumber
}

// ShiftClockwise rotates the order left: the head moves to the tail.
func (th *TurnHandler) ShiftClockwise() {
	head := th.order[0]
	copy(th.order, th.order[1:])
	th.order[len(th.order)-1] = head
}

// ShiftCounterClockwise rotates the order right: the tail moves to the head.
func (th *TurnHandler) ShiftCounterClockwise() {
	tail := th.order[len(th.order)-1]
	copy(th.order[1:], th.order[:len(th.order)-1])
	th.order[0] = tail
}

func (th *TurnHandler) String() string {
	return fmt.Sprintf("turn %d, order %v, current %d", th.turnNumber, th.order, th.Current())
}
