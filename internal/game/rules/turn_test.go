package rules

import (
	"testing"

	apperrors "github.com/J-Double-J/deckForge-sub001/internal/errors"
)

func TestTurnHandlerRotation(t *testing.T) {
	tests := []struct {
		name   string
		rotate func(th *TurnHandler)
		want   []int
	}{
		{name: "clockwise", rotate: (*TurnHandler).ShiftClockwise, want: []int{1, 2, 3, 4, 0}},
		{name: "counter clockwise", rotate: (*TurnHandler).ShiftCounterClockwise, want: []int{4, 0, 1, 2, 3}},
		{
			name: "round trip",
			rotate: func(th *TurnHandler) {
				th.ShiftClockwise()
				th.ShiftCounterClockwise()
			},
			want: []int{0, 1, 2, 3, 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th, err := NewTurnHandler([]int{0, 1, 2, 3, 4})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.rotate(th)
			got := th.Order()
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("expected %v, got %v", tt.want, got)
				}
			}
		})
	}
}

func TestTurnHandlerSingleRotation(t *testing.T) {
	th, err := NewTurnHandler([]int{7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	th.ShiftClockwise()
	th.ShiftCounterClockwise()
	if th.Current() != 7 || th.Len() != 1 {
		t.Fatalf("single player order changed: %v", th.Order())
	}
}

func TestTurnHandlerAdvanceWraps(t *testing.T) {
	th, err := NewTurnHandler([]int{3, 1, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if th.Current() != 3 || th.TurnNumber() != 1 {
		t.Fatalf("expected player 3 on turn 1, got %s", th)
	}
	for _, want := range []int{1, 2, 3} {
		if got := th.Advance(); got != want {
			t.Fatalf("expected player %d, got %d", want, got)
		}
	}
	if th.TurnNumber() != 4 {
		t.Fatalf("expected turn 4 after wrap, got %d", th.TurnNumber())
	}
}

func TestTurnHandlerValidation(t *testing.T) {
	if _, err := NewTurnHandler(nil); !apperrors.IsCode(err, apperrors.CodeInvalidTurnOrder) {
		t.Fatalf("expected INVALID_TURN_ORDER for empty order, got %v", err)
	}
	if _, err := NewTurnHandler([]int{1, 2, 1}); !apperrors.IsCode(err, apperrors.CodeInvalidTurnOrder) {
		t.Fatalf("expected INVALID_TURN_ORDER for duplicate ids, got %v", err)
	}
}

func TestTurnHandlerOrderIsCopy(t *testing.T) {
	ids := []int{0, 1}
	th, _ := NewTurnHandler(ids)
	ids[0] = 9
	order := th.Order()
	order[1] = 9
	if th.Current() != 0 || th.Order()[1] != 1 {
		t.Fatalf("turn order leaked: %v", th.Order())
	}
}

func TestTurnHandlerResetKeepsTurnNumber(t *testing.T) {
	th, err := NewTurnHandler([]int{4, 5, 6})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	th.Advance()
	th.Advance()
	th.Reset()

	if th.Current() != 4 {
		t.Fatalf("expected player 4 after reset, got %s", th)
	}
	if th.TurnNumber() != 3 {
		t.Fatalf("expected turn 3 after reset, got %d", th.TurnNumber())
	}
}
