package player

import (
	apperrors "github.com/J-Double-J/deckForge-sub001/internal/errors"
)

// ChipsResource is the resource name of a Chips stack.
const ChipsResource = "chips"

// Bettor is the capability of players that can wager.
type Bettor interface {
	Balance() int
	Bet(amount int) error
	Earn(amount int)
}

// Wallet is the capability of players that can pay for cards.
type Wallet interface {
	Balance() int
	Spend(amount int) error
}

// Chips is a stack of betting chips held as a player resource.
type Chips struct {
	balance int
	wagered int
}

// NewChips creates a stack with the given balance.
func NewChips(balance int) *Chips {
	return &Chips{balance: balance}
}

// Name implements Collection.
func (c *Chips) Name() string { return ChipsResource }

// Size implements Collection.
func (c *Chips) Size() int { return c.balance }

// Balance returns the chips not yet wagered.
func (c *Chips) Balance() int { return c.balance }

// Wagered returns the chips bet since the last Settle.
func (c *Chips) Wagered() int { return c.wagered }

// Bet moves amount from the balance into the current wager.
func (c *Chips) Bet(amount int) error {
	if amount <= 0 {
		return apperrors.Newf(apperrors.CodeInvalidConfig, "bet must be positive, got %d", amount)
	}
	if amount > c.balance {
		return apperrors.Newf(apperrors.CodeInsufficientChips, "bet of %d exceeds balance %d", amount, c.balance)
	}
	c.balance -= amount
	c.wagered += amount
	return nil
}

// Spend removes amount from the balance without wagering it.
func (c *Chips) Spend(amount int) error {
	if amount < 0 {
		return apperrors.Newf(apperrors.CodeInvalidConfig, "spend must be >= 0, got %d", amount)
	}
	if amount > c.balance {
		return apperrors.Newf(apperrors.CodeInsufficientChips, "cost of %d exceeds balance %d", amount, c.balance)
	}
	c.balance -= amount
	return nil
}

// Earn adds chips to the balance.
func (c *Chips) Earn(amount int) {
	c.balance += amount
}

// Settle clears the current wager and returns it.
func (c *Chips) Settle() int {
	w := c.wagered
	c.wagered = 0
	return w
}
