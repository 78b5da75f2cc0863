package cards

import (
	"fmt"

	"github.com/google/uuid"
)

// Facing is which side of a card is visible.
type Facing int

const (
	FaceDown Facing = iota
	FaceUp
)

func (f Facing) String() string {
	if f == FaceUp {
		return "FACE_UP"
	}
	return "FACE_DOWN"
}

// ZoneType partitions the table.
type ZoneType int

const (
	ZoneNeutral ZoneType = iota
	ZonePlayer
)

var zoneNames = map[ZoneType]string{
	ZoneNeutral: "NEUTRAL",
	ZonePlayer:  "PLAYER",
}

func (z ZoneType) String() string {
	if name, ok := zoneNames[z]; ok {
		return name
	}
	return fmt.Sprintf("ZONE_%d", int(z))
}

// Placement locates a card placed on the table.
type Placement struct {
	Zone ZoneType
	Area int
}

func (p Placement) String() string {
	return fmt.Sprintf("%s/%d", p.Zone, p.Area)
}

// NoOwner is the owner id of a card no player owns.
const NoOwner = -1

// Card is a single playing card. Value and Suit are opaque to the engine;
// behaviour comes from attached traits.
type Card struct {
	ID    string
	Name  string
	Value int
	Suit  string

	facing    Facing
	owner     int
	placement *Placement
	traits    []Trait
}

// NewCard creates a face-down, unowned card with a fresh id.
func NewCard(name string, value int, suit string) *Card {
	return &Card{
		ID:    uuid.NewString(),
		Name:  name,
		Value: value,
		Suit:  suit,
		owner: NoOwner,
	}
}

func (c *Card) String() string {
	if c.Suit == "" {
		return c.Name
	}
	return fmt.Sprintf("%s of %s", c.Name, c.Suit)
}

// Facing returns the visible side.
func (c *Card) Facing() Facing {
	return c.facing
}

// IsFaceUp reports whether the card is face up.
func (c *Card) IsFaceUp() bool {
	return c.facing == FaceUp
}

// Flip turns the card over and returns the new facing.
func (c *Card) Flip() Facing {
	if c.facing == FaceUp {
		c.facing = FaceDown
	} else {
		c.facing = FaceUp
	}
	return c.facing
}

// SetFacing forces a facing.
func (c *Card) SetFacing(f Facing) {
	c.facing = f
}

// Owner returns the owning player id, if any. The card does not manage the
// player's lifetime.
func (c *Card) Owner() (int, bool) {
	return c.owner, c.owner != NoOwner
}

// SetOwner records the owning player.
func (c *Card) SetOwner(playerID int) {
	c.owner = playerID
}

// ClearOwner removes the owner reference.
func (c *Card) ClearOwner() {
	c.owner = NoOwner
}

// Placement returns where the card sits on the table, if anywhere.
func (c *Card) Placement() (Placement, bool) {
	if c.placement == nil {
		return Placement{}, false
	}
	return *c.placement, true
}

// Place records a table placement. It does not fire trait hooks; the table
// does that once the card is actually stored.
func (c *Card) Place(p Placement) {
	c.placement = &p
}

// ClearPlacement forgets the table placement.
func (c *Card) ClearPlacement() {
	c.placement = nil
}

// EffectiveValue is Value plus every ValueModifier bonus from attached traits.
func (c *Card) EffectiveValue() int {
	total := c.Value
	for _, t := range c.traits {
		if vm, ok := t.(ValueModifier); ok {
			total += vm.ValueBonus()
		}
	}
	return total
}
