package cards

import "fmt"

// Trait is a behaviour unit attached to exactly one card. A trait opts into
// reactions by also implementing any of PlayReactor, PlaceReactor,
// RemovalReactor or DetachReactor.
type Trait interface {
	Name() string
}

// TraitContext is handed to every reaction hook.
type TraitContext struct {
	Card *Card
	// Placement is the card's table placement; Placed is false when the card
	// is not on the table (for example when played straight from a hand).
	Placement Placement
	Placed    bool
	// PlayerID is the acting player for play events, NoOwner otherwise.
	PlayerID int
}

// PlayReactor reacts to the card being played by a player.
type PlayReactor interface {
	OnPlay(ctx TraitContext) error
}

// PlaceReactor reacts to the card being placed on the table.
type PlaceReactor interface {
	OnPlace(ctx TraitContext) error
}

// RemovalReactor reacts to the card being removed from the table.
type RemovalReactor interface {
	OnCardRemoved(ctx TraitContext) error
}

// DetachReactor reacts to the trait itself being detached.
type DetachReactor interface {
	OnTraitRemoved(ctx TraitContext) error
}

// Attacher receives the back-reference to its card on attach.
type Attacher interface {
	Attached(c *Card)
}

// Releaser drops subscriptions held outside the card. The card calls it after
// OnTraitRemoved so a detached trait never runs against a card out of play.
type Releaser interface {
	Release()
}

// ValueModifier contributes to Card.EffectiveValue.
type ValueModifier interface {
	ValueBonus() int
}

// AttachTrait appends t to the card's traits.
func (c *Card) AttachTrait(t Trait) {
	if t == nil {
		return
	}
	c.traits = append(c.traits, t)
	if a, ok := t.(Attacher); ok {
		a.Attached(c)
	}
}

// DetachTrait removes the first trait with the given name, runs its
// OnTraitRemoved hook and releases it. It reports whether a trait was found.
func (c *Card) DetachTrait(name string) (bool, error) {
	for i, t := range c.traits {
		if t.Name() != name {
			continue
		}
		c.traits = append(c.traits[:i], c.traits[i+1:]...)
		var err error
		if r, ok := t.(DetachReactor); ok {
			if hookErr := r.OnTraitRemoved(c.context(NoOwner)); hookErr != nil {
				err = fmt.Errorf("trait %s on card %s: %w", t.Name(), c.ID, hookErr)
			}
		}
		if r, ok := t.(Releaser); ok {
			r.Release()
		}
		return true, err
	}
	return false, nil
}

// DetachAll detaches every trait in attachment order.
func (c *Card) DetachAll() error {
	for len(c.traits) > 0 {
		if _, err := c.DetachTrait(c.traits[0].Name()); err != nil {
			return err
		}
	}
	return nil
}

// Traits returns the attached traits in attachment order.
func (c *Card) Traits() []Trait {
	result := make([]Trait, len(c.traits))
	copy(result, c.traits)
	return result
}

// HasTrait reports whether a trait with the given name is attached.
func (c *Card) HasTrait(name string) bool {
	for _, t := range c.traits {
		if t.Name() == name {
			return true
		}
	}
	return false
}

// NotifyPlayed runs OnPlay on every trait in attachment order. The first
// failing trait aborts the rest.
func (c *Card) NotifyPlayed(playerID int) error {
	ctx := c.context(playerID)
	for _, t := range c.Traits() {
		if r, ok := t.(PlayReactor); ok {
			if err := r.OnPlay(ctx); err != nil {
				return fmt.Errorf("trait %s on card %s: %w", t.Name(), c.ID, err)
			}
		}
	}
	return nil
}

// NotifyPlaced runs OnPlace on every trait in attachment order.
func (c *Card) NotifyPlaced() error {
	ctx := c.context(NoOwner)
	for _, t := range c.Traits() {
		if r, ok := t.(PlaceReactor); ok {
			if err := r.OnPlace(ctx); err != nil {
				return fmt.Errorf("trait %s on card %s: %w", t.Name(), c.ID, err)
			}
		}
	}
	return nil
}

// NotifyRemoved runs OnCardRemoved on every trait in attachment order. from
// is the placement the card was removed from.
func (c *Card) NotifyRemoved(from Placement) error {
	ctx := TraitContext{Card: c, Placement: from, Placed: true, PlayerID: NoOwner}
	for _, t := range c.Traits() {
		if r, ok := t.(RemovalReactor); ok {
			if err := r.OnCardRemoved(ctx); err != nil {
				return fmt.Errorf("trait %s on card %s: %w", t.Name(), c.ID, err)
			}
		}
	}
	return nil
}

func (c *Card) context(playerID int) TraitContext {
	ctx := TraitContext{Card: c, PlayerID: playerID}
	if c.placement != nil {
		ctx.Placement = *c.placement
		ctx.Placed = true
	}
	return ctx
}

// Capability returns the first attached trait implementing T.
func Capability[T any](c *Card) (T, bool) {
	for _, t := range c.traits {
		if v, ok := t.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// HasCapability reports whether any attached trait implements T.
func HasCapability[T any](c *Card) bool {
	_, ok := Capability[T](c)
	return ok
}
