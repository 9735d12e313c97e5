package npc

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Disposition is an NPC's attitude toward the player. It is derived from the
// cumulative reputation in the NPC's memory, never set directly.
type Disposition string

const (
	Hostile    Disposition = "hostile"
	Unfriendly Disposition = "unfriendly"
	Neutral    Disposition = "neutral"
	Friendly   Disposition = "friendly"
	Allied     Disposition = "allied"
)

func (d Disposition) IsValid() bool {
	switch d {
	case Hostile, Unfriendly, Neutral, Friendly, Allied:
		return true
	}
	return false
}

// DispositionForReputation maps a cumulative reputation total into the five
// disposition bands.
func DispositionForReputation(total int) Disposition {
	switch {
	case total <= -10:
		return Hostile
	case total <= -5:
		return Unfriendly
	case total < 5:
		return Neutral
	case total < 10:
		return Friendly
	default:
		return Allied
	}
}

// MaxTraits caps personality traits per NPC.
const MaxTraits = 2

// NPC is a non-player character.
type NPC struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Race        string      `json:"race"`
	Occupation  string      `json:"occupation"`
	Traits      []string    `json:"traits,omitempty"`
	Motivation  string      `json:"motivation,omitempty"`
	Secret      string      `json:"secret,omitempty"`
	Disposition Disposition `json:"disposition"`
	Memory      Memory      `json:"memory"`
}

// Spec seeds NPC generation. Zero values fall back to defaults.
type Spec struct {
	Name        string
	Race        string
	Occupation  string
	Traits      []string
	Motivation  string
	Secret      string
	Disposition Disposition
}

// Generate creates a new NPC from a spec, trimming traits to the cap.
func Generate(spec Spec) *NPC {
	if spec.Name == "" {
		spec.Name = "Unnamed Stranger"
	}
	if spec.Race == "" {
		spec.Race = "human"
	}
	if spec.Occupation == "" {
		spec.Occupation = "commoner"
	}
	if len(spec.Traits) == 0 {
		spec.Traits = []string{"curious", "cautious"}
	}
	if spec.Motivation == "" {
		spec.Motivation = "seeking a better life"
	}
	if spec.Disposition == "" {
		spec.Disposition = Neutral
	}
	if len(spec.Traits) > MaxTraits {
		spec.Traits = spec.Traits[:MaxTraits]
	}

	return &NPC{
		ID:          uuid.NewString(),
		Name:        spec.Name,
		Race:        spec.Race,
		Occupation:  spec.Occupation,
		Traits:      spec.Traits,
		Motivation:  spec.Motivation,
		Secret:      spec.Secret,
		Disposition: spec.Disposition,
	}
}

// UpdateDisposition records a reputation change and recomputes disposition
// from the cumulative total. Returns the new disposition.
func (n *NPC) UpdateDisposition(change int, reason string) Disposition {
	n.Memory.AddReputationChange(change, reason)
	n.Disposition = DispositionForReputation(n.Memory.TotalReputation())
	return n.Disposition
}

// RelationshipSummary is a compact one-line view of the NPC's relationship
// with the player, for UI and prompt context.
func (n *NPC) RelationshipSummary() string {
	parts := []string{fmt.Sprintf("%s (%s)", n.Name, n.Disposition)}

	if total := n.Memory.TotalReputation(); total != 0 {
		parts = append(parts, fmt.Sprintf("Reputation: %+d", total))
	}
	if unfulfilled := n.Memory.UnfulfilledPromises(); len(unfulfilled) > 0 {
		parts = append(parts, fmt.Sprintf("Unfulfilled promises: %d", len(unfulfilled)))
	}
	if len(n.Memory.Gifts) > 0 {
		parts = append(parts, fmt.Sprintf("Gifts received: %d", len(n.Memory.Gifts)))
	}
	if len(n.Memory.Conversations) > 0 {
		parts = append(parts, fmt.Sprintf("Conversations: %d", len(n.Memory.Conversations)))
	}

	return strings.Join(parts, " | ")
}
