package state

import (
	"fmt"

	"github.com/jwebster45206/reverie/pkg/character"
	"github.com/jwebster45206/reverie/pkg/combat"
	"github.com/jwebster45206/reverie/pkg/npc"
	"github.com/jwebster45206/reverie/pkg/quest"
	"github.com/jwebster45206/reverie/pkg/storage"
	"github.com/jwebster45206/reverie/pkg/world"
)

// GameState is the complete state of a play session.
type GameState struct {
	Campaign    *storage.Campaign    `json:"campaign"`
	Character   *character.Character `json:"character"`
	Location    *world.Location      `json:"location,omitempty"`
	NPCsPresent []*npc.NPC           `json:"npcs_present,omitempty"`
	ActiveQuest *quest.Quest         `json:"active_quest,omitempty"`
	CombatState *combat.State        `json:"combat_state,omitempty"`
	History     []*HistoryEntry      `json:"history,omitempty"`

	DiscoveredLocations []string       `json:"discovered_locations,omitempty"`
	KnownNPCs           []string       `json:"known_npcs,omitempty"`
	Flags               map[string]any `json:"flags,omitempty"`
}

// New creates a game state for a fresh campaign. The starting location,
// when given, is marked discovered and an opening narration entry is
// written to history.
func New(campaign *storage.Campaign, c *character.Character, location *world.Location) *GameState {
	gs := &GameState{
		Campaign:  campaign,
		Character: c,
		Location:  location,
		Flags:     map[string]any{},
	}

	var locationID any
	if location != nil {
		gs.DiscoveredLocations = append(gs.DiscoveredLocations, location.ID)
		locationID = location.ID
	}

	gs.AddHistory(EventNarration,
		fmt.Sprintf("%s begins their adventure.", c.Name),
		map[string]any{"location_id": locationID})
	return gs
}

// InCombat reports whether combat is underway.
func (gs *GameState) InCombat() bool {
	return gs.CombatState != nil && gs.CombatState.Status == combat.StatusOngoing
}

// HasActiveQuest reports whether the player has an active quest.
func (gs *GameState) HasActiveQuest() bool {
	return gs.ActiveQuest != nil && gs.ActiveQuest.Status == quest.StatusActive
}

// AddHistory appends an event to the game history and returns the entry.
func (gs *GameState) AddHistory(eventType, description string, data map[string]any) *HistoryEntry {
	entry := NewHistoryEntry(eventType, description, data)
	gs.History = append(gs.History, entry)
	return entry
}

// RecentHistory returns the most recent count history entries, oldest
// first.
func (gs *GameState) RecentHistory(count int) []*HistoryEntry {
	if count <= 0 || len(gs.History) == 0 {
		return nil
	}
	if count > len(gs.History) {
		count = len(gs.History)
	}
	return gs.History[len(gs.History)-count:]
}

// HistoryByType returns all history entries of the given event type.
func (gs *GameState) HistoryByType(eventType string) []*HistoryEntry {
	var out []*HistoryEntry
	for _, h := range gs.History {
		if h.EventType == eventType {
			out = append(out, h)
		}
	}
	return out
}

// SetActiveQuest assigns the active quest. Only one quest may be active
// at a time; the current quest must reach a terminal status first.
func (gs *GameState) SetActiveQuest(q *quest.Quest) error {
	if gs.HasActiveQuest() && q != nil && q.ID != gs.ActiveQuest.ID {
		return fmt.Errorf("quest %q is still active", gs.ActiveQuest.Title)
	}
	gs.ActiveQuest = q
	return nil
}

// MoveTo changes the current location, marking it discovered and
// recording the transition. NPCs present are scene-scoped and cleared.
func (gs *GameState) MoveTo(loc *world.Location) {
	prev := ""
	if gs.Location != nil {
		prev = gs.Location.ID
	}
	gs.Location = loc
	gs.NPCsPresent = nil

	if loc == nil {
		return
	}
	if !gs.HasDiscovered(loc.ID) {
		gs.DiscoveredLocations = append(gs.DiscoveredLocations, loc.ID)
	}
	gs.AddHistory(EventLocationChange,
		fmt.Sprintf("Traveled to %s.", loc.Name),
		map[string]any{"from": prev, "to": loc.ID})
}

// HasDiscovered reports whether a location id has been discovered.
func (gs *GameState) HasDiscovered(locationID string) bool {
	for _, id := range gs.DiscoveredLocations {
		if id == locationID {
			return true
		}
	}
	return false
}

// MeetNPC marks an NPC as known and present in the scene.
func (gs *GameState) MeetNPC(n *npc.NPC) {
	for _, present := range gs.NPCsPresent {
		if present.ID == n.ID {
			return
		}
	}
	gs.NPCsPresent = append(gs.NPCsPresent, n)
	for _, id := range gs.KnownNPCs {
		if id == n.ID {
			return
		}
	}
	gs.KnownNPCs = append(gs.KnownNPCs, n.ID)
}
