package state

import (
	"time"

	"github.com/google/uuid"
)

// Event types for history tracking.
const (
	EventNarration      = "narration"
	EventPlayerAction   = "player_action"
	EventNPCDialogue    = "npc_dialogue"
	EventCombatStart    = "combat_start"
	EventCombatEnd      = "combat_end"
	EventQuestStart     = "quest_start"
	EventQuestComplete  = "quest_complete"
	EventQuestFail      = "quest_fail"
	EventLocationChange = "location_change"
	EventItemAcquired   = "item_acquired"
	EventItemUsed       = "item_used"
	EventLevelUp        = "level_up"
	EventDiscovery      = "discovery"
)

var eventTypes = map[string]bool{
	EventNarration:      true,
	EventPlayerAction:   true,
	EventNPCDialogue:    true,
	EventCombatStart:    true,
	EventCombatEnd:      true,
	EventQuestStart:     true,
	EventQuestComplete:  true,
	EventQuestFail:      true,
	EventLocationChange: true,
	EventItemAcquired:   true,
	EventItemUsed:       true,
	EventLevelUp:        true,
	EventDiscovery:      true,
}

// IsValidEventType reports whether s is a known event type.
func IsValidEventType(s string) bool {
	return eventTypes[s]
}

// HistoryEntry is a single entry in the game history.
type HistoryEntry struct {
	ID          string         `json:"id"`
	Timestamp   time.Time      `json:"timestamp"`
	EventType   string         `json:"event_type"`
	Description string         `json:"description"`
	Data        map[string]any `json:"data,omitempty"`
}

// NewHistoryEntry creates a history entry with a fresh id and timestamp.
func NewHistoryEntry(eventType, description string, data map[string]any) *HistoryEntry {
	return &HistoryEntry{
		ID:          uuid.NewString(),
		Timestamp:   time.Now().UTC(),
		EventType:   eventType,
		Description: description,
		Data:        data,
	}
}
