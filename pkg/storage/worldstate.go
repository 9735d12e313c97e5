package storage

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Faction standing bounds.
const (
	MinStanding = -100
	MaxStanding = 100
)

// FactionStanding is reputation with a faction. Standing runs from
// -100 (hated) to +100 (revered) and persists across campaigns.
type FactionStanding struct {
	FactionID   string    `json:"faction_id"`
	FactionName string    `json:"faction_name"`
	Standing    int       `json:"standing"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NPCDeath records an NPC killed in some campaign. Deaths are
// world-level facts visible to every later campaign.
type NPCDeath struct {
	ID         string    `json:"id"`
	NPCName    string    `json:"npc_name"`
	NPCID      string    `json:"npc_id,omitempty"`
	Location   string    `json:"location"`
	Cause      string    `json:"cause"`
	CampaignID string    `json:"campaign_id"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewNPCDeath creates a death record with a fresh id and timestamp.
func NewNPCDeath(npcName, location, cause, campaignID, npcID string) *NPCDeath {
	return &NPCDeath{
		ID:         uuid.NewString(),
		NPCName:    npcName,
		NPCID:      npcID,
		Location:   location,
		Cause:      cause,
		CampaignID: campaignID,
		Timestamp:  time.Now().UTC(),
	}
}

// WorldEvent is a major event that outlives the campaign it happened in.
type WorldEvent struct {
	ID          string          `json:"id"`
	EventType   string          `json:"event_type"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Location    string          `json:"location,omitempty"`
	CampaignID  string          `json:"campaign_id"`
	Timestamp   time.Time       `json:"timestamp"`
	Data        json.RawMessage `json:"data,omitempty"`
}

// NewWorldEvent creates a world event with a fresh id and timestamp.
func NewWorldEvent(eventType, title, description, campaignID, location string, data json.RawMessage) *WorldEvent {
	return &WorldEvent{
		ID:          uuid.NewString(),
		EventType:   eventType,
		Title:       title,
		Description: description,
		Location:    location,
		CampaignID:  campaignID,
		Timestamp:   time.Now().UTC(),
		Data:        data,
	}
}

// WorldStateExport is the portable envelope for the full world state.
type WorldStateExport struct {
	Factions    []*FactionStanding `json:"factions"`
	NPCDeaths   []*NPCDeath        `json:"npc_deaths"`
	WorldEvents []*WorldEvent      `json:"world_events"`
}
