package storage

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Campaign is a campaign save file.
type Campaign struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	CharacterID       string    `json:"character_id,omitempty"`
	CurrentLocationID string    `json:"current_location_id,omitempty"`
	PlaytimeSeconds   int       `json:"playtime_seconds"`
}

// NewCampaign creates a campaign with a fresh id and timestamps.
func NewCampaign(name string) *Campaign {
	now := time.Now().UTC()
	return &Campaign{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CharacterRecord is a persisted character. Data holds the full
// character document as JSON.
type CharacterRecord struct {
	ID         string          `json:"id"`
	CampaignID string          `json:"campaign_id"`
	Name       string          `json:"name"`
	Data       json.RawMessage `json:"data"`
}

// WorldElementRecord is a persisted world element.
type WorldElementRecord struct {
	ID          string          `json:"id"`
	CampaignID  string          `json:"campaign_id"`
	ElementType string          `json:"element_type"`
	Name        string          `json:"name"`
	Data        json.RawMessage `json:"data"`
}

// NPCRecord is a persisted NPC.
type NPCRecord struct {
	ID         string          `json:"id"`
	CampaignID string          `json:"campaign_id"`
	Name       string          `json:"name"`
	LocationID string          `json:"location_id,omitempty"`
	Data       json.RawMessage `json:"data"`
}

// QuestRecord is a persisted quest.
type QuestRecord struct {
	ID         string          `json:"id"`
	CampaignID string          `json:"campaign_id"`
	Title      string          `json:"title"`
	Status     string          `json:"status"`
	Data       json.RawMessage `json:"data"`
}

// EventRecord is a persisted history event.
type EventRecord struct {
	ID          string          `json:"id"`
	CampaignID  string          `json:"campaign_id"`
	Timestamp   time.Time       `json:"timestamp"`
	EventType   string          `json:"event_type"`
	Description string          `json:"description"`
	Data        json.RawMessage `json:"data,omitempty"`
}

// NewEventRecord creates an event with a fresh id and timestamp.
func NewEventRecord(campaignID, eventType, description string, data json.RawMessage) *EventRecord {
	return &EventRecord{
		ID:          uuid.NewString(),
		CampaignID:  campaignID,
		Timestamp:   time.Now().UTC(),
		EventType:   eventType,
		Description: description,
		Data:        data,
	}
}

// CampaignExport is the portable envelope for a full campaign.
type CampaignExport struct {
	Campaign      *Campaign             `json:"campaign"`
	Characters    []*CharacterRecord    `json:"characters"`
	WorldElements []*WorldElementRecord `json:"world_elements"`
	NPCs          []*NPCRecord          `json:"npcs"`
	Quests        []*QuestRecord        `json:"quests"`
	Events        []*EventRecord        `json:"events"`
}
