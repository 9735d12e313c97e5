package storage

import "context"

// CampaignStore defines per-campaign persistence. Load operations
// return (nil, nil) when the record does not exist.
type CampaignStore interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Campaign operations
	SaveCampaign(ctx context.Context, c *Campaign) error
	LoadCampaign(ctx context.Context, id string) (*Campaign, error)
	ListCampaigns(ctx context.Context) ([]*Campaign, error)
	DeleteCampaign(ctx context.Context, id string) (bool, error)

	// Character operations
	SaveCharacter(ctx context.Context, r *CharacterRecord) error
	LoadCharacter(ctx context.Context, id string) (*CharacterRecord, error)
	GetCampaignCharacter(ctx context.Context, campaignID string) (*CharacterRecord, error)

	// World element operations
	SaveWorldElement(ctx context.Context, r *WorldElementRecord) error
	LoadWorldElement(ctx context.Context, id string) (*WorldElementRecord, error)
	ListWorldElements(ctx context.Context, campaignID, elementType string) ([]*WorldElementRecord, error)

	// NPC operations
	SaveNPC(ctx context.Context, r *NPCRecord) error
	LoadNPC(ctx context.Context, id string) (*NPCRecord, error)
	ListNPCs(ctx context.Context, campaignID, locationID string) ([]*NPCRecord, error)

	// Quest operations
	SaveQuest(ctx context.Context, r *QuestRecord) error
	LoadQuest(ctx context.Context, id string) (*QuestRecord, error)
	ListQuests(ctx context.Context, campaignID, status string) ([]*QuestRecord, error)

	// Event operations. ListEvents returns most recent first.
	SaveEvent(ctx context.Context, r *EventRecord) error
	ListEvents(ctx context.Context, campaignID string, limit int) ([]*EventRecord, error)

	// Export and import
	ExportCampaign(ctx context.Context, campaignID string) (*CampaignExport, error)
	ImportCampaign(ctx context.Context, export *CampaignExport) (string, error)
}

// WorldState defines cross-campaign persistence for facts that outlive
// a single save file.
type WorldState interface {
	Ping(ctx context.Context) error
	Close() error

	// Faction operations
	GetFactionStanding(ctx context.Context, factionID string) (*FactionStanding, error)
	SetFactionStanding(ctx context.Context, s *FactionStanding) error
	AdjustFactionStanding(ctx context.Context, factionID, factionName string, delta int) (*FactionStanding, error)
	ListFactionStandings(ctx context.Context) ([]*FactionStanding, error)

	// NPC death operations
	RecordNPCDeath(ctx context.Context, d *NPCDeath) error
	IsNPCDead(ctx context.Context, npcName string) (bool, error)
	GetNPCDeath(ctx context.Context, npcName string) (*NPCDeath, error)
	ListNPCDeaths(ctx context.Context, limit int) ([]*NPCDeath, error)

	// World event operations
	RecordWorldEvent(ctx context.Context, e *WorldEvent) error
	ListWorldEvents(ctx context.Context, eventType string, limit int) ([]*WorldEvent, error)
	WorldHistorySummary(ctx context.Context, limit int) (string, error)

	// Export and import
	ExportAll(ctx context.Context) (*WorldStateExport, error)
	ImportAll(ctx context.Context, export *WorldStateExport) error
}
