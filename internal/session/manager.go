package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/reverie/internal/logger"
	"github.com/jwebster45206/reverie/pkg/character"
	"github.com/jwebster45206/reverie/pkg/combat"
	"github.com/jwebster45206/reverie/pkg/npc"
	"github.com/jwebster45206/reverie/pkg/quest"
	"github.com/jwebster45206/reverie/pkg/state"
	"github.com/jwebster45206/reverie/pkg/storage"
	"github.com/jwebster45206/reverie/pkg/world"
)

// DefaultEventLimit bounds how much history a load pulls back.
const DefaultEventLimit = 100

// eventScanLimit bounds the persisted-id set used to diff history on save.
const eventScanLimit = 1000

// Cache is an optional fast path for resuming a session. A nil cache
// or a cache miss falls back to the durable store.
type Cache interface {
	Put(ctx context.Context, gs *state.GameState) error
	Get(ctx context.Context, campaignID string) (*state.GameState, error)
	Delete(ctx context.Context, campaignID string) error
}

// Manager flattens game state into the campaign store on save and
// reconstructs it on load. World-level facts (deaths, faction shifts,
// major events) are forwarded to the world-state store.
type Manager struct {
	campaigns  storage.CampaignStore
	world      storage.WorldState
	cache      Cache
	logger     *slog.Logger
	eventLimit int

	// lastSave anchors playtime accumulation for the active session.
	lastSave time.Time
}

// NewManager creates a session manager. cache may be nil.
func NewManager(campaigns storage.CampaignStore, worldState storage.WorldState, cache Cache, logger *slog.Logger, eventLimit int) *Manager {
	if eventLimit <= 0 {
		eventLimit = DefaultEventLimit
	}
	return &Manager{
		campaigns:  campaigns,
		world:      worldState,
		cache:      cache,
		logger:     logger,
		eventLimit: eventLimit,
	}
}

// Save flattens the session into the campaign store. In-memory state is
// never mutated on failure; campaign bookkeeping (location pointer,
// character id, playtime) is staged on a copy and applied only after
// the campaign row is written.
func (m *Manager) Save(ctx context.Context, gs *state.GameState) error {
	campaign := *gs.Campaign

	campaign.CurrentLocationID = ""
	if gs.Location != nil {
		campaign.CurrentLocationID = gs.Location.ID
	}
	if !m.lastSave.IsZero() {
		campaign.PlaytimeSeconds += int(time.Since(m.lastSave).Seconds())
	}

	// First save mints the character record id onto the campaign.
	if campaign.CharacterID == "" {
		campaign.CharacterID = uuid.NewString()
	}

	if err := m.campaigns.SaveCampaign(ctx, &campaign); err != nil {
		return fmt.Errorf("failed to save campaign: %w", err)
	}
	*gs.Campaign = campaign

	charData, err := json.Marshal(gs.Character)
	if err != nil {
		return fmt.Errorf("failed to marshal character: %w", err)
	}
	err = m.campaigns.SaveCharacter(ctx, &storage.CharacterRecord{
		ID:         campaign.CharacterID,
		CampaignID: campaign.ID,
		Name:       gs.Character.Name,
		Data:       charData,
	})
	if err != nil {
		return fmt.Errorf("failed to save character: %w", err)
	}

	if gs.Location != nil {
		locData, err := json.Marshal(gs.Location)
		if err != nil {
			return fmt.Errorf("failed to marshal location: %w", err)
		}
		err = m.campaigns.SaveWorldElement(ctx, &storage.WorldElementRecord{
			ID:          gs.Location.ID,
			CampaignID:  campaign.ID,
			ElementType: string(gs.Location.Type),
			Name:        gs.Location.Name,
			Data:        locData,
		})
		if err != nil {
			return fmt.Errorf("failed to save location: %w", err)
		}
	}

	for _, n := range gs.NPCsPresent {
		npcData, err := json.Marshal(n)
		if err != nil {
			return fmt.Errorf("failed to marshal npc %s: %w", n.ID, err)
		}
		record := &storage.NPCRecord{
			ID:         n.ID,
			CampaignID: campaign.ID,
			Name:       n.Name,
			Data:       npcData,
		}
		if gs.Location != nil {
			record.LocationID = gs.Location.ID
		}
		if err := m.campaigns.SaveNPC(ctx, record); err != nil {
			return fmt.Errorf("failed to save npc %s: %w", n.ID, err)
		}
	}

	if gs.ActiveQuest != nil {
		questData, err := json.Marshal(gs.ActiveQuest)
		if err != nil {
			return fmt.Errorf("failed to marshal quest: %w", err)
		}
		err = m.campaigns.SaveQuest(ctx, &storage.QuestRecord{
			ID:         gs.ActiveQuest.ID,
			CampaignID: campaign.ID,
			Title:      gs.ActiveQuest.Title,
			Status:     string(gs.ActiveQuest.Status),
			Data:       questData,
		})
		if err != nil {
			return fmt.Errorf("failed to save quest: %w", err)
		}
	}

	// Append only history entries the store has not seen. Re-saving
	// must never duplicate event rows.
	persisted, err := m.campaigns.ListEvents(ctx, campaign.ID, eventScanLimit)
	if err != nil {
		return fmt.Errorf("failed to list persisted events: %w", err)
	}
	seen := make(map[string]bool, len(persisted))
	for _, e := range persisted {
		seen[e.ID] = true
	}
	for _, entry := range gs.History {
		if seen[entry.ID] {
			continue
		}
		var data json.RawMessage
		if len(entry.Data) > 0 {
			if data, err = json.Marshal(entry.Data); err != nil {
				return fmt.Errorf("failed to marshal event data: %w", err)
			}
		}
		err = m.campaigns.SaveEvent(ctx, &storage.EventRecord{
			ID:          entry.ID,
			CampaignID:  campaign.ID,
			Timestamp:   entry.Timestamp,
			EventType:   entry.EventType,
			Description: entry.Description,
			Data:        data,
		})
		if err != nil {
			return fmt.Errorf("failed to save event: %w", err)
		}
	}

	m.lastSave = time.Now()

	if m.cache != nil {
		if err := m.cache.Put(ctx, gs); err != nil {
			logger.WithError(logger.WithCampaign(m.logger, campaign.ID), err).Warn("Failed to cache session")
		}
	}
	return nil
}

// Load reconstructs a session from the campaign store. A missing
// campaign or a campaign without a character returns nil. Combat state
// never survives a load.
func (m *Manager) Load(ctx context.Context, campaignID string) (*state.GameState, error) {
	campaign, err := m.campaigns.LoadCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, nil
	}

	charRecord, err := m.campaigns.GetCampaignCharacter(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if charRecord == nil {
		logger.WithCampaign(m.logger, campaignID).Warn("Campaign has no character")
		return nil, nil
	}
	var c character.Character
	if err := json.Unmarshal(charRecord.Data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal character: %w", err)
	}

	gs := &state.GameState{
		Campaign:  campaign,
		Character: &c,
		Flags:     map[string]any{},
	}

	if campaign.CurrentLocationID != "" {
		locRecord, err := m.campaigns.LoadWorldElement(ctx, campaign.CurrentLocationID)
		if err != nil {
			return nil, err
		}
		if locRecord != nil {
			var loc world.Location
			if err := json.Unmarshal(locRecord.Data, &loc); err != nil {
				return nil, fmt.Errorf("failed to unmarshal location: %w", err)
			}
			gs.Location = &loc
		}
	}

	if gs.Location != nil {
		npcRecords, err := m.campaigns.ListNPCs(ctx, campaignID, gs.Location.ID)
		if err != nil {
			return nil, err
		}
		for _, r := range npcRecords {
			var n npc.NPC
			if err := json.Unmarshal(r.Data, &n); err != nil {
				return nil, fmt.Errorf("failed to unmarshal npc %s: %w", r.ID, err)
			}
			gs.NPCsPresent = append(gs.NPCsPresent, &n)
		}
	}

	activeQuests, err := m.campaigns.ListQuests(ctx, campaignID, string(quest.StatusActive))
	if err != nil {
		return nil, err
	}
	if len(activeQuests) > 0 {
		var q quest.Quest
		if err := json.Unmarshal(activeQuests[0].Data, &q); err != nil {
			return nil, fmt.Errorf("failed to unmarshal quest: %w", err)
		}
		gs.ActiveQuest = &q
	}

	events, err := m.campaigns.ListEvents(ctx, campaignID, m.eventLimit)
	if err != nil {
		return nil, err
	}
	// Stored newest-first; history reads oldest-first.
	for i := len(events) - 1; i >= 0; i-- {
		e := events[i]
		entry := &state.HistoryEntry{
			ID:          e.ID,
			Timestamp:   e.Timestamp,
			EventType:   e.EventType,
			Description: e.Description,
		}
		if len(e.Data) > 0 {
			if err := json.Unmarshal(e.Data, &entry.Data); err != nil {
				return nil, fmt.Errorf("failed to unmarshal event data: %w", err)
			}
		}
		gs.History = append(gs.History, entry)
	}

	elements, err := m.campaigns.ListWorldElements(ctx, campaignID, "")
	if err != nil {
		return nil, err
	}
	for _, e := range elements {
		gs.DiscoveredLocations = append(gs.DiscoveredLocations, e.ID)
	}

	allNPCs, err := m.campaigns.ListNPCs(ctx, campaignID, "")
	if err != nil {
		return nil, err
	}
	for _, r := range allNPCs {
		gs.KnownNPCs = append(gs.KnownNPCs, r.ID)
	}

	m.lastSave = time.Now()
	return gs, nil
}

// Resume tries the cache first, falling back to a full load. Either
// path returns a session with no combat state.
func (m *Manager) Resume(ctx context.Context, campaignID string) (*state.GameState, error) {
	if m.cache != nil {
		gs, err := m.cache.Get(ctx, campaignID)
		if err != nil {
			logger.WithError(logger.WithCampaign(m.logger, campaignID), err).Warn("Session cache read failed")
		} else if gs != nil {
			gs.CombatState = nil
			m.lastSave = time.Now()
			return gs, nil
		}
	}
	return m.Load(ctx, campaignID)
}

// Delete removes a campaign and its cached session.
func (m *Manager) Delete(ctx context.Context, campaignID string) (bool, error) {
	if m.cache != nil {
		if err := m.cache.Delete(ctx, campaignID); err != nil {
			logger.WithError(logger.WithCampaign(m.logger, campaignID), err).Warn("Failed to evict cached session")
		}
	}
	return m.campaigns.DeleteCampaign(ctx, campaignID)
}

// StartCombat opens an encounter and records it in history.
func (m *Manager) StartCombat(gs *state.GameState, enemies []*combat.Enemy, retreatDC int) *combat.State {
	cs := combat.Start(enemies, gs.Character.DangerLevel, retreatDC)
	gs.CombatState = cs

	names := make([]string, len(enemies))
	for i, e := range enemies {
		names[i] = e.Name
	}
	gs.AddHistory(state.EventCombatStart,
		fmt.Sprintf("Combat began against %d foe(s).", len(enemies)),
		map[string]any{"enemies": names})
	return cs
}

// EndCombat records the outcome of a finished encounter. On victory,
// defeated enemies that correspond to a present NPC are forwarded to
// the world-state store as deaths.
func (m *Manager) EndCombat(ctx context.Context, gs *state.GameState) (*combat.Result, error) {
	cs := gs.CombatState
	if cs == nil || !cs.Status.IsTerminal() {
		return nil, fmt.Errorf("combat is not finished")
	}

	result := combat.CheckEnd(cs)
	gs.Character.DangerLevel = cs.PlayerDanger

	gs.AddHistory(state.EventCombatEnd,
		fmt.Sprintf("Combat ended: %s after %d turn(s).", cs.Status, result.TurnsTaken),
		map[string]any{"status": string(cs.Status), "enemies_defeated": result.EnemiesDefeated})

	if cs.Status != combat.StatusVictory {
		return result, nil
	}

	locationName := "an unknown place"
	if gs.Location != nil {
		locationName = gs.Location.Name
	}
	for _, e := range cs.Enemies {
		if !e.IsDefeated() {
			continue
		}
		n := presentNPCByName(gs, e.Name)
		if n == nil {
			continue
		}
		death := storage.NewNPCDeath(n.Name, locationName, "slain in combat", gs.Campaign.ID, n.ID)
		if err := m.world.RecordNPCDeath(ctx, death); err != nil {
			return result, fmt.Errorf("failed to record npc death: %w", err)
		}
		logger.WithCampaign(m.logger, gs.Campaign.ID).Info("Recorded NPC death", "npc", n.Name)
	}
	return result, nil
}

func presentNPCByName(gs *state.GameState, name string) *npc.NPC {
	for _, n := range gs.NPCsPresent {
		if n.Name == name {
			return n
		}
	}
	return nil
}
