package storage

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MockCampaignStore is an in-memory implementation of CampaignStore for
// testing. FailWith forces every subsequent operation to return the
// given error.
type MockCampaignStore struct {
	mu            sync.RWMutex
	campaigns     map[string]*Campaign
	characters    map[string]*CharacterRecord
	worldElements map[string]*WorldElementRecord
	npcs          map[string]*NPCRecord
	quests        map[string]*QuestRecord
	events        []*EventRecord
	failErr       error
}

// Ensure MockCampaignStore implements CampaignStore
var _ CampaignStore = (*MockCampaignStore)(nil)

// NewMockCampaignStore creates an empty in-memory campaign store.
func NewMockCampaignStore() *MockCampaignStore {
	return &MockCampaignStore{
		campaigns:     make(map[string]*Campaign),
		characters:    make(map[string]*CharacterRecord),
		worldElements: make(map[string]*WorldElementRecord),
		npcs:          make(map[string]*NPCRecord),
		quests:        make(map[string]*QuestRecord),
	}
}

// FailWith makes every subsequent operation fail with err. Pass nil to
// restore normal behavior.
func (m *MockCampaignStore) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failErr = err
}

func (m *MockCampaignStore) fail() error {
	return m.failErr
}

func (m *MockCampaignStore) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fail()
}

func (m *MockCampaignStore) Close() error {
	return nil
}

func (m *MockCampaignStore) SaveCampaign(ctx context.Context, c *Campaign) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(); err != nil {
		return err
	}
	c.UpdatedAt = time.Now().UTC()
	cp := *c
	m.campaigns[c.ID] = &cp
	return nil
}

func (m *MockCampaignStore) LoadCampaign(ctx context.Context, id string) (*Campaign, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.fail(); err != nil {
		return nil, err
	}
	c, ok := m.campaigns[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *MockCampaignStore) ListCampaigns(ctx context.Context) ([]*Campaign, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.fail(); err != nil {
		return nil, err
	}
	var out []*Campaign
	for _, c := range m.campaigns {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (m *MockCampaignStore) DeleteCampaign(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(); err != nil {
		return false, err
	}
	if _, ok := m.campaigns[id]; !ok {
		return false, nil
	}
	delete(m.campaigns, id)
	for k, r := range m.characters {
		if r.CampaignID == id {
			delete(m.characters, k)
		}
	}
	for k, r := range m.worldElements {
		if r.CampaignID == id {
			delete(m.worldElements, k)
		}
	}
	for k, r := range m.npcs {
		if r.CampaignID == id {
			delete(m.npcs, k)
		}
	}
	for k, r := range m.quests {
		if r.CampaignID == id {
			delete(m.quests, k)
		}
	}
	var kept []*EventRecord
	for _, e := range m.events {
		if e.CampaignID != id {
			kept = append(kept, e)
		}
	}
	m.events = kept
	return true, nil
}

func (m *MockCampaignStore) SaveCharacter(ctx context.Context, r *CharacterRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(); err != nil {
		return err
	}
	cp := *r
	m.characters[r.ID] = &cp
	return nil
}

func (m *MockCampaignStore) LoadCharacter(ctx context.Context, id string) (*CharacterRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.fail(); err != nil {
		return nil, err
	}
	r, ok := m.characters[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (m *MockCampaignStore) GetCampaignCharacter(ctx context.Context, campaignID string) (*CharacterRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.fail(); err != nil {
		return nil, err
	}
	for _, r := range m.characters {
		if r.CampaignID == campaignID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MockCampaignStore) SaveWorldElement(ctx context.Context, r *WorldElementRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(); err != nil {
		return err
	}
	cp := *r
	m.worldElements[r.ID] = &cp
	return nil
}

func (m *MockCampaignStore) LoadWorldElement(ctx context.Context, id string) (*WorldElementRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.fail(); err != nil {
		return nil, err
	}
	r, ok := m.worldElements[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (m *MockCampaignStore) ListWorldElements(ctx context.Context, campaignID, elementType string) ([]*WorldElementRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.fail(); err != nil {
		return nil, err
	}
	var out []*WorldElementRecord
	for _, r := range m.worldElements {
		if r.CampaignID != campaignID {
			continue
		}
		if elementType != "" && r.ElementType != elementType {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MockCampaignStore) SaveNPC(ctx context.Context, r *NPCRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(); err != nil {
		return err
	}
	cp := *r
	m.npcs[r.ID] = &cp
	return nil
}

func (m *MockCampaignStore) LoadNPC(ctx context.Context, id string) (*NPCRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.fail(); err != nil {
		return nil, err
	}
	r, ok := m.npcs[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (m *MockCampaignStore) ListNPCs(ctx context.Context, campaignID, locationID string) ([]*NPCRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.fail(); err != nil {
		return nil, err
	}
	var out []*NPCRecord
	for _, r := range m.npcs {
		if r.CampaignID != campaignID {
			continue
		}
		if locationID != "" && r.LocationID != locationID {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MockCampaignStore) SaveQuest(ctx context.Context, r *QuestRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(); err != nil {
		return err
	}
	cp := *r
	m.quests[r.ID] = &cp
	return nil
}

func (m *MockCampaignStore) LoadQuest(ctx context.Context, id string) (*QuestRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.fail(); err != nil {
		return nil, err
	}
	r, ok := m.quests[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (m *MockCampaignStore) ListQuests(ctx context.Context, campaignID, status string) ([]*QuestRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.fail(); err != nil {
		return nil, err
	}
	var out []*QuestRecord
	for _, r := range m.quests {
		if r.CampaignID != campaignID {
			continue
		}
		if status != "" && r.Status != status {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MockCampaignStore) SaveEvent(ctx context.Context, r *EventRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(); err != nil {
		return err
	}
	cp := *r
	m.events = append(m.events, &cp)
	return nil
}

func (m *MockCampaignStore) ListEvents(ctx context.Context, campaignID string, limit int) ([]*EventRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.fail(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 100
	}
	var out []*EventRecord
	for _, e := range m.events {
		if e.CampaignID == campaignID {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockCampaignStore) ExportCampaign(ctx context.Context, campaignID string) (*CampaignExport, error) {
	campaign, err := m.LoadCampaign(ctx, campaignID)
	if err != nil || campaign == nil {
		return nil, err
	}
	export := &CampaignExport{Campaign: campaign}
	if char, err := m.GetCampaignCharacter(ctx, campaignID); err == nil && char != nil {
		export.Characters = append(export.Characters, char)
	}
	export.WorldElements, _ = m.ListWorldElements(ctx, campaignID, "")
	export.NPCs, _ = m.ListNPCs(ctx, campaignID, "")
	export.Quests, _ = m.ListQuests(ctx, campaignID, "")
	export.Events, _ = m.ListEvents(ctx, campaignID, 1000)
	return export, nil
}

func (m *MockCampaignStore) ImportCampaign(ctx context.Context, export *CampaignExport) (string, error) {
	if export == nil || export.Campaign == nil {
		return "", errMockNoCampaign
	}
	if err := m.SaveCampaign(ctx, export.Campaign); err != nil {
		return "", err
	}
	for _, r := range export.Characters {
		if err := m.SaveCharacter(ctx, r); err != nil {
			return "", err
		}
	}
	for _, r := range export.WorldElements {
		if err := m.SaveWorldElement(ctx, r); err != nil {
			return "", err
		}
	}
	for _, r := range export.NPCs {
		if err := m.SaveNPC(ctx, r); err != nil {
			return "", err
		}
	}
	for _, r := range export.Quests {
		if err := m.SaveQuest(ctx, r); err != nil {
			return "", err
		}
	}
	for _, r := range export.Events {
		if err := m.SaveEvent(ctx, r); err != nil {
			return "", err
		}
	}
	return export.Campaign.ID, nil
}
