package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

var errMockNoCampaign = errors.New("export has no campaign")

// MockWorldState is an in-memory implementation of WorldState for testing.
type MockWorldState struct {
	mu       sync.RWMutex
	factions map[string]*FactionStanding
	deaths   []*NPCDeath
	events   []*WorldEvent
	failErr  error
}

// Ensure MockWorldState implements WorldState
var _ WorldState = (*MockWorldState)(nil)

// NewMockWorldState creates an empty in-memory world-state store.
func NewMockWorldState() *MockWorldState {
	return &MockWorldState{
		factions: make(map[string]*FactionStanding),
	}
}

// FailWith makes every subsequent operation fail with err. Pass nil to
// restore normal behavior.
func (m *MockWorldState) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failErr = err
}

func (m *MockWorldState) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.failErr
}

func (m *MockWorldState) Close() error {
	return nil
}

func (m *MockWorldState) GetFactionStanding(ctx context.Context, factionID string) (*FactionStanding, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	f, ok := m.factions[factionID]
	if !ok {
		return nil, nil
	}
	cp := *f
	return &cp, nil
}

func (m *MockWorldState) SetFactionStanding(ctx context.Context, f *FactionStanding) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	f.Standing = clampMockStanding(f.Standing)
	f.UpdatedAt = time.Now().UTC()
	cp := *f
	m.factions[f.FactionID] = &cp
	return nil
}

func (m *MockWorldState) AdjustFactionStanding(ctx context.Context, factionID, name string, delta int) (*FactionStanding, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	f, ok := m.factions[factionID]
	if !ok {
		f = &FactionStanding{FactionID: factionID, FactionName: name}
		m.factions[factionID] = f
	}
	f.Standing = clampMockStanding(f.Standing + delta)
	f.UpdatedAt = time.Now().UTC()
	cp := *f
	return &cp, nil
}

func (m *MockWorldState) ListFactionStandings(ctx context.Context) ([]*FactionStanding, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	var out []*FactionStanding
	for _, f := range m.factions {
		cp := *f
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Standing > out[j].Standing
	})
	return out, nil
}

func (m *MockWorldState) RecordNPCDeath(ctx context.Context, d *NPCDeath) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	cp := *d
	m.deaths = append(m.deaths, &cp)
	return nil
}

func (m *MockWorldState) IsNPCDead(ctx context.Context, npcName string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failErr != nil {
		return false, m.failErr
	}
	for _, d := range m.deaths {
		if d.NPCName == npcName {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockWorldState) GetNPCDeath(ctx context.Context, npcName string) (*NPCDeath, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	for i := len(m.deaths) - 1; i >= 0; i-- {
		if m.deaths[i].NPCName == npcName {
			cp := *m.deaths[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MockWorldState) ListNPCDeaths(ctx context.Context, limit int) ([]*NPCDeath, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	var out []*NPCDeath
	for i := len(m.deaths) - 1; i >= 0; i-- {
		cp := *m.deaths[i]
		out = append(out, &cp)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockWorldState) RecordWorldEvent(ctx context.Context, e *WorldEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	cp := *e
	m.events = append(m.events, &cp)
	return nil
}

func (m *MockWorldState) ListWorldEvents(ctx context.Context, eventType string, limit int) ([]*WorldEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	var out []*WorldEvent
	for i := len(m.events) - 1; i >= 0; i-- {
		if eventType != "" && m.events[i].EventType != eventType {
			continue
		}
		cp := *m.events[i]
		out = append(out, &cp)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockWorldState) WorldHistorySummary(ctx context.Context, limit int) (string, error) {
	if limit <= 0 {
		limit = 5
	}
	events, err := m.ListWorldEvents(ctx, "", limit)
	if err != nil {
		return "", err
	}
	deaths, err := m.ListNPCDeaths(ctx, limit)
	if err != nil {
		return "", err
	}
	factions, err := m.ListFactionStandings(ctx)
	if err != nil {
		return "", err
	}
	var parts []string
	for _, e := range events {
		parts = append(parts, fmt.Sprintf("- %s: %s", e.Title, e.Description))
	}
	if len(deaths) > 0 {
		parts = append(parts, "\nFallen NPCs:")
		for _, d := range deaths {
			parts = append(parts, fmt.Sprintf("- %s died at %s (%s)", d.NPCName, d.Location, d.Cause))
		}
	}
	if len(factions) > 0 {
		parts = append(parts, "\nFaction standings:")
		for _, f := range factions {
			parts = append(parts, fmt.Sprintf("- %s: %s (%+d)", f.FactionName, standingTier(f.Standing), f.Standing))
		}
	}
	if len(parts) == 0 {
		return "No recorded world history.", nil
	}
	return strings.Join(parts, "\n"), nil
}

func (m *MockWorldState) ExportAll(ctx context.Context) (*WorldStateExport, error) {
	factions, err := m.ListFactionStandings(ctx)
	if err != nil {
		return nil, err
	}
	deaths, err := m.ListNPCDeaths(ctx, 1000)
	if err != nil {
		return nil, err
	}
	events, err := m.ListWorldEvents(ctx, "", 1000)
	if err != nil {
		return nil, err
	}
	return &WorldStateExport{Factions: factions, NPCDeaths: deaths, WorldEvents: events}, nil
}

func (m *MockWorldState) ImportAll(ctx context.Context, export *WorldStateExport) error {
	if export == nil {
		return nil
	}
	for _, f := range export.Factions {
		if err := m.SetFactionStanding(ctx, f); err != nil {
			return err
		}
	}
	for _, d := range export.NPCDeaths {
		dead, err := m.IsNPCDead(ctx, d.NPCName)
		if err != nil {
			return err
		}
		if dead {
			continue
		}
		if err := m.RecordNPCDeath(ctx, d); err != nil {
			return err
		}
	}
	for _, e := range export.WorldEvents {
		if err := m.RecordWorldEvent(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func clampMockStanding(v int) int {
	if v > MaxStanding {
		return MaxStanding
	}
	if v < MinStanding {
		return MinStanding
	}
	return v
}

func standingTier(standing int) string {
	switch {
	case standing >= 50:
		return "allied"
	case standing >= 0:
		return "neutral"
	case standing >= -50:
		return "unfriendly"
	default:
		return "hostile"
	}
}
