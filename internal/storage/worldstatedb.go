package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jwebster45206/reverie/pkg/storage"
)

const worldStateSchema = `
CREATE TABLE IF NOT EXISTS faction_standings (
    faction_id TEXT PRIMARY KEY,
    faction_name TEXT NOT NULL,
    standing INTEGER NOT NULL DEFAULT 0,
    updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS npc_deaths (
    id TEXT PRIMARY KEY,
    npc_name TEXT NOT NULL,
    npc_id TEXT,
    location TEXT NOT NULL,
    cause TEXT NOT NULL,
    campaign_id TEXT NOT NULL,
    timestamp TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS world_events (
    id TEXT PRIMARY KEY,
    event_type TEXT NOT NULL,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    location TEXT,
    campaign_id TEXT NOT NULL,
    timestamp TEXT NOT NULL,
    data TEXT NOT NULL DEFAULT '{}'
);

CREATE INDEX IF NOT EXISTS idx_npc_deaths_name ON npc_deaths(npc_name);
CREATE INDEX IF NOT EXISTS idx_world_events_type ON world_events(event_type);
CREATE INDEX IF NOT EXISTS idx_world_events_timestamp ON world_events(timestamp);
`

// WorldStateDB implements the WorldState interface over its own SQLite
// file, separate from campaign saves. Facts recorded here outlive the
// campaign that produced them.
type WorldStateDB struct {
	db     *sql.DB
	logger *slog.Logger
}

// Ensure WorldStateDB implements WorldState
var _ storage.WorldState = (*WorldStateDB)(nil)

// OpenWorldStateDB opens or creates the world state database at path.
func OpenWorldStateDB(path string, logger *slog.Logger) (*WorldStateDB, error) {
	db, err := openSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open world state db: %w", err)
	}

	if _, err := db.Exec(worldStateSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create world state schema: %w", err)
	}

	return &WorldStateDB{db: db, logger: logger}, nil
}

func (w *WorldStateDB) Ping(ctx context.Context) error {
	if err := w.db.PingContext(ctx); err != nil {
		return fmt.Errorf("world state db ping failed: %w", err)
	}
	return nil
}

func (w *WorldStateDB) Close() error {
	if err := w.db.Close(); err != nil {
		w.logger.Error("Failed to close world state db", "error", err)
		return err
	}
	return nil
}

// Faction operations

func (w *WorldStateDB) GetFactionStanding(ctx context.Context, factionID string) (*storage.FactionStanding, error) {
	var s storage.FactionStanding
	var updated string
	err := w.db.QueryRowContext(ctx,
		"SELECT faction_id, faction_name, standing, updated_at FROM faction_standings WHERE faction_id = ?",
		factionID).Scan(&s.FactionID, &s.FactionName, &s.Standing, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load faction standing: %w", err)
	}
	if s.UpdatedAt, err = time.Parse(timeFormat, updated); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &s, nil
}

func (w *WorldStateDB) SetFactionStanding(ctx context.Context, s *storage.FactionStanding) error {
	s.UpdatedAt = time.Now().UTC()
	_, err := w.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO faction_standings (faction_id, faction_name, standing, updated_at)
		 VALUES (?, ?, ?, ?)`,
		s.FactionID, s.FactionName, s.Standing, s.UpdatedAt.Format(timeFormat))
	if err != nil {
		return fmt.Errorf("failed to save faction standing: %w", err)
	}
	return nil
}

// AdjustFactionStanding shifts standing by delta, clamped to the
// [-100, 100] range, creating the faction on first contact. The
// read-modify-write runs in one transaction.
func (w *WorldStateDB) AdjustFactionStanding(ctx context.Context, factionID, factionName string, delta int) (*storage.FactionStanding, error) {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	standing := clampStanding(delta)
	name := factionName

	var current int
	var existingName string
	err = tx.QueryRowContext(ctx,
		"SELECT standing, faction_name FROM faction_standings WHERE faction_id = ?",
		factionID).Scan(&current, &existingName)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// first contact
	case err != nil:
		return nil, fmt.Errorf("failed to read faction standing: %w", err)
	default:
		standing = clampStanding(current + delta)
		name = existingName
	}

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO faction_standings (faction_id, faction_name, standing, updated_at)
		 VALUES (?, ?, ?, ?)`,
		factionID, name, standing, now.Format(timeFormat))
	if err != nil {
		return nil, fmt.Errorf("failed to save faction standing: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit faction standing: %w", err)
	}

	return &storage.FactionStanding{
		FactionID:   factionID,
		FactionName: name,
		Standing:    standing,
		UpdatedAt:   now,
	}, nil
}

func (w *WorldStateDB) ListFactionStandings(ctx context.Context) ([]*storage.FactionStanding, error) {
	rows, err := w.db.QueryContext(ctx,
		"SELECT faction_id, faction_name, standing, updated_at FROM faction_standings ORDER BY standing DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list faction standings: %w", err)
	}
	defer rows.Close()

	var standings []*storage.FactionStanding
	for rows.Next() {
		var s storage.FactionStanding
		var updated string
		if err := rows.Scan(&s.FactionID, &s.FactionName, &s.Standing, &updated); err != nil {
			return nil, fmt.Errorf("failed to scan faction standing: %w", err)
		}
		if s.UpdatedAt, err = time.Parse(timeFormat, updated); err != nil {
			return nil, fmt.Errorf("parse updated_at: %w", err)
		}
		standings = append(standings, &s)
	}
	return standings, rows.Err()
}

// NPC death operations

func (w *WorldStateDB) RecordNPCDeath(ctx context.Context, d *storage.NPCDeath) error {
	_, err := w.db.ExecContext(ctx,
		`INSERT INTO npc_deaths (id, npc_name, npc_id, location, cause, campaign_id, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.NPCName, nullable(d.NPCID), d.Location, d.Cause, d.CampaignID,
		d.Timestamp.Format(timeFormat))
	if err != nil {
		return fmt.Errorf("failed to record npc death: %w", err)
	}
	return nil
}

func (w *WorldStateDB) IsNPCDead(ctx context.Context, npcName string) (bool, error) {
	var one int
	err := w.db.QueryRowContext(ctx,
		"SELECT 1 FROM npc_deaths WHERE npc_name = ? LIMIT 1", npcName).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check npc death: %w", err)
	}
	return true, nil
}

func (w *WorldStateDB) GetNPCDeath(ctx context.Context, npcName string) (*storage.NPCDeath, error) {
	row := w.db.QueryRowContext(ctx,
		`SELECT id, npc_name, npc_id, location, cause, campaign_id, timestamp
		 FROM npc_deaths WHERE npc_name = ? ORDER BY timestamp DESC LIMIT 1`, npcName)
	death, err := scanNPCDeath(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load npc death: %w", err)
	}
	return death, nil
}

func (w *WorldStateDB) ListNPCDeaths(ctx context.Context, limit int) ([]*storage.NPCDeath, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := w.db.QueryContext(ctx,
		`SELECT id, npc_name, npc_id, location, cause, campaign_id, timestamp
		 FROM npc_deaths ORDER BY timestamp DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list npc deaths: %w", err)
	}
	defer rows.Close()

	var deaths []*storage.NPCDeath
	for rows.Next() {
		death, err := scanNPCDeath(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan npc death: %w", err)
		}
		deaths = append(deaths, death)
	}
	return deaths, rows.Err()
}

// World event operations

func (w *WorldStateDB) RecordWorldEvent(ctx context.Context, e *storage.WorldEvent) error {
	data := string(e.Data)
	if data == "" {
		data = "{}"
	}
	_, err := w.db.ExecContext(ctx,
		`INSERT INTO world_events (id, event_type, title, description, location, campaign_id, timestamp, data)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.EventType, e.Title, e.Description, nullable(e.Location), e.CampaignID,
		e.Timestamp.Format(timeFormat), data)
	if err != nil {
		return fmt.Errorf("failed to record world event: %w", err)
	}
	return nil
}

func (w *WorldStateDB) ListWorldEvents(ctx context.Context, eventType string, limit int) ([]*storage.WorldEvent, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `SELECT id, event_type, title, description, location, campaign_id, timestamp, data
		 FROM world_events`
	args := []any{}
	if eventType != "" {
		query += " WHERE event_type = ?"
		args = append(args, eventType)
	}
	query += " ORDER BY timestamp DESC LIMIT ?"
	args = append(args, limit)

	rows, err := w.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list world events: %w", err)
	}
	defer rows.Close()

	var events []*storage.WorldEvent
	for rows.Next() {
		var e storage.WorldEvent
		var location sql.NullString
		var ts, data string
		if err := rows.Scan(&e.ID, &e.EventType, &e.Title, &e.Description, &location, &e.CampaignID, &ts, &data); err != nil {
			return nil, fmt.Errorf("failed to scan world event: %w", err)
		}
		if e.Timestamp, err = time.Parse(timeFormat, ts); err != nil {
			return nil, fmt.Errorf("parse world event timestamp: %w", err)
		}
		e.Location = location.String
		e.Data = []byte(data)
		events = append(events, &e)
	}
	return events, rows.Err()
}

// WorldHistorySummary renders recent world history as text for
// narration context.
func (w *WorldStateDB) WorldHistorySummary(ctx context.Context, limit int) (string, error) {
	if limit <= 0 {
		limit = 10
	}
	events, err := w.ListWorldEvents(ctx, "", limit)
	if err != nil {
		return "", err
	}
	deaths, err := w.ListNPCDeaths(ctx, 5)
	if err != nil {
		return "", err
	}
	factions, err := w.ListFactionStandings(ctx)
	if err != nil {
		return "", err
	}

	var parts []string

	if len(events) > 0 {
		parts = append(parts, "Recent world events:")
		for i, e := range events {
			if i >= 5 {
				break
			}
			parts = append(parts, fmt.Sprintf("- %s: %s", e.Title, e.Description))
		}
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
			var status string
			switch {
			case f.Standing >= 50:
				status = "allied"
			case f.Standing >= 0:
				status = "neutral"
			case f.Standing >= -50:
				status = "unfriendly"
			default:
				status = "hostile"
			}
			parts = append(parts, fmt.Sprintf("- %s: %s (%+d)", f.FactionName, status, f.Standing))
		}
	}

	if len(parts) == 0 {
		return "No recorded world history.", nil
	}
	return strings.Join(parts, "\n"), nil
}

// Export and import

func (w *WorldStateDB) ExportAll(ctx context.Context) (*storage.WorldStateExport, error) {
	export := &storage.WorldStateExport{}
	var err error
	if export.Factions, err = w.ListFactionStandings(ctx); err != nil {
		return nil, err
	}
	if export.NPCDeaths, err = w.ListNPCDeaths(ctx, 1000); err != nil {
		return nil, err
	}
	if export.WorldEvents, err = w.ListWorldEvents(ctx, "", 1000); err != nil {
		return nil, err
	}
	return export, nil
}

// ImportAll merges exported world state. Deaths for NPC names already
// recorded dead are skipped.
func (w *WorldStateDB) ImportAll(ctx context.Context, export *storage.WorldStateExport) error {
	if export == nil {
		return nil
	}
	for _, f := range export.Factions {
		if err := w.SetFactionStanding(ctx, f); err != nil {
			return err
		}
	}
	for _, d := range export.NPCDeaths {
		dead, err := w.IsNPCDead(ctx, d.NPCName)
		if err != nil {
			return err
		}
		if dead {
			continue
		}
		if err := w.RecordNPCDeath(ctx, d); err != nil {
			return err
		}
	}
	for _, e := range export.WorldEvents {
		if err := w.RecordWorldEvent(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func clampStanding(v int) int {
	if v < storage.MinStanding {
		return storage.MinStanding
	}
	if v > storage.MaxStanding {
		return storage.MaxStanding
	}
	return v
}

func scanNPCDeath(row rowScanner) (*storage.NPCDeath, error) {
	var d storage.NPCDeath
	var npcID sql.NullString
	var ts string
	if err := row.Scan(&d.ID, &d.NPCName, &npcID, &d.Location, &d.Cause, &d.CampaignID, &ts); err != nil {
		return nil, err
	}
	var err error
	if d.Timestamp, err = time.Parse(timeFormat, ts); err != nil {
		return nil, fmt.Errorf("parse npc death timestamp: %w", err)
	}
	d.NPCID = npcID.String
	return &d, nil
}
