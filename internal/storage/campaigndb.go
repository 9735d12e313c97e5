package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jwebster45206/reverie/pkg/storage"
)

// timeFormat is how timestamps are stored in sqlite text columns. The
// fixed-width fraction keeps lexicographic order chronological, which
// the ORDER BY timestamp queries rely on.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// CampaignDB implements the CampaignStore interface over a SQLite file.
// One file holds every campaign save plus all per-campaign records;
// deleting a campaign cascades to its children.
type CampaignDB struct {
	db     *sql.DB
	logger *slog.Logger
}

// Ensure CampaignDB implements CampaignStore
var _ storage.CampaignStore = (*CampaignDB)(nil)

// OpenCampaignDB opens or creates the campaign database at path and
// applies pending migrations.
func OpenCampaignDB(path string, logger *slog.Logger) (*CampaignDB, error) {
	db, err := openSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open campaign db: %w", err)
	}

	version, err := runMigrations(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Debug("Campaign db ready", "path", path, "schema_version", version)

	return &CampaignDB{db: db, logger: logger}, nil
}

func (c *CampaignDB) Ping(ctx context.Context) error {
	if err := c.db.PingContext(ctx); err != nil {
		return fmt.Errorf("campaign db ping failed: %w", err)
	}
	return nil
}

func (c *CampaignDB) Close() error {
	if err := c.db.Close(); err != nil {
		c.logger.Error("Failed to close campaign db", "error", err)
		return err
	}
	return nil
}

// Campaign operations

func (c *CampaignDB) SaveCampaign(ctx context.Context, campaign *storage.Campaign) error {
	campaign.UpdatedAt = time.Now().UTC()
	_, err := c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO campaigns
		 (id, name, created_at, updated_at, character_id, current_location_id, playtime_seconds)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		campaign.ID, campaign.Name,
		campaign.CreatedAt.Format(timeFormat), campaign.UpdatedAt.Format(timeFormat),
		nullable(campaign.CharacterID), nullable(campaign.CurrentLocationID),
		campaign.PlaytimeSeconds)
	if err != nil {
		return fmt.Errorf("failed to save campaign: %w", err)
	}
	return nil
}

func (c *CampaignDB) LoadCampaign(ctx context.Context, id string) (*storage.Campaign, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at, character_id, current_location_id, playtime_seconds
		 FROM campaigns WHERE id = ?`, id)
	campaign, err := scanCampaign(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load campaign: %w", err)
	}
	return campaign, nil
}

func (c *CampaignDB) ListCampaigns(ctx context.Context) ([]*storage.Campaign, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT id, name, created_at, updated_at, character_id, current_location_id, playtime_seconds
		 FROM campaigns ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []*storage.Campaign
	for rows.Next() {
		campaign, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan campaign: %w", err)
		}
		campaigns = append(campaigns, campaign)
	}
	return campaigns, rows.Err()
}

func (c *CampaignDB) DeleteCampaign(ctx context.Context, id string) (bool, error) {
	res, err := c.db.ExecContext(ctx, "DELETE FROM campaigns WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete campaign: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}

// Character operations

func (c *CampaignDB) SaveCharacter(ctx context.Context, r *storage.CharacterRecord) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO characters (id, campaign_id, name, data)
		 VALUES (?, ?, ?, ?)`,
		r.ID, r.CampaignID, r.Name, string(r.Data))
	if err != nil {
		return fmt.Errorf("failed to save character: %w", err)
	}
	return nil
}

func (c *CampaignDB) LoadCharacter(ctx context.Context, id string) (*storage.CharacterRecord, error) {
	return c.characterQuery(ctx, "SELECT id, campaign_id, name, data FROM characters WHERE id = ?", id)
}

func (c *CampaignDB) GetCampaignCharacter(ctx context.Context, campaignID string) (*storage.CharacterRecord, error) {
	return c.characterQuery(ctx, "SELECT id, campaign_id, name, data FROM characters WHERE campaign_id = ?", campaignID)
}

func (c *CampaignDB) characterQuery(ctx context.Context, query string, arg any) (*storage.CharacterRecord, error) {
	var r storage.CharacterRecord
	var data string
	err := c.db.QueryRowContext(ctx, query, arg).Scan(&r.ID, &r.CampaignID, &r.Name, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load character: %w", err)
	}
	r.Data = []byte(data)
	return &r, nil
}

// World element operations

func (c *CampaignDB) SaveWorldElement(ctx context.Context, r *storage.WorldElementRecord) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO world_elements (id, campaign_id, element_type, name, data)
		 VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.CampaignID, r.ElementType, r.Name, string(r.Data))
	if err != nil {
		return fmt.Errorf("failed to save world element: %w", err)
	}
	return nil
}

func (c *CampaignDB) LoadWorldElement(ctx context.Context, id string) (*storage.WorldElementRecord, error) {
	var r storage.WorldElementRecord
	var data string
	err := c.db.QueryRowContext(ctx,
		"SELECT id, campaign_id, element_type, name, data FROM world_elements WHERE id = ?", id).
		Scan(&r.ID, &r.CampaignID, &r.ElementType, &r.Name, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load world element: %w", err)
	}
	r.Data = []byte(data)
	return &r, nil
}

func (c *CampaignDB) ListWorldElements(ctx context.Context, campaignID, elementType string) ([]*storage.WorldElementRecord, error) {
	query := "SELECT id, campaign_id, element_type, name, data FROM world_elements WHERE campaign_id = ?"
	args := []any{campaignID}
	if elementType != "" {
		query += " AND element_type = ?"
		args = append(args, elementType)
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list world elements: %w", err)
	}
	defer rows.Close()

	var elements []*storage.WorldElementRecord
	for rows.Next() {
		var r storage.WorldElementRecord
		var data string
		if err := rows.Scan(&r.ID, &r.CampaignID, &r.ElementType, &r.Name, &data); err != nil {
			return nil, fmt.Errorf("failed to scan world element: %w", err)
		}
		r.Data = []byte(data)
		elements = append(elements, &r)
	}
	return elements, rows.Err()
}

// NPC operations

func (c *CampaignDB) SaveNPC(ctx context.Context, r *storage.NPCRecord) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO npcs (id, campaign_id, name, location_id, data)
		 VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.CampaignID, r.Name, nullable(r.LocationID), string(r.Data))
	if err != nil {
		return fmt.Errorf("failed to save npc: %w", err)
	}
	return nil
}

func (c *CampaignDB) LoadNPC(ctx context.Context, id string) (*storage.NPCRecord, error) {
	var r storage.NPCRecord
	var locationID sql.NullString
	var data string
	err := c.db.QueryRowContext(ctx,
		"SELECT id, campaign_id, name, location_id, data FROM npcs WHERE id = ?", id).
		Scan(&r.ID, &r.CampaignID, &r.Name, &locationID, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load npc: %w", err)
	}
	r.LocationID = locationID.String
	r.Data = []byte(data)
	return &r, nil
}

func (c *CampaignDB) ListNPCs(ctx context.Context, campaignID, locationID string) ([]*storage.NPCRecord, error) {
	query := "SELECT id, campaign_id, name, location_id, data FROM npcs WHERE campaign_id = ?"
	args := []any{campaignID}
	if locationID != "" {
		query += " AND location_id = ?"
		args = append(args, locationID)
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list npcs: %w", err)
	}
	defer rows.Close()

	var npcs []*storage.NPCRecord
	for rows.Next() {
		var r storage.NPCRecord
		var loc sql.NullString
		var data string
		if err := rows.Scan(&r.ID, &r.CampaignID, &r.Name, &loc, &data); err != nil {
			return nil, fmt.Errorf("failed to scan npc: %w", err)
		}
		r.LocationID = loc.String
		r.Data = []byte(data)
		npcs = append(npcs, &r)
	}
	return npcs, rows.Err()
}

// Quest operations

func (c *CampaignDB) SaveQuest(ctx context.Context, r *storage.QuestRecord) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO quests (id, campaign_id, title, status, data)
		 VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.CampaignID, r.Title, r.Status, string(r.Data))
	if err != nil {
		return fmt.Errorf("failed to save quest: %w", err)
	}
	return nil
}

func (c *CampaignDB) LoadQuest(ctx context.Context, id string) (*storage.QuestRecord, error) {
	var r storage.QuestRecord
	var data string
	err := c.db.QueryRowContext(ctx,
		"SELECT id, campaign_id, title, status, data FROM quests WHERE id = ?", id).
		Scan(&r.ID, &r.CampaignID, &r.Title, &r.Status, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load quest: %w", err)
	}
	r.Data = []byte(data)
	return &r, nil
}

func (c *CampaignDB) ListQuests(ctx context.Context, campaignID, status string) ([]*storage.QuestRecord, error) {
	query := "SELECT id, campaign_id, title, status, data FROM quests WHERE campaign_id = ?"
	args := []any{campaignID}
	if status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list quests: %w", err)
	}
	defer rows.Close()

	var quests []*storage.QuestRecord
	for rows.Next() {
		var r storage.QuestRecord
		var data string
		if err := rows.Scan(&r.ID, &r.CampaignID, &r.Title, &r.Status, &data); err != nil {
			return nil, fmt.Errorf("failed to scan quest: %w", err)
		}
		r.Data = []byte(data)
		quests = append(quests, &r)
	}
	return quests, rows.Err()
}

// Event operations

func (c *CampaignDB) SaveEvent(ctx context.Context, r *storage.EventRecord) error {
	data := string(r.Data)
	if data == "" {
		data = "{}"
	}
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO events (id, campaign_id, timestamp, event_type, description, data)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.CampaignID, r.Timestamp.Format(timeFormat), r.EventType, r.Description, data)
	if err != nil {
		return fmt.Errorf("failed to save event: %w", err)
	}
	return nil
}

func (c *CampaignDB) ListEvents(ctx context.Context, campaignID string, limit int) ([]*storage.EventRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := c.db.QueryContext(ctx,
		`SELECT id, campaign_id, timestamp, event_type, description, data
		 FROM events WHERE campaign_id = ? ORDER BY timestamp DESC LIMIT ?`,
		campaignID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*storage.EventRecord
	for rows.Next() {
		var r storage.EventRecord
		var ts, data string
		if err := rows.Scan(&r.ID, &r.CampaignID, &ts, &r.EventType, &r.Description, &data); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		r.Timestamp, err = time.Parse(timeFormat, ts)
		if err != nil {
			return nil, fmt.Errorf("failed to parse event timestamp: %w", err)
		}
		r.Data = []byte(data)
		events = append(events, &r)
	}
	return events, rows.Err()
}

// Export and import

func (c *CampaignDB) ExportCampaign(ctx context.Context, campaignID string) (*storage.CampaignExport, error) {
	campaign, err := c.LoadCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, nil
	}

	export := &storage.CampaignExport{Campaign: campaign}

	char, err := c.GetCampaignCharacter(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if char != nil {
		export.Characters = append(export.Characters, char)
	}

	if export.WorldElements, err = c.ListWorldElements(ctx, campaignID, ""); err != nil {
		return nil, err
	}
	if export.NPCs, err = c.ListNPCs(ctx, campaignID, ""); err != nil {
		return nil, err
	}
	if export.Quests, err = c.ListQuests(ctx, campaignID, ""); err != nil {
		return nil, err
	}
	if export.Events, err = c.ListEvents(ctx, campaignID, 1000); err != nil {
		return nil, err
	}
	return export, nil
}

func (c *CampaignDB) ImportCampaign(ctx context.Context, export *storage.CampaignExport) (string, error) {
	if export == nil || export.Campaign == nil {
		return "", fmt.Errorf("export has no campaign")
	}

	if err := c.SaveCampaign(ctx, export.Campaign); err != nil {
		return "", err
	}
	for _, char := range export.Characters {
		if err := c.SaveCharacter(ctx, char); err != nil {
			return "", err
		}
	}
	for _, elem := range export.WorldElements {
		if err := c.SaveWorldElement(ctx, elem); err != nil {
			return "", err
		}
	}
	for _, n := range export.NPCs {
		if err := c.SaveNPC(ctx, n); err != nil {
			return "", err
		}
	}
	for _, q := range export.Quests {
		if err := c.SaveQuest(ctx, q); err != nil {
			return "", err
		}
	}
	for _, e := range export.Events {
		if err := c.SaveEvent(ctx, e); err != nil {
			return "", err
		}
	}
	return export.Campaign.ID, nil
}

// nullable maps empty strings to NULL so cascade and index semantics
// stay clean.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCampaign(row rowScanner) (*storage.Campaign, error) {
	var c storage.Campaign
	var created, updated string
	var characterID, locationID sql.NullString
	if err := row.Scan(&c.ID, &c.Name, &created, &updated, &characterID, &locationID, &c.PlaytimeSeconds); err != nil {
		return nil, err
	}

	var err error
	if c.CreatedAt, err = time.Parse(timeFormat, created); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if c.UpdatedAt, err = time.Parse(timeFormat, updated); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	c.CharacterID = characterID.String
	c.CurrentLocationID = locationID.String
	return &c, nil
}
