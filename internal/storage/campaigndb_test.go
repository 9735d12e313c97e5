package storage

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jwebster45206/reverie/pkg/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testCampaignDB(t *testing.T) *CampaignDB {
	t.Helper()
	db, err := OpenCampaignDB(filepath.Join(t.TempDir(), "campaigns.db"), testLogger())
	if err != nil {
		t.Fatalf("OpenCampaignDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestCampaignRoundTrip(t *testing.T) {
	db := testCampaignDB(t)
	ctx := context.Background()

	campaign := storage.NewCampaign("The Long Road")
	campaign.CurrentLocationID = "loc-1"
	if err := db.SaveCampaign(ctx, campaign); err != nil {
		t.Fatalf("SaveCampaign: %v", err)
	}

	loaded, err := db.LoadCampaign(ctx, campaign.ID)
	if err != nil {
		t.Fatalf("LoadCampaign: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected campaign, got nil")
	}
	if loaded.Name != "The Long Road" || loaded.CurrentLocationID != "loc-1" {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestLoadMissingCampaign(t *testing.T) {
	db := testCampaignDB(t)

	loaded, err := db.LoadCampaign(context.Background(), "nope")
	if err != nil {
		t.Fatalf("expected no error for missing campaign, got %v", err)
	}
	if loaded != nil {
		t.Errorf("expected nil, got %+v", loaded)
	}
}

func TestListCampaignsOrdering(t *testing.T) {
	db := testCampaignDB(t)
	ctx := context.Background()

	first := storage.NewCampaign("first")
	second := storage.NewCampaign("second")
	if err := db.SaveCampaign(ctx, first); err != nil {
		t.Fatalf("SaveCampaign: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if err := db.SaveCampaign(ctx, second); err != nil {
		t.Fatalf("SaveCampaign: %v", err)
	}

	campaigns, err := db.ListCampaigns(ctx)
	if err != nil {
		t.Fatalf("ListCampaigns: %v", err)
	}
	if len(campaigns) != 2 {
		t.Fatalf("campaigns = %d, want 2", len(campaigns))
	}
	if campaigns[0].Name != "second" {
		t.Errorf("most recently updated should sort first, got %q", campaigns[0].Name)
	}

	// Touching a campaign bumps it to the front.
	time.Sleep(5 * time.Millisecond)
	if err := db.SaveCampaign(ctx, first); err != nil {
		t.Fatalf("SaveCampaign: %v", err)
	}
	campaigns, err = db.ListCampaigns(ctx)
	if err != nil {
		t.Fatalf("ListCampaigns: %v", err)
	}
	if campaigns[0].Name != "first" {
		t.Errorf("expected first after re-save, got %q", campaigns[0].Name)
	}
}

func TestDeleteCampaignCascades(t *testing.T) {
	db := testCampaignDB(t)
	ctx := context.Background()

	campaign := storage.NewCampaign("doomed")
	if err := db.SaveCampaign(ctx, campaign); err != nil {
		t.Fatalf("SaveCampaign: %v", err)
	}

	char := &storage.CharacterRecord{ID: "char-1", CampaignID: campaign.ID, Name: "Ivy", Data: json.RawMessage(`{}`)}
	if err := db.SaveCharacter(ctx, char); err != nil {
		t.Fatalf("SaveCharacter: %v", err)
	}
	npc := &storage.NPCRecord{ID: "npc-1", CampaignID: campaign.ID, Name: "Sten", Data: json.RawMessage(`{}`)}
	if err := db.SaveNPC(ctx, npc); err != nil {
		t.Fatalf("SaveNPC: %v", err)
	}
	event := storage.NewEventRecord(campaign.ID, "narration", "something happened", nil)
	if err := db.SaveEvent(ctx, event); err != nil {
		t.Fatalf("SaveEvent: %v", err)
	}

	deleted, err := db.DeleteCampaign(ctx, campaign.ID)
	if err != nil {
		t.Fatalf("DeleteCampaign: %v", err)
	}
	if !deleted {
		t.Fatal("expected deletion to report true")
	}

	if got, err := db.LoadCharacter(ctx, "char-1"); err != nil || got != nil {
		t.Errorf("character after cascade = %v, %v; want nil, nil", got, err)
	}
	if got, err := db.LoadNPC(ctx, "npc-1"); err != nil || got != nil {
		t.Errorf("npc after cascade = %v, %v; want nil, nil", got, err)
	}
	events, err := db.ListEvents(ctx, campaign.ID, 10)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("events after cascade = %d, want 0", len(events))
	}

	deleted, err = db.DeleteCampaign(ctx, campaign.ID)
	if err != nil {
		t.Fatalf("DeleteCampaign: %v", err)
	}
	if deleted {
		t.Error("second delete should report false")
	}
}

func TestDeleteCampaignCascadesOnFreshConnection(t *testing.T) {
	db := testCampaignDB(t)
	ctx := context.Background()

	// Retire idle connections so every statement below runs on a
	// connection opened after setup. Pragmas must come from the DSN
	// for cascades to hold across the pool.
	db.db.SetMaxIdleConns(0)

	var enabled int
	if err := db.db.QueryRow("PRAGMA foreign_keys").Scan(&enabled); err != nil {
		t.Fatalf("PRAGMA foreign_keys: %v", err)
	}
	if enabled != 1 {
		t.Fatalf("foreign_keys = %d on a fresh pooled connection, want 1", enabled)
	}
	var journalMode string
	if err := db.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode); err != nil {
		t.Fatalf("PRAGMA journal_mode: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("journal_mode = %q, want %q", journalMode, "wal")
	}

	campaign := storage.NewCampaign("doomed")
	if err := db.SaveCampaign(ctx, campaign); err != nil {
		t.Fatalf("SaveCampaign: %v", err)
	}
	char := &storage.CharacterRecord{ID: "char-1", CampaignID: campaign.ID, Name: "Ivy", Data: json.RawMessage(`{}`)}
	if err := db.SaveCharacter(ctx, char); err != nil {
		t.Fatalf("SaveCharacter: %v", err)
	}

	deleted, err := db.DeleteCampaign(ctx, campaign.ID)
	if err != nil {
		t.Fatalf("DeleteCampaign: %v", err)
	}
	if !deleted {
		t.Fatal("expected deletion to report true")
	}
	if got, err := db.LoadCharacter(ctx, "char-1"); err != nil || got != nil {
		t.Errorf("character after cascade = %v, %v; want nil, nil", got, err)
	}
}

func TestSaveCharacterUpsert(t *testing.T) {
	db := testCampaignDB(t)
	ctx := context.Background()

	campaign := storage.NewCampaign("c")
	if err := db.SaveCampaign(ctx, campaign); err != nil {
		t.Fatalf("SaveCampaign: %v", err)
	}

	char := &storage.CharacterRecord{ID: "char-1", CampaignID: campaign.ID, Name: "Ivy", Data: json.RawMessage(`{"level":1}`)}
	if err := db.SaveCharacter(ctx, char); err != nil {
		t.Fatalf("SaveCharacter: %v", err)
	}
	char.Data = json.RawMessage(`{"level":2}`)
	if err := db.SaveCharacter(ctx, char); err != nil {
		t.Fatalf("SaveCharacter upsert: %v", err)
	}

	loaded, err := db.GetCampaignCharacter(ctx, campaign.ID)
	if err != nil {
		t.Fatalf("GetCampaignCharacter: %v", err)
	}
	if loaded == nil || string(loaded.Data) != `{"level":2}` {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestListWorldElementsFilter(t *testing.T) {
	db := testCampaignDB(t)
	ctx := context.Background()

	campaign := storage.NewCampaign("c")
	if err := db.SaveCampaign(ctx, campaign); err != nil {
		t.Fatalf("SaveCampaign: %v", err)
	}

	for _, e := range []*storage.WorldElementRecord{
		{ID: "e1", CampaignID: campaign.ID, ElementType: "settlement", Name: "Milltown", Data: json.RawMessage(`{}`)},
		{ID: "e2", CampaignID: campaign.ID, ElementType: "dungeon", Name: "The Pit", Data: json.RawMessage(`{}`)},
		{ID: "e3", CampaignID: campaign.ID, ElementType: "settlement", Name: "Fort Briar", Data: json.RawMessage(`{}`)},
	} {
		if err := db.SaveWorldElement(ctx, e); err != nil {
			t.Fatalf("SaveWorldElement: %v", err)
		}
	}

	settlements, err := db.ListWorldElements(ctx, campaign.ID, "settlement")
	if err != nil {
		t.Fatalf("ListWorldElements: %v", err)
	}
	if len(settlements) != 2 {
		t.Errorf("settlements = %d, want 2", len(settlements))
	}

	all, err := db.ListWorldElements(ctx, campaign.ID, "")
	if err != nil {
		t.Fatalf("ListWorldElements: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("all = %d, want 3", len(all))
	}
}

func TestListNPCsByLocation(t *testing.T) {
	db := testCampaignDB(t)
	ctx := context.Background()

	campaign := storage.NewCampaign("c")
	if err := db.SaveCampaign(ctx, campaign); err != nil {
		t.Fatalf("SaveCampaign: %v", err)
	}

	for _, n := range []*storage.NPCRecord{
		{ID: "n1", CampaignID: campaign.ID, Name: "Sten", LocationID: "loc-1", Data: json.RawMessage(`{}`)},
		{ID: "n2", CampaignID: campaign.ID, Name: "Mara", LocationID: "loc-2", Data: json.RawMessage(`{}`)},
	} {
		if err := db.SaveNPC(ctx, n); err != nil {
			t.Fatalf("SaveNPC: %v", err)
		}
	}

	at1, err := db.ListNPCs(ctx, campaign.ID, "loc-1")
	if err != nil {
		t.Fatalf("ListNPCs: %v", err)
	}
	if len(at1) != 1 || at1[0].Name != "Sten" {
		t.Errorf("npcs at loc-1 = %+v", at1)
	}
}

func TestListQuestsByStatus(t *testing.T) {
	db := testCampaignDB(t)
	ctx := context.Background()

	campaign := storage.NewCampaign("c")
	if err := db.SaveCampaign(ctx, campaign); err != nil {
		t.Fatalf("SaveCampaign: %v", err)
	}

	for _, q := range []*storage.QuestRecord{
		{ID: "q1", CampaignID: campaign.ID, Title: "one", Status: "active", Data: json.RawMessage(`{}`)},
		{ID: "q2", CampaignID: campaign.ID, Title: "two", Status: "completed", Data: json.RawMessage(`{}`)},
	} {
		if err := db.SaveQuest(ctx, q); err != nil {
			t.Fatalf("SaveQuest: %v", err)
		}
	}

	active, err := db.ListQuests(ctx, campaign.ID, "active")
	if err != nil {
		t.Fatalf("ListQuests: %v", err)
	}
	if len(active) != 1 || active[0].Title != "one" {
		t.Errorf("active quests = %+v", active)
	}
}

func TestListEventsNewestFirst(t *testing.T) {
	db := testCampaignDB(t)
	ctx := context.Background()

	campaign := storage.NewCampaign("c")
	if err := db.SaveCampaign(ctx, campaign); err != nil {
		t.Fatalf("SaveCampaign: %v", err)
	}

	base := time.Now().UTC()
	for i, desc := range []string{"oldest", "middle", "newest"} {
		e := storage.NewEventRecord(campaign.ID, "narration", desc, nil)
		e.Timestamp = base.Add(time.Duration(i) * time.Second)
		if err := db.SaveEvent(ctx, e); err != nil {
			t.Fatalf("SaveEvent: %v", err)
		}
	}

	events, err := db.ListEvents(ctx, campaign.ID, 2)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	if events[0].Description != "newest" || events[1].Description != "middle" {
		t.Errorf("events = [%s, %s], want newest first", events[0].Description, events[1].Description)
	}
}

func TestExportImportCampaign(t *testing.T) {
	src := testCampaignDB(t)
	dst := testCampaignDB(t)
	ctx := context.Background()

	campaign := storage.NewCampaign("portable")
	if err := src.SaveCampaign(ctx, campaign); err != nil {
		t.Fatalf("SaveCampaign: %v", err)
	}
	char := &storage.CharacterRecord{ID: "char-1", CampaignID: campaign.ID, Name: "Ivy", Data: json.RawMessage(`{"level":3}`)}
	if err := src.SaveCharacter(ctx, char); err != nil {
		t.Fatalf("SaveCharacter: %v", err)
	}
	if err := src.SaveEvent(ctx, storage.NewEventRecord(campaign.ID, "narration", "it begins", nil)); err != nil {
		t.Fatalf("SaveEvent: %v", err)
	}

	export, err := src.ExportCampaign(ctx, campaign.ID)
	if err != nil {
		t.Fatalf("ExportCampaign: %v", err)
	}
	if export == nil || len(export.Characters) != 1 || len(export.Events) != 1 {
		t.Fatalf("export = %+v", export)
	}

	id, err := dst.ImportCampaign(ctx, export)
	if err != nil {
		t.Fatalf("ImportCampaign: %v", err)
	}
	if id != campaign.ID {
		t.Errorf("imported id = %s, want %s", id, campaign.ID)
	}

	loaded, err := dst.GetCampaignCharacter(ctx, campaign.ID)
	if err != nil {
		t.Fatalf("GetCampaignCharacter: %v", err)
	}
	if loaded == nil || string(loaded.Data) != `{"level":3}` {
		t.Errorf("imported character = %+v", loaded)
	}
}

func TestExportMissingCampaign(t *testing.T) {
	db := testCampaignDB(t)

	export, err := db.ExportCampaign(context.Background(), "nope")
	if err != nil {
		t.Fatalf("ExportCampaign: %v", err)
	}
	if export != nil {
		t.Errorf("expected nil export, got %+v", export)
	}

	if _, err := db.ImportCampaign(context.Background(), &storage.CampaignExport{}); err == nil {
		t.Error("expected error importing export without campaign")
	}
}
