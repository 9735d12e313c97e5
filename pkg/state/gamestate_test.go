package state

import (
	"strings"
	"testing"

	"github.com/jwebster45206/reverie/pkg/character"
	"github.com/jwebster45206/reverie/pkg/combat"
	"github.com/jwebster45206/reverie/pkg/npc"
	"github.com/jwebster45206/reverie/pkg/quest"
	"github.com/jwebster45206/reverie/pkg/storage"
	"github.com/jwebster45206/reverie/pkg/world"
)

func testCharacter(t *testing.T) *character.Character {
	t.Helper()
	stats, err := character.NewStats(5, 4, 3)
	if err != nil {
		t.Fatalf("NewStats: %v", err)
	}
	c, err := character.New("Ivy", "human", character.ClassCodeWarrior, stats, "")
	if err != nil {
		t.Fatalf("character.New: %v", err)
	}
	return c
}

func testLocation(name string) *world.Location {
	return &world.Location{
		Element: world.Element{
			ID:          "loc-" + strings.ToLower(name),
			Type:        world.TypeSettlement,
			Name:        name,
			Description: "a quiet place",
		},
		Exits: map[string]string{},
	}
}

func TestNewGameState(t *testing.T) {
	loc := testLocation("Milltown")
	gs := New(storage.NewCampaign("First Light"), testCharacter(t), loc)

	if len(gs.History) != 1 {
		t.Fatalf("history length = %d, want 1", len(gs.History))
	}
	entry := gs.History[0]
	if entry.EventType != EventNarration {
		t.Errorf("event type = %q, want %q", entry.EventType, EventNarration)
	}
	if !strings.Contains(entry.Description, "Ivy begins their adventure") {
		t.Errorf("unexpected opening narration %q", entry.Description)
	}
	if !gs.HasDiscovered(loc.ID) {
		t.Error("starting location should be discovered")
	}
}

func TestNewGameStateWithoutLocation(t *testing.T) {
	gs := New(storage.NewCampaign("Drifter"), testCharacter(t), nil)
	if len(gs.DiscoveredLocations) != 0 {
		t.Errorf("discovered = %v, want empty", gs.DiscoveredLocations)
	}
	if len(gs.History) != 1 {
		t.Errorf("history length = %d, want 1", len(gs.History))
	}
}

func TestRecentHistory(t *testing.T) {
	gs := New(storage.NewCampaign("c"), testCharacter(t), nil)
	gs.AddHistory(EventPlayerAction, "first", nil)
	gs.AddHistory(EventPlayerAction, "second", nil)
	gs.AddHistory(EventNarration, "third", nil)

	recent := gs.RecentHistory(2)
	if len(recent) != 2 {
		t.Fatalf("recent length = %d, want 2", len(recent))
	}
	if recent[0].Description != "second" || recent[1].Description != "third" {
		t.Errorf("recent = [%s, %s], want oldest first", recent[0].Description, recent[1].Description)
	}

	if got := gs.RecentHistory(100); len(got) != 4 {
		t.Errorf("oversized window length = %d, want 4", len(got))
	}
	if got := gs.RecentHistory(0); got != nil {
		t.Errorf("zero window = %v, want nil", got)
	}

	actions := gs.HistoryByType(EventPlayerAction)
	if len(actions) != 2 {
		t.Errorf("player actions = %d, want 2", len(actions))
	}
}

func TestInCombat(t *testing.T) {
	gs := New(storage.NewCampaign("c"), testCharacter(t), nil)
	if gs.InCombat() {
		t.Error("no combat state, should not be in combat")
	}

	gs.CombatState = combat.Start([]*combat.Enemy{combat.NewEnemy("Wolf", 1, "")}, character.Fresh, 0)
	if !gs.InCombat() {
		t.Error("ongoing combat should report in combat")
	}

	gs.CombatState.Status = combat.StatusVictory
	if gs.InCombat() {
		t.Error("terminal combat should not report in combat")
	}
}

func TestSetActiveQuestSingleActive(t *testing.T) {
	gs := New(storage.NewCampaign("c"), testCharacter(t), nil)

	first := quest.Generate(quest.Spec{Title: "Find the Ledger"})
	if err := gs.SetActiveQuest(first); err != nil {
		t.Fatalf("first SetActiveQuest: %v", err)
	}
	if !gs.HasActiveQuest() {
		t.Fatal("expected active quest")
	}

	second := quest.Generate(quest.Spec{Title: "Walk the Walls"})
	if err := gs.SetActiveQuest(second); err == nil {
		t.Error("expected error assigning a second active quest")
	}

	// Re-assigning the same quest is allowed.
	if err := gs.SetActiveQuest(first); err != nil {
		t.Errorf("re-assign same quest: %v", err)
	}

	first.Fail("abandoned the search")
	if err := gs.SetActiveQuest(second); err != nil {
		t.Errorf("assign after terminal: %v", err)
	}
}

func TestMoveTo(t *testing.T) {
	start := testLocation("Milltown")
	gs := New(storage.NewCampaign("c"), testCharacter(t), start)
	gs.MeetNPC(npc.Generate(npc.Spec{Name: "Sten"}))

	dest := testLocation("Fort Briar")
	gs.MoveTo(dest)

	if gs.Location.ID != dest.ID {
		t.Errorf("location = %s, want %s", gs.Location.ID, dest.ID)
	}
	if len(gs.NPCsPresent) != 0 {
		t.Error("NPCs present should clear on travel")
	}
	if !gs.HasDiscovered(dest.ID) || !gs.HasDiscovered(start.ID) {
		t.Error("both locations should be discovered")
	}

	// Returning does not duplicate discovery.
	gs.MoveTo(start)
	if len(gs.DiscoveredLocations) != 2 {
		t.Errorf("discovered = %d, want 2", len(gs.DiscoveredLocations))
	}

	changes := gs.HistoryByType(EventLocationChange)
	if len(changes) != 2 {
		t.Errorf("location changes = %d, want 2", len(changes))
	}
}

func TestMeetNPC(t *testing.T) {
	gs := New(storage.NewCampaign("c"), testCharacter(t), nil)
	guard := npc.Generate(npc.Spec{Name: "Sten", Occupation: "guard"})

	gs.MeetNPC(guard)
	gs.MeetNPC(guard)

	if len(gs.NPCsPresent) != 1 || len(gs.KnownNPCs) != 1 {
		t.Errorf("present = %d known = %d, want 1 and 1", len(gs.NPCsPresent), len(gs.KnownNPCs))
	}
}

func TestToSnapshot(t *testing.T) {
	loc := testLocation("Milltown")
	loc.Exits["north"] = "loc-fortbriar"
	gs := New(storage.NewCampaign("First Light"), testCharacter(t), loc)
	gs.MeetNPC(npc.Generate(npc.Spec{Name: "Sten", Occupation: "guard"}))

	q := quest.Generate(quest.Spec{Title: "Find the Ledger", Objective: "Recover the ledger"})
	if err := gs.SetActiveQuest(q); err != nil {
		t.Fatalf("SetActiveQuest: %v", err)
	}

	snap := ToSnapshot(gs, 0)

	if snap.CampaignName != "First Light" {
		t.Errorf("campaign name = %q", snap.CampaignName)
	}
	if snap.Character.Name != "Ivy" || snap.Character.Stats["might"] != 5 {
		t.Errorf("character snapshot = %+v", snap.Character)
	}
	if snap.Location == nil || snap.Location.Exits["north"] != "loc-fortbriar" {
		t.Errorf("location snapshot = %+v", snap.Location)
	}
	if len(snap.NPCsPresent) != 1 || snap.NPCsPresent[0].Name != "Sten" {
		t.Errorf("npc snapshot = %+v", snap.NPCsPresent)
	}
	if snap.ActiveQuest == nil || snap.ActiveQuest.CurrentStage == nil {
		t.Fatalf("quest snapshot = %+v", snap.ActiveQuest)
	}
	if snap.ActiveQuest.CurrentStage.Index != 0 {
		t.Errorf("current stage index = %d, want 0", snap.ActiveQuest.CurrentStage.Index)
	}
	if snap.InCombat {
		t.Error("not in combat")
	}
	if len(snap.RecentHistory) == 0 {
		t.Error("expected recent history entries")
	}

	gs.CombatState = combat.Start([]*combat.Enemy{combat.NewEnemy("Wolf", 1, "pack tactics")}, gs.Character.DangerLevel, 0)
	snap = ToSnapshot(gs, 3)
	if snap.Combat == nil || len(snap.Combat.Enemies) != 1 {
		t.Fatalf("combat snapshot = %+v", snap.Combat)
	}
	if snap.Combat.Enemies[0].DangerLevel != "FRESH" {
		t.Errorf("enemy danger = %q, want FRESH", snap.Combat.Enemies[0].DangerLevel)
	}
	if !snap.InCombat {
		t.Error("expected in combat")
	}
}
