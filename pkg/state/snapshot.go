package state

// Snapshot is a reduced game state for narration context. It carries
// only what the narrator needs to continue the scene.
type Snapshot struct {
	CampaignName  string             `json:"campaign_name"`
	Character     SnapshotCharacter  `json:"character"`
	Location      *SnapshotLocation  `json:"location,omitempty"`
	NPCsPresent   []SnapshotNPC      `json:"npcs_present,omitempty"`
	ActiveQuest   *SnapshotQuest     `json:"active_quest,omitempty"`
	Combat        *SnapshotCombat    `json:"combat,omitempty"`
	InCombat      bool               `json:"in_combat"`
	RecentHistory []SnapshotHistory  `json:"recent_history,omitempty"`
}

type SnapshotCharacter struct {
	Name        string         `json:"name"`
	Race        string         `json:"race"`
	Class       string         `json:"class"`
	Level       int            `json:"level"`
	DangerLevel string         `json:"danger_level"`
	Stats       map[string]int `json:"stats"`
	Background  string         `json:"background,omitempty"`
	Gold        int            `json:"gold"`
}

type SnapshotLocation struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	Tags            []string          `json:"tags,omitempty"`
	Exits           map[string]string `json:"exits,omitempty"`
	RevealedSecrets []string          `json:"revealed_secrets,omitempty"`
}

type SnapshotNPC struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Race        string   `json:"race"`
	Occupation  string   `json:"occupation"`
	Traits      []string `json:"traits,omitempty"`
	Disposition string   `json:"disposition"`
}

type SnapshotQuest struct {
	ID           string              `json:"id"`
	Title        string              `json:"title"`
	Hook         string              `json:"hook"`
	Objective    string              `json:"objective"`
	CurrentStage *SnapshotQuestStage `json:"current_stage,omitempty"`
	Status       string              `json:"status"`
}

type SnapshotQuestStage struct {
	Index       int    `json:"index"`
	Description string `json:"description"`
}

type SnapshotCombat struct {
	Turn         int             `json:"turn"`
	PlayerDanger string          `json:"player_danger"`
	Enemies      []SnapshotEnemy `json:"enemies"`
	Status       string          `json:"status"`
}

type SnapshotEnemy struct {
	Name        string `json:"name"`
	DangerLevel string `json:"danger_level"`
	Special     string `json:"special,omitempty"`
}

type SnapshotHistory struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// DefaultHistoryLimit bounds how much history a snapshot carries.
const DefaultHistoryLimit = 5

// ToSnapshot builds a narration snapshot from the full game state.
func ToSnapshot(gs *GameState, historyLimit int) *Snapshot {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}

	s := &Snapshot{
		CampaignName: gs.Campaign.Name,
		Character: SnapshotCharacter{
			Name:        gs.Character.Name,
			Race:        gs.Character.Race,
			Class:       string(gs.Character.Class),
			Level:       gs.Character.Level,
			DangerLevel: gs.Character.DangerLevel.String(),
			Stats: map[string]int{
				"might":  gs.Character.Stats.Might,
				"wit":    gs.Character.Stats.Wit,
				"spirit": gs.Character.Stats.Spirit,
			},
			Background: gs.Character.Background,
			Gold:       gs.Character.Gold,
		},
		InCombat: gs.InCombat(),
	}

	if gs.Location != nil {
		s.Location = &SnapshotLocation{
			ID:              gs.Location.ID,
			Name:            gs.Location.Name,
			Description:     gs.Location.Description,
			Tags:            gs.Location.Tags,
			Exits:           gs.Location.Exits,
			RevealedSecrets: gs.Location.RevealedSecretTexts(),
		}
	}

	for _, n := range gs.NPCsPresent {
		s.NPCsPresent = append(s.NPCsPresent, SnapshotNPC{
			ID:          n.ID,
			Name:        n.Name,
			Race:        n.Race,
			Occupation:  n.Occupation,
			Traits:      n.Traits,
			Disposition: string(n.Disposition),
		})
	}

	if q := gs.ActiveQuest; q != nil {
		sq := &SnapshotQuest{
			ID:        q.ID,
			Title:     q.Title,
			Hook:      q.Hook,
			Objective: q.Objective,
			Status:    string(q.Status),
		}
		for i, stage := range q.Stages {
			if !stage.Completed {
				sq.CurrentStage = &SnapshotQuestStage{Index: i, Description: stage.Description}
				break
			}
		}
		s.ActiveQuest = sq
	}

	if cs := gs.CombatState; cs != nil {
		sc := &SnapshotCombat{
			Turn:         cs.Turn,
			PlayerDanger: cs.PlayerDanger.String(),
			Status:       string(cs.Status),
		}
		for _, e := range cs.Enemies {
			sc.Enemies = append(sc.Enemies, SnapshotEnemy{
				Name:        e.Name,
				DangerLevel: e.DangerLevel.String(),
				Special:     e.Special,
			})
		}
		s.Combat = sc
	}

	for _, h := range gs.RecentHistory(historyLimit) {
		s.RecentHistory = append(s.RecentHistory, SnapshotHistory{
			Type:        h.EventType,
			Description: h.Description,
		})
	}

	return s
}
