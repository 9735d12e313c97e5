package combat

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jwebster45206/reverie/pkg/character"
)

// Status is the closed set of combat states. ONGOING is the only
// non-terminal value.
type Status string

const (
	StatusOngoing Status = "ongoing"
	StatusVictory Status = "victory"
	StatusDefeat  Status = "defeat"
	StatusRetreat Status = "retreat"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusOngoing, StatusVictory, StatusDefeat, StatusRetreat:
		return true
	}
	return false
}

// IsTerminal reports whether combat has ended.
func (s Status) IsTerminal() bool {
	return s != StatusOngoing
}

// Enemy is one opponent in an encounter.
type Enemy struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	DangerLevel character.DangerLevel `json:"danger_level"`
	Damage      int                   `json:"damage"` // danger levels dealt per hit
	Special     string                `json:"special,omitempty"`
}

// NewEnemy creates a fresh enemy.
func NewEnemy(name string, damage int, special string) *Enemy {
	return &Enemy{
		ID:          uuid.NewString(),
		Name:        name,
		DangerLevel: character.Fresh,
		Damage:      damage,
		Special:     special,
	}
}

// IsDefeated reports whether the enemy is out of the fight.
func (e *Enemy) IsDefeated() bool {
	return e.DangerLevel == character.Defeated
}

// TakeDamage reduces the enemy's danger level, floored at DEFEATED.
func (e *Enemy) TakeDamage(amount int) character.DangerLevel {
	e.DangerLevel = e.DangerLevel.Damaged(amount)
	return e.DangerLevel
}

// DefaultRetreatDC is the difficulty to disengage from combat.
const DefaultRetreatDC = 10

// State is the full state of one combat encounter. It lives only inside a
// live game session and is never persisted; an in-progress fight does not
// survive a save/load cycle.
type State struct {
	PlayerDanger character.DangerLevel `json:"player_danger"`
	Enemies      []*Enemy              `json:"enemies"`
	Turn         int                   `json:"turn"`
	Status       Status                `json:"status"`
	Log          []string              `json:"log"`
	RetreatDC    int                   `json:"retreat_difficulty"`

	// defended is the stance carried into the next enemy turn.
	defended bool
}

// Start opens a new encounter at turn 1.
func Start(enemies []*Enemy, playerDanger character.DangerLevel, retreatDC int) *State {
	if retreatDC <= 0 {
		retreatDC = DefaultRetreatDC
	}
	s := &State{
		PlayerDanger: playerDanger,
		Enemies:      enemies,
		Turn:         1,
		Status:       StatusOngoing,
		RetreatDC:    retreatDC,
	}
	names := make([]string, 0, len(enemies))
	for _, e := range enemies {
		names = append(names, e.Name)
	}
	s.AddLog("Combat begins! Facing: " + strings.Join(names, ", "))
	return s
}

// AddLog appends a message to the combat log, stamped with the turn.
func (s *State) AddLog(message string) {
	s.Log = append(s.Log, fmt.Sprintf("Turn %d: %s", s.Turn, message))
}

// ActiveEnemies returns the enemies still in the fight.
func (s *State) ActiveEnemies() []*Enemy {
	var out []*Enemy
	for _, e := range s.Enemies {
		if !e.IsDefeated() {
			out = append(out, e)
		}
	}
	return out
}

// AllEnemiesDefeated reports whether every enemy is down.
func (s *State) AllEnemiesDefeated() bool {
	for _, e := range s.Enemies {
		if !e.IsDefeated() {
			return false
		}
	}
	return true
}

// PlayerDefeated reports whether the player is down.
func (s *State) PlayerDefeated() bool {
	return s.PlayerDanger == character.Defeated
}

// PlayerTakeDamage reduces the player's danger level, floored at DEFEATED.
func (s *State) PlayerTakeDamage(amount int) character.DangerLevel {
	s.PlayerDanger = s.PlayerDanger.Damaged(amount)
	return s.PlayerDanger
}

// Result summarizes a finished (or finishing) encounter.
type Result struct {
	Status            Status
	TurnsTaken        int
	EnemiesDefeated   int
	PlayerFinalDanger character.DangerLevel
	Log               []string
}

func (s *State) defeatedCount() int {
	n := 0
	for _, e := range s.Enemies {
		if e.IsDefeated() {
			n++
		}
	}
	return n
}

// CheckEnd evaluates the end conditions. It returns nil while combat is
// genuinely ongoing. On an already-terminal state it returns the summary
// without recomputing the outcome.
func CheckEnd(s *State) *Result {
	if s.Status.IsTerminal() {
		return &Result{
			Status:            s.Status,
			TurnsTaken:        s.Turn,
			EnemiesDefeated:   s.defeatedCount(),
			PlayerFinalDanger: s.PlayerDanger,
			Log:               s.Log,
		}
	}

	if s.AllEnemiesDefeated() {
		return &Result{
			Status:            StatusVictory,
			TurnsTaken:        s.Turn,
			EnemiesDefeated:   len(s.Enemies),
			PlayerFinalDanger: s.PlayerDanger,
			Log:               s.Log,
		}
	}

	if s.PlayerDefeated() {
		return &Result{
			Status:            StatusDefeat,
			TurnsTaken:        s.Turn,
			EnemiesDefeated:   s.defeatedCount(),
			PlayerFinalDanger: s.PlayerDanger,
			Log:               s.Log,
		}
	}

	return nil
}
