package character

import (
	"fmt"
)

// Class is the closed set of player classes.
type Class string

const (
	ClassCodeWarrior      Class = "Code Warrior"
	ClassMeetingSurvivor  Class = "Meeting Survivor"
	ClassInboxKnight      Class = "Inbox Knight"
	ClassWanderer         Class = "Wanderer"
	ClassStackOverflow    Class = "Stack Overflow"
	ClassScrumMaster      Class = "Scrum Master"
	ClassLegacyMaintainer Class = "Legacy Maintainer"
	ClassDeployNinja      Class = "Deploy Ninja"
)

// Classes lists every valid class, in presentation order.
func Classes() []Class {
	return []Class{
		ClassCodeWarrior,
		ClassMeetingSurvivor,
		ClassInboxKnight,
		ClassWanderer,
		ClassStackOverflow,
		ClassScrumMaster,
		ClassLegacyMaintainer,
		ClassDeployNinja,
	}
}

func (c Class) IsValid() bool {
	switch c {
	case ClassCodeWarrior, ClassMeetingSurvivor, ClassInboxKnight, ClassWanderer,
		ClassStackOverflow, ClassScrumMaster, ClassLegacyMaintainer, ClassDeployNinja:
		return true
	}
	return false
}

// Stat identifies one of the three core stats.
type Stat string

const (
	StatMight  Stat = "might"
	StatWit    Stat = "wit"
	StatSpirit Stat = "spirit"
)

// StatsTotal is the required sum of a valid stat allocation.
const StatsTotal = 12

// MaxStat is the ceiling for a single stat.
const MaxStat = 6

// Stats is a character's core stat allocation.
// Each stat is 0..6 and the three must total 12.
type Stats struct {
	Might  int `json:"might"`
	Wit    int `json:"wit"`
	Spirit int `json:"spirit"`
}

// NewStats builds a validated stat allocation.
func NewStats(might, wit, spirit int) (Stats, error) {
	s := Stats{Might: might, Wit: wit, Spirit: spirit}
	if err := s.Validate(); err != nil {
		return Stats{}, err
	}
	return s, nil
}

// Validate rejects out-of-range stats and totals other than 12.
func (s Stats) Validate() error {
	for _, v := range []int{s.Might, s.Wit, s.Spirit} {
		if v < 0 || v > MaxStat {
			return fmt.Errorf("each stat must be between 0 and %d, got %d", MaxStat, v)
		}
	}
	if s.Total() != StatsTotal {
		return fmt.Errorf("stats must total %d, got %d", StatsTotal, s.Total())
	}
	return nil
}

// Total is the sum of all three stats.
func (s Stats) Total() int {
	return s.Might + s.Wit + s.Spirit
}

// Value returns the allocation for one stat. Unknown stats read as 0.
func (s Stats) Value(stat Stat) int {
	switch stat {
	case StatMight:
		return s.Might
	case StatWit:
		return s.Wit
	case StatSpirit:
		return s.Spirit
	default:
		return 0
	}
}

// Modifier is the roll modifier for a stat: value - 3.
func (s Stats) Modifier(stat Stat) int {
	return s.Value(stat) - 3
}

// Equipment holds the three equip slots. Empty string means nothing equipped.
type Equipment struct {
	Weapon    string `json:"weapon,omitempty"`
	Armor     string `json:"armor,omitempty"`
	Accessory string `json:"accessory,omitempty"`
}

// Character is the player character.
type Character struct {
	Name        string      `json:"name"`
	Race        string      `json:"race"`
	Class       Class       `json:"player_class"`
	Stats       Stats       `json:"stats"`
	Background  string      `json:"background,omitempty"`
	Equipment   Equipment   `json:"equipment"`
	Inventory   []string    `json:"inventory,omitempty"`
	DangerLevel DangerLevel `json:"danger_level"`
	Gold        int         `json:"gold"`
	XP          int         `json:"xp"`
	Level       int         `json:"level"`
}

// New creates a character with defaults and class starting equipment.
func New(name, race string, class Class, stats Stats, background string) (*Character, error) {
	if !class.IsValid() {
		return nil, fmt.Errorf("invalid class: %q", class)
	}
	if err := stats.Validate(); err != nil {
		return nil, err
	}
	return &Character{
		Name:        name,
		Race:        race,
		Class:       class,
		Stats:       stats,
		Background:  background,
		Equipment:   startingEquipment(class),
		DangerLevel: Fresh,
		Gold:        50,
		XP:          0,
		Level:       1,
	}, nil
}

func startingEquipment(class Class) Equipment {
	switch class {
	case ClassCodeWarrior:
		return Equipment{Weapon: "Keyboard Blade", Armor: "Debug Vest"}
	case ClassMeetingSurvivor:
		return Equipment{Weapon: "Agenda Shield", Armor: "Corporate Armor"}
	case ClassInboxKnight:
		return Equipment{Weapon: "Reply-All Staff", Accessory: "Unread Badge"}
	case ClassStackOverflow:
		return Equipment{Weapon: "Citation Wand", Accessory: "Reputation Ring"}
	case ClassScrumMaster:
		return Equipment{Weapon: "Sprint Baton", Armor: "Kanban Cloak"}
	case ClassLegacyMaintainer:
		return Equipment{Weapon: "Deprecated Greatsword", Armor: "COBOL Platemail", Accessory: "Ancient Documentation"}
	case ClassDeployNinja:
		return Equipment{Weapon: "Pipeline Daggers", Accessory: "CI/CD Smoke Bomb"}
	default: // Wanderer
		return Equipment{Weapon: "Traveler's Dagger"}
	}
}

// DamageBonus is bonus damage from class.
func (c *Character) DamageBonus() int {
	switch c.Class {
	case ClassCodeWarrior:
		return 10
	case ClassDeployNinja:
		return 8
	default:
		return 0
	}
}

// FocusBonus is bonus focus from class.
func (c *Character) FocusBonus() int {
	switch c.Class {
	case ClassInboxKnight:
		return 10
	case ClassScrumMaster:
		return 15
	default:
		return 0
	}
}

// WitBonus is bonus wit from class.
func (c *Character) WitBonus() int {
	if c.Class == ClassStackOverflow {
		return 12
	}
	return 0
}

// InitiativeBonus is bonus to initiative from class.
func (c *Character) InitiativeBonus() int {
	if c.Class == ClassDeployNinja {
		return 5
	}
	return 0
}

// TakeDamage reduces the character's danger level, floored at DEFEATED.
func (c *Character) TakeDamage(amount int) {
	c.DangerLevel = c.DangerLevel.Damaged(amount)
}

// Heal raises the character's danger level, capped at FRESH.
func (c *Character) Heal(amount int) {
	c.DangerLevel = c.DangerLevel.Healed(amount)
}

// XPForNextLevel is the XP required to reach the next level:
// 100, 300, 600, 1000, 1500, ...
func (c *Character) XPForNextLevel() int {
	total := 0
	for i := 1; i <= c.Level; i++ {
		total += 100 * i
	}
	return total
}

// CanLevelUp reports whether the character has enough XP to advance.
func (c *Character) CanLevelUp() bool {
	return c.XP >= c.XPForNextLevel()
}

// GainXP adds experience and reports whether a level up is now available.
func (c *Character) GainXP(amount int) bool {
	c.XP += amount
	return c.CanLevelUp()
}

// LevelUp advances one level if enough XP has accrued.
// Leveling fully restores danger level.
func (c *Character) LevelUp() bool {
	if !c.CanLevelUp() {
		return false
	}
	c.Level++
	c.DangerLevel = Fresh
	return true
}
