package character

import "testing"

func TestNewStats_Valid(t *testing.T) {
	tests := []struct {
		name                string
		might, wit, spirit  int
	}{
		{"balanced", 4, 4, 4},
		{"might heavy", 6, 3, 3},
		{"zero stat", 6, 6, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewStats(tt.might, tt.wit, tt.spirit)
			if err != nil {
				t.Fatalf("NewStats(%d, %d, %d) failed: %v", tt.might, tt.wit, tt.spirit, err)
			}
			if s.Total() != StatsTotal {
				t.Errorf("Expected total %d, got %d", StatsTotal, s.Total())
			}
		})
	}
}

func TestNewStats_Invalid(t *testing.T) {
	tests := []struct {
		name                string
		might, wit, spirit  int
	}{
		{"over max", 7, 3, 2},
		{"negative", -1, 7, 6},
		{"total too low", 3, 3, 3},
		{"total too high", 6, 6, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewStats(tt.might, tt.wit, tt.spirit); err == nil {
				t.Errorf("Expected error for stats (%d, %d, %d)", tt.might, tt.wit, tt.spirit)
			}
		})
	}
}

func TestStats_Modifier(t *testing.T) {
	s, err := NewStats(6, 4, 2)
	if err != nil {
		t.Fatalf("NewStats failed: %v", err)
	}

	if got := s.Modifier(StatMight); got != 3 {
		t.Errorf("Expected might modifier 3, got %d", got)
	}
	if got := s.Modifier(StatWit); got != 1 {
		t.Errorf("Expected wit modifier 1, got %d", got)
	}
	if got := s.Modifier(StatSpirit); got != -1 {
		t.Errorf("Expected spirit modifier -1, got %d", got)
	}
}

func TestNew_Defaults(t *testing.T) {
	stats, _ := NewStats(4, 4, 4)
	c, err := New("Ada", "human", ClassCodeWarrior, stats, "")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if c.DangerLevel != Fresh {
		t.Errorf("Expected danger level FRESH, got %v", c.DangerLevel)
	}
	if c.Gold != 50 {
		t.Errorf("Expected 50 gold, got %d", c.Gold)
	}
	if c.Level != 1 {
		t.Errorf("Expected level 1, got %d", c.Level)
	}
	if c.Equipment.Weapon != "Keyboard Blade" {
		t.Errorf("Expected Code Warrior starting weapon, got %q", c.Equipment.Weapon)
	}
}

func TestNew_InvalidClass(t *testing.T) {
	stats, _ := NewStats(4, 4, 4)
	if _, err := New("Ada", "human", Class("Barbarian"), stats, ""); err == nil {
		t.Error("Expected error for unknown class")
	}
}

func TestCharacter_DamageAndHeal(t *testing.T) {
	stats, _ := NewStats(4, 4, 4)
	c, _ := New("Ada", "human", ClassWanderer, stats, "")

	c.TakeDamage(2)
	if c.DangerLevel != Critical {
		t.Errorf("Expected CRITICAL after 2 damage, got %v", c.DangerLevel)
	}

	// Damage floors at DEFEATED, never negative.
	c.TakeDamage(5)
	if c.DangerLevel != Defeated {
		t.Errorf("Expected DEFEATED, got %v", c.DangerLevel)
	}

	c.Heal(1)
	if c.DangerLevel != Critical {
		t.Errorf("Expected CRITICAL after healing 1, got %v", c.DangerLevel)
	}

	// Healing caps at FRESH.
	c.Heal(10)
	if c.DangerLevel != Fresh {
		t.Errorf("Expected FRESH, got %v", c.DangerLevel)
	}
}

func TestCharacter_Leveling(t *testing.T) {
	stats, _ := NewStats(4, 4, 4)
	c, _ := New("Ada", "human", ClassWanderer, stats, "")

	if c.XPForNextLevel() != 100 {
		t.Errorf("Expected 100 XP for level 2, got %d", c.XPForNextLevel())
	}

	if c.GainXP(50) {
		t.Error("50 XP should not be enough to level")
	}
	if c.LevelUp() {
		t.Error("LevelUp should fail without enough XP")
	}

	c.TakeDamage(2)
	if !c.GainXP(50) {
		t.Error("100 XP should allow a level up")
	}
	if !c.LevelUp() {
		t.Error("LevelUp should succeed with 100 XP")
	}
	if c.Level != 2 {
		t.Errorf("Expected level 2, got %d", c.Level)
	}
	if c.DangerLevel != Fresh {
		t.Errorf("Expected full heal on level up, got %v", c.DangerLevel)
	}
	if c.XPForNextLevel() != 300 {
		t.Errorf("Expected 300 XP for level 3, got %d", c.XPForNextLevel())
	}
}

func TestRollCheck_Bands(t *testing.T) {
	stats, _ := NewStats(4, 4, 4) // all modifiers +1
	c, _ := New("Ada", "human", ClassWanderer, stats, "")

	tests := []struct {
		roll int
		want CheckResult
	}{
		{20, CheckCriticalSuccess},
		{19, CheckCriticalSuccess},
		{15, CheckSuccessBonus},
		{11, CheckSuccess},
		{10, CheckSuccess},
		{6, CheckPartialSuccess},
		{4, CheckFailure},
		{1, CheckFailure},
	}

	for _, tt := range tests {
		total, result := RollCheck(c, StatMight, func() int { return tt.roll })
		if total != tt.roll+1 {
			t.Errorf("roll %d: expected total %d, got %d", tt.roll, tt.roll+1, total)
		}
		if result != tt.want {
			t.Errorf("roll %d: expected %q, got %q", tt.roll, tt.want, result)
		}
	}
}

func TestRollCheck_InboxKnightSpiritBonus(t *testing.T) {
	stats, _ := NewStats(4, 4, 4)
	knight, _ := New("Percy", "human", ClassInboxKnight, stats, "")

	total, _ := RollCheck(knight, StatSpirit, func() int { return 10 })
	if total != 13 { // 10 + 1 modifier + 2 class bonus
		t.Errorf("Expected total 13 with class bonus, got %d", total)
	}
}
