package character

import "math/rand/v2"

// RollFunc produces a raw d20 roll. Injectable for deterministic tests.
type RollFunc func() int

// D20 is the default roll source.
func D20() int {
	return rand.IntN(20) + 1
}

// CheckResult is the banded outcome of a stat check.
type CheckResult string

const (
	CheckCriticalSuccess CheckResult = "Critical success"
	CheckSuccessBonus    CheckResult = "Success with bonus"
	CheckSuccess         CheckResult = "Success"
	CheckPartialSuccess  CheckResult = "Partial success"
	CheckFailure         CheckResult = "Failure with complication"
)

// RollCheck rolls a stat check for the character and returns the total and
// its result band. A nil roll falls back to D20.
func RollCheck(c *Character, stat Stat, roll RollFunc) (int, CheckResult) {
	if roll == nil {
		roll = D20
	}
	modifier := c.Stats.Modifier(stat)

	// Inbox Knights stay focused under pressure.
	if stat == StatSpirit && c.Class == ClassInboxKnight {
		modifier += 2
	}

	total := roll() + modifier

	switch {
	case total >= 20:
		return total, CheckCriticalSuccess
	case total >= 16:
		return total, CheckSuccessBonus
	case total >= 11:
		return total, CheckSuccess
	case total >= 6:
		return total, CheckPartialSuccess
	default:
		return total, CheckFailure
	}
}
