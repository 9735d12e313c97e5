package character

// DangerLevel is abstract HP. Characters and enemies move down the scale
// as they take damage and are out of the fight at DEFEATED.
type DangerLevel int

const (
	Defeated DangerLevel = 0
	Critical DangerLevel = 1
	Bloodied DangerLevel = 2
	Fresh    DangerLevel = 3
)

func (d DangerLevel) String() string {
	switch d {
	case Defeated:
		return "DEFEATED"
	case Critical:
		return "CRITICAL"
	case Bloodied:
		return "BLOODIED"
	case Fresh:
		return "FRESH"
	default:
		return "UNKNOWN"
	}
}

// IsValid reports whether d is within the danger scale.
func (d DangerLevel) IsValid() bool {
	return d >= Defeated && d <= Fresh
}

// Damaged returns the level after taking amount levels of damage, floored at DEFEATED.
func (d DangerLevel) Damaged(amount int) DangerLevel {
	next := int(d) - amount
	if next < int(Defeated) {
		next = int(Defeated)
	}
	return DangerLevel(next)
}

// Healed returns the level after healing amount levels, capped at FRESH.
func (d DangerLevel) Healed(amount int) DangerLevel {
	next := int(d) + amount
	if next > int(Fresh) {
		next = int(Fresh)
	}
	return DangerLevel(next)
}
