package combat

import (
	"fmt"
	"strings"

	"github.com/jwebster45206/reverie/pkg/character"
)

// PlayerAction resolves one player action against the encounter and returns
// the narration. Attack, defend and retreat have mechanical effect; any
// other text is a stunt narrated by the same roll bands. Actions against a
// terminal state are no-ops.
func PlayerAction(s *State, action string, statModifier, targetIndex int, roll character.RollFunc) string {
	if s.Status.IsTerminal() {
		return "Combat has already ended."
	}
	if roll == nil {
		roll = character.D20
	}

	r := roll()
	total := r + statModifier

	lower := strings.ToLower(action)
	switch {
	case containsAny(lower, "attack", "strike", "hit"):
		return handleAttack(s, r, total, targetIndex)
	case containsAny(lower, "defend", "block", "parry"):
		return handleDefend(s, r, total)
	case containsAny(lower, "retreat", "flee", "run"):
		return handleRetreat(s, r, total)
	default:
		return handleStunt(s, action, r, total)
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func handleAttack(s *State, roll, total, targetIndex int) string {
	active := s.ActiveEnemies()
	if len(active) == 0 {
		return "No enemies to attack!"
	}

	if targetIndex < 0 {
		targetIndex = 0
	}
	if targetIndex > len(active)-1 {
		targetIndex = len(active) - 1
	}
	target := active[targetIndex]

	var narrative string
	switch {
	case total >= 15:
		target.TakeDamage(2)
		if target.IsDefeated() {
			narrative = fmt.Sprintf("Critical strike! %s is defeated!", target.Name)
		} else {
			narrative = fmt.Sprintf("Powerful blow! %s staggers (now %s).", target.Name, target.DangerLevel)
		}
	case total >= 10:
		target.TakeDamage(1)
		if target.IsDefeated() {
			narrative = fmt.Sprintf("You strike true! %s falls!", target.Name)
		} else {
			narrative = fmt.Sprintf("Your attack lands! %s is now %s.", target.Name, target.DangerLevel)
		}
	case total >= 5:
		narrative = fmt.Sprintf("Your attack grazes %s but deals no real damage.", target.Name)
	default:
		narrative = fmt.Sprintf("Your attack misses %s completely.", target.Name)
	}

	s.AddLog(fmt.Sprintf("Player attacks %s (roll: %d, total: %d)", target.Name, roll, total))

	if result := CheckEnd(s); result != nil {
		s.Status = result.Status
	}

	return narrative
}

func handleDefend(s *State, roll, total int) string {
	// Stance is consumed by the next enemy turn.
	s.defended = true

	switch {
	case total >= 15:
		s.AddLog(fmt.Sprintf("Player defends strongly (roll: %d, total: %d)", roll, total))
		return "You take a strong defensive stance, ready for anything."
	case total >= 10:
		s.AddLog(fmt.Sprintf("Player defends (roll: %d, total: %d)", roll, total))
		return "You raise your guard, preparing for attacks."
	default:
		s.AddLog(fmt.Sprintf("Player defends poorly (roll: %d, total: %d)", roll, total))
		return "You try to defend but your stance is weak."
	}
}

func handleRetreat(s *State, roll, total int) string {
	if total >= s.RetreatDC {
		s.Status = StatusRetreat
		s.AddLog(fmt.Sprintf("Player retreats successfully (roll: %d, total: %d, DC: %d)", roll, total, s.RetreatDC))
		return "You successfully disengage and escape the fight!"
	}

	s.AddLog(fmt.Sprintf("Player retreat fails (roll: %d, total: %d, DC: %d)", roll, total, s.RetreatDC))
	return "You try to flee but the enemies block your escape!"
}

func handleStunt(s *State, action string, roll, total int) string {
	s.AddLog(fmt.Sprintf("Player attempts %q (roll: %d, total: %d)", action, roll, total))

	switch {
	case total >= 15:
		return fmt.Sprintf("Your %s succeeds brilliantly!", action)
	case total >= 10:
		return fmt.Sprintf("Your %s partially succeeds.", action)
	case total >= 5:
		return fmt.Sprintf("Your %s has little effect.", action)
	default:
		return fmt.Sprintf("Your %s fails completely.", action)
	}
}

// EnemyTurn resolves one round of enemy attacks. Every active enemy rolls
// independently; a defend stance from the player's last action soaks one
// point of damage unless the enemy roll is 15 or higher. The turn counter
// advances once per invocation.
func EnemyTurn(s *State, roll character.RollFunc) string {
	if s.Status.IsTerminal() {
		return "Combat has already ended."
	}
	if roll == nil {
		roll = character.D20
	}

	active := s.ActiveEnemies()
	if len(active) == 0 {
		return "No enemies remain."
	}

	defended := s.defended
	s.defended = false

	var narratives []string
	for _, enemy := range active {
		r := roll()

		if r >= 10 {
			damage := enemy.Damage
			if defended && r < 15 {
				damage--
				if damage < 0 {
					damage = 0
				}
			}

			if damage > 0 {
				s.PlayerTakeDamage(damage)
				if s.PlayerDefeated() {
					narratives = append(narratives, fmt.Sprintf("%s lands a devastating blow! You fall!", enemy.Name))
				} else {
					narratives = append(narratives, fmt.Sprintf("%s hits you! (Now %s)", enemy.Name, s.PlayerDanger))
				}
			} else {
				narratives = append(narratives, fmt.Sprintf("%s attacks but your defense holds!", enemy.Name))
			}
		} else {
			narratives = append(narratives, fmt.Sprintf("%s misses!", enemy.Name))
		}

		s.AddLog(fmt.Sprintf("%s attacks (roll: %d)", enemy.Name, r))
	}

	if result := CheckEnd(s); result != nil {
		s.Status = result.Status
	}

	s.Turn++

	return strings.Join(narratives, " ")
}
