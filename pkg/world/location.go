package world

import "strings"

// Location is a world element the player can occupy, with directional exits.
type Location struct {
	Element
	Exits map[string]string `json:"exits,omitempty"` // direction -> location ID
}

// AddExit sets an exit in a direction. Directions are stored lowercase.
func (l *Location) AddExit(direction, locationID string) {
	if l.Exits == nil {
		l.Exits = make(map[string]string)
	}
	l.Exits[strings.ToLower(direction)] = locationID
}

// RemoveExit removes an exit. Reports whether one existed.
func (l *Location) RemoveExit(direction string) bool {
	direction = strings.ToLower(direction)
	if _, ok := l.Exits[direction]; !ok {
		return false
	}
	delete(l.Exits, direction)
	return true
}

// ExitDirections lists available exit directions.
func (l *Location) ExitDirections() []string {
	dirs := make([]string, 0, len(l.Exits))
	for d := range l.Exits {
		dirs = append(dirs, d)
	}
	return dirs
}
