package world

// Region is a world element that owns settlements, dungeons and wilderness
// areas. Adding a child also connects it, idempotently.
type Region struct {
	Element
	Climate         string   `json:"climate,omitempty"`
	Terrain         string   `json:"terrain,omitempty"`
	Culture         string   `json:"culture,omitempty"`
	Settlements     []string `json:"settlements,omitempty"`
	Dungeons        []string `json:"dungeons,omitempty"`
	WildernessAreas []string `json:"wilderness_areas,omitempty"`
}

// AddSettlement registers a settlement with this region.
func (r *Region) AddSettlement(settlementID string) {
	if !contains(r.Settlements, settlementID) {
		r.Settlements = append(r.Settlements, settlementID)
		r.AddConnection(settlementID)
	}
}

// AddDungeon registers a dungeon with this region.
func (r *Region) AddDungeon(dungeonID string) {
	if !contains(r.Dungeons, dungeonID) {
		r.Dungeons = append(r.Dungeons, dungeonID)
		r.AddConnection(dungeonID)
	}
}

// AddWilderness registers a wilderness area with this region.
func (r *Region) AddWilderness(wildernessID string) {
	if !contains(r.WildernessAreas, wildernessID) {
		r.WildernessAreas = append(r.WildernessAreas, wildernessID)
		r.AddConnection(wildernessID)
	}
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
