package world

// Index is arena-style storage for world elements, keyed by stable id.
// Accessors return ok so callers handle deleted or never-generated elements
// without dangling references.
type Index struct {
	locations map[string]*Location
	regions   map[string]*Region
}

func NewIndex() *Index {
	return &Index{
		locations: make(map[string]*Location),
		regions:   make(map[string]*Region),
	}
}

// PutLocation stores or replaces a location.
func (ix *Index) PutLocation(l *Location) {
	ix.locations[l.ID] = l
}

// Location looks up a location by id.
func (ix *Index) Location(id string) (*Location, bool) {
	l, ok := ix.locations[id]
	return l, ok
}

// PutRegion stores or replaces a region.
func (ix *Index) PutRegion(r *Region) {
	ix.regions[r.ID] = r
}

// Region looks up a region by id.
func (ix *Index) Region(id string) (*Region, bool) {
	r, ok := ix.regions[id]
	return r, ok
}

// Delete removes an element from the index by id.
func (ix *Index) Delete(id string) {
	delete(ix.locations, id)
	delete(ix.regions, id)
}

// Connected resolves an element's connections to the locations that still
// exist, skipping ids that have been deleted.
func (ix *Index) Connected(e *Element) []*Location {
	var out []*Location
	for _, id := range e.Connections {
		if l, ok := ix.locations[id]; ok {
			out = append(out, l)
		}
	}
	return out
}

// FilterByTag returns the locations carrying a tag (case-insensitive).
func (ix *Index) FilterByTag(tag string) []*Location {
	var out []*Location
	for _, l := range ix.locations {
		if l.HasTag(tag) {
			out = append(out, l)
		}
	}
	return out
}

// FilterByType returns the locations of a given element type.
func (ix *Index) FilterByType(t ElementType) []*Location {
	var out []*Location
	for _, l := range ix.locations {
		if l.Type == t {
			out = append(out, l)
		}
	}
	return out
}
