package world

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titler = cases.Title(language.English)

// RegionConstraints guides region generation. Zero values fall back to
// defaults so a blank struct still produces a usable region.
type RegionConstraints struct {
	Name    string
	Climate string
	Terrain string
	Culture string
	Tags    []string
	Secrets []string
}

// GenerateRegion creates a new region. Rich narrative description is the
// narrative collaborator's job; this produces the structural element with a
// templated description.
func GenerateRegion(c RegionConstraints) *Region {
	if c.Climate == "" {
		c.Climate = "temperate"
	}
	if c.Terrain == "" {
		c.Terrain = "plains"
	}
	if c.Culture == "" {
		c.Culture = "human kingdom"
	}
	if c.Name == "" {
		c.Name = fmt.Sprintf("The %s of %s", titler.String(c.Terrain), titler.String(firstWord(c.Culture)))
	}

	region := &Region{
		Element: Element{
			ID:          uuid.NewString(),
			Type:        TypeRegion,
			Name:        c.Name,
			Description: fmt.Sprintf("A %s %s region dominated by %s.", c.Climate, c.Terrain, c.Culture),
			Tags:        append([]string{c.Climate, c.Terrain}, c.Tags...),
			Secrets:     c.Secrets,
		},
		Climate: c.Climate,
		Terrain: c.Terrain,
		Culture: c.Culture,
	}
	return region
}

// SettlementConstraints guides settlement generation.
type SettlementConstraints struct {
	Name       string
	Size       string
	Government string
	Tags       []string
	Secrets    []string
}

// GenerateSettlement creates a settlement inside a region and wires the
// connection both ways.
func GenerateSettlement(region *Region, c SettlementConstraints) *Location {
	if c.Size == "" {
		c.Size = "village"
	}
	if c.Government == "" {
		c.Government = "mayor"
	}
	if c.Name == "" {
		c.Name = fmt.Sprintf("%s of the %s", titler.String(c.Size), titler.String(region.Terrain))
	}

	settlement := &Location{
		Element: Element{
			ID:          uuid.NewString(),
			Type:        TypeSettlement,
			Name:        c.Name,
			Description: fmt.Sprintf("A %s governed by a %s in the %s.", c.Size, c.Government, region.Name),
			Tags:        append([]string{c.Size, "settlement", region.Climate}, c.Tags...),
			Secrets:     c.Secrets,
		},
	}
	settlement.AddConnection(region.ID)
	region.AddSettlement(settlement.ID)
	return settlement
}

// DungeonConstraints guides dungeon generation.
type DungeonConstraints struct {
	Name       string
	Theme      string
	Difficulty string
	Boss       string
	Tags       []string
	Secrets    []string
}

// GenerateDungeon creates a dungeon inside a region and wires the connection
// both ways.
func GenerateDungeon(region *Region, c DungeonConstraints) *Location {
	if c.Theme == "" {
		c.Theme = "abandoned"
	}
	if c.Difficulty == "" {
		c.Difficulty = "moderate"
	}
	if c.Boss == "" {
		c.Boss = "guardian"
	}
	if c.Name == "" {
		c.Name = fmt.Sprintf("The %s Depths", titler.String(c.Theme))
	}
	if len(c.Secrets) == 0 {
		c.Secrets = []string{"A hidden treasure room lies beyond the boss."}
	}

	dungeon := &Location{
		Element: Element{
			ID:          uuid.NewString(),
			Type:        TypeDungeon,
			Name:        c.Name,
			Description: fmt.Sprintf("A %s difficulty %s dungeon guarded by a %s.", c.Difficulty, c.Theme, c.Boss),
			Tags:        append([]string{c.Theme, "dungeon", c.Difficulty}, c.Tags...),
			Secrets:     c.Secrets,
		},
	}
	dungeon.AddConnection(region.ID)
	region.AddDungeon(dungeon.ID)
	return dungeon
}

// GenerateWilderness creates a wilderness area matching the region's terrain.
func GenerateWilderness(region *Region) *Location {
	wilderness := &Location{
		Element: Element{
			ID:          uuid.NewString(),
			Type:        TypeWilderness,
			Name:        fmt.Sprintf("The Wild %s", titler.String(region.Terrain)),
			Description: fmt.Sprintf("Untamed %s stretching across the %s.", region.Terrain, region.Name),
			Tags:        []string{region.Terrain, "wilderness", "dangerous"},
			Secrets:     []string{"Ancient ruins lie hidden somewhere in the wilds."},
		},
	}
	wilderness.AddConnection(region.ID)
	region.AddWilderness(wilderness.ID)
	return wilderness
}

func firstWord(s string) string {
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i]
	}
	return s
}
