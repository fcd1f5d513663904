package main

import (
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// Used for records whose color does not parse.
var fallbackColor = colorful.Color{R: 0.5, G: 0.5, B: 0.5}

type Grain struct {
	X     int
	Y     int
	Color colorful.Color
}

// GrainSet is the live set of grains, at most one per coordinate. It is owned
// by the update loop and never shared with request goroutines.
type GrainSet struct {
	grains map[point]Grain
}

func NewGrainSet() *GrainSet {
	return &GrainSet{
		grains: map[point]Grain{},
	}
}

func decodeColor(hex string) (colorful.Color, error) {
	normalized, err := normalizeHex(hex)
	if err != nil {
		return colorful.Color{}, err
	}
	return colorful.Hex(normalized)
}

// ApplyBatch upserts every record by coordinate. A record with a bad color
// is stored with fallbackColor rather than failing the batch.
func (s *GrainSet) ApplyBatch(batch []GrainRecord) {
	for _, record := range batch {
		c, err := decodeColor(record.Color)
		if err != nil {
			c = fallbackColor
		}
		s.grains[point{record.X, record.Y}] = Grain{
			X:     record.X,
			Y:     record.Y,
			Color: c,
		}
	}
}

// Prune removes every grain outside region and returns how many were removed.
func (s *GrainSet) Prune(region Region) int {
	removed := 0
	for p := range s.grains {
		if !region.Contains(p.X, p.Y) {
			delete(s.grains, p)
			removed++
		}
	}
	return removed
}

func (s *GrainSet) At(x, y int) (Grain, bool) {
	g, ok := s.grains[point{x, y}]
	return g, ok
}

func (s *GrainSet) Len() int {
	return len(s.grains)
}

// Grains returns the grains top row first, left to right.
func (s *GrainSet) Grains() []Grain {
	grains := make([]Grain, 0, len(s.grains))
	for _, g := range s.grains {
		grains = append(grains, g)
	}
	sort.Slice(grains, func(i, j int) bool {
		if grains[i].Y != grains[j].Y {
			return grains[i].Y > grains[j].Y
		}
		return grains[i].X < grains[j].X
	})
	return grains
}
