package loop

import (
	"cmp"
	"slices"

	"github.com/tomz197/asteroids-classic/internal/object"
	"github.com/tomz197/asteroids-classic/internal/physics"
)

// Pair is two participants whose outlines intersect.
type Pair struct {
	A, B *object.Participant
}

// CollisionWorld finds intersecting participants. It uses a spatial grid as
// the broad phase and exact outline tests as the narrow phase.
type CollisionWorld struct {
	grid     *physics.SpatialGrid
	filter   func(a, b object.Kind) bool
	outlines []physics.Shape
	found    [][2]int
}

// NewCollisionWorld creates a collision world covering the arena. If filter
// is non-nil only kind pairs it accepts are tested. Same-kind pairs are never
// reported.
func NewCollisionWorld(arena object.Arena, filter func(a, b object.Kind) bool) *CollisionWorld {
	// Two asteroids of the largest size are the farthest apart any pair can
	// be while still touching.
	cell := 2 * object.MaxAsteroidRadius
	return &CollisionWorld{
		grid:   physics.NewSpatialGrid(arena.Width, arena.Height, cell),
		filter: filter,
	}
}

// Scan returns every intersecting pair among live, ordered by the position
// of the first and then second member in live. Each unordered pair appears
// at most once, with A earlier in live than B.
func (w *CollisionWorld) Scan(live []*object.Participant) []Pair {
	w.grid.Clear()
	w.outlines = w.outlines[:0]
	w.found = w.found[:0]

	for i, p := range live {
		w.grid.Insert(p.X, p.Y, i)
		w.outlines = append(w.outlines, nil)
	}

	w.grid.Pairs(func(i, j int) {
		a, b := live[i], live[j]
		if a.Kind == b.Kind {
			return
		}
		if w.filter != nil && !w.filter(a.Kind, b.Kind) {
			return
		}
		if physics.Intersects(w.outline(i, a), w.outline(j, b)) {
			w.found = append(w.found, [2]int{i, j})
		}
	})

	slices.SortFunc(w.found, func(x, y [2]int) int {
		if c := cmp.Compare(x[0], y[0]); c != 0 {
			return c
		}
		return cmp.Compare(x[1], y[1])
	})

	pairs := make([]Pair, len(w.found))
	for k, f := range w.found {
		pairs[k] = Pair{A: live[f[0]], B: live[f[1]]}
	}
	return pairs
}

// outline computes each world-space outline at most once per scan.
func (w *CollisionWorld) outline(i int, p *object.Participant) physics.Shape {
	if w.outlines[i] == nil {
		w.outlines[i] = p.Outline()
	}
	return w.outlines[i]
}
