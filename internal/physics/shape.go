package physics

import "math"

// Shape is a hit-test outline in arena coordinates.
// The set is closed: Polygon and Circle are the only implementations.
type Shape interface {
	// Bound returns the smallest circle known to enclose the shape.
	Bound() Circle
	isShape()
}

// Circle is a filled disc.
type Circle struct {
	X, Y, R float64
}

// Polygon is a closed, simple outline. Vertices are listed in order and the
// last vertex connects back to the first.
type Polygon []Point

func (Circle) isShape()  {}
func (Polygon) isShape() {}

// Bound returns the circle itself.
func (c Circle) Bound() Circle {
	return c
}

// Bound returns a circle centred on the vertex average that encloses every vertex.
func (p Polygon) Bound() Circle {
	if len(p) == 0 {
		return Circle{}
	}
	var cx, cy float64
	for _, v := range p {
		cx += v.X
		cy += v.Y
	}
	cx /= float64(len(p))
	cy /= float64(len(p))

	var r2 float64
	for _, v := range p {
		if d := DistanceSquared(cx, cy, v.X, v.Y); d > r2 {
			r2 = d
		}
	}
	return Circle{X: cx, Y: cy, R: math.Sqrt(r2)}
}

// Transform rotates the polygon by rot radians around the origin and then
// moves it to (x, y). The receiver is not modified.
func (p Polygon) Transform(x, y, rot float64) Polygon {
	sin, cos := math.Sincos(rot)
	out := make(Polygon, len(p))
	for i, v := range p {
		out[i] = Point{
			X: x + v.X*cos - v.Y*sin,
			Y: y + v.X*sin + v.Y*cos,
		}
	}
	return out
}

// Radius returns the distance from the origin to the farthest vertex.
func (p Polygon) Radius() float64 {
	var r2 float64
	for _, v := range p {
		if d := v.X*v.X + v.Y*v.Y; d > r2 {
			r2 = d
		}
	}
	return math.Sqrt(r2)
}

// Contains reports whether pt lies inside the polygon (even-odd rule).
func (p Polygon) Contains(pt Point) bool {
	inside := false
	n := len(p)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := p[i], p[j]
		if (a.Y > pt.Y) != (b.Y > pt.Y) {
			x := (b.X-a.X)*(pt.Y-a.Y)/(b.Y-a.Y) + a.X
			if pt.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// Intersects reports whether two outlines overlap. Touching counts as overlap.
func Intersects(a, b Shape) bool {
	ba, bb := a.Bound(), b.Bound()
	if !CirclesOverlap(ba.X, ba.Y, ba.R, bb.X, bb.Y, bb.R) {
		return false
	}

	switch sa := a.(type) {
	case Circle:
		switch sb := b.(type) {
		case Circle:
			return true // bounds are exact for circles
		case Polygon:
			return circlePolygon(sa, sb)
		}
	case Polygon:
		switch sb := b.(type) {
		case Circle:
			return circlePolygon(sb, sa)
		case Polygon:
			return polygons(sa, sb)
		}
	}
	return false
}

func circlePolygon(c Circle, p Polygon) bool {
	if len(p) == 0 {
		return false
	}
	center := Point{X: c.X, Y: c.Y}
	if p.Contains(center) {
		return true
	}
	r2 := c.R * c.R
	n := len(p)
	for i := 0; i < n; i++ {
		if segmentDistanceSquared(center, p[i], p[(i+1)%n]) <= r2 {
			return true
		}
	}
	return false
}

func polygons(a, b Polygon) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	na, nb := len(a), len(b)
	for i := 0; i < na; i++ {
		a1, a2 := a[i], a[(i+1)%na]
		for j := 0; j < nb; j++ {
			if segmentsIntersect(a1, a2, b[j], b[(j+1)%nb]) {
				return true
			}
		}
	}
	// No crossing edges: either disjoint or one fully inside the other.
	return a.Contains(b[0]) || b.Contains(a[0])
}

func cross(o, a, b Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

func onSegment(p, a, b Point) bool {
	return math.Min(a.X, b.X) <= p.X && p.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= p.Y && p.Y <= math.Max(a.Y, b.Y)
}

func segmentsIntersect(p1, p2, q1, q2 Point) bool {
	d1 := cross(q1, q2, p1)
	d2 := cross(q1, q2, p2)
	d3 := cross(p1, p2, q1)
	d4 := cross(p1, p2, q2)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	switch {
	case d1 == 0 && onSegment(p1, q1, q2):
		return true
	case d2 == 0 && onSegment(p2, q1, q2):
		return true
	case d3 == 0 && onSegment(q1, p1, p2):
		return true
	case d4 == 0 && onSegment(q2, p1, p2):
		return true
	}
	return false
}

// segmentDistanceSquared returns the squared distance from p to segment ab.
func segmentDistanceSquared(p, a, b Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return DistanceSquared(p.X, p.Y, a.X, a.Y)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return DistanceSquared(p.X, p.Y, a.X+t*dx, a.Y+t*dy)
}
