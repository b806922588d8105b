// Package brep is the minimal boundary-representation toolbox consumed by
// the board synthesizer: axis-aligned boxes, planar faces built from point
// loops, shell and solid assembly, rigid transforms, and subtraction of
// convex cutters. Every constructor can fail with ok=false (a degenerate
// result) and never panics; callers are expected to fall back to a simpler
// shape rather than abort.
package brep

import "math"

// epsilon is the geometric tolerance in inches.
const epsilon = 1e-9

// Vec3 is a point or direction in 3D space, in inches.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Dot(o Vec3) float64   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) Length() float64 { return math.Sqrt(v.Dot(v)) }

// Norm returns the unit vector, or the zero vector for near-zero input.
func (v Vec3) Norm() Vec3 {
	l := v.Length()
	if l < epsilon {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Plane is a half-space boundary: points p with N.Dot(p) == D lie on the
// plane. N is a unit normal.
type Plane struct {
	N Vec3
	D float64
}

// Dist returns the signed distance of p from the plane, positive on the
// side the normal points into.
func (pl Plane) Dist(p Vec3) float64 {
	return pl.N.Dot(p) - pl.D
}

// Face is a planar polygon given as an oriented vertex loop,
// counter-clockwise when viewed from outside the solid.
type Face []Vec3

// Normal returns the unit face normal computed with Newell's method.
func (f Face) Normal() Vec3 {
	var n Vec3
	for i := range f {
		a := f[i]
		b := f[(i+1)%len(f)]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	return n.Norm()
}

// Area returns the polygon area.
func (f Face) Area() float64 {
	var n Vec3
	for i := range f {
		a := f[i]
		b := f[(i+1)%len(f)]
		n = n.Add(a.Cross(b))
	}
	return n.Length() / 2
}

// Plane returns the supporting plane of the face. ok is false when the
// face has no usable normal.
func (f Face) Plane() (Plane, bool) {
	n := f.Normal()
	if n.Length() < 0.5 {
		return Plane{}, false
	}
	return Plane{N: n, D: n.Dot(f[0])}, true
}

// Centroid returns the vertex average of the loop.
func (f Face) Centroid() Vec3 {
	var c Vec3
	for _, p := range f {
		c = c.Add(p)
	}
	return c.Scale(1 / float64(len(f)))
}

// FaceFromLoop builds a face from a closed point loop. Consecutive
// duplicate points (and a repeated closing point) are dropped. ok is false
// when fewer than three distinct points remain or the loop is degenerate.
func FaceFromLoop(pts []Vec3) (Face, bool) {
	var loop Face
	for _, p := range pts {
		if len(loop) > 0 && p.Sub(loop[len(loop)-1]).Length() < 1e-7 {
			continue
		}
		loop = append(loop, p)
	}
	for len(loop) >= 2 && loop[len(loop)-1].Sub(loop[0]).Length() < 1e-7 {
		loop = loop[:len(loop)-1]
	}
	if len(loop) < 3 {
		return nil, false
	}
	if loop.Area() < 1e-9 {
		return nil, false
	}
	if _, ok := loop.Plane(); !ok {
		return nil, false
	}
	return loop, true
}

// Shell is a collection of faces intended to bound a solid.
type Shell struct {
	Faces []Face
}

// ShellFromFaces assembles a shell, rejecting empty input and degenerate
// faces.
func ShellFromFaces(faces []Face) (*Shell, bool) {
	if len(faces) < 4 {
		return nil, false
	}
	for _, f := range faces {
		if len(f) < 3 || f.Area() < 1e-9 {
			return nil, false
		}
	}
	return &Shell{Faces: faces}, true
}

// Solid is a closed shell of outward-oriented faces.
type Solid struct {
	Faces []Face
}

// SolidFromShell validates shell closure and promotes it to a solid. Every
// edge must be shared by exactly two faces in opposite directions
// (a watertight 2-manifold).
func SolidFromShell(sh *Shell) (*Solid, bool) {
	if sh == nil || len(sh.Faces) < 4 {
		return nil, false
	}
	type edge struct {
		a, b [3]int64
	}
	quant := func(p Vec3) [3]int64 {
		const q = 1e6
		return [3]int64{
			int64(math.Round(p.X * q)),
			int64(math.Round(p.Y * q)),
			int64(math.Round(p.Z * q)),
		}
	}
	count := map[edge]int{}
	for _, f := range sh.Faces {
		for i := range f {
			a := quant(f[i])
			b := quant(f[(i+1)%len(f)])
			count[edge{a, b}]++
		}
	}
	// A closed oriented shell pairs every directed edge with its reverse.
	for e, n := range count {
		if n != 1 || count[edge{e.b, e.a}] != 1 {
			return nil, false
		}
	}
	return &Solid{Faces: sh.Faces}, true
}

// MakeBox constructs an axis-aligned box with one corner at the origin and
// the opposite corner at (dx, dy, dz). ok is false for non-positive sizes.
func MakeBox(dx, dy, dz float64) (*Solid, bool) {
	if dx < epsilon || dy < epsilon || dz < epsilon {
		return nil, false
	}
	faces := []Face{
		// bottom (-Z)
		{{0, 0, 0}, {0, dy, 0}, {dx, dy, 0}, {dx, 0, 0}},
		// top (+Z)
		{{0, 0, dz}, {dx, 0, dz}, {dx, dy, dz}, {0, dy, dz}},
		// near side (-Y)
		{{0, 0, 0}, {dx, 0, 0}, {dx, 0, dz}, {0, 0, dz}},
		// far side (+Y)
		{{0, dy, 0}, {0, dy, dz}, {dx, dy, dz}, {dx, dy, 0}},
		// left end (-X)
		{{0, 0, 0}, {0, 0, dz}, {0, dy, dz}, {0, dy, 0}},
		// right end (+X)
		{{dx, 0, 0}, {dx, dy, 0}, {dx, dy, dz}, {dx, 0, dz}},
	}
	return &Solid{Faces: faces}, true
}

// transform applies fn to every vertex, returning a new solid.
func (s *Solid) transform(fn func(Vec3) Vec3) *Solid {
	out := &Solid{Faces: make([]Face, len(s.Faces))}
	for i, f := range s.Faces {
		nf := make(Face, len(f))
		for j, p := range f {
			nf[j] = fn(p)
		}
		out.Faces[i] = nf
	}
	return out
}

// Translate returns the solid shifted by d.
func (s *Solid) Translate(d Vec3) *Solid {
	return s.transform(func(p Vec3) Vec3 { return p.Add(d) })
}

// RotateAbout returns the solid rotated by angleDeg degrees around the axis
// through point, using Rodrigues' rotation formula. The rotation is
// right-handed about the axis direction.
func (s *Solid) RotateAbout(point, axis Vec3, angleDeg float64) *Solid {
	k := axis.Norm()
	if k.Length() < 0.5 {
		return s
	}
	rad := angleDeg * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	return s.transform(func(p Vec3) Vec3 {
		v := p.Sub(point)
		rot := v.Scale(cos).
			Add(k.Cross(v).Scale(sin)).
			Add(k.Scale(k.Dot(v) * (1 - cos)))
		return point.Add(rot)
	})
}

// Volume computes the enclosed volume via the divergence theorem over the
// oriented faces. Correct for any closed, outward-oriented shell.
func (s *Solid) Volume() float64 {
	var vol float64
	for _, f := range s.Faces {
		for i := 1; i < len(f)-1; i++ {
			vol += f[0].Dot(f[i].Cross(f[i+1]))
		}
	}
	return vol / 6
}

// BoundingBox returns the min and max corners over all vertices.
func (s *Solid) BoundingBox() (min, max Vec3) {
	first := true
	for _, f := range s.Faces {
		for _, p := range f {
			if first {
				min, max = p, p
				first = false
				continue
			}
			min.X = math.Min(min.X, p.X)
			min.Y = math.Min(min.Y, p.Y)
			min.Z = math.Min(min.Z, p.Z)
			max.X = math.Max(max.X, p.X)
			max.Y = math.Max(max.Y, p.Y)
			max.Z = math.Max(max.Z, p.Z)
		}
	}
	return min, max
}

// Vertices returns the distinct vertices of the solid.
func (s *Solid) Vertices() []Vec3 {
	seen := map[[3]int64]bool{}
	var out []Vec3
	for _, f := range s.Faces {
		for _, p := range f {
			key := [3]int64{
				int64(math.Round(p.X * 1e6)),
				int64(math.Round(p.Y * 1e6)),
				int64(math.Round(p.Z * 1e6)),
			}
			if !seen[key] {
				seen[key] = true
				out = append(out, p)
			}
		}
	}
	return out
}
