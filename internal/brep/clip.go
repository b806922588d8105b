package brep

import (
	"math"
	"sort"
)

// clipTol is the distance below which a vertex is treated as lying on the
// cutting plane.
const clipTol = 1e-7

// clipLoop clips a face loop against the half-space Dist <= 0, inserting
// edge/plane intersection points (Sutherland-Hodgman against one plane).
func clipLoop(loop Face, pl Plane) Face {
	var out Face
	n := len(loop)
	for i := 0; i < n; i++ {
		cur := loop[i]
		next := loop[(i+1)%n]
		dc := pl.Dist(cur)
		dn := pl.Dist(next)

		if dc <= clipTol {
			out = append(out, cur)
		}
		if (dc < -clipTol && dn > clipTol) || (dc > clipTol && dn < -clipTol) {
			t := dc / (dc - dn)
			out = append(out, cur.Add(next.Sub(cur).Scale(t)))
		}
	}
	return out
}

// ClipPlane cuts the solid with a plane, keeping the material on the
// negative side (Dist <= 0) and capping the opening with a new planar face.
// ok is false when nothing remains. A plane that misses the solid returns
// it unchanged. The solid must be convex for the cap to be valid.
func (s *Solid) ClipPlane(pl Plane) (*Solid, bool) {
	var kept []Face
	var capPts []Vec3
	touched := false

	for _, f := range s.Faces {
		clipped := clipLoop(f, pl)
		if len(clipped) != len(f) {
			touched = true
		}
		face, ok := FaceFromLoop(clipped)
		if !ok {
			touched = true
			continue
		}
		kept = append(kept, face)
		for _, p := range face {
			if math.Abs(pl.Dist(p)) <= 10*clipTol {
				capPts = append(capPts, p)
			}
		}
	}

	if len(kept) == 0 {
		return nil, false
	}
	if !touched {
		return s, true
	}

	if cap, ok := buildCap(capPts, pl.N); ok {
		kept = append(kept, cap)
	}
	return &Solid{Faces: kept}, true
}

// buildCap orders the on-plane points counter-clockwise around the plane
// normal so the cap's outward normal points toward the removed material.
func buildCap(pts []Vec3, normal Vec3) (Face, bool) {
	// Deduplicate
	var unique []Vec3
	for _, p := range pts {
		dup := false
		for _, q := range unique {
			if p.Sub(q).Length() < 1e-6 {
				dup = true
				break
			}
		}
		if !dup {
			unique = append(unique, p)
		}
	}
	if len(unique) < 3 {
		return nil, false
	}

	// In-plane basis (u, v) with u x v == normal.
	ref := Vec3{X: 1}
	if math.Abs(normal.X) > 0.9 {
		ref = Vec3{Y: 1}
	}
	u := normal.Cross(ref).Norm()
	v := normal.Cross(u)

	var c Vec3
	for _, p := range unique {
		c = c.Add(p)
	}
	c = c.Scale(1 / float64(len(unique)))

	sort.Slice(unique, func(i, j int) bool {
		a := unique[i].Sub(c)
		b := unique[j].Sub(c)
		return math.Atan2(a.Dot(v), a.Dot(u)) < math.Atan2(b.Dot(v), b.Dot(u))
	})

	// The cap's outward normal must point along the plane normal
	// (toward the removed material).
	face, ok := FaceFromLoop(unique)
	if !ok {
		return nil, false
	}
	if face.Normal().Dot(normal) < 0 {
		rev := make(Face, len(face))
		for i, p := range face {
			rev[len(face)-1-i] = p
		}
		face = rev
	}
	return face, true
}

// Subtract removes a convex cutter from the solid and returns the
// difference. The difference is decomposed plane by plane: for each cutter
// plane, the piece of the remaining material outside that plane is split
// off. ok is false when the cutter consumes the whole solid or the cutter
// has no usable planes.
func Subtract(base *Solid, cutter *Solid) (*Solid, bool) {
	if base == nil || cutter == nil {
		return nil, false
	}
	var planes []Plane
	for _, f := range cutter.Faces {
		if pl, ok := f.Plane(); ok {
			planes = append(planes, pl)
		}
	}
	if len(planes) == 0 {
		return nil, false
	}

	var pieces []*Solid
	remaining := base
	for _, pl := range planes {
		// Outside piece survives the subtraction.
		outside, ok := remaining.ClipPlane(Plane{N: pl.N.Scale(-1), D: -pl.D})
		if ok && outside.Volume() > 1e-9 {
			pieces = append(pieces, outside)
		}
		// Continue carving inside the plane.
		inside, ok := remaining.ClipPlane(pl)
		if !ok {
			remaining = nil
			break
		}
		remaining = inside
	}

	if len(pieces) == 0 {
		return nil, false
	}
	if len(pieces) == 1 {
		return pieces[0], true
	}
	// Multiple disjoint pieces: return them as a compound shell set.
	out := &Solid{}
	for _, p := range pieces {
		out.Faces = append(out.Faces, p.Faces...)
	}
	return out, true
}
