// Package synth turns validated lumber records into 3D board solids.
//
// The board lies along the X axis: length x width x height occupies
// [0,L] x [0,W] x [0,H]. Square-cut boards are plain boxes; angled boards
// get end cuts via boolean subtraction of oversized rotated cutters; thin
// sloped gable/fascia boards are built from explicit oriented faces, since
// booleans are numerically fragile for shallow-angle wedges.
package synth

import (
	"fmt"
	"math"
	"strings"

	"github.com/woodshop-tools/framecad/internal/brep"
	"github.com/woodshop-tools/framecad/internal/model"
)

// Modeler is the narrow solid-modeling surface the synthesizer consumes.
// Every operation may fail with ok=false (a degenerate result); the
// synthesizer falls back to the nearest well-formed shape rather than
// aborting the batch.
type Modeler interface {
	MakeBox(dx, dy, dz float64) (*brep.Solid, bool)
	FaceFromLoop(pts []brep.Vec3) (brep.Face, bool)
	SolidFromFaces(faces []brep.Face) (*brep.Solid, bool)
	Translate(s *brep.Solid, d brep.Vec3) *brep.Solid
	RotateAbout(s *brep.Solid, point, axis brep.Vec3, angleDeg float64) *brep.Solid
	Subtract(base, cutter *brep.Solid) (*brep.Solid, bool)
}

// Kernel is the built-in Modeler backed by the brep package.
type Kernel struct{}

func (Kernel) MakeBox(dx, dy, dz float64) (*brep.Solid, bool) {
	return brep.MakeBox(dx, dy, dz)
}

func (Kernel) FaceFromLoop(pts []brep.Vec3) (brep.Face, bool) {
	return brep.FaceFromLoop(pts)
}

func (Kernel) SolidFromFaces(faces []brep.Face) (*brep.Solid, bool) {
	shell, ok := brep.ShellFromFaces(faces)
	if !ok {
		return nil, false
	}
	return brep.SolidFromShell(shell)
}

func (Kernel) Translate(s *brep.Solid, d brep.Vec3) *brep.Solid {
	return s.Translate(d)
}

func (Kernel) RotateAbout(s *brep.Solid, point, axis brep.Vec3, angleDeg float64) *brep.Solid {
	return s.RotateAbout(point, axis, angleDeg)
}

func (Kernel) Subtract(base, cutter *brep.Solid) (*brep.Solid, bool) {
	return brep.Subtract(base, cutter)
}

// Options controls synthesis fallback behavior.
type Options struct {
	// GableFallback is model.GableFallbackBox (default) or
	// model.GableFallbackSkip.
	GableFallback string
}

// Outcome is the result of one synthesis attempt. Fallbacks lists the
// degenerate operations that were replaced by a simpler shape; empty means
// the requested geometry was produced exactly. Solid is nil only when the
// board was skipped under Options.GableFallback == "skip".
type Outcome struct {
	Solid     *brep.Solid
	Fallbacks []string
}

// cutStrategy selects how a board's end geometry is produced.
type cutStrategy int

const (
	cutSquare      cutStrategy = iota // plain box, angle exactly 90
	cutAngledEnd                      // box minus rotated end cutter(s)
	cutLengthWedge                    // box minus a length-wise slope wedge
	cutSlopedGable                    // explicit 8-vertex sloped solid
)

// Notes pattern rules, evaluated in priority order. Matching is
// case-insensitive substring search on the free-text notes (and name for
// the gable/fascia family), which keeps the dispatch auditable: add a row,
// not a branch.
const (
	noteLongToShort = "long point to short point"
	noteInstallCut  = "install and cut"
	noteBothEnds    = "both ends"
)

// gableWords classify a board into the gable/fascia family by name or notes.
var gableWords = []string{"gable", "fascia"}

// slopedGableNotes are the notes patterns that route a gable/fascia board
// to the explicit-face sloped solid instead of a boolean end trim.
var slopedGableNotes = []string{noteLongToShort, noteInstallCut}

// maxGableDeviation is the angle deviation from square (degrees) below
// which a gable/fascia board uses the sloped-solid path.
const maxGableDeviation = 30.0

// classify returns the cut strategy for a record, in documented priority
// order: square cut, sloped gable, length-wise wedge, angled end trim.
func classify(rec model.LumberRecord) cutStrategy {
	if rec.IsSquareCut() {
		return cutSquare
	}
	name := strings.ToLower(rec.Name)
	notes := strings.ToLower(rec.Notes)

	isGable := false
	for _, w := range gableWords {
		if strings.Contains(name, w) || strings.Contains(notes, w) {
			isGable = true
			break
		}
	}
	if isGable && math.Abs(model.SquareAngle-rec.Angle) < maxGableDeviation {
		for _, pat := range slopedGableNotes {
			if strings.Contains(notes, pat) {
				return cutSlopedGable
			}
		}
		// Gable boards without the slope notes trim like any other
		// angled board.
	}
	if strings.Contains(notes, noteLongToShort) {
		return cutLengthWedge
	}
	return cutAngledEnd
}

// Synthesize produces the solid for one board. The geometry is
// deterministic and pure given the record and options.
func Synthesize(rec model.LumberRecord, m Modeler, opts Options) Outcome {
	switch classify(rec) {
	case cutSquare:
		return squareBoard(rec, m)
	case cutSlopedGable:
		return slopedGableBoard(rec, m, opts)
	case cutLengthWedge:
		return lengthWedgeBoard(rec, m)
	default:
		return angledEndBoard(rec, m)
	}
}

// squareBoard emits an axis-aligned length x width x height box.
func squareBoard(rec model.LumberRecord, m Modeler) Outcome {
	box, ok := m.MakeBox(rec.Length, rec.Width, rec.Height)
	if !ok {
		return Outcome{Fallbacks: []string{
			fmt.Sprintf("%s: degenerate box %g x %g x %g", rec.Name, rec.Length, rec.Width, rec.Height),
		}}
	}
	return Outcome{Solid: box}
}

// cutAngleDeg returns the end-cut angle measured from vertical: a square
// 90-degree board cuts at 0.
func cutAngleDeg(rec model.LumberRecord) float64 {
	return model.SquareAngle - rec.Angle
}

// endCutter builds an oversized block hinged on the board's end edge and
// tilted so subtracting it removes a wedge from the top of that end.
// atStart selects the x=0 end (with the negated tilt) instead of x=L.
func endCutter(rec model.LumberRecord, m Modeler, atStart bool) (*brep.Solid, bool) {
	depth := 2*rec.Height + 10
	// Tall enough that only the tilted near face intersects the board.
	block, ok := m.MakeBox(depth, rec.Width+2, 3*rec.Height+2*rec.Length+2)
	if !ok {
		return nil, false
	}

	ca := cutAngleDeg(rec)
	axis := brep.Vec3{Y: 1}
	if atStart {
		// Block beyond x=0, hinged on the (0, *, 0) edge.
		block = m.Translate(block, brep.Vec3{X: -depth, Y: -1, Z: -1})
		return m.RotateAbout(block, brep.Vec3{}, axis, ca), true
	}
	// Block beyond x=L, hinged on the (L, *, 0) edge. The negative
	// rotation tips its near face into the board above the hinge.
	block = m.Translate(block, brep.Vec3{X: rec.Length, Y: -1, Z: -1})
	return m.RotateAbout(block, brep.Vec3{X: rec.Length}, axis, -ca), true
}

// angledEndBoard trims one board end (or both, when the notes say so) to
// the record's angle. A degenerate subtraction keeps the pre-cut shape.
func angledEndBoard(rec model.LumberRecord, m Modeler) Outcome {
	out := squareBoard(rec, m)
	if out.Solid == nil {
		return out
	}

	cur := out.Solid
	ends := []bool{false}
	if strings.Contains(strings.ToLower(rec.Notes), noteBothEnds) {
		ends = append(ends, true)
	}

	for _, atStart := range ends {
		cutter, ok := endCutter(rec, m, atStart)
		if !ok {
			out.Fallbacks = append(out.Fallbacks,
				fmt.Sprintf("%s: end cutter construction failed, keeping square end", rec.Name))
			continue
		}
		result, ok := m.Subtract(cur, cutter)
		if !ok || result == nil {
			out.Fallbacks = append(out.Fallbacks,
				fmt.Sprintf("%s: %g degree end cut was degenerate, keeping previous shape", rec.Name, rec.Angle))
			continue
		}
		cur = result
	}

	out.Solid = cur
	return out
}

// lengthWedgeBoard interprets the angle as a rafter slope cut along the
// board's length: one long edge stays at full height, the other ends up
// short by length * tan(cutAngle).
func lengthWedgeBoard(rec model.LumberRecord, m Modeler) Outcome {
	out := squareBoard(rec, m)
	if out.Solid == nil {
		return out
	}

	heightDiff := rec.Length * math.Tan(cutAngleDeg(rec)*math.Pi/180)
	if heightDiff <= 0 {
		return out
	}

	// Oversized wedge cutter: a block whose bottom face starts level with
	// the board top, then tips about the far long edge so the near edge
	// of the top face drops by heightDiff.
	cutterH := heightDiff + rec.Height + 2
	block, ok := m.MakeBox(rec.Length+2, 3*rec.Width, cutterH)
	if !ok {
		out.Fallbacks = append(out.Fallbacks,
			fmt.Sprintf("%s: slope cutter construction failed, keeping full height", rec.Name))
		return out
	}
	block = m.Translate(block, brep.Vec3{X: -1, Y: -rec.Width / 2, Z: rec.Height})

	// The dihedral tilt that drops the y=0 edge by heightDiff across the
	// board width.
	tilt := math.Atan2(heightDiff, rec.Width) * 180 / math.Pi
	pivot := brep.Vec3{Y: rec.Width, Z: rec.Height}
	cutter := m.RotateAbout(block, pivot, brep.Vec3{X: 1}, tilt)

	result, ok := m.Subtract(out.Solid, cutter)
	if !ok || result == nil {
		out.Fallbacks = append(out.Fallbacks,
			fmt.Sprintf("%s: slope cut was degenerate, keeping full height", rec.Name))
		return out
	}
	out.Solid = result
	return out
}

// slopedGableBoard constructs the thin sloped gable/fascia solid directly
// from eight explicit vertices. Building the six faces and assembling them
// into a shell guarantees a clean manifold result where a boolean with a
// near-coplanar wedge would be fragile.
func slopedGableBoard(rec model.LumberRecord, m Modeler, opts Options) Outcome {
	l, w, h := rec.Length, rec.Width, rec.Height
	heightDiff := l * math.Tan(cutAngleDeg(rec)*math.Pi/180)
	near := h - heightDiff // top height along the y=0 edge

	if near <= 0 {
		return gableFallback(rec, m, opts,
			fmt.Sprintf("%s: slope consumes full board height (%g >= %g)", rec.Name, heightDiff, h))
	}

	loops := [][]brep.Vec3{
		// bottom (-Z)
		{{X: 0, Y: 0, Z: 0}, {X: 0, Y: w, Z: 0}, {X: l, Y: w, Z: 0}, {X: l, Y: 0, Z: 0}},
		// sloped top
		{{X: 0, Y: 0, Z: near}, {X: l, Y: 0, Z: near}, {X: l, Y: w, Z: h}, {X: 0, Y: w, Z: h}},
		// near side (-Y)
		{{X: 0, Y: 0, Z: 0}, {X: l, Y: 0, Z: 0}, {X: l, Y: 0, Z: near}, {X: 0, Y: 0, Z: near}},
		// far side (+Y)
		{{X: 0, Y: w, Z: 0}, {X: 0, Y: w, Z: h}, {X: l, Y: w, Z: h}, {X: l, Y: w, Z: 0}},
		// left end (-X)
		{{X: 0, Y: 0, Z: 0}, {X: 0, Y: 0, Z: near}, {X: 0, Y: w, Z: h}, {X: 0, Y: w, Z: 0}},
		// right end (+X)
		{{X: l, Y: 0, Z: 0}, {X: l, Y: w, Z: 0}, {X: l, Y: w, Z: h}, {X: l, Y: 0, Z: near}},
	}

	faces := make([]brep.Face, 0, len(loops))
	for _, loop := range loops {
		face, ok := m.FaceFromLoop(loop)
		if !ok {
			return gableFallback(rec, m, opts,
				fmt.Sprintf("%s: gable face construction failed", rec.Name))
		}
		faces = append(faces, face)
	}

	solid, ok := m.SolidFromFaces(faces)
	if !ok {
		return gableFallback(rec, m, opts,
			fmt.Sprintf("%s: gable shell assembly failed", rec.Name))
	}
	return Outcome{Solid: solid}
}

// gableFallback applies the configured recovery for a failed sloped solid:
// a plain box of the same footprint, or skipping the board entirely.
func gableFallback(rec model.LumberRecord, m Modeler, opts Options, reason string) Outcome {
	if opts.GableFallback == model.GableFallbackSkip {
		return Outcome{Fallbacks: []string{reason + "; board skipped"}}
	}
	out := squareBoard(rec, m)
	out.Fallbacks = append([]string{reason + "; using plain box"}, out.Fallbacks...)
	return out
}
