package scene

import (
	"fmt"

	"github.com/woodshop-tools/framecad/internal/model"
	"github.com/woodshop-tools/framecad/internal/synth"
)

// Report summarizes one placement pass over a section set.
type Report struct {
	Placed   int
	Skipped  int
	Warnings []string
}

// Placer drives synthesis and placement into a host document.
type Placer struct {
	Doc     Document
	Modeler synth.Modeler
	Opts    synth.Options
}

// NewPlacer builds a placer using the built-in geometry kernel.
func NewPlacer(doc Document) *Placer {
	return &Placer{Doc: doc, Modeler: synth.Kernel{}}
}

// Place synthesizes every record and attaches the resulting solids to the
// document: a group per section, a sub-group per part name when quantity
// exceeds one, and one independently named solid per physical board.
// Re-running Place on the same document appends again; there is no
// deduplication.
func (p *Placer) Place(set *model.SectionSet) Report {
	report := Report{}
	names := newNameRegistry()

	for _, section := range set.Sections {
		group := p.Doc.CreateGroup(names.claim(SanitizeName(section.Name)))

		for _, rec := range section.Records {
			outcome := synth.Synthesize(rec, p.Modeler, p.Opts)
			report.Warnings = append(report.Warnings, outcome.Fallbacks...)
			if outcome.Solid == nil {
				report.Skipped += rec.Quantity
				continue
			}

			parent := group
			base := SanitizeName(rec.Name)
			if rec.Quantity > 1 {
				sub := p.Doc.CreateGroup(names.claim(base + "_Group"))
				p.Doc.AddToGroup(group, sub)
				parent = sub
			}

			for i := 0; i < rec.Quantity; i++ {
				prov := Provenance{
					RecordID:   rec.ID,
					RecordName: rec.Name,
					Section:    section.Name,
					NominalDim: rec.NominalDim,
					LengthIn:   rec.Length,
					AngleDeg:   rec.Angle,
				}
				name := base
				if rec.Quantity > 1 {
					prov.Instance = i + 1
					name = fmt.Sprintf("%s_%d", base, i+1)
				}
				obj := p.Doc.CreateSolidObject(
					names.claim(name),
					outcome.Solid,
					model.ColorForMaterial(rec.Material),
					prov,
				)
				p.Doc.AddToGroup(parent, obj)
				report.Placed++
			}
		}
	}
	return report
}
