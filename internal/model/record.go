package model

import "github.com/google/uuid"

// Defaults applied during ingestion when optional cut-list fields are blank.
const (
	DefaultSection = "Unsorted"
	DefaultName    = "Unnamed Part"
	SquareAngle    = 90.0 // degrees; a square (perpendicular) end cut
)

// LumberRecord is one cut-list line item: a lumber piece to produce.
// Records are built by the ingestion pipeline and immutable afterwards.
type LumberRecord struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Material   string  `json:"material"`
	Quantity   int     `json:"quantity"`
	NominalDim string  `json:"nominal_dim"`
	Width      float64 `json:"width"`  // inches, resolved from NominalDim
	Height     float64 `json:"height"` // inches, resolved from NominalDim
	Length     float64 `json:"length"` // inches
	Angle      float64 `json:"angle"`  // degrees; 90 means square cut
	Notes      string  `json:"notes"`
	Section    string  `json:"section"`
}

// NewLumberRecord creates a record with defaults for the optional fields.
func NewLumberRecord(name, material, dim string, length float64) LumberRecord {
	if name == "" {
		name = DefaultName
	}
	return LumberRecord{
		ID:         uuid.New().String()[:8],
		Name:       name,
		Material:   material,
		Quantity:   1,
		NominalDim: dim,
		Length:     length,
		Angle:      SquareAngle,
		Section:    DefaultSection,
	}
}

// IsSquareCut reports whether both ends are perpendicular to the board axis.
func (r LumberRecord) IsSquareCut() bool {
	return r.Angle == SquareAngle
}

// Section is a named group of records in cut-list row order.
type Section struct {
	Name    string         `json:"name"`
	Records []LumberRecord `json:"records"`
}

// SectionSet holds sections in first-seen order. Records are appended to
// the section named by their Section field.
type SectionSet struct {
	Sections []Section `json:"sections"`

	index map[string]int
}

func NewSectionSet() *SectionSet {
	return &SectionSet{index: map[string]int{}}
}

// Add appends a record to its section, creating the section on first use.
func (s *SectionSet) Add(rec LumberRecord) {
	if s.index == nil {
		s.index = map[string]int{}
		for i, sec := range s.Sections {
			s.index[sec.Name] = i
		}
	}
	name := rec.Section
	if name == "" {
		name = DefaultSection
	}
	i, ok := s.index[name]
	if !ok {
		s.Sections = append(s.Sections, Section{Name: name})
		i = len(s.Sections) - 1
		s.index[name] = i
	}
	s.Sections[i].Records = append(s.Sections[i].Records, rec)
}

// Names returns the section names in first-seen order.
func (s *SectionSet) Names() []string {
	names := make([]string, len(s.Sections))
	for i, sec := range s.Sections {
		names[i] = sec.Name
	}
	return names
}

// Len returns the total number of records across all sections.
func (s *SectionSet) Len() int {
	n := 0
	for _, sec := range s.Sections {
		n += len(sec.Records)
	}
	return n
}

// TotalPieces returns the number of physical boards to produce,
// counting record quantities.
func (s *SectionSet) TotalPieces() int {
	n := 0
	for _, sec := range s.Sections {
		for _, r := range sec.Records {
			n += r.Quantity
		}
	}
	return n
}
