// Package model defines the cut-list data model: dimension policies, the
// nominal-size lookup tables, lumber records, and section grouping.
package model

import "sort"

// DimensionPolicy selects which lookup table resolves nominal lumber sizes.
// It is chosen once per import run and applied uniformly.
type DimensionPolicy int

const (
	// PolicyStandard uses actual milled (undersized) dimensions,
	// e.g. a "2x4" measures 1.5 x 3.5 inches.
	PolicyStandard DimensionPolicy = iota
	// PolicyExact uses the nominal dimensions as advertised,
	// e.g. a "2x4" measures a full 2 x 4 inches.
	PolicyExact
)

func (p DimensionPolicy) String() string {
	switch p {
	case PolicyExact:
		return "exact"
	default:
		return "standard"
	}
}

// ParsePolicy converts a policy name ("standard" or "exact") to a
// DimensionPolicy. Returns false for unrecognized names.
func ParsePolicy(s string) (DimensionPolicy, bool) {
	switch s {
	case "standard", "":
		return PolicyStandard, true
	case "exact":
		return PolicyExact, true
	default:
		return PolicyStandard, false
	}
}

// lumberDim is a width/height cross-section pair in inches.
type lumberDim struct {
	Width  float64
	Height float64
}

// standardDims maps nominal size keys to actual milled dimensions in inches.
var standardDims = map[string]lumberDim{
	"1x2":  {0.75, 1.5},
	"1x3":  {0.75, 2.5},
	"1x4":  {0.75, 3.5},
	"1x6":  {0.75, 5.5},
	"1x8":  {0.75, 7.25},
	"1x10": {0.75, 9.25},
	"1x12": {0.75, 11.25},
	"2x2":  {1.5, 1.5},
	"2x3":  {1.5, 2.5},
	"2x4":  {1.5, 3.5},
	"2x6":  {1.5, 5.5},
	"2x8":  {1.5, 7.25},
	"2x10": {1.5, 9.25},
	"4x4":  {3.5, 3.5},
}

// exactDims maps nominal size keys to their as-advertised dimensions.
var exactDims = map[string]lumberDim{
	"1x2":  {1, 2},
	"1x3":  {1, 3},
	"1x4":  {1, 4},
	"1x6":  {1, 6},
	"1x8":  {1, 8},
	"1x10": {1, 10},
	"1x12": {1, 12},
	"2x2":  {2, 2},
	"2x3":  {2, 3},
	"2x4":  {2, 4},
	"2x6":  {2, 6},
	"2x8":  {2, 8},
	"2x10": {2, 10},
	"4x4":  {4, 4},
}

// ResolveDimension maps a nominal size key to its (width, height) cross
// section in inches under the given policy. The key must match exactly;
// ok is false for unknown keys and the caller is expected to skip the
// record with a warning.
func ResolveDimension(dim string, policy DimensionPolicy) (width, height float64, ok bool) {
	table := standardDims
	if policy == PolicyExact {
		table = exactDims
	}
	d, found := table[dim]
	if !found {
		return 0, 0, false
	}
	return d.Width, d.Height, true
}

// NominalSizes returns all known nominal size keys in sorted order.
func NominalSizes() []string {
	keys := make([]string, 0, len(standardDims))
	for k := range standardDims {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
