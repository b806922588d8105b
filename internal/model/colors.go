package model

import "strings"

// MaterialColor is a display RGB color attached to placed boards.
// Appearance only; it is not part of the geometric contract.
type MaterialColor struct {
	R, G, B uint8
}

// materialFamilies maps a lowercase material substring to its display color.
// Entries are checked in order and the first match wins.
var materialFamilies = []struct {
	substr string
	color  MaterialColor
}{
	{"hemlock", MaterialColor{R: 133, G: 94, B: 66}},
	{"pine", MaterialColor{R: 222, G: 184, B: 135}},
	{"fir", MaterialColor{R: 188, G: 143, B: 103}},
	{"cedar", MaterialColor{R: 165, G: 91, B: 75}},
	{"oak", MaterialColor{R: 120, G: 81, B: 45}},
}

// naturalWood is the fallback color for unrecognized materials.
var naturalWood = MaterialColor{R: 210, G: 180, B: 140}

// ColorForMaterial returns the display color for a material family,
// matched case-insensitively by substring.
func ColorForMaterial(material string) MaterialColor {
	m := strings.ToLower(material)
	for _, f := range materialFamilies {
		if strings.Contains(m, f.substr) {
			return f.color
		}
	}
	return naturalWood
}
