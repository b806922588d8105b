// Package importer reads tabular lumber cut-lists into validated, sectioned
// records. It supports automatic CSV delimiter detection, case-insensitive
// header recognition, material routing, and per-row validation that drops
// bad rows with a warning instead of aborting the batch.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/woodshop-tools/framecad/internal/model"
)

// ColumnMapping maps semantic column roles to their indices in the data.
// Optional columns that were not found hold -1.
type ColumnMapping struct {
	Material int
	Quantity int
	Dim      int
	Length   int
	Angle    int
	Section  int
	Label    int
	Notes    int
}

// headerAliases maps canonical column roles to their accepted header
// spellings (all lowercase).
var headerAliases = map[string][]string{
	"material": {"material", "mat"},
	"quantity": {"qty", "quantity", "count", "pcs"},
	"dim":      {"dim", "dimension", "nominal", "size"},
	"length":   {"len", "length"},
	"angle":    {"angle", "ang", "miter"},
	"section":  {"section", "group", "assembly"},
	"label":    {"label / part description", "label", "part description", "description", "name", "part"},
	"notes":    {"notes", "note", "remarks"},
}

// requiredColumns must all be present in the header row; their absence is
// a schema error that aborts the whole ingestion before any row is read.
var requiredColumns = []string{"material", "quantity", "dim", "length", "angle", "section"}

// DetectCSVDelimiter determines the most likely CSV delimiter by trying
// comma, semicolon, tab, and pipe. The delimiter producing the most
// consistent multi-column row shape wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	best := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}
		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			best = delim
		}
	}
	return best
}

// DetectColumns examines a header row and returns the column mapping.
// A missing required column is a schema error; the caller must abort.
func DetectColumns(row []string) (ColumnMapping, error) {
	found := map[string]int{}
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		if normalized == "" {
			continue
		}
		for role, aliases := range headerAliases {
			if _, ok := found[role]; ok {
				continue
			}
			for _, alias := range aliases {
				if normalized == alias {
					found[role] = i
					break
				}
			}
		}
	}

	var missing []string
	for _, role := range requiredColumns {
		if _, ok := found[role]; !ok {
			missing = append(missing, strings.ToUpper(role))
		}
	}
	if len(missing) > 0 {
		return ColumnMapping{}, fmt.Errorf("required columns not found in header: %s", strings.Join(missing, ", "))
	}

	get := func(role string) int {
		if i, ok := found[role]; ok {
			return i
		}
		return -1
	}
	return ColumnMapping{
		Material: get("material"),
		Quantity: get("quantity"),
		Dim:      get("dim"),
		Length:   get("length"),
		Angle:    get("angle"),
		Section:  get("section"),
		Label:    get("label"),
		Notes:    get("notes"),
	}, nil
}

// MaterialAccepted reports whether a row's material routes into the model:
// dimensional hemlock or pine, excluding CDX sheathing. Rejection is
// routing, not a data defect, so rejected rows are dropped silently.
func MaterialAccepted(material string) bool {
	m := strings.ToLower(material)
	if strings.Contains(m, "cdx") {
		return false
	}
	return strings.Contains(m, "hemlock") || strings.Contains(m, "pine")
}

// getCell safely retrieves a trimmed cell value by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow builds a LumberRecord from one data row. skip is true when the
// row was routed out by the material filter (no warning). A non-empty
// warning means the row failed validation and was dropped.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, policy model.DimensionPolicy) (rec model.LumberRecord, skip bool, warning string) {
	material := getCell(row, mapping.Material)
	if !MaterialAccepted(material) {
		return model.LumberRecord{}, true, ""
	}

	dim := getCell(row, mapping.Dim)
	if dim == "" {
		return model.LumberRecord{}, false, fmt.Sprintf("%s: missing dimension, row dropped", rowLabel)
	}
	width, height, ok := model.ResolveDimension(dim, policy)
	if !ok {
		return model.LumberRecord{}, false,
			fmt.Sprintf("%s: unknown dimension %q under %s policy, row dropped", rowLabel, dim, policy)
	}

	lenStr := getCell(row, mapping.Length)
	if lenStr == "" {
		return model.LumberRecord{}, false, fmt.Sprintf("%s: missing length, row dropped", rowLabel)
	}
	length, err := strconv.ParseFloat(lenStr, 64)
	if err != nil || length <= 0 {
		return model.LumberRecord{}, false,
			fmt.Sprintf("%s: invalid length %q, row dropped", rowLabel, lenStr)
	}

	rec = model.NewLumberRecord(getCell(row, mapping.Label), material, dim, length)
	rec.Width = width
	rec.Height = height

	// Optional fields fall back to documented defaults.
	if qty, err := strconv.Atoi(getCell(row, mapping.Quantity)); err == nil && qty > 0 {
		rec.Quantity = qty
	}
	if angle, err := strconv.ParseFloat(getCell(row, mapping.Angle), 64); err == nil {
		rec.Angle = angle
	}
	if section := getCell(row, mapping.Section); section != "" {
		rec.Section = section
	}
	rec.Notes = getCell(row, mapping.Notes)

	return rec, false, ""
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Ingest converts raw rows (header first) into sectioned records under the
// given dimension policy. Sections appear in first-seen order; records
// within a section preserve row order. Per-row failures produce warnings
// and continue; only a schema failure returns an error.
func Ingest(rows [][]string, policy model.DimensionPolicy) (*model.SectionSet, []string, error) {
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("no data rows found")
	}

	mapping, err := DetectColumns(rows[0])
	if err != nil {
		return nil, nil, err
	}

	sections := model.NewSectionSet()
	var warnings []string

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		rowLabel := fmt.Sprintf("Row %d", i+1)
		rec, skip, warning := parseRow(row, mapping, rowLabel, policy)
		if skip {
			continue
		}
		if warning != "" {
			warnings = append(warnings, warning)
			continue
		}
		sections.Add(rec)
	}

	return sections, warnings, nil
}

// ImportCSV reads a cut-list CSV file, auto-detecting the delimiter.
func ImportCSV(path string, policy model.DimensionPolicy) (*model.SectionSet, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil, fmt.Errorf("file is empty")
	}
	return ImportCSVFromReader(bytes.NewReader(data), DetectCSVDelimiter(data), policy)
}

// ImportCSVFromReader reads a cut-list from a CSV reader with a known
// delimiter. Useful for testing and for callers that already sniffed the
// format.
func ImportCSVFromReader(r io.Reader, delimiter rune, policy model.DimensionPolicy) (*model.SectionSet, []string, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("file is empty")
	}
	return Ingest(records, policy)
}
