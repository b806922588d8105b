package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/woodshop-tools/framecad/internal/model"
)

const sampleHeader = "MATERIAL,QTY,DIM,LEN,ANGLE,Section,LABEL / PART DESCRIPTION,NOTES"

func ingestCSV(t *testing.T, csvText string) (*model.SectionSet, []string) {
	t.Helper()
	set, warnings, err := ImportCSVFromReader(strings.NewReader(csvText), ',', model.PolicyStandard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return set, warnings
}

func TestDetectCSVDelimiter(t *testing.T) {
	cases := []struct {
		data string
		want rune
	}{
		{"a,b,c\n1,2,3\n", ','},
		{"a;b;c\n1;2;3\n", ';'},
		{"a\tb\tc\n1\t2\t3\n", '\t'},
		{"a|b|c\n1|2|3\n", '|'},
	}
	for _, c := range cases {
		if got := DetectCSVDelimiter([]byte(c.data)); got != c.want {
			t.Errorf("%q: got %q, want %q", c.data, got, c.want)
		}
	}
}

func TestDetectColumns_MissingRequiredColumnIsSchemaError(t *testing.T) {
	// No LEN column.
	_, err := DetectColumns([]string{"MATERIAL", "QTY", "DIM", "ANGLE", "Section"})
	if err == nil {
		t.Fatal("expected schema error")
	}
	if !strings.Contains(err.Error(), "LENGTH") {
		t.Errorf("error should name the missing column, got %q", err.Error())
	}
}

func TestDetectColumns_AliasesAndCase(t *testing.T) {
	mapping, err := DetectColumns([]string{"material", "Count", "Size", "Length", "Miter", "Assembly", "Part", "Remarks"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mapping.Quantity != 1 || mapping.Dim != 2 || mapping.Angle != 4 || mapping.Label != 6 || mapping.Notes != 7 {
		t.Errorf("unexpected mapping: %+v", mapping)
	}
}

func TestDetectColumns_OptionalColumnsDefaultToMinusOne(t *testing.T) {
	mapping, err := DetectColumns([]string{"MATERIAL", "QTY", "DIM", "LEN", "ANGLE", "Section"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mapping.Label != -1 || mapping.Notes != -1 {
		t.Errorf("expected -1 for absent optional columns, got %+v", mapping)
	}
}

func TestMaterialAccepted(t *testing.T) {
	cases := []struct {
		material string
		want     bool
	}{
		{"hemlock", true},
		{"Hemlock KD", true},
		{"PINE #2", true},
		{"1/2 CDX pine", false},
		{"CDX", false},
		{"plywood", false},
		{"", false},
	}
	for _, c := range cases {
		if got := MaterialAccepted(c.material); got != c.want {
			t.Errorf("%q: got %v, want %v", c.material, got, c.want)
		}
	}
}

func TestIngest_BasicRecord(t *testing.T) {
	set, warnings := ingestCSV(t, sampleHeader+"\n"+
		"hemlock,12,2x4,92.625,90,Walls,Common Stud,\n")

	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if set.Len() != 1 {
		t.Fatalf("expected 1 record, got %d", set.Len())
	}
	rec := set.Sections[0].Records[0]
	if rec.Name != "Common Stud" || rec.Quantity != 12 || rec.Length != 92.625 {
		t.Errorf("unexpected record: %+v", rec)
	}
	if rec.Width != 1.5 || rec.Height != 3.5 {
		t.Errorf("2x4 should resolve to 1.5 x 3.5, got %g x %g", rec.Width, rec.Height)
	}
	if set.Sections[0].Name != "Walls" {
		t.Errorf("expected section Walls, got %q", set.Sections[0].Name)
	}
}

func TestIngest_ExactPolicy(t *testing.T) {
	set, _, err := ImportCSVFromReader(strings.NewReader(sampleHeader+"\n"+
		"hemlock,1,2x4,96,90,Walls,Stud,\n"), ',', model.PolicyExact)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec := set.Sections[0].Records[0]
	if rec.Width != 2 || rec.Height != 4 {
		t.Errorf("exact 2x4 should resolve to 2 x 4, got %g x %g", rec.Width, rec.Height)
	}
}

func TestIngest_MaterialFilterIsSilent(t *testing.T) {
	set, warnings := ingestCSV(t, sampleHeader+"\n"+
		"hemlock,1,2x4,96,90,Walls,Stud,\n"+
		"1/2 CDX,10,2x4,96,90,Walls,Sheathing,\n"+
		"steel,2,2x4,96,90,Walls,Bracket,\n")

	if len(warnings) != 0 {
		t.Fatalf("filtered materials must not warn, got %v", warnings)
	}
	if set.Len() != 1 {
		t.Errorf("expected 1 record after filtering, got %d", set.Len())
	}
}

func TestIngest_BadRowWarnsAndContinues(t *testing.T) {
	set, warnings := ingestCSV(t, sampleHeader+"\n"+
		"hemlock,1,2x4,96,90,Walls,Good One,\n"+
		"hemlock,1,2x4,,90,Walls,No Length,\n"+
		"hemlock,1,9x9,96,90,Walls,Bad Dim,\n"+
		"hemlock,1,2x4,-5,90,Walls,Negative,\n"+
		"hemlock,1,2x4,48,90,Walls,Good Two,\n")

	if set.Len() != 2 {
		t.Fatalf("expected 2 good records, got %d", set.Len())
	}
	if len(warnings) != 3 {
		t.Fatalf("expected 3 warnings, got %d: %v", len(warnings), warnings)
	}
	for _, w := range warnings {
		if !strings.Contains(w, "Row") {
			t.Errorf("warning should identify the row: %q", w)
		}
	}
}

func TestIngest_OptionalFieldDefaults(t *testing.T) {
	set, warnings := ingestCSV(t, sampleHeader+"\n"+
		"pine,,2x6,96,,,,\n")

	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	rec := set.Sections[0].Records[0]
	if rec.Quantity != 1 {
		t.Errorf("blank quantity should default to 1, got %d", rec.Quantity)
	}
	if rec.Angle != model.SquareAngle {
		t.Errorf("blank angle should default to 90, got %g", rec.Angle)
	}
	if rec.Name != model.DefaultName {
		t.Errorf("blank label should default, got %q", rec.Name)
	}
	if set.Sections[0].Name != model.DefaultSection {
		t.Errorf("blank section should default, got %q", set.Sections[0].Name)
	}
}

func TestIngest_SectionOrderFollowsRows(t *testing.T) {
	set, _ := ingestCSV(t, sampleHeader+"\n"+
		"hemlock,1,2x4,96,90,Roof,A,\n"+
		"hemlock,1,2x4,96,90,Walls,B,\n"+
		"hemlock,1,2x4,96,90,Roof,C,\n")

	names := set.Names()
	if len(names) != 2 || names[0] != "Roof" || names[1] != "Walls" {
		t.Errorf("unexpected section order: %v", names)
	}
	if len(set.Sections[0].Records) != 2 {
		t.Errorf("Roof should hold 2 records, got %d", len(set.Sections[0].Records))
	}
}

func TestIngest_SkipsEmptyRows(t *testing.T) {
	set, warnings := ingestCSV(t, sampleHeader+"\n"+
		",,,,,,,\n"+
		"hemlock,1,2x4,96,90,Walls,Stud,\n"+
		"\n")

	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if set.Len() != 1 {
		t.Errorf("expected 1 record, got %d", set.Len())
	}
}

func TestImportCSV_FileHandling(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "cutlist.csv")
	content := sampleHeader + "\nhemlock,2,2x4,96,90,Walls,Plate,\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	set, warnings, err := ImportCSV(path, model.PolicyStandard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 || set.Len() != 1 {
		t.Errorf("unexpected result: %d records, warnings %v", set.Len(), warnings)
	}

	if _, _, err := ImportCSV(filepath.Join(dir, "missing.csv"), model.PolicyStandard); err == nil {
		t.Error("expected error for missing file")
	}

	empty := filepath.Join(dir, "empty.csv")
	if err := os.WriteFile(empty, []byte("  \n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := ImportCSV(empty, model.PolicyStandard); err == nil {
		t.Error("expected error for empty file")
	}
}

func TestIngest_SemicolonDelimited(t *testing.T) {
	data := strings.ReplaceAll(sampleHeader, ",", ";") + "\n" +
		"hemlock;1;2x4;96;90;Walls;Stud;\n"
	set, _, err := ImportCSVFromReader(strings.NewReader(data), DetectCSVDelimiter([]byte(data)), model.PolicyStandard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.Len() != 1 {
		t.Errorf("expected 1 record, got %d", set.Len())
	}
}
