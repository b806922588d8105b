package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/woodshop-tools/framecad/internal/model"
	"github.com/woodshop-tools/framecad/internal/scene"
	"github.com/woodshop-tools/framecad/internal/stock"
)

// buildTestDoc places a small two-section cut-list into a memory document.
func buildTestDoc() (*scene.MemDocument, *model.SectionSet) {
	set := model.NewSectionSet()

	stud := model.NewLumberRecord("Common Stud", "hemlock", "2x4", 92.625)
	stud.Width, stud.Height = 1.5, 3.5
	stud.Quantity = 2
	stud.Section = "Walls"
	stud.Notes = "precut"
	set.Add(stud)

	rafter := model.NewLumberRecord("Rafter", "pine", "2x6", 120)
	rafter.Width, rafter.Height = 1.5, 5.5
	rafter.Angle = 45
	rafter.Section = "Roof"
	set.Add(rafter)

	doc := scene.NewMemDocument()
	scene.NewPlacer(doc).Place(set)
	return doc, set
}

func TestExportDXF_CreatesFile(t *testing.T) {
	doc, _ := buildTestDoc()
	path := filepath.Join(t.TempDir(), "boards.dxf")

	if err := ExportDXF(path, doc); err != nil {
		t.Fatalf("ExportDXF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("DXF file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("DXF file is empty")
	}
}

func TestExportDXF_EmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.dxf")
	if err := ExportDXF(path, scene.NewMemDocument()); err == nil {
		t.Fatal("expected error for empty document")
	}
}

func TestExportCutReport_CreatesFile(t *testing.T) {
	_, set := buildTestDoc()
	path := filepath.Join(t.TempDir(), "report.pdf")

	if err := ExportCutReport(path, set, model.PolicyStandard, nil); err != nil {
		t.Fatalf("ExportCutReport returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportCutReport_WithPurchasePlan(t *testing.T) {
	_, set := buildTestDoc()
	path := filepath.Join(t.TempDir(), "report.pdf")

	sol, err := stock.Optimize(
		[]stock.RequiredCut{{LengthIn: 92.625, Quantity: 2, Label: "Common Stud"}},
		[]stock.StockLength{{LengthIn: 96, Price: 3.50}},
		0.125,
	)
	if err != nil {
		t.Fatal(err)
	}

	if err := ExportCutReport(path, set, model.PolicyStandard, &sol); err != nil {
		t.Fatalf("ExportCutReport returned error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
}

func TestExportCutReport_EmptySet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	if err := ExportCutReport(path, model.NewSectionSet(), model.PolicyStandard, nil); err == nil {
		t.Fatal("expected error for empty section set")
	}
}

func TestCollectLabelInfos(t *testing.T) {
	doc, _ := buildTestDoc()
	labels := CollectLabelInfos(doc)

	if len(labels) != 3 {
		t.Fatalf("expected 3 labels, got %d", len(labels))
	}
	if labels[0].Name != "Common_Stud_1" || labels[0].Instance != 1 {
		t.Errorf("unexpected first label: %+v", labels[0])
	}
	if labels[1].Instance != 2 {
		t.Errorf("expected instance 2, got %d", labels[1].Instance)
	}
	if labels[2].Section != "Roof" || labels[2].AngleDeg != 45 {
		t.Errorf("unexpected rafter label: %+v", labels[2])
	}
	if labels[0].Dim != "2x4" || labels[0].LengthIn != 92.625 {
		t.Errorf("label should carry stick size and length: %+v", labels[0])
	}
}

func TestExportLabels_CreatesFile(t *testing.T) {
	doc, _ := buildTestDoc()
	path := filepath.Join(t.TempDir(), "labels.pdf")

	if err := ExportLabels(path, doc); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("labels PDF was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("labels PDF is empty")
	}
}

func TestExportLabels_EmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")
	if err := ExportLabels(path, scene.NewMemDocument()); err == nil {
		t.Fatal("expected error for empty document")
	}
}
