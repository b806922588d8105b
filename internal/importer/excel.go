package importer

import (
	"fmt"

	"github.com/woodshop-tools/framecad/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportExcel reads a cut-list from the first sheet of an Excel
// (.xlsx, .xlsm) workbook.
func ImportExcel(path string, policy model.DimensionPolicy) (*model.SectionSet, []string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("Excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read Excel data: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("sheet is empty")
	}

	return Ingest(rows, policy)
}
