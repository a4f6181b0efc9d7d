package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"fnol/internal/display"
	"fnol/internal/pipeline"
)

// SheetName is the worksheet holding one row per document.
const SheetName = "Claims"

// XLSX returns a workbook (as bytes) listing every outcome of the batch.
func XLSX(r pipeline.BatchReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}
	activeIndex, _ := f.GetSheetIndex(SheetName)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Document",
		"Route",
		"Missing Fields",
		"Completeness",
		"Reasoning",
		"Error",
		"Run ID",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(SheetName, cell, h)
	}

	for i, o := range r.Outcomes {
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(SheetName, cell, v)
		}
		write(1, o.Path)
		if o.Err != nil {
			write(6, o.Err.Error())
		} else {
			write(2, string(o.Result.RecommendedRoute))
			write(3, display.FieldList(o.Result.MissingFields))
			write(4, o.Completeness)
			write(5, o.Result.Reasoning)
		}
		write(7, r.RunID)
	}

	_ = f.SetColWidth(SheetName, "A", "A", 48) // document
	_ = f.SetColWidth(SheetName, "B", "B", 20) // route
	_ = f.SetColWidth(SheetName, "C", "C", 48) // missing
	_ = f.SetColWidth(SheetName, "D", "D", 14)
	_ = f.SetColWidth(SheetName, "E", "F", 60)
	_ = f.SetColWidth(SheetName, "G", "G", 38)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
