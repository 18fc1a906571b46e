// Package render holds the external rendering collaborators: they
// accept power table rows and produce static artifacts. The core never
// depends on them.
package render

import (
	"context"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"unipower/domain/power"
	"unipower/ports"
)

// ExcelHeatmapRenderer writes the power surface as an XLSX workbook:
// one sheet per test, sample sizes down the rows, bin counts across
// the columns, power in the cells with a two-color scale so the sheet
// reads as a heat map.
type ExcelHeatmapRenderer struct {
	Path string
}

// NewExcelHeatmapRenderer creates a heat-map renderer targeting path
func NewExcelHeatmapRenderer(path string) *ExcelHeatmapRenderer {
	return &ExcelHeatmapRenderer{Path: path}
}

var _ ports.Renderer = (*ExcelHeatmapRenderer)(nil)

// Render implements ports.Renderer
func (r *ExcelHeatmapRenderer) Render(ctx context.Context, label string, table *power.Table) error {
	if table == nil || len(table.Rows) == 0 {
		return fmt.Errorf("render %s: empty power table", label)
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, test := range table.TestNames() {
		sheet := sheetName(label, test)
		if i == 0 {
			// Rename the default sheet instead of leaving it empty.
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return err
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return err
			}
		}
		if err := r.writeSurface(f, sheet, table.ForTest(test)); err != nil {
			return err
		}
	}

	return f.SaveAs(r.Path)
}

func (r *ExcelHeatmapRenderer) writeSurface(f *excelize.File, sheet string, rows []power.Row) error {
	sampleSizes, bins := surfaceAxes(rows)
	grid := make(map[[2]int]float64, len(rows))
	for _, row := range rows {
		grid[[2]int{row.SampleSize, row.Bins}] = row.Power
	}

	if err := f.SetCellValue(sheet, "A1", "sample_size \\ bins"); err != nil {
		return err
	}
	for c, b := range bins {
		cell, _ := excelize.CoordinatesToCellName(c+2, 1)
		if err := f.SetCellValue(sheet, cell, b); err != nil {
			return err
		}
	}
	for rIdx, n := range sampleSizes {
		cell, _ := excelize.CoordinatesToCellName(1, rIdx+2)
		if err := f.SetCellValue(sheet, cell, n); err != nil {
			return err
		}
		for c, b := range bins {
			cell, _ := excelize.CoordinatesToCellName(c+2, rIdx+2)
			if err := f.SetCellValue(sheet, cell, grid[[2]int{n, b}]); err != nil {
				return err
			}
		}
	}

	topLeft, _ := excelize.CoordinatesToCellName(2, 2)
	bottomRight, _ := excelize.CoordinatesToCellName(len(bins)+1, len(sampleSizes)+1)
	return f.SetConditionalFormat(sheet, topLeft+":"+bottomRight, []excelize.ConditionalFormatOptions{
		{
			Type:     "2_color_scale",
			Criteria: "=",
			MinType:  "num",
			MinValue: "0",
			MinColor: "#FFFFFF",
			MaxType:  "num",
			MaxValue: "1",
			MaxColor: "#2C7BB6",
		},
	})
}

func surfaceAxes(rows []power.Row) (sampleSizes, bins []int) {
	nSet := make(map[int]bool)
	kSet := make(map[int]bool)
	for _, r := range rows {
		nSet[r.SampleSize] = true
		kSet[r.Bins] = true
	}
	for n := range nSet {
		sampleSizes = append(sampleSizes, n)
	}
	for k := range kSet {
		bins = append(bins, k)
	}
	sort.Ints(sampleSizes)
	sort.Ints(bins)
	return sampleSizes, bins
}

func sheetName(label, test string) string {
	name := label + "_" + test
	// Sheet names cap out at 31 characters.
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}
