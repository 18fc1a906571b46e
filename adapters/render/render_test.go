package render

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"unipower/domain/power"
)

func sampleTable() *power.Table {
	t := &power.Table{}
	for _, n := range []int{100, 200} {
		for _, k := range []int{5, 10} {
			t.Append(power.Row{SampleSize: n, Bins: k, Test: "chi_square", Power: float64(n) / 250})
			t.Append(power.Row{SampleSize: n, Bins: k, Test: "range", Power: float64(n) / 500})
		}
	}
	return t
}

func TestExcelHeatmap_WritesSurfacePerTest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "power.xlsx")
	r := NewExcelHeatmapRenderer(path)
	if err := r.Render(context.Background(), "small", sampleTable()); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 {
		t.Fatalf("expected 2 sheets, got %v", sheets)
	}

	// The B2 cell of the first sheet is the (n=100, bins=5) power.
	got, err := f.GetCellValue(sheets[0], "B2")
	if err != nil {
		t.Fatal(err)
	}
	if got != "0.4" {
		t.Errorf("B2 = %q, want 0.4", got)
	}
}

func TestExcelHeatmap_RejectsEmptyTable(t *testing.T) {
	r := NewExcelHeatmapRenderer(filepath.Join(t.TempDir(), "power.xlsx"))
	if err := r.Render(context.Background(), "small", &power.Table{}); err == nil {
		t.Error("expected error for empty table")
	}
}

func TestReport_ContainsSummariesAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")
	r := NewReportRenderer(path, "Uniformity test power study")
	if err := r.Render(context.Background(), "small", sampleTable()); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	body := string(raw)
	for _, want := range []string{"Uniformity test power study", "chi_square", "range", "<table>"} {
		if !strings.Contains(body, want) {
			t.Errorf("report missing %q", want)
		}
	}
}
