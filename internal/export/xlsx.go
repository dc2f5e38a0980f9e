// Package export writes batch analysis results as an XLSX workbook.
package export

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ppiankov/nirnay/internal/model"
)

// SheetName is the worksheet holding one row per case file.
const SheetName = "Cases"

// Row is one batch entry; Report is nil when analysis failed.
type Row struct {
	Path   string
	Report *model.AnalysisReport
	Err    error
}

var headers = []string{
	"File",
	"Case ID",
	"Status",
	"Complainant",
	"Village",
	"Taluka",
	"Hearing Date",
	"Hearing Time",
	"Distance",
	"Attendees",
	"References",
	"Case Method",
	"GR Method",
	"Notes",
}

// CasesXLSX returns the workbook bytes.
func CasesXLSX(rows []Row, logger *slog.Logger) ([]byte, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// Rename the default sheet instead of leaving an empty Sheet1 behind.
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(SheetName, cell, h)
	}

	for i, r := range rows {
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(SheetName, cell, v)
		}

		write(1, r.Path)
		if r.Report == nil {
			write(3, "error")
			if r.Err != nil {
				write(14, r.Err.Error())
			}
			continue
		}

		rep := r.Report
		fc := rep.Facts
		write(2, rep.CaseID)
		write(3, "ok")
		write(4, fc.ComplainantName)
		write(5, fc.ComplainantVillage)
		write(6, fc.ComplainantTaluka)
		write(7, fc.HearingDate)
		write(8, fc.HearingTime)
		write(9, fc.DistanceKM)
		write(10, strings.Join(fc.Attendees, "; "))
		write(11, len(rep.References))
		write(12, methodLabel(rep.Case.Method))
		write(13, methodLabel(rep.GR.Method))
		write(14, strings.Join(rep.Warnings, "; "))
	}

	// Widen a few columns
	_ = f.SetColWidth(SheetName, "A", "A", 40) // file
	_ = f.SetColWidth(SheetName, "B", "B", 24) // case id
	_ = f.SetColWidth(SheetName, "D", "F", 24) // identity
	_ = f.SetColWidth(SheetName, "J", "J", 60) // attendees
	_ = f.SetColWidth(SheetName, "N", "N", 60) // notes
	_ = f.SetPanes(SheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	logger.Info("export xlsx ok", "rows", len(rows))
	return buf.Bytes(), nil
}

func methodLabel(m model.Method) string {
	if m == model.MethodNone {
		return "none"
	}
	return string(m)
}
