package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// ExportService renders result rows into downloadable CSV and XLSX reports.
type ExportService struct {
	resultService *ResultService
	log           zerolog.Logger
}

// NewExportService creates a new ExportService.
func NewExportService(resultService *ResultService, log zerolog.Logger) *ExportService {
	return &ExportService{
		resultService: resultService,
		log:           log.With().Str("component", "export_service").Logger(),
	}
}

// WriteCSV streams all results (optionally filtered by test) as CSV. One row
// per submission: Name, Email, then a column per module name observed across
// the export, each cell formatted "obtained/questions".
func (s *ExportService) WriteCSV(ctx context.Context, w io.Writer, testID *string) error {
	rows, err := s.resultService.ListAllRows(ctx, testID)
	if err != nil {
		return err
	}

	modules := moduleColumns(rows)

	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"Name", "Email"}, modules...)); err != nil {
		return err
	}

	for _, row := range rows {
		record := make([]string, 0, 2+len(modules))
		record = append(record, row.StudentName, row.StudentEmail)
		for _, name := range modules {
			record = append(record, moduleCell(row, name))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteXLSX streams the same report as a single-sheet workbook.
func (s *ExportService) WriteXLSX(ctx context.Context, w io.Writer, testID *string) error {
	rows, err := s.resultService.ListAllRows(ctx, testID)
	if err != nil {
		return err
	}

	modules := moduleColumns(rows)

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.log.Warn().Err(err).Msg("Failed to close workbook")
		}
	}()

	sheet := f.GetSheetName(0)

	header := append([]string{"Name", "Email"}, modules...)
	for col, title := range header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return err
		}
	}

	for i, row := range rows {
		values := make([]interface{}, 0, len(header))
		values = append(values, row.StudentName, row.StudentEmail)
		for _, name := range modules {
			values = append(values, moduleCell(row, name))
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}

// moduleColumns returns the sorted union of module names across all rows so
// heterogeneous test definitions share one stable header.
func moduleColumns(rows []ResultRow) []string {
	seen := make(map[string]struct{})
	for _, row := range rows {
		for name := range row.Breakdown.ModuleBreakdown {
			seen[name] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func moduleCell(row ResultRow, module string) string {
	mb, ok := row.Breakdown.ModuleBreakdown[module]
	if !ok {
		return ""
	}
	return fmt.Sprintf("%.2f/%d", mb.Obtained, mb.Questions)
}
