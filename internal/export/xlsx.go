package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Tickets"

// WriteXLSX writes a single-sheet workbook: a styled header, one row per
// ticket and a bold totals row.
func WriteXLSX(w io.Writer, cols []Column, rows []Row, totals Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	styleHeader, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#3b82f6"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	styleTotal, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"#cbd5e1"}, Pattern: 1},
		Border: []excelize.Border{{Type: "top", Color: "000000", Style: 2}},
	})
	if err != nil {
		return fmt.Errorf("total style: %w", err)
	}

	for i, c := range cols {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, c.Title); err != nil {
			return fmt.Errorf("header %s: %w", c.Key, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, styleHeader); err != nil {
			return fmt.Errorf("header %s style: %w", c.Key, err)
		}

		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheetName, name, name, c.Width); err != nil {
			return fmt.Errorf("column %s width: %w", c.Key, err)
		}
	}

	for r, row := range rows {
		if err := writeRow(f, cols, row, r+2); err != nil {
			return fmt.Errorf("ticket %s: %w", row.TicketID, err)
		}
	}

	last := len(rows) + 2
	if err := writeRow(f, cols, totals, last); err != nil {
		return fmt.Errorf("totals: %w", err)
	}
	first, err := excelize.CoordinatesToCellName(1, last)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(len(cols), last)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, first, end, styleTotal); err != nil {
		return fmt.Errorf("totals style: %w", err)
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	return f.Write(w)
}

func writeRow(f *excelize.File, cols []Column, row Row, line int) error {
	for i, c := range cols {
		cell, err := excelize.CoordinatesToCellName(i+1, line)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, row.Value(c.Key)); err != nil {
			return fmt.Errorf("%s: %w", c.Key, err)
		}
	}
	return nil
}
