package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"shareit/internal/models"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Bookings"

var exportHeaders = []string{"ID", "Item", "Booker", "Email", "Start", "End", "Status"}

var statusColors = map[models.BookingStatus]string{
	models.StatusWaiting:  "#FFF2CC",
	models.StatusApproved: "#E2EFDA",
	models.StatusRejected: "#F8CBAD",
}

// ExportForOwner renders the owner's bookings in the state as an XLSX workbook.
func (s *BookingService) ExportForOwner(ctx context.Context, userID int64, state models.BookingState) (*bytes.Buffer, error) {
	records, err := s.ListForOwner(ctx, userID, state)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("error renaming sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("error creating header style: %w", err)
	}
	for i, title := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(exportSheet, cell, title)
		_ = f.SetCellStyle(exportSheet, cell, cell, headerStyle)
	}

	statusStyles := make(map[models.BookingStatus]int, len(statusColors))
	for status, color := range statusColors {
		style, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		})
		if err != nil {
			return nil, fmt.Errorf("error creating status style: %w", err)
		}
		statusStyles[status] = style
	}

	for i, r := range records {
		row := i + 2
		values := []interface{}{
			r.ID,
			r.Item.Name,
			r.Booker.Name,
			r.Booker.Email,
			r.Start.In(time.Local).Format(models.LocalTimeLayout),
			r.End.In(time.Local).Format(models.LocalTimeLayout),
			string(r.Status),
		}
		start, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(exportSheet, start, &values); err != nil {
			return nil, fmt.Errorf("error writing row %d: %w", row, err)
		}
		if style, ok := statusStyles[r.Status]; ok {
			cell, _ := excelize.CoordinatesToCellName(len(values), row)
			_ = f.SetCellStyle(exportSheet, cell, cell, style)
		}
	}

	_ = f.SetColWidth(exportSheet, "A", "A", 8)
	_ = f.SetColWidth(exportSheet, "B", "D", 25)
	_ = f.SetColWidth(exportSheet, "E", "G", 20)
	_ = f.SetPanes(exportSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("error writing workbook: %w", err)
	}

	s.logger.Info().Int64("owner_id", userID).Str("state", state.String()).Int("rows", len(records)).Msg("bookings exported")
	return buf, nil
}
