// Package report renders the live reservation list as an xlsx
// workbook. The workbook is generated on demand and streamed to the
// caller; nothing is written to disk.
package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"roombook/internal/models"
)

// RoomNamer and UserNamer resolve foreign keys to display names.
type RoomNamer interface {
	Get(id int64) (models.Room, bool)
}

type UserNamer interface {
	Get(id int64) (models.User, bool)
}

var columns = []string{"ID", "Date", "Start", "End", "Room", "User", "Reason"}

// WriteReservations writes one sheet with a bold header row and one
// row per reservation, in creation order.
func WriteReservations(w io.Writer, reservations []models.Reservation, rooms RoomNamer, users UserNamer) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Reservations"
	f.SetSheetName("Sheet1", sheet)

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return err
		}
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		startCell, _ := excelize.CoordinatesToCellName(1, 1)
		endCell, _ := excelize.CoordinatesToCellName(len(columns), 1)
		_ = f.SetCellStyle(sheet, startCell, endCell, style)
	}

	for i, res := range reservations {
		row := []any{
			res.ID,
			res.Date,
			res.StartTime,
			res.EndTime,
			roomLabel(rooms, res.RoomID),
			userLabel(users, res.UserID),
			res.Reason,
		}
		for j, val := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}

// roomLabel falls back to the raw ID when the room was deleted after
// the reservation was made.
func roomLabel(rooms RoomNamer, id int64) string {
	if room, ok := rooms.Get(id); ok {
		return room.Name
	}
	return fmt.Sprintf("room #%d", id)
}

func userLabel(users UserNamer, id int64) string {
	if user, ok := users.Get(id); ok {
		return user.Name
	}
	return fmt.Sprintf("user #%d", id)
}
