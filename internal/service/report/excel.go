// Package report renders attendance workbooks, user QR codes and badge
// sheets, and reads user import workbooks.
package report

import (
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

type AttendanceRow struct {
	UserID   string
	Name     string
	Role     string
	Status   string
	TimeIn   string
	TimeOut  string
	MarkedBy string
}

var attendanceHeaders = []string{"User ID", "Name", "Role", "Status", "Time In", "Time Out", "Marked By"}

// AttendanceWorkbook writes one sheet named after date holding rows under a
// header line and returns the encoded .xlsx.
func AttendanceWorkbook(date string, rows []AttendanceRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := date
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, errors.Wrap(err, "naming sheet")
	}

	for i, header := range attendanceHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, errors.Wrap(err, "writing header")
		}
	}

	for r, row := range rows {
		values := []string{row.UserID, row.Name, row.Role, row.Status, row.TimeIn, row.TimeOut, row.MarkedBy}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, errors.Wrap(err, "writing row")
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "encoding workbook")
	}
	return buf.Bytes(), nil
}
