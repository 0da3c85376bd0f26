package entity

import (
	"time"

	"github.com/uptrace/bun"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceOnLeave AttendanceStatus = "on_leave"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceOnLeave:
		return true
	}
	return false
}

// Attendance is one user's outcome for one calendar day. (UserID, Date) is unique.
type Attendance struct {
	bun.BaseModel `bun:"table:attendance"`

	ID       int              `json:"id"       bun:"id,pk,autoincrement"`
	UserID   string           `json:"userId"   bun:"user_id"`
	Date     string           `json:"date"     bun:"date"`
	Status   AttendanceStatus `json:"status"   bun:"status"`
	TimeIn   *string          `json:"timeIn"   bun:"time_in"`
	TimeOut  *string          `json:"timeOut"  bun:"time_out"`
	MarkedBy string           `json:"markedBy" bun:"marked_by"`
	MarkedAt time.Time        `json:"markedAt" bun:"marked_at"`
}
