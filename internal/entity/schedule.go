package entity

import (
	"strings"

	"github.com/uptrace/bun"
)

var weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// NormalizeDay lower-cases and trims a day name. ok is false when the result
// is not a weekday name.
func NormalizeDay(day string) (string, bool) {
	d := strings.ToLower(strings.TrimSpace(day))
	for _, w := range weekdays {
		if d == w {
			return d, true
		}
	}
	return d, false
}

// Schedule is a recurring weekly slot. Subject is set for teachers, WorkType for staff.
type Schedule struct {
	bun.BaseModel `bun:"table:schedules"`

	ID        int     `json:"id"        bun:"id,pk,autoincrement"`
	UserID    string  `json:"userId"    bun:"user_id"`
	DayOfWeek string  `json:"dayOfWeek" bun:"day_of_week"`
	StartTime string  `json:"startTime" bun:"start_time"`
	EndTime   string  `json:"endTime"   bun:"end_time"`
	Subject   *string `json:"subject"   bun:"subject"`
	WorkType  *string `json:"workType"  bun:"work_type"`
}
