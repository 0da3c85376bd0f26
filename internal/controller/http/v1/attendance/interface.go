package attendance

import (
	"context"

	"university-backend/internal/entity"
	"university-backend/internal/service"
)

type Attendance interface {
	MarkAttendance(ctx context.Context, request service.MarkAttendanceRequest) (entity.Attendance, error)
	AttendanceForDay(ctx context.Context, date string) ([]service.AttendanceWithUser, error)
	AttendanceHistory(ctx context.Context, userID string, limit *int) ([]entity.Attendance, error)
	ExportAttendanceForDay(ctx context.Context, date string) ([]byte, string, error)
}
