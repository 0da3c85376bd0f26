package service

import (
	"context"
	"math"

	"github.com/pkg/errors"

	"university-backend/internal/auth"
	"university-backend/internal/entity"
)

type DashboardStats struct {
	PresentToday   int `json:"presentToday"`
	AbsentToday    int `json:"absentToday"`
	PendingLeaves  int `json:"pendingLeaves"`
	AttendanceRate int `json:"attendanceRate"`
	TotalUsers     int `json:"totalUsers"`
}

// DashboardStats is recomputed from the store on every call. TotalUsers
// counts active users only and is the base of AttendanceRate.
func (s *Service) DashboardStats(ctx context.Context) (DashboardStats, error) {
	if _, err := auth.RequireRole(ctx, entity.RoleHead, entity.RoleAdmin); err != nil {
		return DashboardStats{}, err
	}

	var stats DashboardStats

	today, err := s.store.Attendance().ListByDate(ctx, s.today())
	if err != nil {
		return stats, errors.Wrap(err, "dashboard attendance")
	}
	for _, a := range today {
		switch a.Status {
		case entity.AttendancePresent:
			stats.PresentToday++
		case entity.AttendanceAbsent:
			stats.AbsentToday++
		}
	}

	pending, err := s.store.LeaveRequests().ListPending(ctx)
	if err != nil {
		return stats, errors.Wrap(err, "dashboard leave requests")
	}
	stats.PendingLeaves = len(pending)

	users, err := s.store.Users().List(ctx)
	if err != nil {
		return stats, errors.Wrap(err, "dashboard users")
	}
	for _, u := range users {
		if u.IsActive {
			stats.TotalUsers++
		}
	}

	if stats.TotalUsers > 0 {
		stats.AttendanceRate = int(math.Round(float64(stats.PresentToday) / float64(stats.TotalUsers) * 100))
	}
	return stats, nil
}
