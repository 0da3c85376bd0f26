package service

import (
	"context"
	"net/http"
	"time"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/pkg/errors"

	"university-backend/foundation/web"
	"university-backend/internal/auth"
	"university-backend/internal/entity"
	"university-backend/internal/repository"
	"university-backend/internal/service/report"
)

const (
	clockLayout         = "15:04"
	defaultHistoryLimit = 10
)

type MarkAttendanceRequest struct {
	UserID  string                  `json:"userId"`
	Date    string                  `json:"date"`
	Status  entity.AttendanceStatus `json:"status"`
	TimeIn  *string                 `json:"timeIn"`
	TimeOut *string                 `json:"timeOut"`
}

// AttendanceWithUser is an attendance record joined with its subject. User
// is nil when the subject no longer exists.
type AttendanceWithUser struct {
	entity.Attendance
	User *entity.Summary `json:"user"`
}

// MarkAttendance records the day's outcome for a subordinate, replacing any
// earlier record for the same user and date. Mazers mark teachers and
// assistants mark staff.
func (s *Service) MarkAttendance(ctx context.Context, req MarkAttendanceRequest) (entity.Attendance, error) {
	claims, err := auth.RequireRole(ctx, entity.RoleMazer, entity.RoleAssistant)
	if err != nil {
		return entity.Attendance{}, err
	}

	if err = validDate(req.Date); err != nil {
		return entity.Attendance{}, err
	}
	if !req.Status.Valid() {
		return entity.Attendance{}, invalidf("invalid status %q", req.Status)
	}
	for _, t := range []*string{req.TimeIn, req.TimeOut} {
		if t != nil && *t != "" {
			if _, perr := time.Parse(clockLayout, *t); perr != nil {
				return entity.Attendance{}, invalidf("time must be HH:MM, got %q", *t)
			}
		}
	}

	target, err := s.store.Users().GetByID(ctx, req.UserID)
	if err != nil {
		return entity.Attendance{}, storeErr(err, "user")
	}
	if !claims.Role.Supervises(target.Role) {
		return entity.Attendance{}, web.NewRequestError(auth.ErrForbidden, http.StatusForbidden)
	}

	now := s.now()
	record := entity.Attendance{
		UserID:   target.ID,
		Date:     req.Date,
		Status:   req.Status,
		MarkedBy: claims.UserID,
		MarkedAt: now,
	}
	if req.Status == entity.AttendancePresent {
		timeIn := now.Format(clockLayout)
		if req.TimeIn != nil && *req.TimeIn != "" {
			timeIn = *req.TimeIn
		}
		record.TimeIn = &timeIn
		if req.TimeOut != nil && *req.TimeOut != "" {
			timeOut := *req.TimeOut
			record.TimeOut = &timeOut
		}
	}

	stored, err := s.store.Attendance().Upsert(ctx, record)
	if err != nil {
		return entity.Attendance{}, errors.Wrap(err, "marking attendance")
	}
	return stored, nil
}

// AttendanceForDay lists every record of day (today when empty) with its
// subject.
func (s *Service) AttendanceForDay(ctx context.Context, day string) ([]AttendanceWithUser, error) {
	if _, err := auth.RequireRole(ctx, entity.RoleHead, entity.RoleAdmin); err != nil {
		return nil, err
	}
	return s.attendanceForDay(ctx, day)
}

func (s *Service) attendanceForDay(ctx context.Context, day string) ([]AttendanceWithUser, error) {
	if day == "" {
		day = s.today()
	} else if err := validDate(day); err != nil {
		return nil, err
	}

	records, err := s.store.Attendance().ListByDate(ctx, day)
	if err != nil {
		return nil, errors.Wrap(err, "listing attendance")
	}

	list := make([]AttendanceWithUser, 0, len(records))
	for _, a := range records {
		user, err := s.summary(ctx, a.UserID)
		if err != nil {
			return nil, err
		}
		list = append(list, AttendanceWithUser{Attendance: a, User: user})
	}
	return list, nil
}

// AttendanceHistory returns up to limit records of userID, newest first.
// Users read their own history; head and admin read anyone's.
func (s *Service) AttendanceHistory(ctx context.Context, userID string, limit *int) ([]entity.Attendance, error) {
	claims, err := auth.RequireRole(ctx)
	if err != nil {
		return nil, err
	}
	if claims.UserID != userID && !claims.Authorized(entity.RoleHead, entity.RoleAdmin) {
		return nil, web.NewRequestError(auth.ErrForbidden, http.StatusForbidden)
	}

	n := defaultHistoryLimit
	if limit != nil {
		if *limit <= 0 {
			return nil, invalidf("limit must be positive")
		}
		n = *limit
	}

	list, err := s.store.Attendance().History(ctx, userID, n)
	if err != nil {
		return nil, errors.Wrap(err, "attendance history")
	}
	if list == nil {
		list = []entity.Attendance{}
	}
	return list, nil
}

// ExportAttendanceForDay renders AttendanceForDay as an .xlsx workbook and
// returns it with the resolved date.
func (s *Service) ExportAttendanceForDay(ctx context.Context, day string) ([]byte, string, error) {
	if _, err := auth.RequireRole(ctx, entity.RoleHead, entity.RoleAdmin); err != nil {
		return nil, "", err
	}
	if day == "" {
		day = s.today()
	}

	list, err := s.attendanceForDay(ctx, day)
	if err != nil {
		return nil, "", err
	}

	rows := make([]report.AttendanceRow, 0, len(list))
	for _, a := range list {
		row := report.AttendanceRow{
			UserID:   a.UserID,
			Status:   string(a.Status),
			MarkedBy: a.MarkedBy,
		}
		if a.User != nil {
			row.Name, row.Role = a.User.Name, string(a.User.Role)
		}
		if a.TimeIn != nil {
			row.TimeIn = *a.TimeIn
		}
		if a.TimeOut != nil {
			row.TimeOut = *a.TimeOut
		}
		rows = append(rows, row)
	}

	b, err := report.AttendanceWorkbook(day, rows)
	if err != nil {
		return nil, "", err
	}
	return b, day, nil
}

// summary returns the identity of userID, nil if the user is gone.
func (s *Service) summary(ctx context.Context, userID string) (*entity.Summary, error) {
	u, err := s.store.Users().GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "loading user")
	}
	return u.Summary(), nil
}

func validDate(s string) error {
	if _, err := date.ParseDate(s); err != nil {
		return invalidf("date must be YYYY-MM-DD, got %q", s)
	}
	return nil
}
