package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"university-backend/foundation/web"
	"university-backend/internal/auth"
	"university-backend/internal/entity"
	"university-backend/internal/repository"
)

type CreateScheduleRequest struct {
	UserID    string  `json:"userId"`
	DayOfWeek string  `json:"dayOfWeek"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Subject   *string `json:"subject"`
	WorkType  *string `json:"workType"`
}

// ScheduleEntry is a schedule slot with its holder and the holder's
// attendance for today, either of which may be nil.
type ScheduleEntry struct {
	entity.Schedule
	User       *entity.Summary    `json:"user"`
	Attendance *entity.Attendance `json:"attendance"`
}

// ScheduleForDay lists the slots of dayOfWeek, matched case-insensitively.
// An unknown day name yields an empty list.
func (s *Service) ScheduleForDay(ctx context.Context, dayOfWeek string) ([]ScheduleEntry, error) {
	if _, err := auth.RequireRole(ctx); err != nil {
		return nil, err
	}

	list := []ScheduleEntry{}
	day, ok := entity.NormalizeDay(dayOfWeek)
	if !ok {
		return list, nil
	}

	schedules, err := s.store.Schedules().ListByDay(ctx, day)
	if err != nil {
		return nil, errors.Wrap(err, "listing schedules")
	}

	today := s.today()
	for _, sc := range schedules {
		entry := ScheduleEntry{Schedule: sc}

		if entry.User, err = s.summary(ctx, sc.UserID); err != nil {
			return nil, err
		}

		a, err := s.store.Attendance().Get(ctx, sc.UserID, today)
		switch {
		case err == nil:
			entry.Attendance = &a
		case !errors.Is(err, repository.ErrNotFound):
			return nil, errors.Wrap(err, "loading attendance")
		}

		list = append(list, entry)
	}
	return list, nil
}

// UserSchedule lists the weekly slots of userID. Users read their own;
// head, admin and the supervising roles read anyone's.
func (s *Service) UserSchedule(ctx context.Context, userID string) ([]entity.Schedule, error) {
	claims, err := auth.RequireRole(ctx)
	if err != nil {
		return nil, err
	}
	if claims.UserID != userID && !claims.Authorized(entity.RoleHead, entity.RoleAdmin, entity.RoleMazer, entity.RoleAssistant) {
		return nil, web.NewRequestError(auth.ErrForbidden, http.StatusForbidden)
	}

	if _, err = s.store.Users().GetByID(ctx, userID); err != nil {
		return nil, storeErr(err, "user")
	}

	list, err := s.store.Schedules().ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "listing schedules")
	}
	if list == nil {
		list = []entity.Schedule{}
	}
	return list, nil
}

func (s *Service) CreateSchedule(ctx context.Context, req CreateScheduleRequest) (entity.Schedule, error) {
	if _, err := auth.RequireRole(ctx, entity.RoleAdmin); err != nil {
		return entity.Schedule{}, err
	}

	day, ok := entity.NormalizeDay(req.DayOfWeek)
	if !ok {
		return entity.Schedule{}, invalidf("invalid day of week %q", req.DayOfWeek)
	}
	start, err := time.Parse(clockLayout, req.StartTime)
	if err != nil {
		return entity.Schedule{}, invalidf("startTime must be HH:MM")
	}
	end, err := time.Parse(clockLayout, req.EndTime)
	if err != nil {
		return entity.Schedule{}, invalidf("endTime must be HH:MM")
	}
	if !start.Before(end) {
		return entity.Schedule{}, invalidf("startTime must be before endTime")
	}

	user, err := s.store.Users().GetByID(ctx, req.UserID)
	if err != nil {
		return entity.Schedule{}, storeErr(err, "user")
	}

	sc := entity.Schedule{
		UserID:    user.ID,
		DayOfWeek: day,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	switch user.Role {
	case entity.RoleTeacher:
		if blank(req.Subject) || req.WorkType != nil {
			return entity.Schedule{}, invalidf("teacher schedules take a subject only")
		}
		sc.Subject = trimmed(req.Subject)
	case entity.RoleStaff:
		if blank(req.WorkType) || req.Subject != nil {
			return entity.Schedule{}, invalidf("staff schedules take a workType only")
		}
		sc.WorkType = trimmed(req.WorkType)
	default:
		return entity.Schedule{}, invalidf("schedules are kept for teachers and staff only")
	}

	created, err := s.store.Schedules().Create(ctx, sc)
	if err != nil {
		return entity.Schedule{}, errors.Wrap(err, "creating schedule")
	}
	return created, nil
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

func trimmed(s *string) *string {
	v := strings.TrimSpace(*s)
	return &v
}
