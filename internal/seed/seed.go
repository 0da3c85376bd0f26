// Package seed loads the demo data set into an empty Record Store.
package seed

import (
	"context"
	_ "embed"
	"log"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"university-backend/internal/entity"
	"university-backend/internal/repository"
	"university-backend/internal/service"
)

//go:embed seed.yaml
var Default []byte

type Data struct {
	Password string `yaml:"password"`
	Users    []struct {
		ID         string      `yaml:"id"`
		Name       string      `yaml:"name"`
		Email      string      `yaml:"email"`
		Role       entity.Role `yaml:"role"`
		Department string      `yaml:"department"`
	} `yaml:"users"`
	Schedules []struct {
		UserID    string `yaml:"userId"`
		DayOfWeek string `yaml:"dayOfWeek"`
		StartTime string `yaml:"startTime"`
		EndTime   string `yaml:"endTime"`
		Subject   string `yaml:"subject"`
		WorkType  string `yaml:"workType"`
	} `yaml:"schedules"`
	Attendance []struct {
		UserID   string                  `yaml:"userId"`
		Date     string                  `yaml:"date"`
		Status   entity.AttendanceStatus `yaml:"status"`
		TimeIn   string                  `yaml:"timeIn"`
		MarkedBy string                  `yaml:"markedBy"`
	} `yaml:"attendance"`
	LeaveRequests []struct {
		UserID    string           `yaml:"userId"`
		LeaveType entity.LeaveType `yaml:"leaveType"`
		FromDate  string           `yaml:"fromDate"`
		ToDate    string           `yaml:"toDate"`
		Reason    string           `yaml:"reason"`
	} `yaml:"leaveRequests"`
}

func Parse(b []byte) (Data, error) {
	var d Data
	if err := yaml.Unmarshal(b, &d); err != nil {
		return Data{}, errors.Wrap(err, "parsing seed data")
	}
	for _, u := range d.Users {
		if !u.Role.Valid() {
			return Data{}, errors.Errorf("seed user %s: invalid role %q", u.ID, u.Role)
		}
	}
	return d, nil
}

// Load writes d into store unless it already holds users. It reports
// whether anything was written.
func Load(ctx context.Context, store repository.Store, d Data, now time.Time) (bool, error) {
	existing, err := store.Users().List(ctx)
	if err != nil {
		return false, errors.Wrap(err, "checking users")
	}
	if len(existing) > 0 {
		return false, nil
	}

	hash, err := service.HashPassword(d.Password)
	if err != nil {
		return false, err
	}

	for _, u := range d.Users {
		user := entity.User{
			ID:       u.ID,
			Name:     u.Name,
			Email:    u.Email,
			Password: hash,
			Role:     u.Role,
			IsActive: true,
		}
		user.Department = optional(u.Department)
		if _, err = store.Users().Create(ctx, user); err != nil {
			return false, errors.Wrapf(err, "seeding user %s", u.ID)
		}
	}

	for _, s := range d.Schedules {
		day, _ := entity.NormalizeDay(s.DayOfWeek)
		sc := entity.Schedule{
			UserID:    s.UserID,
			DayOfWeek: day,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Subject:   optional(s.Subject),
			WorkType:  optional(s.WorkType),
		}
		if _, err = store.Schedules().Create(ctx, sc); err != nil {
			return false, errors.Wrap(err, "seeding schedule")
		}
	}

	today := now.UTC().Format("2006-01-02")
	for _, a := range d.Attendance {
		record := entity.Attendance{
			UserID:   a.UserID,
			Date:     a.Date,
			Status:   a.Status,
			TimeIn:   optional(a.TimeIn),
			MarkedBy: a.MarkedBy,
			MarkedAt: now,
		}
		if record.Date == "" {
			record.Date = today
		}
		if _, err = store.Attendance().Upsert(ctx, record); err != nil {
			return false, errors.Wrap(err, "seeding attendance")
		}
	}

	for i, l := range d.LeaveRequests {
		req := entity.LeaveRequest{
			UserID:    l.UserID,
			LeaveType: l.LeaveType,
			FromDate:  l.FromDate,
			ToDate:    l.ToDate,
			Reason:    l.Reason,
			Status:    entity.LeavePending,
			CreatedAt: now.Add(-time.Duration(len(d.LeaveRequests)-i) * time.Minute),
		}
		if _, err = store.LeaveRequests().Create(ctx, req); err != nil {
			return false, errors.Wrap(err, "seeding leave request")
		}
	}

	log.Printf("seed: loaded %d users, %d schedules, %d attendance, %d leave requests",
		len(d.Users), len(d.Schedules), len(d.Attendance), len(d.LeaveRequests))
	return true, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
