// Package repository defines the Record Store the service layer runs on.
// Implementations live in memory/ and postgres/.
package repository

import (
	"context"
	"errors"
	"time"

	"university-backend/internal/entity"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicate         = errors.New("already exists")
	ErrInvalidTransition = errors.New("invalid state transition")
)

type Users interface {
	GetByID(ctx context.Context, id string) (entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
	Create(ctx context.Context, user entity.User) (entity.User, error)
	// Patch applies the non-nil fields of patch to the stored user as one
	// atomic step.
	Patch(ctx context.Context, id string, patch entity.UserPatch) (entity.User, error)
	Delete(ctx context.Context, id string) error
}

type Attendance interface {
	Get(ctx context.Context, userID, date string) (entity.Attendance, error)
	// History returns up to limit records of userID, newest date first.
	History(ctx context.Context, userID string, limit int) ([]entity.Attendance, error)
	ListByDate(ctx context.Context, date string) ([]entity.Attendance, error)
	// Upsert writes the record keyed by (UserID, Date), replacing any earlier
	// record for that key. The stored id is kept on overwrite.
	Upsert(ctx context.Context, attendance entity.Attendance) (entity.Attendance, error)
}

type LeaveRequests interface {
	Create(ctx context.Context, request entity.LeaveRequest) (entity.LeaveRequest, error)
	GetByID(ctx context.Context, id int) (entity.LeaveRequest, error)
	// ListByUser returns every request of userID, newest first.
	ListByUser(ctx context.Context, userID string) ([]entity.LeaveRequest, error)
	// ListPending returns pending requests, oldest first.
	ListPending(ctx context.Context) ([]entity.LeaveRequest, error)
	// Respond moves a pending request to status. It returns ErrNotFound for an
	// unknown id and ErrInvalidTransition when the request is no longer pending.
	Respond(ctx context.Context, id int, status entity.LeaveStatus, responderID string, at time.Time) (entity.LeaveRequest, error)
}

type Schedules interface {
	Create(ctx context.Context, schedule entity.Schedule) (entity.Schedule, error)
	ListByDay(ctx context.Context, dayOfWeek string) ([]entity.Schedule, error)
	ListByUser(ctx context.Context, userID string) ([]entity.Schedule, error)
}

// Store groups the per-entity repositories behind one lifecycle owner.
type Store interface {
	Users() Users
	Attendance() Attendance
	LeaveRequests() LeaveRequests
	Schedules() Schedules
	Ping(ctx context.Context) error
	Close() error
}
