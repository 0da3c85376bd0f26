// Package postgres composes the bun-backed repositories into a Record Store.
package postgres

import (
	"context"

	"university-backend/internal/pkg/repository/postgresql"
	"university-backend/internal/repository"
	"university-backend/internal/repository/postgres/attendance"
	"university-backend/internal/repository/postgres/leave"
	"university-backend/internal/repository/postgres/schedule"
	"university-backend/internal/repository/postgres/user"
)

type Store struct {
	db         *postgresql.Database
	users      *user.Repository
	attendance *attendance.Repository
	leaves     *leave.Repository
	schedules  *schedule.Repository
}

func NewStore(db *postgresql.Database) *Store {
	return &Store{
		db:         db,
		users:      user.NewRepository(db),
		attendance: attendance.NewRepository(db),
		leaves:     leave.NewRepository(db),
		schedules:  schedule.NewRepository(db),
	}
}

func (s *Store) Users() repository.Users                 { return s.users }
func (s *Store) Attendance() repository.Attendance       { return s.attendance }
func (s *Store) LeaveRequests() repository.LeaveRequests { return s.leaves }
func (s *Store) Schedules() repository.Schedules         { return s.schedules }

func (s *Store) Ping(ctx context.Context) error { return s.db.Ping(ctx) }
func (s *Store) Close() error                   { return s.db.Close() }
