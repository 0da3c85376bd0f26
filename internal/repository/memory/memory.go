// Package memory is an in-process Record Store. One RWMutex guards every map,
// so each read-modify-write (attendance upsert, id assignment, leave
// check-and-set) is atomic.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"university-backend/internal/entity"
	"university-backend/internal/repository"
)

type Store struct {
	mu sync.RWMutex

	users      map[string]entity.User
	attendance map[attendanceKey]entity.Attendance
	leaves     map[int]entity.LeaveRequest
	schedules  map[int]entity.Schedule

	nextAttendanceID int
	nextLeaveID      int
	nextScheduleID   int
}

type attendanceKey struct {
	userID string
	date   string
}

func NewStore() *Store {
	return &Store{
		users:            make(map[string]entity.User),
		attendance:       make(map[attendanceKey]entity.Attendance),
		leaves:           make(map[int]entity.LeaveRequest),
		schedules:        make(map[int]entity.Schedule),
		nextAttendanceID: 1,
		nextLeaveID:      1,
		nextScheduleID:   1,
	}
}

func (s *Store) Users() repository.Users                 { return users{s} }
func (s *Store) Attendance() repository.Attendance       { return attendance{s} }
func (s *Store) LeaveRequests() repository.LeaveRequests { return leaves{s} }
func (s *Store) Schedules() repository.Schedules         { return schedules{s} }

func (s *Store) Ping(context.Context) error { return nil }
func (s *Store) Close() error               { return nil }

// users

type users struct{ s *Store }

func (r users) GetByID(_ context.Context, id string) (entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return entity.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (r users) List(context.Context) ([]entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	list := make([]entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		list = append(list, u)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r users) Create(_ context.Context, user entity.User) (entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[user.ID]; ok {
		return entity.User{}, repository.ErrDuplicate
	}
	r.s.users[user.ID] = user
	return user, nil
}

func (r users) Patch(_ context.Context, id string, patch entity.UserPatch) (entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user, ok := r.s.users[id]
	if !ok {
		return entity.User{}, repository.ErrNotFound
	}
	user = patch.Apply(user)
	r.s.users[id] = user
	return user, nil
}

func (r users) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.users, id)
	return nil
}

// attendance

type attendance struct{ s *Store }

func (r attendance) Get(_ context.Context, userID, date string) (entity.Attendance, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.attendance[attendanceKey{userID, date}]
	if !ok {
		return entity.Attendance{}, repository.ErrNotFound
	}
	return a, nil
}

func (r attendance) History(_ context.Context, userID string, limit int) ([]entity.Attendance, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var list []entity.Attendance
	for k, a := range r.s.attendance {
		if k.userID == userID {
			list = append(list, a)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Date != list[j].Date {
			return list[i].Date > list[j].Date
		}
		return list[i].ID > list[j].ID
	})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (r attendance) ListByDate(_ context.Context, date string) ([]entity.Attendance, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var list []entity.Attendance
	for k, a := range r.s.attendance {
		if k.date == date {
			list = append(list, a)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r attendance) Upsert(_ context.Context, a entity.Attendance) (entity.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := attendanceKey{a.UserID, a.Date}
	if prev, ok := r.s.attendance[key]; ok {
		a.ID = prev.ID
	} else {
		a.ID = r.s.nextAttendanceID
		r.s.nextAttendanceID++
	}
	r.s.attendance[key] = a
	return a, nil
}

// leave requests

type leaves struct{ s *Store }

func (r leaves) Create(_ context.Context, req entity.LeaveRequest) (entity.LeaveRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	req.ID = r.s.nextLeaveID
	r.s.nextLeaveID++
	r.s.leaves[req.ID] = req
	return req, nil
}

func (r leaves) GetByID(_ context.Context, id int) (entity.LeaveRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	req, ok := r.s.leaves[id]
	if !ok {
		return entity.LeaveRequest{}, repository.ErrNotFound
	}
	return req, nil
}

func (r leaves) ListByUser(_ context.Context, userID string) ([]entity.LeaveRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var list []entity.LeaveRequest
	for _, req := range r.s.leaves {
		if req.UserID == userID {
			list = append(list, req)
		}
	}
	sort.Slice(list, func(i, j int) bool { return newer(list[i], list[j]) })
	return list, nil
}

func (r leaves) ListPending(context.Context) ([]entity.LeaveRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var list []entity.LeaveRequest
	for _, req := range r.s.leaves {
		if req.Status == entity.LeavePending {
			list = append(list, req)
		}
	}
	sort.Slice(list, func(i, j int) bool { return newer(list[j], list[i]) })
	return list, nil
}

func (r leaves) Respond(_ context.Context, id int, status entity.LeaveStatus, responderID string, at time.Time) (entity.LeaveRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	req, ok := r.s.leaves[id]
	if !ok {
		return entity.LeaveRequest{}, repository.ErrNotFound
	}
	if !entity.CanTransition(req.Status, status) {
		return req, repository.ErrInvalidTransition
	}

	req.Status = status
	req.ApprovedBy = &responderID
	req.RespondedAt = &at
	r.s.leaves[id] = req
	return req, nil
}

func newer(a, b entity.LeaveRequest) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

// schedules

type schedules struct{ s *Store }

func (r schedules) Create(_ context.Context, sc entity.Schedule) (entity.Schedule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sc.ID = r.s.nextScheduleID
	r.s.nextScheduleID++
	r.s.schedules[sc.ID] = sc
	return sc, nil
}

func (r schedules) ListByDay(_ context.Context, day string) ([]entity.Schedule, error) {
	return r.filter(func(sc entity.Schedule) bool { return sc.DayOfWeek == day }), nil
}

func (r schedules) ListByUser(_ context.Context, userID string) ([]entity.Schedule, error) {
	return r.filter(func(sc entity.Schedule) bool { return sc.UserID == userID }), nil
}

func (r schedules) filter(keep func(entity.Schedule) bool) []entity.Schedule {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var list []entity.Schedule
	for _, sc := range r.s.schedules {
		if keep(sc) {
			list = append(list, sc)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}
