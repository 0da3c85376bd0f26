package seed

import (
	"context"
	"testing"
	"time"

	"university-backend/internal/entity"
	"university-backend/internal/repository/memory"
)

func TestLoadDefault(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 11, 25, 9, 0, 0, 0, time.UTC)

	d, err := Parse(Default)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(d.Users) != 13 || len(d.Schedules) != 9 || len(d.LeaveRequests) != 2 {
		t.Fatalf("unexpected seed sizes: %d users, %d schedules, %d leaves", len(d.Users), len(d.Schedules), len(d.LeaveRequests))
	}

	store := memory.NewStore()
	loaded, err := Load(ctx, store, d, now)
	if err != nil || !loaded {
		t.Fatalf("load: %v %v", loaded, err)
	}

	a, err := store.Attendance().Get(ctx, "T001", "2024-11-25")
	if err != nil || a.Status != entity.AttendancePresent || *a.TimeIn != "07:45" {
		t.Fatalf("seeded attendance: %+v %v", a, err)
	}

	monday, _ := store.Schedules().ListByDay(ctx, "monday")
	if len(monday) != 9 {
		t.Fatalf("want 9 monday schedules, got %d", len(monday))
	}

	pending, _ := store.LeaveRequests().ListPending(ctx)
	if len(pending) != 2 || pending[0].UserID != "T003" {
		t.Fatalf("unexpected pending: %+v", pending)
	}

	again, err := Load(ctx, store, d, now)
	if err != nil || again {
		t.Fatalf("second load must be a no-op: %v %v", again, err)
	}
}

func TestParseRejectsUnknownRole(t *testing.T) {
	_, err := Parse([]byte("users:\n  - {id: X1, name: X, email: x@x.io, role: janitor}\n"))
	if err == nil {
		t.Fatal("want error for unknown role")
	}
}
