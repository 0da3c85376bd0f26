package entity

import "testing"

func TestRoleSupervises(t *testing.T) {
	cases := []struct {
		marker Role
		target Role
		want   bool
	}{
		{RoleMazer, RoleTeacher, true},
		{RoleMazer, RoleStaff, false},
		{RoleAssistant, RoleStaff, true},
		{RoleAssistant, RoleTeacher, false},
		{RoleHead, RoleTeacher, false},
		{RoleAdmin, RoleStaff, false},
		{RoleMazer, RoleMazer, false},
	}

	for _, tt := range cases {
		if got := tt.marker.Supervises(tt.target); got != tt.want {
			t.Fatalf("%s.Supervises(%s)=%v, want %v", tt.marker, tt.target, got, tt.want)
		}
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to LeaveStatus
		valid    bool
	}{
		{LeavePending, LeaveApproved, true},
		{LeavePending, LeaveRejected, true},
		{LeaveApproved, LeaveRejected, false},
		{LeaveRejected, LeaveApproved, false},
		{LeaveApproved, LeaveApproved, false},
		{LeavePending, LeavePending, false},
	}

	for _, tt := range cases {
		if got := CanTransition(tt.from, tt.to); got != tt.valid {
			t.Fatalf("CanTransition(%q, %q)=%v, want %v", tt.from, tt.to, got, tt.valid)
		}
	}
}

func TestNormalizeDay(t *testing.T) {
	if d, ok := NormalizeDay(" Monday "); !ok || d != "monday" {
		t.Fatalf("NormalizeDay(Monday)=%q,%v", d, ok)
	}
	if _, ok := NormalizeDay("someday"); ok {
		t.Fatalf("expected someday to be rejected")
	}
}

func TestUserPatchApply(t *testing.T) {
	name := "Mr. Chan Jr."
	active := false
	u := User{ID: "T001", Name: "Mr. Chan", Role: RoleTeacher, IsActive: true}

	got := UserPatch{Name: &name, IsActive: &active}.Apply(u)
	if got.ID != "T001" || got.Name != name || got.IsActive || got.Role != RoleTeacher {
		t.Fatalf("unexpected patched user: %+v", got)
	}
}
