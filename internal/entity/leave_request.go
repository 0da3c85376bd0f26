package entity

import (
	"time"

	"github.com/uptrace/bun"
)

type LeaveType string

const (
	LeaveSick      LeaveType = "sick"
	LeaveAnnual    LeaveType = "annual"
	LeavePersonal  LeaveType = "personal"
	LeaveEmergency LeaveType = "emergency"
)

func (t LeaveType) Valid() bool {
	switch t {
	case LeaveSick, LeaveAnnual, LeavePersonal, LeaveEmergency:
		return true
	}
	return false
}

type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

// leaveTransitions lists, per target status, the statuses it may be reached from.
var leaveTransitions = map[LeaveStatus][]LeaveStatus{
	LeaveApproved: {LeavePending},
	LeaveRejected: {LeavePending},
}

// IsResponse reports whether s is a decision a head may record.
func (s LeaveStatus) IsResponse() bool {
	_, ok := leaveTransitions[s]
	return ok
}

// CanTransition reports whether a request in status from may move to to.
func CanTransition(from, to LeaveStatus) bool {
	for _, s := range leaveTransitions[to] {
		if s == from {
			return true
		}
	}
	return false
}

type LeaveRequest struct {
	bun.BaseModel `bun:"table:leave_requests"`

	ID          int         `json:"id"          bun:"id,pk,autoincrement"`
	UserID      string      `json:"userId"      bun:"user_id"`
	LeaveType   LeaveType   `json:"leaveType"   bun:"leave_type"`
	FromDate    string      `json:"fromDate"    bun:"from_date"`
	ToDate      string      `json:"toDate"      bun:"to_date"`
	Reason      string      `json:"reason"      bun:"reason"`
	Status      LeaveStatus `json:"status"      bun:"status"`
	ApprovedBy  *string     `json:"approvedBy"  bun:"approved_by"`
	CreatedAt   time.Time   `json:"createdAt"   bun:"created_at"`
	RespondedAt *time.Time  `json:"respondedAt" bun:"responded_at"`
}
