package service

import (
	"context"
	"strings"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/pkg/errors"

	"university-backend/internal/auth"
	"university-backend/internal/entity"
)

type CreateLeaveRequest struct {
	LeaveType entity.LeaveType `json:"leaveType"`
	FromDate  string           `json:"fromDate"`
	ToDate    string           `json:"toDate"`
	Reason    string           `json:"reason"`
}

// LeaveRequestWithUser carries the requester only on the review queue.
type LeaveRequestWithUser struct {
	entity.LeaveRequest
	User *entity.Summary `json:"user,omitempty"`
}

// CreateLeaveRequest files a pending request for the caller.
func (s *Service) CreateLeaveRequest(ctx context.Context, req CreateLeaveRequest) (entity.LeaveRequest, error) {
	claims, err := auth.RequireRole(ctx)
	if err != nil {
		return entity.LeaveRequest{}, err
	}

	if !req.LeaveType.Valid() {
		return entity.LeaveRequest{}, invalidf("invalid leave type %q", req.LeaveType)
	}
	from, err := date.ParseDate(req.FromDate)
	if err != nil {
		return entity.LeaveRequest{}, invalidf("fromDate must be YYYY-MM-DD")
	}
	to, err := date.ParseDate(req.ToDate)
	if err != nil {
		return entity.LeaveRequest{}, invalidf("toDate must be YYYY-MM-DD")
	}
	if to.ToTime().Before(from.ToTime()) {
		return entity.LeaveRequest{}, invalidf("fromDate must not be after toDate")
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return entity.LeaveRequest{}, invalidf("reason is required")
	}

	created, err := s.store.LeaveRequests().Create(ctx, entity.LeaveRequest{
		UserID:    claims.UserID,
		LeaveType: req.LeaveType,
		FromDate:  req.FromDate,
		ToDate:    req.ToDate,
		Reason:    reason,
		Status:    entity.LeavePending,
		CreatedAt: s.now(),
	})
	if err != nil {
		return entity.LeaveRequest{}, errors.Wrap(err, "creating leave request")
	}
	return created, nil
}

// ListLeaveRequests gives head and admin the pending queue, oldest first,
// with requesters attached. Everyone else gets their own requests of any
// status, newest first.
func (s *Service) ListLeaveRequests(ctx context.Context) ([]LeaveRequestWithUser, error) {
	claims, err := auth.RequireRole(ctx)
	if err != nil {
		return nil, err
	}

	reviewer := claims.Authorized(entity.RoleHead, entity.RoleAdmin)

	var requests []entity.LeaveRequest
	if reviewer {
		requests, err = s.store.LeaveRequests().ListPending(ctx)
	} else {
		requests, err = s.store.LeaveRequests().ListByUser(ctx, claims.UserID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "listing leave requests")
	}

	list := make([]LeaveRequestWithUser, 0, len(requests))
	for _, r := range requests {
		item := LeaveRequestWithUser{LeaveRequest: r}
		if reviewer {
			if item.User, err = s.summary(ctx, r.UserID); err != nil {
				return nil, err
			}
		}
		list = append(list, item)
	}
	return list, nil
}

// RespondToLeaveRequest records the head's decision. Only pending requests
// can be decided.
func (s *Service) RespondToLeaveRequest(ctx context.Context, id int, status entity.LeaveStatus) (entity.LeaveRequest, error) {
	claims, err := auth.RequireRole(ctx, entity.RoleHead)
	if err != nil {
		return entity.LeaveRequest{}, err
	}
	if !status.IsResponse() {
		return entity.LeaveRequest{}, invalidf("status must be approved or rejected")
	}

	updated, err := s.store.LeaveRequests().Respond(ctx, id, status, claims.UserID, s.now())
	if err != nil {
		return entity.LeaveRequest{}, storeErr(err, "leave request")
	}
	return updated, nil
}
