package leave

import (
	"context"

	"university-backend/internal/entity"
	"university-backend/internal/service"
)

type Leave interface {
	CreateLeaveRequest(ctx context.Context, request service.CreateLeaveRequest) (entity.LeaveRequest, error)
	ListLeaveRequests(ctx context.Context) ([]service.LeaveRequestWithUser, error)
	RespondToLeaveRequest(ctx context.Context, id int, status entity.LeaveStatus) (entity.LeaveRequest, error)
}
