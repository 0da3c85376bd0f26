package dashboard

import (
	"context"

	"university-backend/internal/service"
)

type Dashboard interface {
	DashboardStats(ctx context.Context) (service.DashboardStats, error)
}
