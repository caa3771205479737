package dashboard

import (
	"context"
	"time"
)

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetDailyStats returns attendance statistics for the local day containing now.
	// The day boundaries follow now's location.
	GetDailyStats(ctx context.Context, now time.Time) (DailyStats, error)
}
