package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-kiosk/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-kiosk/internal/pkg/sse"
)

// EventHub is the part of the live feed the jobs need.
type EventHub interface {
	Publish(topic string, name string, data interface{})
	SubscriberCount(topic string) int
}

// TokenPruner drops expired entries from the revocation list.
type TokenPruner interface {
	PruneRevoked() int
}

// PruneRevokedTokens returns a job that keeps the logout list bounded when
// no new logouts arrive to trigger pruning.
func PruneRevokedTokens(tokens TokenPruner) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if n := tokens.PruneRevoked(); n > 0 {
			slog.Info("Pruned revoked tokens", "count", n)
		}
		return nil
	}
}

// BroadcastDailyStats returns a job that pushes today's summary to open
// admin panels as a "stats.daily" event. It does nothing while no panel is
// connected.
func BroadcastDailyStats(stats dashboard.DashboardService, hub EventHub, loc *time.Location, now func() time.Time) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if hub.SubscriberCount(sse.TopicAdmin) == 0 {
			return nil
		}

		daily, err := stats.GetDailyStats(ctx, now().In(loc))
		if err != nil {
			return fmt.Errorf("failed to compute daily stats: %w", err)
		}
		hub.Publish(sse.TopicAdmin, "stats.daily", dashboard.NewDailyStatsResponse(daily))
		return nil
	}
}
