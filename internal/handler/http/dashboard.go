package http

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/attendance-kiosk/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-kiosk/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetDailyStats returns today's attendance summary
	GetDailyStats(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
	loc              *time.Location
	now              func() time.Time
}

func NewDashboardHandler(dashboardService dashboard.DashboardService, loc *time.Location) DashboardHandler {
	return &dashboardHandlerImpl{
		dashboardService: dashboardService,
		loc:              loc,
		now:              time.Now,
	}
}

// GetDailyStats handles GET /stats/daily
func (h *dashboardHandlerImpl) GetDailyStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetDailyStats(r.Context(), h.now().In(h.loc))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, dashboard.NewDailyStatsResponse(result))
}
