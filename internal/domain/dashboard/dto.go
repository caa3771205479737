package dashboard

import (
	"time"

	"github.com/cmlabs-hris/attendance-kiosk/internal/domain/attendance"
)

// ========== DAILY STATS ==========

// DailyStats summarizes the attendance records of one local calendar day.
// It is derived on every request and never stored.
type DailyStats struct {
	Date                   time.Time
	TotalEntries           int64
	TotalExits             int64
	UniqueEmployeesPresent int64
	ActiveEmployees        int64
	LastActivity           *attendance.Record
}

// DailyStatsResponse is the wire shape of DailyStats
type DailyStatsResponse struct {
	Date                   string                     `json:"date"` // Format: "YYYY-MM-DD"
	TotalEntries           int64                      `json:"total_entries"`
	TotalExits             int64                      `json:"total_exits"`
	UniqueEmployeesPresent int64                      `json:"unique_employees_present"` // distinct employee ids seen today
	ActiveEmployees        int64                      `json:"active_employees"`
	LastActivity           *attendance.RecordResponse `json:"last_activity"`
}

func NewDailyStatsResponse(s DailyStats) DailyStatsResponse {
	resp := DailyStatsResponse{
		Date:                   s.Date.Format("2006-01-02"),
		TotalEntries:           s.TotalEntries,
		TotalExits:             s.TotalExits,
		UniqueEmployeesPresent: s.UniqueEmployeesPresent,
		ActiveEmployees:        s.ActiveEmployees,
	}
	if s.LastActivity != nil {
		last := attendance.NewRecordResponse(*s.LastActivity, s.Date.Location())
		resp.LastActivity = &last
	}
	return resp
}
