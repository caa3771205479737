package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/cmlabs-hris/attendance-kiosk/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-kiosk/internal/domain/report"
	"github.com/cmlabs-hris/attendance-kiosk/internal/handler/http/response"
)

type ReportHandler interface {
	// Export writes the filtered ledger to a spreadsheet
	Export(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// Export handles POST /records/export. Filters are read from the JSON body
// when one is sent, otherwise from the query string.
func (h *reportHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	filter := recordFilterFromQuery(r)

	var body attendance.RecordFilter
	err := json.NewDecoder(r.Body).Decode(&body)
	switch {
	case err == nil:
		filter = body
	case errors.Is(err, io.EOF):
	default:
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.reportService.ExportRecords(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Export completed", result)
}
