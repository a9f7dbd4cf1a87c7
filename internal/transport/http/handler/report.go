package handler

import (
	"net/http"
	"time"

	"github.com/yourhostel/stat-syncer/internal/service"
	"github.com/yourhostel/stat-syncer/internal/transport/http/response"
	"github.com/yourhostel/stat-syncer/pkg/apierror"
)

// ReportHandler handles sales-and-traffic statistic requests.
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler.
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// FindByDateRange handles GET /api/statistic/date?start=YYYY-MM-DD&end=YYYY-MM-DD
// Returns date entries within the inclusive range, newest first.
func (h *ReportHandler) FindByDateRange(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	if start == "" || end == "" {
		response.Error(w, apierror.BadRequest("start and end query parameters are required"))
		return
	}
	if _, err := time.Parse("2006-01-02", start); err != nil {
		response.Error(w, apierror.BadRequest("start must be a YYYY-MM-DD date"))
		return
	}
	if _, err := time.Parse("2006-01-02", end); err != nil {
		response.Error(w, apierror.BadRequest("end must be a YYYY-MM-DD date"))
		return
	}

	result, err := h.reportService.FindByDateRange(r.Context(), start, end)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Raw(w, http.StatusOK, result)
}

// FindByAsins handles GET /api/statistic/asin?asin=A1&asin=A2
// Returns one entry per requested ASIN found.
func (h *ReportHandler) FindByAsins(w http.ResponseWriter, r *http.Request) {
	asins := r.URL.Query()["asin"]
	if len(asins) == 0 {
		response.Error(w, apierror.BadRequest("at least one asin query parameter is required"))
		return
	}

	result, err := h.reportService.FindByAsins(r.Context(), asins)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Raw(w, http.StatusOK, result)
}

// UnitsAndSalesTotal handles GET /api/statistic/total/units
func (h *ReportHandler) UnitsAndSalesTotal(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.UnitsAndSalesTotal(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Raw(w, http.StatusOK, result)
}

// TotalsByDate handles GET /api/statistic/total/date
func (h *ReportHandler) TotalsByDate(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.TotalsByDate(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Raw(w, http.StatusOK, result)
}

// TotalsByAsin handles GET /api/statistic/total/asin
func (h *ReportHandler) TotalsByAsin(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.TotalsByAsin(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Raw(w, http.StatusOK, result)
}
