package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	reportapp "github.com/shelterhq/backend/internal/application/report"
)

// ReportHandler handles reporting and metrics API endpoints
type ReportHandler struct {
	BaseHandler
	metricsService *reportapp.MetricsService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(metricsService *reportapp.MetricsService) *ReportHandler {
	return &ReportHandler{
		metricsService: metricsService,
	}
}

// Dashboard returns the headline counts for the dashboard
func (h *ReportHandler) Dashboard(c *gin.Context) {
	orgID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	dashboard, err := h.metricsService.Dashboard(c.Request.Context(), orgID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, dashboard)
}

// SpeciesDistribution returns in-care animal counts bucketed by species
func (h *ReportHandler) SpeciesDistribution(c *gin.Context) {
	orgID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	distribution, err := h.metricsService.SpeciesDistribution(c.Request.Context(), orgID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, distribution)
}

// IntakeTrend returns intake counts bucketed by calendar month
func (h *ReportHandler) IntakeTrend(c *gin.Context) {
	orgID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	from, to, err := parseWindow(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	trend, err := h.metricsService.IntakeTrend(c.Request.Context(), orgID, from, to)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, trend)
}

// PipelineStages returns application counts bucketed by pipeline stage
func (h *ReportHandler) PipelineStages(c *gin.Context) {
	orgID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	stages, err := h.metricsService.PipelineStages(c.Request.Context(), orgID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, stages)
}

// LiveReleaseRate returns the live release rate for a reporting window
func (h *ReportHandler) LiveReleaseRate(c *gin.Context) {
	orgID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	from, to, err := parseWindow(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rate, err := h.metricsService.LiveReleaseRate(c.Request.Context(), orgID, from, to)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, rate)
}

// ComplianceRate returns the medical compliance rate for a reporting window
func (h *ReportHandler) ComplianceRate(c *gin.Context) {
	orgID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	from, to, err := parseWindow(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rate, err := h.metricsService.ComplianceRate(c.Request.Context(), orgID, from, to)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, rate)
}

// parseWindow reads the from/to query parameters. The window defaults to
// the trailing twelve months.
func parseWindow(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from := now.AddDate(-1, 0, 0)
	to := now

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = parsed
	}

	return from, to, nil
}
