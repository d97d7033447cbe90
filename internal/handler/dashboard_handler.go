package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/DSEENAIAH/campus-preparation-backend/internal/response"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/service"
)

// DashboardHandler handles the admin dashboard endpoints.
type DashboardHandler struct {
	dashboardService *service.DashboardService
	progressService  *service.ProgressService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(
	dashboardService *service.DashboardService,
	progressService *service.ProgressService,
) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		progressService:  progressService,
	}
}

// GetSummary godoc
// GET /api/v1/admin/dashboard
// Returns headline counts, grade distribution, and submission activity.
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	summary, err := h.dashboardService.GetSummary(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"summary": summary})
}

// ListProgress godoc
// GET /api/v1/admin/progress
// Lists in-flight test sessions for the monitoring view.
func (h *DashboardHandler) ListProgress(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	items, pagination, err := h.progressService.List(c.Request.Context(), page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"progress": items}, pagination)
}
