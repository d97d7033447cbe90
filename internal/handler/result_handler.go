package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/DSEENAIAH/campus-preparation-backend/internal/response"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/service"
)

// ResultHandler handles admin-facing result views and report downloads.
type ResultHandler struct {
	resultService *service.ResultService
	exportService *service.ExportService
}

// NewResultHandler creates a new ResultHandler.
func NewResultHandler(resultService *service.ResultService, exportService *service.ExportService) *ResultHandler {
	return &ResultHandler{
		resultService: resultService,
		exportService: exportService,
	}
}

// ListResults godoc
// GET /api/v1/admin/results
// Lists submissions with computed breakdowns, newest first. Optional filters:
// test_id, student_id.
func (h *ResultHandler) ListResults(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	var testID *string
	if t := c.Query("test_id"); t != "" {
		testID = &t
	}

	var studentID *int
	if s := c.Query("student_id"); s != "" {
		sid, err := strconv.Atoi(s)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return
		}
		studentID = &sid
	}

	rows, pagination, err := h.resultService.List(c.Request.Context(), testID, studentID, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"results": rows}, pagination)
}

// GetResult godoc
// GET /api/v1/admin/results/:id
// Returns one submission with its computed breakdown.
func (h *ResultHandler) GetResult(c *gin.Context) {
	row, err := h.resultService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"result": row})
}

// DeleteResult godoc
// DELETE /api/v1/admin/results/:id
// Deletes a submission record.
func (h *ResultHandler) DeleteResult(c *gin.Context) {
	if err := h.resultService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// ExportCSV godoc
// GET /api/v1/admin/results/export/csv
// Streams all results as a CSV attachment. Optional filter: test_id.
func (h *ResultHandler) ExportCSV(c *gin.Context) {
	var testID *string
	if t := c.Query("test_id"); t != "" {
		testID = &t
	}

	filename := fmt.Sprintf("results_%s.csv", time.Now().UTC().Format("20060102_150405"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.exportService.WriteCSV(c.Request.Context(), c.Writer, testID); err != nil {
		// Headers are already out; the client sees a truncated download.
		c.Status(http.StatusInternalServerError)
	}
}

// ExportXLSX godoc
// GET /api/v1/admin/results/export/xlsx
// Streams all results as a spreadsheet attachment. Optional filter: test_id.
func (h *ResultHandler) ExportXLSX(c *gin.Context) {
	var testID *string
	if t := c.Query("test_id"); t != "" {
		testID = &t
	}

	filename := fmt.Sprintf("results_%s.xlsx", time.Now().UTC().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.exportService.WriteXLSX(c.Request.Context(), c.Writer, testID); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}
