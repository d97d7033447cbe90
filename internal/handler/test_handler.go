package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/DSEENAIAH/campus-preparation-backend/internal/model"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/repository"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/response"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/service"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/validator"
)

// TestHandler handles admin-facing test definition management.
type TestHandler struct {
	testService *service.TestService
}

// NewTestHandler creates a new TestHandler.
func NewTestHandler(testService *service.TestService) *TestHandler {
	return &TestHandler{testService: testService}
}

// ListTests godoc
// GET /api/v1/admin/tests
// Lists all test definitions.
func (h *TestHandler) ListTests(c *gin.Context) {
	defs, err := h.testService.AllDefinitions(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tests": defs})
}

// GetTest godoc
// GET /api/v1/admin/tests/:id
// Returns one test definition.
func (h *TestHandler) GetTest(c *gin.Context) {
	def, err := h.testService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"test": def})
}

// CreateTest godoc
// POST /api/v1/admin/tests
// Creates a new test definition.
func (h *TestHandler) CreateTest(c *gin.Context) {
	var req model.CreateTestRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	def := &model.TestDefinition{
		Title:      req.Title,
		TotalMarks: req.TotalMarks,
		Modules:    req.Modules,
	}

	if err := h.testService.Create(c.Request.Context(), def); err != nil {
		if errors.Is(err, repository.ErrDuplicateTestTitle) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"test": def})
}

// UpdateTest godoc
// PUT /api/v1/admin/tests/:id
// Updates an existing test definition. Absent fields keep their stored values.
func (h *TestHandler) UpdateTest(c *gin.Context) {
	var req model.UpdateTestRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	def, err := h.testService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if req.Title != "" {
		def.Title = req.Title
	}
	if req.TotalMarks != nil {
		def.TotalMarks = *req.TotalMarks
	}
	if req.Modules != nil {
		def.Modules = req.Modules
	}

	if err := h.testService.Update(c.Request.Context(), def); err != nil {
		if errors.Is(err, repository.ErrDuplicateTestTitle) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"test": def})
}

// DeleteTest godoc
// DELETE /api/v1/admin/tests/:id
// Deletes a test definition. Stored submissions referencing it remain and
// fall back to title matching or unit-less scoring.
func (h *TestHandler) DeleteTest(c *gin.Context) {
	if err := h.testService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}
