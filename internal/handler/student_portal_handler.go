package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/DSEENAIAH/campus-preparation-backend/internal/middleware"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/model"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/response"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/service"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/validator"
)

// StudentPortalHandler handles the student-facing assessment endpoints:
// listing available tests, saving progress, and submitting results.
type StudentPortalHandler struct {
	testService     *service.TestService
	resultService   *service.ResultService
	progressService *service.ProgressService
}

// NewStudentPortalHandler creates a new StudentPortalHandler.
func NewStudentPortalHandler(
	testService *service.TestService,
	resultService *service.ResultService,
	progressService *service.ProgressService,
) *StudentPortalHandler {
	return &StudentPortalHandler{
		testService:     testService,
		resultService:   resultService,
		progressService: progressService,
	}
}

// ListTests godoc
// GET /api/v1/student/tests
// Lists test definitions available to the student. Correct answers are
// stripped so the payload is safe to hand to the test-taking UI.
func (h *StudentPortalHandler) ListTests(c *gin.Context) {
	defs, err := h.testService.AllDefinitions(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	sanitized := make([]model.TestDefinition, 0, len(defs))
	for _, def := range defs {
		sanitized = append(sanitized, stripAnswers(def))
	}

	response.Success(c, http.StatusOK, gin.H{"tests": sanitized})
}

// SubmitResult godoc
// POST /api/v1/student/results
// Stores the raw submission document and queues breakdown computation.
func (h *StudentPortalHandler) SubmitResult(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.SubmitResultRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	rec, err := h.resultService.Submit(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"result": rec})
}

// GetProgress godoc
// GET /api/v1/student/tests/:id/progress
// Returns the student's saved state for a test, if any.
func (h *StudentPortalHandler) GetProgress(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	progress, err := h.progressService.Get(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"progress": progress})
}

// SaveProgress godoc
// PUT /api/v1/student/tests/:id/progress
// Upserts the student's in-flight state for a test.
func (h *StudentPortalHandler) SaveProgress(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.SaveProgressRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	progress, err := h.progressService.Save(c.Request.Context(), claims.UserID, c.Param("id"), &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"progress": progress})
}

// stripAnswers removes answer keys from a definition before it leaves the
// admin boundary.
func stripAnswers(def model.TestDefinition) model.TestDefinition {
	if def.Modules == nil {
		return def
	}

	modules := make(map[string]model.Module, len(def.Modules))
	for name, mod := range def.Modules {
		questions := make([]model.Question, len(mod.Questions))
		for i, q := range mod.Questions {
			questions[i] = stripQuestionAnswers(q)
		}
		mod.Questions = questions
		modules[name] = mod
	}
	def.Modules = modules
	return def
}

func stripQuestionAnswers(q model.Question) model.Question {
	q.CorrectAnswer = nil
	if len(q.MCQs) > 0 {
		nested := make([]model.Question, len(q.MCQs))
		for i, sub := range q.MCQs {
			nested[i] = stripQuestionAnswers(sub)
		}
		q.MCQs = nested
	}
	return q
}
