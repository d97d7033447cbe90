package model

// SubmissionRecord is a raw exam submission from the results collection. The
// schema is not controlled by this backend: records were produced by several
// frontend generations, so every field is optional and the score payload can
// arrive in one of four shapes (scores tree, moduleScores map, totalScore,
// percentage). JSON tags mirror the stored documents.
type SubmissionRecord struct {
	ID           string `json:"id"`
	StudentID    int    `json:"studentId,omitempty"`
	StudentEmail string `json:"studentEmail,omitempty"`
	TestID       string `json:"testId,omitempty"`
	TestTitle    string `json:"testTitle,omitempty"`

	// Timestamps are kept as raw strings: historical records carry several
	// ISO-8601 variants and occasionally garbage.
	StartedAt   string `json:"startedAt,omitempty"`
	CompletedAt string `json:"completedAt,omitempty"`
	SubmittedAt string `json:"submittedAt,omitempty"`
	EndedAt     string `json:"endedAt,omitempty"`

	// DurationSeconds, when positive, overrides timestamp-derived duration.
	DurationSeconds float64 `json:"duration,omitempty"`

	Scores       map[string]any `json:"scores,omitempty"`
	ModuleScores map[string]any `json:"moduleScores,omitempty"`
	TotalScore   float64        `json:"totalScore,omitempty"`
	Percentage   float64        `json:"percentage,omitempty"`
}

// End returns the first present completion timestamp.
func (r SubmissionRecord) End() string {
	if r.CompletedAt != "" {
		return r.CompletedAt
	}
	if r.SubmittedAt != "" {
		return r.SubmittedAt
	}
	return r.EndedAt
}

// SubmitResultRequest is the raw submission document posted by the
// assessment-taking frontend. It is stored verbatim; score normalization
// happens on read.
type SubmitResultRequest struct {
	TestID          string         `json:"testId" binding:"omitempty,max=255"`
	TestTitle       string         `json:"testTitle" binding:"omitempty,max=255"`
	StartedAt       string         `json:"startedAt" binding:"omitempty,max=64"`
	CompletedAt     string         `json:"completedAt" binding:"omitempty,max=64"`
	SubmittedAt     string         `json:"submittedAt" binding:"omitempty,max=64"`
	EndedAt         string         `json:"endedAt" binding:"omitempty,max=64"`
	DurationSeconds float64        `json:"duration" binding:"omitempty,min=0"`
	Scores          map[string]any `json:"scores" binding:"omitempty"`
	ModuleScores    map[string]any `json:"moduleScores" binding:"omitempty"`
	TotalScore      float64        `json:"totalScore" binding:"omitempty"`
	Percentage      float64        `json:"percentage" binding:"omitempty"`
}
