package model

import "time"

// TestDefinition is a test document from the tests collection. The JSON tags
// mirror the legacy document shape, which predates this backend — records in
// the store were written by several generations of the platform.
type TestDefinition struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	TotalMarks int               `json:"totalMarks,omitempty"` // 0 = absent; derive from modules
	Modules    map[string]Module `json:"modules,omitempty"`
	CreatedAt  time.Time         `json:"created_at,omitempty"`
	UpdatedAt  time.Time         `json:"updated_at,omitempty"`
}

// Module is a named section of a test containing an ordered question list.
type Module struct {
	Enabled   bool       `json:"enabled"`
	Title     string     `json:"title,omitempty"`
	Questions []Question `json:"questions,omitempty"`
}

// Question is either an MCQ (options + correct answer index) or a free-form
// voice question. A question carrying a nested mcqs list counts one gradable
// unit per nested entry instead of one for itself.
type Question struct {
	Text          string     `json:"text,omitempty"`
	Options       []string   `json:"options,omitempty"`
	CorrectAnswer *int       `json:"correctAnswer,omitempty"`
	MCQs          []Question `json:"mcqs,omitempty"`
}

// CreateTestRequest is the payload for creating a new test definition.
type CreateTestRequest struct {
	Title      string            `json:"title" binding:"required,min=3,max=255"`
	TotalMarks int               `json:"totalMarks" binding:"omitempty,min=1"`
	Modules    map[string]Module `json:"modules" binding:"omitempty"`
}

// UpdateTestRequest is the payload for updating an existing test definition.
type UpdateTestRequest struct {
	Title      string            `json:"title" binding:"omitempty,min=3,max=255"`
	TotalMarks *int              `json:"totalMarks" binding:"omitempty,min=0"`
	Modules    map[string]Module `json:"modules" binding:"omitempty"`
}
