package model

import (
	"encoding/json"
	"time"
)

// Progress is a student's saved in-flight state for one test, from the
// progress collection. The state blob is opaque to the backend.
type Progress struct {
	ID        int             `json:"id"`
	StudentID int             `json:"student_id"`
	TestID    string          `json:"test_id"`
	State     json.RawMessage `json:"state"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// SaveProgressRequest is the payload for saving progress on a test.
type SaveProgressRequest struct {
	State json.RawMessage `json:"state" binding:"required"`
}
