package scoring

// Breakdown is the normalized score view of one submission record. It is
// computed fresh on every read and never written back to the store — the raw
// SubmissionRecord stays the system of record.
type Breakdown struct {
	MarksObtained   float64                    `json:"marks_obtained"`
	TotalMarks      int                        `json:"total_marks"`
	ModuleBreakdown map[string]ModuleBreakdown `json:"module_breakdown"`
	Percentage      float64                    `json:"percentage"`
	Grade           string                     `json:"grade"`
	// DurationMinutes is nil when no usable timing information exists.
	// Callers must render "unknown" rather than zero.
	DurationMinutes *int `json:"duration_minutes"`
}

// ModuleBreakdown accumulates the graded units of one module.
type ModuleBreakdown struct {
	Obtained  float64 `json:"obtained"`
	Questions int     `json:"questions"`
}
