package scoring

import (
	"math"
	"regexp"
	"strconv"
	"time"

	"github.com/DSEENAIAH/campus-preparation-backend/internal/model"
)

// timestampLayouts cover the ISO-8601 variants found in historical records.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// legacyEpochPattern matches the millisecond epoch embedded in synthetic
// record IDs minted by the old frontend ("result_1700000000000_7").
var legacyEpochPattern = regexp.MustCompile(`[0-9]{10,}`)

// DeriveDurationMinutes computes the submission duration. It returns nil when
// timing is unknown — callers must render that distinctly from zero minutes.
func DeriveDurationMinutes(rec model.SubmissionRecord) *int {
	// Explicit duration field (seconds) wins when positive.
	if rec.DurationSeconds > 0 {
		m := int(math.Round(rec.DurationSeconds / 60))
		if m < 1 {
			m = 1
		}
		return &m
	}

	end, ok := parseTimestamp(rec.End())
	if !ok {
		return nil
	}

	start, ok := startedAt(rec)
	if !ok {
		return nil
	}

	// Whole minutes, floored at zero — clock skew in old records can put the
	// end before the start.
	m := int(end.Sub(start).Minutes())
	if m < 0 {
		m = 0
	}
	return &m
}

func startedAt(rec model.SubmissionRecord) (time.Time, bool) {
	if rec.StartedAt != "" {
		return parseTimestamp(rec.StartedAt)
	}
	return startFromLegacyID(rec.ID)
}

func parseTimestamp(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// startFromLegacyID recovers a start time from the first run of 10+ digits in
// a synthetic record ID, interpreted as a millisecond epoch.
func startFromLegacyID(id string) (time.Time, bool) {
	run := legacyEpochPattern.FindString(id)
	if run == "" {
		return time.Time{}, false
	}
	ms, err := strconv.ParseInt(run, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(ms).UTC(), true
}
