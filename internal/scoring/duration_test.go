package scoring

import (
	"testing"

	"github.com/DSEENAIAH/campus-preparation-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveDurationMinutes_ExplicitDuration(t *testing.T) {
	got := DeriveDurationMinutes(model.SubmissionRecord{DurationSeconds: 90})
	require.NotNil(t, got)
	assert.Equal(t, 2, *got) // 1.5 min rounds up

	got = DeriveDurationMinutes(model.SubmissionRecord{DurationSeconds: 10})
	require.NotNil(t, got)
	assert.Equal(t, 1, *got, "positive duration floors at one minute")
}

func TestDeriveDurationMinutes_Timestamps(t *testing.T) {
	got := DeriveDurationMinutes(model.SubmissionRecord{
		StartedAt:   "2024-03-01T10:00:00Z",
		CompletedAt: "2024-03-01T10:32:30Z",
	})
	require.NotNil(t, got)
	assert.Equal(t, 32, *got, "whole minutes, floored")

	got = DeriveDurationMinutes(model.SubmissionRecord{
		StartedAt:   "2024-03-01T10:00:00Z",
		SubmittedAt: "2024-03-01T10:05:00Z",
	})
	require.NotNil(t, got)
	assert.Equal(t, 5, *got, "submittedAt is the completedAt fallback")

	got = DeriveDurationMinutes(model.SubmissionRecord{
		StartedAt:   "2024-03-01T10:30:00Z",
		CompletedAt: "2024-03-01T10:00:00Z",
	})
	require.NotNil(t, got)
	assert.Equal(t, 0, *got, "end before start floors at zero")
}

func TestDeriveDurationMinutes_Unknown(t *testing.T) {
	assert.Nil(t, DeriveDurationMinutes(model.SubmissionRecord{}))

	assert.Nil(t, DeriveDurationMinutes(model.SubmissionRecord{
		StartedAt: "2024-03-01T10:00:00Z",
	}), "no completion timestamp")

	assert.Nil(t, DeriveDurationMinutes(model.SubmissionRecord{
		StartedAt:   "not-a-timestamp",
		CompletedAt: "2024-03-01T10:00:00Z",
	}), "unparseable start is unknown, not zero")
}

func TestDeriveDurationMinutes_LegacyIDRecovery(t *testing.T) {
	// 1700000000000 ms = 2023-11-14T22:13:20Z
	got := DeriveDurationMinutes(model.SubmissionRecord{
		ID:          "result_1700000000000_7",
		CompletedAt: "2023-11-14T22:30:00Z",
	})
	require.NotNil(t, got)
	assert.Equal(t, 16, *got)

	assert.Nil(t, DeriveDurationMinutes(model.SubmissionRecord{
		ID:          "result_123_7", // digit run too short
		CompletedAt: "2023-11-14T22:30:00Z",
	}))
}

func TestStartFromLegacyID(t *testing.T) {
	start, ok := startFromLegacyID("result_1700000000000_7")
	require.True(t, ok)
	assert.Equal(t, int64(1700000000000), start.UnixMilli())

	_, ok = startFromLegacyID("result_abc")
	assert.False(t, ok)
}
