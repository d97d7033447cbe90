package scoring

import (
	"math"
	"reflect"
	"testing"

	"github.com/DSEENAIAH/campus-preparation-backend/internal/model"
)

func grammarTest() model.TestDefinition {
	return model.TestDefinition{
		ID:    "test-1",
		Title: "Placement Test",
		Modules: map[string]model.Module{
			"grammarMCQ": {
				Enabled: true,
				Questions: []model.Question{
					{Options: []string{"a", "b"}, CorrectAnswer: intPtr(0)},
					{Options: []string{"a", "b"}, CorrectAnswer: intPtr(1)},
				},
			},
		},
	}
}

func intPtr(n int) *int { return &n }

func TestComputeBreakdown_ScoresTree(t *testing.T) {
	tests := []struct {
		name        string
		rec         model.SubmissionRecord
		defs        []model.TestDefinition
		wantMarks   float64
		wantTotal   int
		wantPct     float64
		wantGrade   string
		wantModules map[string]ModuleBreakdown
	}{
		{
			name: "nested mcq group resolves module from top-level key",
			rec: model.SubmissionRecord{
				TestID: "test-1",
				Scores: map[string]any{
					"grammarMCQ": map[string]any{"q1": float64(1), "q2": float64(0)},
				},
			},
			defs:      []model.TestDefinition{grammarTest()},
			wantMarks: 1, wantTotal: 2, wantPct: 50, wantGrade: "F",
			wantModules: map[string]ModuleBreakdown{
				"grammarMCQ": {Obtained: 1, Questions: 2},
			},
		},
		{
			name: "voice rubric sums criteria into a single unit",
			rec: model.SubmissionRecord{
				Scores: map[string]any{
					"voice1": map[string]any{"matching": 0.8, "grammar": 0.6},
				},
			},
			wantMarks: 1.4, wantTotal: 1, wantPct: 100, wantGrade: "A+",
			wantModules: map[string]ModuleBreakdown{
				"voice1": {Obtained: 1.4, Questions: 1},
			},
		},
		{
			name: "numeric string leaf counts as mcq",
			rec: model.SubmissionRecord{
				TestID: "test-1",
				Scores: map[string]any{"grammarMCQ": map[string]any{"q1": "1", "q2": "0.5"}},
			},
			defs:      []model.TestDefinition{grammarTest()},
			wantMarks: 1, wantTotal: 2, wantPct: 50, wantGrade: "F",
			wantModules: map[string]ModuleBreakdown{
				"grammarMCQ": {Obtained: 1, Questions: 2},
			},
		},
		{
			name: "malformed leaf contributes zero but still counts a unit",
			rec: model.SubmissionRecord{
				TestID: "test-1",
				Scores: map[string]any{"grammarMCQ": map[string]any{"q1": true, "q2": float64(1)}},
			},
			defs:      []model.TestDefinition{grammarTest()},
			wantMarks: 1, wantTotal: 2, wantPct: 50, wantGrade: "F",
			wantModules: map[string]ModuleBreakdown{
				"grammarMCQ": {Obtained: 1, Questions: 2},
			},
		},
		{
			name: "title fallback when id does not match",
			rec: model.SubmissionRecord{
				TestID:    "unknown",
				TestTitle: "Placement Test",
				Scores:    map[string]any{"grammarMCQ": map[string]any{"q1": float64(1)}},
			},
			defs:      []model.TestDefinition{grammarTest()},
			wantMarks: 1, wantTotal: 2, wantPct: 50, wantGrade: "F",
			wantModules: map[string]ModuleBreakdown{
				"grammarMCQ": {Obtained: 1, Questions: 1},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeBreakdown(tc.rec, tc.defs)
			if got.MarksObtained != tc.wantMarks {
				t.Errorf("marks = %v, want %v", got.MarksObtained, tc.wantMarks)
			}
			if got.TotalMarks != tc.wantTotal {
				t.Errorf("total = %d, want %d", got.TotalMarks, tc.wantTotal)
			}
			if got.Percentage != tc.wantPct {
				t.Errorf("percentage = %v, want %v", got.Percentage, tc.wantPct)
			}
			if got.Grade != tc.wantGrade {
				t.Errorf("grade = %q, want %q", got.Grade, tc.wantGrade)
			}
			if !reflect.DeepEqual(got.ModuleBreakdown, tc.wantModules) {
				t.Errorf("modules = %v, want %v", got.ModuleBreakdown, tc.wantModules)
			}
		})
	}
}

func TestComputeBreakdown_FallbackTiers(t *testing.T) {
	tests := []struct {
		name      string
		rec       model.SubmissionRecord
		wantMarks float64
		wantPct   float64
		wantMods  map[string]ModuleBreakdown
	}{
		{
			name:      "moduleScores percentage maps onto five-mark scale",
			rec:       model.SubmissionRecord{ModuleScores: map[string]any{"aptitude": float64(90)}},
			wantMarks: 5, wantPct: 100,
			wantMods: map[string]ModuleBreakdown{"aptitude": {Obtained: 5, Questions: VoiceEquivalentScale}},
		},
		{
			name:      "moduleScores fraction maps onto five-mark scale",
			rec:       model.SubmissionRecord{ModuleScores: map[string]any{"aptitude": 0.5}},
			wantMarks: 3, wantPct: 100, // round(0.5*5) = 3
			wantMods: map[string]ModuleBreakdown{"aptitude": {Obtained: 3, Questions: VoiceEquivalentScale}},
		},
		{
			name:      "totalScore used when earlier tiers are empty",
			rec:       model.SubmissionRecord{TotalScore: 7},
			wantMarks: 7, wantPct: 100,
			wantMods: map[string]ModuleBreakdown{},
		},
		{
			name:      "percentage substitutes marks verbatim",
			rec:       model.SubmissionRecord{Percentage: 72},
			wantMarks: 72, wantPct: 100, // known legacy quirk: 72/1*100 capped at 100
			wantMods: map[string]ModuleBreakdown{},
		},
		{
			name: "nonzero scores tree suppresses later tiers",
			rec: model.SubmissionRecord{
				Scores:       map[string]any{"grammar": map[string]any{"q1": float64(1)}},
				ModuleScores: map[string]any{"grammar": float64(90)},
				TotalScore:   50,
				Percentage:   80,
			},
			wantMarks: 1, wantPct: 100,
			wantMods: map[string]ModuleBreakdown{"grammar": {Obtained: 1, Questions: 1}},
		},
		{
			name: "all-zero scores tree falls through but keeps its unit counts when later tiers are empty",
			rec: model.SubmissionRecord{
				Scores: map[string]any{"grammar": map[string]any{"q1": float64(0)}},
			},
			wantMarks: 0, wantPct: 0,
			wantMods: map[string]ModuleBreakdown{"grammar": {Obtained: 0, Questions: 1}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeBreakdown(tc.rec, nil)
			if got.MarksObtained != tc.wantMarks {
				t.Errorf("marks = %v, want %v", got.MarksObtained, tc.wantMarks)
			}
			if got.TotalMarks != 1 {
				t.Errorf("total = %d, want 1 (no test definition)", got.TotalMarks)
			}
			if got.Percentage != tc.wantPct {
				t.Errorf("percentage = %v, want %v", got.Percentage, tc.wantPct)
			}
			if !reflect.DeepEqual(got.ModuleBreakdown, tc.wantMods) {
				t.Errorf("modules = %v, want %v", got.ModuleBreakdown, tc.wantMods)
			}
		})
	}
}

func TestComputeBreakdown_Denominator(t *testing.T) {
	nested := model.TestDefinition{
		ID:    "test-2",
		Title: "Mock Exam",
		Modules: map[string]model.Module{
			"listening": {
				Enabled: true,
				Questions: []model.Question{
					{MCQs: []model.Question{{}, {}, {}}}, // 3 units
					{}, // 1 unit
				},
			},
			"disabled": {
				Enabled:   false,
				Questions: []model.Question{{}, {}},
			},
		},
	}

	rec := model.SubmissionRecord{
		TestID: "test-2",
		Scores: map[string]any{"listening": map[string]any{"q1": float64(1), "q2": float64(1)}},
	}

	got := ComputeBreakdown(rec, []model.TestDefinition{nested})
	if got.TotalMarks != 4 {
		t.Fatalf("total = %d, want 4 (nested mcqs count individually, disabled modules excluded)", got.TotalMarks)
	}
	if got.Percentage != 50 {
		t.Fatalf("percentage = %v, want 50", got.Percentage)
	}

	explicit := nested
	explicit.TotalMarks = 10
	got = ComputeBreakdown(rec, []model.TestDefinition{explicit})
	if got.TotalMarks != 10 {
		t.Fatalf("total = %d, want 10 (explicit totalMarks wins)", got.TotalMarks)
	}
}

func TestComputeBreakdown_Degradation(t *testing.T) {
	// Entirely empty inputs must still produce a valid, displayable breakdown.
	got := ComputeBreakdown(model.SubmissionRecord{}, nil)
	if got.TotalMarks < 1 {
		t.Fatalf("total = %d, want >= 1", got.TotalMarks)
	}
	if got.MarksObtained != 0 || got.Percentage != 0 || got.Grade != "F" {
		t.Fatalf("empty record: got %+v, want zero marks, zero percentage, grade F", got)
	}
	if got.ModuleBreakdown == nil {
		t.Fatal("module breakdown must never be nil")
	}
	if got.DurationMinutes != nil {
		t.Fatalf("duration = %v, want unknown", *got.DurationMinutes)
	}

	// Negative totals must not escape the percentage bounds.
	got = ComputeBreakdown(model.SubmissionRecord{TotalScore: -12}, nil)
	if got.Percentage != 0 {
		t.Fatalf("percentage = %v, want 0 for negative marks", got.Percentage)
	}
}

func TestComputeBreakdown_Deterministic(t *testing.T) {
	// Sibling rubric leaves whose sum is order-sensitive under float64
	// addition: 0.1+0.2+0.3 differs in the last bit from 0.3+0.2+0.1. The
	// sorted walk must pin the accumulation order regardless of map
	// iteration, so repeated calls yield bit-identical marks.
	rec := model.SubmissionRecord{
		ID:          "result_1700000000000_7",
		TestID:      "test-1",
		CompletedAt: "2023-11-14T22:30:00Z",
		Scores: map[string]any{
			"grammarMCQ": map[string]any{"q1": float64(1), "q2": float64(0)},
			"speaking": map[string]any{
				"q1": map[string]any{"matching": 0.1},
				"q2": map[string]any{"matching": 0.2},
				"q3": map[string]any{"matching": 0.3},
			},
		},
	}
	defs := []model.TestDefinition{grammarTest()}

	first := ComputeBreakdown(rec, defs)
	for i := 0; i < 200; i++ {
		got := ComputeBreakdown(rec, defs)
		if math.Float64bits(got.MarksObtained) != math.Float64bits(first.MarksObtained) {
			t.Fatalf("call %d: marks = %v (bits %x), want %v (bits %x)",
				i, got.MarksObtained, math.Float64bits(got.MarksObtained),
				first.MarksObtained, math.Float64bits(first.MarksObtained))
		}
		if !reflect.DeepEqual(got, first) {
			t.Fatalf("call %d: breakdown not deterministic:\n%+v\n%+v", i, got, first)
		}
	}
}
