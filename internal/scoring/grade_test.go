package scoring

import "testing"

func TestGradeFor(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{100, "A+"},
		{90, "A+"},
		{89.99, "A"},
		{80, "A"},
		{79.5, "B"},
		{70, "B"},
		{69, "C"},
		{60, "C"},
		{59.99, "F"},
		{0, "F"},
	}

	for _, tc := range tests {
		if got := GradeFor(tc.pct); got != tc.want {
			t.Errorf("GradeFor(%v) = %q, want %q", tc.pct, got, tc.want)
		}
	}
}

// Grade must be non-decreasing in percentage across the whole domain.
func TestGradeMonotonic(t *testing.T) {
	rank := map[string]int{"F": 0, "C": 1, "B": 2, "A": 3, "A+": 4}

	prev := "F"
	for pct := 0.0; pct <= 100; pct += 0.25 {
		grade := GradeFor(pct)
		if rank[grade] < rank[prev] {
			t.Fatalf("grade decreased from %q to %q at %v%%", prev, grade, pct)
		}
		prev = grade
	}
}
