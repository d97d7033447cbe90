package scoring

// gradeBands are evaluated top-down; first inclusive lower bound wins.
var gradeBands = []struct {
	min   float64
	grade string
}{
	{90, "A+"},
	{80, "A"},
	{70, "B"},
	{60, "C"},
}

// GradeFor derives a letter grade from a bounded percentage.
func GradeFor(percentage float64) string {
	for _, band := range gradeBands {
		if percentage >= band.min {
			return band.grade
		}
	}
	return "F"
}
