package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DSEENAIAH/campus-preparation-backend/internal/scoring"
)

func rowWithModules(modules map[string]scoring.ModuleBreakdown) ResultRow {
	return ResultRow{Breakdown: scoring.Breakdown{ModuleBreakdown: modules}}
}

func TestModuleColumnsSortedUnion(t *testing.T) {
	rows := []ResultRow{
		rowWithModules(map[string]scoring.ModuleBreakdown{
			"speaking": {}, "grammar": {},
		}),
		rowWithModules(map[string]scoring.ModuleBreakdown{
			"grammar": {}, "aptitude": {},
		}),
		rowWithModules(nil),
	}

	assert.Equal(t, []string{"aptitude", "grammar", "speaking"}, moduleColumns(rows))
}

func TestModuleColumnsEmpty(t *testing.T) {
	assert.Empty(t, moduleColumns(nil))
	assert.Empty(t, moduleColumns([]ResultRow{rowWithModules(nil)}))
}

func TestModuleCellFormatting(t *testing.T) {
	row := rowWithModules(map[string]scoring.ModuleBreakdown{
		"grammar":  {Obtained: 2.25, Questions: 4},
		"speaking": {Obtained: 3, Questions: 5},
	})

	assert.Equal(t, "2.25/4", moduleCell(row, "grammar"))
	assert.Equal(t, "3.00/5", moduleCell(row, "speaking"))

	// Modules the submission never touched stay blank rather than 0/0.
	assert.Equal(t, "", moduleCell(row, "aptitude"))
}
