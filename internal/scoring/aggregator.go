package scoring

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/DSEENAIAH/campus-preparation-backend/internal/model"
)

// VoiceEquivalentScale converts a 0..1 module score into marks in the
// moduleScores fallback tier. Legacy convention: each module is treated as a
// single five-mark question. Exported results depend on this value staying 5.
const VoiceEquivalentScale = 5

// rubricKeys identify a voice-graded leaf inside a scores tree. The key list
// is load-bearing for historical records: a map containing any of these is a
// rubric, everything else is a nested group.
var rubricKeys = []string{
	"matching", "grammar", "vocabulary", "fluency",
	"pronunciation", "clarity", "content", "coherence",
}

// leafKind is the tagged classification of one scores-tree value.
type leafKind int

const (
	leafMCQ leafKind = iota
	leafVoice
	leafGroup
	leafMalformed
)

// ComputeBreakdown normalizes one raw submission record against the known
// test definitions. It is pure and never fails: malformed input degrades to
// zero contribution at the smallest possible granularity, so a single corrupt
// field cannot zero out an entire submission.
func ComputeBreakdown(rec model.SubmissionRecord, defs []model.TestDefinition) Breakdown {
	def, found := resolveTestDefinition(rec, defs)

	totalMarks := 1
	if found {
		totalMarks = deriveTotalMarks(def)
	}

	res := runTiers(rec)

	pct := boundedPercentage(res.marks, totalMarks)

	return Breakdown{
		MarksObtained:   res.marks,
		TotalMarks:      totalMarks,
		ModuleBreakdown: res.modules,
		Percentage:      pct,
		Grade:           GradeFor(pct),
		DurationMinutes: DeriveDurationMinutes(rec),
	}
}

// resolveTestDefinition matches by id first, then by title.
func resolveTestDefinition(rec model.SubmissionRecord, defs []model.TestDefinition) (model.TestDefinition, bool) {
	if rec.TestID != "" {
		for _, def := range defs {
			if def.ID == rec.TestID {
				return def, true
			}
		}
	}
	if rec.TestTitle != "" {
		for _, def := range defs {
			if def.Title == rec.TestTitle {
				return def, true
			}
		}
	}
	return model.TestDefinition{}, false
}

// deriveTotalMarks returns the denominator for a found test definition:
// explicit totalMarks when positive, otherwise the count of gradable units
// across enabled modules, never less than 1.
func deriveTotalMarks(def model.TestDefinition) int {
	if def.TotalMarks > 0 {
		return def.TotalMarks
	}

	units := 0
	for _, mod := range def.Modules {
		if !mod.Enabled {
			continue
		}
		for _, q := range mod.Questions {
			if len(q.MCQs) > 0 {
				units += len(q.MCQs)
			} else {
				units++
			}
		}
	}

	if units == 0 {
		return 1
	}
	return units
}

// ─── Fallback tiers ─────────────────────────────────────────────────

type tierResult struct {
	marks   float64
	modules map[string]ModuleBreakdown
}

type tierFunc func(model.SubmissionRecord) tierResult

// tiers are tried in fixed priority order; the first one yielding a nonzero
// aggregate wins, so a record can never double-count across payload shapes.
var tiers = []tierFunc{scoresTreeTier, moduleScoresTier, totalScoreTier, percentageTier}

func runTiers(rec model.SubmissionRecord) tierResult {
	result := tiers[0](rec)
	for _, tier := range tiers[1:] {
		if result.marks != 0 {
			break
		}
		if candidate := tier(rec); candidate.marks != 0 {
			result = candidate
		}
	}
	if result.modules == nil {
		result.modules = map[string]ModuleBreakdown{}
	}
	return result
}

// scoresTreeTier walks the nested scores document. The owning module of every
// leaf is its top-level ancestor key, regardless of nesting depth. The walk
// visits keys in sorted order so float accumulation is order-stable and the
// same record always yields bit-identical marks.
func scoresTreeTier(rec model.SubmissionRecord) tierResult {
	res := tierResult{modules: map[string]ModuleBreakdown{}}
	for _, module := range sortedKeys(rec.Scores) {
		walkScoreNode(module, rec.Scores[module], &res)
	}
	return res
}

func walkScoreNode(module string, val any, res *tierResult) {
	switch classifyScoreValue(val) {
	case leafGroup:
		group := val.(map[string]any)
		for _, key := range sortedKeys(group) {
			walkScoreNode(module, group[key], res)
		}
	case leafMCQ:
		res.addUnit(module, normalizeMCQMark(val))
	case leafVoice:
		res.addUnit(module, sumRubric(val.(map[string]any)))
	default:
		// Malformed leaf: zero marks but still one graded unit, so the
		// module average is not silently skewed by omission.
		res.addUnit(module, 0)
	}
}

func (r *tierResult) addUnit(module string, mark float64) {
	mb := r.modules[module]
	mb.Obtained += mark
	mb.Questions++
	r.modules[module] = mb
	r.marks += mark
}

// classifyScoreValue sniffs the shape of one scores-tree value.
func classifyScoreValue(val any) leafKind {
	switch v := val.(type) {
	case float64, int, int64:
		return leafMCQ
	case string:
		if _, ok := toNumber(v); ok {
			return leafMCQ
		}
		return leafMalformed
	case map[string]any:
		for _, key := range rubricKeys {
			if _, ok := v[key]; ok {
				return leafVoice
			}
		}
		return leafGroup
	default:
		return leafMalformed
	}
}

// normalizeMCQMark applies the binary pass/fail rule: any raw value of at
// least 1 earns the full unit, anything else earns nothing. The raw magnitude
// is intentionally not used as fractional credit — historical records encode
// no agreed partial-credit semantics.
func normalizeMCQMark(val any) float64 {
	n, ok := toNumber(val)
	if !ok {
		return 0
	}
	if n >= 1 {
		return 1
	}
	return 0
}

// sumRubric totals the present rubric criteria of a voice-graded unit. Each
// criterion is expected in 0..1; a unit with several criteria can therefore
// exceed 1 mark. That mirrors how the store's records were always graded and
// must not be capped here — only the final percentage is bounded.
func sumRubric(rubric map[string]any) float64 {
	var total float64
	for _, key := range rubricKeys {
		if raw, ok := rubric[key]; ok {
			if n, ok := toNumber(raw); ok {
				total += n
			}
		}
	}
	return total
}

// moduleScoresTier maps flat per-module percentages (or fractions) onto the
// five-mark-equivalent scale.
func moduleScoresTier(rec model.SubmissionRecord) tierResult {
	res := tierResult{modules: map[string]ModuleBreakdown{}}
	for _, module := range sortedKeys(rec.ModuleScores) {
		norm, ok := toNumber(rec.ModuleScores[module])
		if !ok {
			norm = 0
		}
		if norm > 1 {
			norm /= 100 // percentage in 0..100
		}
		if norm < 0 {
			norm = 0
		}
		if norm > 1 {
			norm = 1
		}
		mark := math.Round(norm * VoiceEquivalentScale)
		res.modules[module] = ModuleBreakdown{Obtained: mark, Questions: VoiceEquivalentScale}
		res.marks += mark
	}
	return res
}

func totalScoreTier(rec model.SubmissionRecord) tierResult {
	return tierResult{marks: rec.TotalScore}
}

// percentageTier substitutes the stored percentage for marksObtained
// verbatim. When the test definition lookup also fails (denominator 1) this
// effectively squares the percentage; that quirk is preserved for parity with
// historical exports.
func percentageTier(rec model.SubmissionRecord) tierResult {
	return tierResult{marks: rec.Percentage}
}

// ─── Helpers ────────────────────────────────────────────────────────

func boundedPercentage(marks float64, totalMarks int) float64 {
	pct := marks / float64(totalMarks) * 100
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// toNumber coerces numbers and numeric strings from decoded JSON.
func toNumber(val any) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
