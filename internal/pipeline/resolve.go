package pipeline

import (
	"strings"

	"guestfile/internal"
	"guestfile/internal/mappings"
	"guestfile/internal/table"
)

// ResolvePlan is what the header resolver hands back to the caller: the
// renames it can apply on its own, and the columns that still need a
// manual decision (map to a standard field, combine into notes, or leave).
type ResolvePlan struct {
	Auto     map[string]string
	Unmapped []string
}

// ResolveHeaders consults the mapping store for every raw column name.
// Variants confirmed at least threshold times rename automatically; the
// rest, unless already a standard field, come back as unmapped. The plan
// depends only on the store contents and the column set, never on column
// order.
func ResolveHeaders(columns []string, store *mappings.Store, threshold int) ResolvePlan {
	index := store.ReverseIndex(threshold)

	plan := ResolvePlan{Auto: map[string]string{}}
	for _, col := range columns {
		if internal.IsStandardColumn(col) {
			continue
		}
		if field, ok := index[strings.ToLower(col)]; ok {
			plan.Auto[col] = field
			continue
		}
		plan.Unmapped = append(plan.Unmapped, col)
	}
	return plan
}

// ApplyManualMappings renames columns per the caller's decisions, keeping
// only decisions that target a real manual-mapping field. It returns the
// confirmed pairs so the learner can feed them back to the store.
func ApplyManualMappings(t *table.Table, decisions map[string]string) map[string]string {
	targets := map[string]bool{}
	for _, field := range internal.ManualMappingTargets() {
		targets[field] = true
	}

	confirmed := map[string]string{}
	for raw, field := range decisions {
		if targets[field] && t.HasColumn(raw) {
			confirmed[raw] = field
		}
	}
	t.Rename(confirmed)
	return confirmed
}
