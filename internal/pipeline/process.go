package pipeline

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"guestfile/internal"
	"guestfile/internal/config"
	"guestfile/internal/mappings"
	"guestfile/internal/storage"
	"guestfile/internal/table"
)

// ImportOptions carries every decision the caller (UI or CLI) made for one
// run. It is the explicit session object: nothing about a run lives in
// package state.
type ImportOptions struct {
	Input     string
	HeaderRow int
	RID       string

	// CountryHint is a country name from internal.CountryCodes; blank
	// means no hint.
	CountryHint string

	// FullNameColumn, when set, is split into firstName/lastName.
	FullNameColumn string

	// ManualMappings maps raw column names to standard fields for the
	// columns the resolver could not place.
	ManualMappings map[string]string

	// NotesColumns are combined row-wise into guestNotes.
	NotesColumns []string

	// Consent decisions for values outside the known truthy set.
	TreatAllNonBlankTrue bool
	NewTruthyValues      []string
}

type ImportResult struct {
	Plan     ResolvePlan
	Encoding string

	RowsIn        int
	RowsDeleted   int
	IDRowsDeleted int
	IDsCreated    bool
	RowsMerged    int
	RowsOut       int

	Export ExportResult
}

// ImportService runs the cleaning pipeline end to end: read, standardise
// headers, normalise fields, validate, reconcile, export. The mapping
// store is passed in by the caller and only persisted after a run that
// produced output, so a failed run never leaves partial learning behind.
type ImportService struct {
	store *mappings.Store
	db    *storage.DB
	cfg   config.Config
}

func NewImportService(store *mappings.Store, db *storage.DB, cfg config.Config) *ImportService {
	return &ImportService{store: store, db: db, cfg: cfg}
}

// Inspect loads the input and reports the resolver's plan plus any consent
// values the store does not recognise, without touching anything.
func (s *ImportService) Inspect(input string, headerRow int) (ResolvePlan, []string, error) {
	t, _, err := table.ReadFile(input, headerRow)
	if err != nil {
		return ResolvePlan{}, nil, err
	}
	plan := ResolveHeaders(t.Columns, s.store, s.cfg.MappingThreshold)

	resolved := t.Clone()
	resolved.Rename(plan.Auto)
	return plan, UnknownConsentValues(resolved, s.store.TruthyValues()), nil
}

// Run executes one full import. Each stage produces a fresh table; the
// input table is never handed back to the caller.
func (s *ImportService) Run(opts ImportOptions) (ImportResult, error) {
	start := time.Now()

	t, encoding, err := table.ReadFile(opts.Input, opts.HeaderRow)
	if err != nil {
		return ImportResult{}, fmt.Errorf("read input: %w", err)
	}

	result := ImportResult{Encoding: encoding, RowsIn: t.Len()}

	if opts.FullNameColumn != "" {
		ApplyNameSplit(t, opts.FullNameColumn)
	}

	result.Plan = ResolveHeaders(t.Columns, s.store, s.cfg.MappingThreshold)
	t.Rename(result.Plan.Auto)
	confirmed := ApplyManualMappings(t, opts.ManualMappings)

	// Learning stays in memory until the run succeeds.
	s.store.RecordTruthyValues(opts.NewTruthyValues)
	for raw, field := range confirmed {
		s.store.RecordMapping(field, raw)
	}

	ResolveConsent(t, s.store.TruthyValues(), opts.TreatAllNonBlankTrue)
	CombineNotes(t, opts.NotesColumns)
	FormatDates(t)
	TitleCaseNames(t)
	FormatPhones(t, internal.CountryCodes[opts.CountryHint])

	t, result.RowsDeleted = ValidateRows(t)
	t, result.IDRowsDeleted, result.IDsCreated = EnsureGuestIDs(t)
	t, result.RowsMerged = Reconcile(t)

	final := t.Select(internal.StandardColumns)
	result.RowsOut = final.Len()

	result.Export, err = Export(final, s.cfg.OutputDir, opts.RID, s.cfg.FileRowLimit)
	if err != nil {
		return result, err
	}

	if err := s.store.Save(); err != nil {
		return result, fmt.Errorf("output written to %s but saving mappings failed: %w", result.Export.Path, err)
	}

	if s.db != nil {
		_ = s.db.InsertRun(traceID(), opts.Input, opts.RID, map[string]int{
			"rowsIn":        result.RowsIn,
			"rowsDeleted":   result.RowsDeleted,
			"idRowsDeleted": result.IDRowsDeleted,
			"rowsMerged":    result.RowsMerged,
			"rowsOut":       result.RowsOut,
			"chunks":        result.Export.Chunks,
			"totalMs":       int(time.Since(start).Milliseconds()),
		})
		_ = s.db.SetMetadata("lastRunAt", time.Now().UTC().Format(time.RFC3339))
	}

	return result, nil
}

func traceID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
