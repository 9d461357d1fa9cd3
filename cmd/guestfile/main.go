package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"guestfile/internal"
	"guestfile/internal/config"
	"guestfile/internal/mappings"
	"guestfile/internal/pipeline"
	"guestfile/internal/storage"
	"guestfile/internal/table"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "preview":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "guest list file")
		rows := fs.Int("rows", cfg.PreviewRows, "rows to preview")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" {
			must(fmt.Errorf("--input is required"))
		}
		data, err := os.ReadFile(*input)
		must(err)
		preview, err := table.Preview(data, *rows)
		must(err)
		for i, row := range preview {
			cells := row
			if len(cells) > 5 {
				cells = cells[:5]
			}
			fmt.Printf("row %d: %s\n", i+1, strings.Join(cells, ", "))
		}
	case "inspect":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "guest list file")
		headerRow := fs.Int("header-row", 1, "1-based header row")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" {
			must(fmt.Errorf("--input is required"))
		}
		store := mappings.Load(cfg.MappingsPath)
		svc := pipeline.NewImportService(store, nil, cfg)
		plan, unknownConsent, err := svc.Inspect(*input, *headerRow-1)
		must(err)
		fmt.Printf("auto-mapped columns: %d\n", len(plan.Auto))
		for raw, field := range plan.Auto {
			fmt.Printf("  %s -> %s\n", raw, field)
		}
		if len(plan.Unmapped) > 0 {
			fmt.Printf("unmapped columns: %s\n", strings.Join(plan.Unmapped, ", "))
		}
		if len(unknownConsent) > 0 {
			fmt.Printf("unknown consent values: %s\n", strings.Join(unknownConsent, ", "))
		}
	case "run":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "guest list file")
		rid := fs.String("rid", "", "destination id used to name output files")
		headerRow := fs.Int("header-row", 1, "1-based header row")
		country := fs.String("country", "", "country hint for phone formatting")
		nameCol := fs.String("name-col", "", "combined full-name column to split")
		mapFlag := fs.String("map", "", "manual mappings, raw=standard comma separated")
		notes := fs.String("notes", "", "columns to combine into guestNotes, comma separated")
		truthy := fs.String("truthy", "", "consent values to learn as true, comma separated")
		allTrue := fs.Bool("all-true", false, "treat all non-blank consent values as true")
		out := fs.String("out", "", "output directory (default from config)")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" {
			must(fmt.Errorf("--input is required"))
		}
		if strings.TrimSpace(*out) != "" {
			cfg.OutputDir = *out
		}

		store := mappings.Load(cfg.MappingsPath)
		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()

		svc := pipeline.NewImportService(store, db, cfg)
		result, err := svc.Run(pipeline.ImportOptions{
			Input:                *input,
			HeaderRow:            *headerRow - 1,
			RID:                  *rid,
			CountryHint:          *country,
			FullNameColumn:       *nameCol,
			ManualMappings:       parsePairs(*mapFlag),
			NotesColumns:         parseList(*notes),
			NewTruthyValues:      parseList(*truthy),
			TreatAllNonBlankTrue: *allTrue,
		})
		must(err)
		fmt.Printf("run done input=%s encoding=%s\n", *input, result.Encoding)
		fmt.Printf("  auto-mapped=%d unmapped=%d\n", len(result.Plan.Auto), len(result.Plan.Unmapped))
		fmt.Printf("  rows in=%d invalid deleted=%d id deleted=%d merged=%d out=%d\n",
			result.RowsIn, result.RowsDeleted, result.IDRowsDeleted, result.RowsMerged, result.RowsOut)
		if result.IDsCreated {
			fmt.Println("  created originalGuestId values")
		}
		fmt.Printf("  wrote %s (%d chunk(s))\n", result.Export.Path, result.Export.Chunks)
	case "mappings:show":
		store := mappings.Load(cfg.MappingsPath)
		index := store.ReverseIndex(cfg.MappingThreshold)
		fmt.Printf("promoted variants (threshold %d):\n", cfg.MappingThreshold)
		for _, field := range internal.StandardColumns {
			var variants []string
			for variant, target := range index {
				if target == field {
					variants = append(variants, variant)
				}
			}
			if len(variants) > 0 {
				fmt.Printf("  %s: %s\n", field, strings.Join(variants, ", "))
			}
		}
		fmt.Printf("truthy consent values: %s\n", strings.Join(store.TruthyValues(), ", "))
	case "append":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		out := fs.String("out", "", "output csv path")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*out) == "" || fs.NArg() == 0 {
			must(fmt.Errorf("--out and at least one input file are required"))
		}
		tables, err := loadTables(fs.Args())
		must(err)
		combined, err := pipeline.AppendTables(tables)
		must(err)
		must(writeCSVFile(*out, combined))
		fmt.Printf("appended %d files rows=%d output=%s\n", len(tables), combined.Len(), *out)
	case "merge":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		idCol := fs.String("id", "", "shared id column to merge on")
		out := fs.String("out", "", "output csv path")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*idCol) == "" || strings.TrimSpace(*out) == "" || fs.NArg() < 2 {
			must(fmt.Errorf("--id, --out and at least two input files are required"))
		}
		tables, err := loadTables(fs.Args())
		must(err)
		store := mappings.Load(cfg.MappingsPath)
		for _, t := range tables {
			plan := pipeline.ResolveHeaders(t.Columns, store, cfg.MappingThreshold)
			t.Rename(plan.Auto)
		}
		merged, err := pipeline.MergeByID(tables, *idCol)
		must(err)
		must(writeCSVFile(*out, merged))
		fmt.Printf("merged %d files rows=%d columns=%d output=%s\n", len(tables), merged.Len(), len(merged.Columns), *out)
	case "runs:list":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		limit := fs.Int("limit", 20, "max runs to list")
		_ = fs.Parse(os.Args[2:])
		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()
		runs, err := db.ListRuns(*limit)
		must(err)
		for _, run := range runs {
			fmt.Printf("%s  %s  rid=%s  %s  %s\n", run.CreatedAt, run.TraceID, run.RID, filepath.Base(run.InputFile), run.CountsJSON)
		}
	default:
		usage()
		os.Exit(1)
	}
}

func loadTables(paths []string) ([]*table.Table, error) {
	out := make([]*table.Table, 0, len(paths))
	for _, path := range paths {
		t, _, err := table.ReadFile(path, 0)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		out = append(out, t)
	}
	return out, nil
}

func writeCSVFile(path string, t *table.Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := table.WriteCSV(f, t); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func parsePairs(value string) map[string]string {
	out := map[string]string{}
	for _, pair := range parseList(value) {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) == 2 && parts[0] != "" && parts[1] != "" {
			out[parts[0]] = parts[1]
		}
	}
	return out
}

func parseList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func usage() {
	fmt.Println("usage: guestfile <command>")
	fmt.Println("commands:")
	fmt.Println("  preview --input=guests.csv [--rows=8]")
	fmt.Println("  inspect --input=guests.csv [--header-row=1]")
	fmt.Println("  run --input=guests.csv --rid=R123 [--header-row=1] [--country=\"United Kingdom\"]")
	fmt.Println("      [--name-col=\"Full Name\"] [--map raw=standard,...] [--notes col,...]")
	fmt.Println("      [--truthy v,...] [--all-true] [--out=dir]")
	fmt.Println("  mappings:show")
	fmt.Println("  append --out=combined.csv file1.csv file2.csv ...")
	fmt.Println("  merge --id=originalGuestId --out=merged.csv file1.csv file2.csv ...")
	fmt.Println("  runs:list [--limit=20]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
