package mappings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"guestfile/internal"
)

// DefaultThreshold is the confirmation count at which a header variant is
// promoted to automatic mapping.
const DefaultThreshold = 3

const truthyKey = "_truthy_values_for_emailMarketingOk"

var defaultTruthyValues = []string{"yes", "true", "1", "y"}

// Store is the persisted header-mapping memory: per standard field, how
// many times each observed header variant was manually confirmed, plus the
// set of strings accepted as affirmative marketing consent.
type Store struct {
	path   string
	fields map[string]map[string]int
	truthy []string
}

// Load reads the mapping file at path. A missing or malformed file is not
// an error: the store degrades to built-in defaults and writes them back
// so the next run starts from a known state.
func Load(path string) *Store {
	s := &Store{path: path}

	raw, err := os.ReadFile(path)
	if err != nil {
		s.reset()
		_ = s.Save()
		return s
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		s.reset()
		_ = s.Save()
		return s
	}

	s.fields = map[string]map[string]int{}
	for key, value := range doc {
		if key == truthyKey {
			_ = json.Unmarshal(value, &s.truthy)
			continue
		}

		counts := map[string]int{}
		if err := json.Unmarshal(value, &counts); err == nil {
			s.fields[key] = counts
			continue
		}

		// Legacy format: a plain list of variants. Treat each as already
		// confirmed so existing behaviour does not regress.
		var variants []string
		if err := json.Unmarshal(value, &variants); err == nil {
			counts = map[string]int{}
			for _, v := range variants {
				counts[v] = DefaultThreshold
			}
			s.fields[key] = counts
		}
	}

	if len(s.truthy) == 0 {
		s.truthy = append([]string{}, defaultTruthyValues...)
	}
	return s
}

func (s *Store) reset() {
	s.truthy = append([]string{}, defaultTruthyValues...)
	s.fields = map[string]map[string]int{
		internal.FieldFirstName: {"First Name": DefaultThreshold, "FirstName": DefaultThreshold},
		internal.FieldLastName:  {"Last Name": DefaultThreshold, "LastName": DefaultThreshold, "Surname": DefaultThreshold},
	}
}

// RecordMapping adds one confirmation for a variant→standard-field pair.
// Callers confirm each pair at most once per run.
func (s *Store) RecordMapping(standardField, variant string) {
	if s.fields[standardField] == nil {
		s.fields[standardField] = map[string]int{}
	}
	s.fields[standardField][variant]++
}

// RecordTruthyValues appends newly confirmed consent values, lowercased.
func (s *Store) RecordTruthyValues(values []string) {
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" || s.IsTruthy(v) {
			continue
		}
		s.truthy = append(s.truthy, v)
	}
}

// TruthyValues returns the accepted consent strings, lowercased.
func (s *Store) TruthyValues() []string {
	out := make([]string, 0, len(s.truthy))
	for _, v := range s.truthy {
		out = append(out, strings.ToLower(v))
	}
	return out
}

func (s *Store) IsTruthy(value string) bool {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, v := range s.truthy {
		if strings.ToLower(v) == value {
			return true
		}
	}
	return false
}

// ReverseIndex builds lowercased variant → standard field for every variant
// whose count has reached the threshold. guestNotes never auto-maps: notes
// are always an explicit combine decision. Fields are walked in schema
// order so a variant registered under two fields resolves the same way on
// every run (the later field in schema order wins).
func (s *Store) ReverseIndex(threshold int) map[string]string {
	out := map[string]string{}
	for _, field := range internal.StandardColumns {
		if field == internal.FieldGuestNotes {
			continue
		}
		for variant, count := range s.fields[field] {
			if count >= threshold {
				out[strings.ToLower(variant)] = field
			}
		}
	}
	return out
}

// AutoMapped reports the standard field a variant resolves to, if promoted.
func (s *Store) AutoMapped(variant string, threshold int) (string, bool) {
	field, ok := s.ReverseIndex(threshold)[strings.ToLower(variant)]
	return field, ok
}

// Save persists the whole store with a write-then-rename replace. An I/O
// failure is returned to the caller; in-memory state is unaffected.
func (s *Store) Save() error {
	doc := map[string]any{truthyKey: s.truthy}
	for field, counts := range s.fields {
		doc[field] = counts
	}

	blob, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode mappings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
