// Command validate checks the dataset files the action server reads: it
// parses each file, verifies facility records and advice vocabularies, and
// confirms every advertised city resolves to a hospital.
//
// Usage:
//
//	go run ./cmd/validate
//	go run ./cmd/validate -facilities data/facilities.json -flood-info data/flood_info_de.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"slices"

	"github.com/couchcryptid/flood-aid-actions/internal/config"
	"github.com/couchcryptid/flood-aid-actions/internal/dataset"
	"github.com/couchcryptid/flood-aid-actions/internal/domain"
	"github.com/joho/godotenv"
)

var (
	severities  = []string{"low", "medium", "high"}
	waterLevels = []string{"ankle", "knee", "waist", "above"}
	// Cities named in the not-found reply; each must match a hospital.
	advertisedCities = []string{"Berlin", "Munich", "Hamburg", "Cologne"}
)

// checklistSize mirrors the number of precautions the guidance action samples.
const checklistSize = 4

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
	notes  []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) notef(format string, args ...any) {
	p.notes = append(p.notes, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: config: %v\n", err)
		os.Exit(1)
	}

	facilities := flag.String("facilities", cfg.FacilitiesPath, "path to the facility directory JSON")
	floodInfo := flag.String("flood-info", cfg.FloodInfoPath, "path to the flood advice JSON")
	guidance := flag.String("guidance", cfg.GuidancePath, "path to the guidance JSON")
	flag.Parse()

	os.Exit(run(dataset.Paths{Facilities: *facilities, FloodInfo: *floodInfo, Guidance: *guidance}))
}

func run(paths dataset.Paths) int {
	fmt.Println("=== Flood Dataset Validation ===")
	fmt.Println()

	loader := dataset.NewLoader(paths)
	ctx := context.Background()

	var phases []*phase

	facilities, err := loader.LoadFacilities(ctx)
	if err != nil {
		p := &phase{name: "Phase 1: Facilities (" + paths.Facilities + ")"}
		p.errorf("%v", err)
		phases = append(phases, p)
	} else {
		phases = append(phases, validateFacilities(facilities), validateCityCoverage(facilities))
	}

	advice, err := loader.LoadFloodAdvice(ctx)
	if err != nil {
		p := &phase{name: "Phase 3: Flood Advice (" + paths.FloodInfo + ")"}
		p.errorf("%v", err)
		phases = append(phases, p)
	} else {
		phases = append(phases, validateAdvice(advice))
	}

	phases = append(phases, validateGuidance(paths.Guidance))

	allPassed := report(phases)
	fmt.Println()
	fmt.Printf("Records: %d facilities\n", len(facilities))

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func report(phases []*phase) bool {
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	for _, p := range phases {
		if len(p.errors) == 0 && len(p.notes) == 0 {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
		for _, n := range p.notes {
			fmt.Printf("  Note: %s\n", n)
		}
	}
	return allPassed
}

// ── Phase 1: Facilities ──
// Every record needs a known type and the fields rendered in replies.

func validateFacilities(facilities []domain.Facility) *phase {
	p := &phase{name: "Phase 1: Facilities (records)"}

	if len(facilities) == 0 {
		p.errorf("facility directory is empty")
		return p
	}

	counts := map[string]int{}
	for i, f := range facilities {
		kind := domain.Normalize(f.Type)
		switch kind {
		case domain.FacilityHospital, domain.FacilityShelter:
			counts[kind]++
		case "":
			p.errorf("facility %d (%q): missing type", i, f.Name)
		default:
			p.errorf("facility %d (%q): unknown type %q", i, f.Name, f.Type)
		}
		if f.Name == "" {
			p.errorf("facility %d: missing name", i)
		}
		if f.Address == "" {
			p.errorf("facility %d (%q): missing address", i, f.Name)
		}
		if domain.Normalize(f.City) == "" {
			p.errorf("facility %d (%q): missing city", i, f.Name)
		}
	}

	if counts[domain.FacilityHospital] == 0 {
		p.errorf("no hospitals: facility lookups will always answer with no hospital data")
	}
	if counts[domain.FacilityShelter] == 0 {
		p.notef("no shelters: located replies will list hospitals only")
	}
	return p
}

// ── Phase 2: City Coverage ──
// The not-found reply suggests specific cities, so each must resolve.

func validateCityCoverage(facilities []domain.Facility) *phase {
	p := &phase{name: "Phase 2: City Coverage (suggested cities)"}

	for _, city := range advertisedCities {
		match := domain.FindFacilities(firstRand{}, domain.LocationQuery{Text: city}, facilities)
		if match.Hospital == nil || !domain.CityMatches(match.Hospital.City, city) {
			p.errorf("%s: no hospital in the directory (lookup answered %s)", city, match.Kind)
			continue
		}
		if match.Shelter == nil {
			p.notef("%s: no shelter in the directory", city)
		}
	}
	return p
}

// firstRand always picks index 0; coverage checks never sample.
type firstRand struct{}

func (firstRand) IntN(int) int { return 0 }

// ── Phase 3: Flood Advice ──
// Every label the dialogue engine can fill must have advice.

func validateAdvice(advice domain.FloodAdviceSet) *phase {
	p := &phase{name: "Phase 3: Flood Advice (vocabularies)"}

	checkVocabulary(p, "severity", advice.Severity, severities)
	checkVocabulary(p, "water_level_advice", advice.WaterLevelAdvice, waterLevels)

	lists := []struct {
		key  string
		tips []string
	}{
		{"injuries_yes", advice.InjuriesYes},
		{"injuries_no", advice.InjuriesNo},
		{"trapped", advice.TrappedTips},
		{"precautions", advice.Precautions},
	}
	for _, l := range lists {
		if len(l.tips) == 0 {
			p.errorf("%s: missing or empty", l.key)
		}
		checkBlankTips(p, l.key, l.tips)
	}

	if n := len(advice.Precautions); n > 0 && n < checklistSize {
		p.notef("precautions: %d tips, checklist shows up to %d", n, checklistSize)
	}
	return p
}

func checkVocabulary(p *phase, key string, m map[string][]string, want []string) {
	for _, label := range want {
		tips, ok := m[label]
		if !ok {
			p.errorf("%s.%s: missing", key, label)
			continue
		}
		if len(tips) == 0 {
			p.errorf("%s.%s: empty", key, label)
		}
		checkBlankTips(p, key+"."+label, tips)
	}
	for label := range m {
		if !slices.Contains(want, label) {
			p.notef("%s.%s: label is never requested", key, label)
		}
	}
}

func checkBlankTips(p *phase, key string, tips []string) {
	for i, tip := range tips {
		if domain.Normalize(tip) == "" {
			p.errorf("%s[%d]: blank tip", key, i)
		}
	}
}

// ── Phase 4: Guidance ──
// The guidance file is configured but not read by any action.

func validateGuidance(path string) *phase {
	p := &phase{name: "Phase 4: Guidance (optional)"}

	if path == "" {
		p.notef("no guidance path configured")
		return p
	}
	data, err := os.ReadFile(path)
	if err != nil {
		p.notef("guidance file not readable: %v", err)
		return p
	}
	if !json.Valid(data) {
		p.errorf("%s: not valid JSON", path)
		return p
	}
	p.notef("%s parses; no action reads it", path)
	return p
}
