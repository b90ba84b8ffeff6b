// Command validate checks a stored base mask for integrity: its shape, the
// sea-seeded pole row, a plausible land fraction, agreement with the samples
// it was built from, and that it aggregates cleanly to the target grid.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -store landmask.db \
//	  -resolution 1 \
//	  -target 45x90 \
//	  -samples data/samples.json
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/landmask-etl/internal/adapter/fixture"
	"github.com/couchcryptid/landmask-etl/internal/adapter/sqlite"
	"github.com/couchcryptid/landmask-etl/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// maxReportedErrors bounds per-phase detail so a bad mask does not flood the output.
const maxReportedErrors = 20

type options struct {
	storePath   string
	resolution  int
	target      domain.Shape
	samplesPath string
	minLand     float64
	maxLand     float64
}

func main() {
	storePath := flag.String("store", "landmask.db", "path to the sqlite mask store")
	resolution := flag.Int("resolution", 1, "base grid resolution in cells per degree")
	target := flag.String("target", "45x90", "aggregation target as ROWSxCOLS")
	samplesPath := flag.String("samples", "", "samples fixture the mask was built from (optional)")
	minLand := flag.Float64("min-land", 0.15, "lowest acceptable land fraction")
	maxLand := flag.Float64("max-land", 0.45, "highest acceptable land fraction")
	flag.Parse()

	shape, err := parseShape(*target)
	if err != nil || *resolution <= 0 {
		flag.Usage()
		os.Exit(1)
	}

	os.Exit(run(options{
		storePath:   *storePath,
		resolution:  *resolution,
		target:      shape,
		samplesPath: *samplesPath,
		minLand:     *minLand,
		maxLand:     *maxLand,
	}))
}

func run(opts options) int {
	fmt.Println("=== Land Mask Integrity Validation ===")
	fmt.Println()

	store, err := sqlite.Open(opts.storePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}
	defer store.Close()

	mask, ok, err := store.LoadMask(context.Background(), opts.resolution)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}
	if !ok {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", missingMaskError(context.Background(), store, opts.resolution))
		return 1
	}

	var samples []domain.Sample
	if opts.samplesPath != "" {
		f, err := fixture.Read(opts.samplesPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
			return 1
		}
		samples = f.Samples
	}

	phases := []*phase{
		validateShape(mask, opts.resolution),
		validatePoleRow(mask),
		validateLandFraction(mask, opts.minLand, opts.maxLand),
		validateSampleAgreement(mask, samples),
		validateAggregation(mask, opts.target),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Mask: %s, %d land cells, %d samples checked\n", mask.Shape(), mask.LandCount(), len(samples))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			if i == maxReportedErrors {
				fmt.Printf("  ... %d more\n", len(p.errors)-maxReportedErrors)
				break
			}
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phases ──

func validateShape(mask domain.Mask, resolution int) *phase {
	p := &phase{name: "Phase 1: Base shape"}
	if got, want := mask.Shape(), domain.BaseShape(resolution); got != want {
		p.errorf("base mask is %s, resolution %d needs %s", got, resolution, want)
	}
	return p
}

func validatePoleRow(mask domain.Mask) *phase {
	p := &phase{name: "Phase 2: Pole row is sea"}
	for lon, v := range mask.Row(0) {
		if v != 0 {
			p.errorf("row 0 col %d is land", lon)
		}
	}
	return p
}

func validateLandFraction(mask domain.Mask, minLand, maxLand float64) *phase {
	p := &phase{name: "Phase 3: Land fraction"}
	shape := mask.Shape()
	frac := float64(mask.LandCount()) / float64(shape.Rows*shape.Cols)
	fmt.Printf("  land fraction: %.3f\n", frac)
	if frac < minLand || frac > maxLand {
		p.errorf("land fraction %.3f outside [%.3f, %.3f]", frac, minLand, maxLand)
	}
	return p
}

// validateSampleAgreement re-projects the samples and checks every sampled
// cell kept its category. Row 0 is skipped because filling seeds it to sea.
func validateSampleAgreement(mask domain.Mask, samples []domain.Sample) *phase {
	p := &phase{name: "Phase 4: Sample agreement"}
	if len(samples) == 0 {
		return p
	}

	g := domain.ProjectAll(domain.NewGrid(mask.Shape().Rows, mask.Shape().Cols), samples)
	for lat := 1; lat < mask.Shape().Rows; lat++ {
		for lon, c := range g.Row(lat) {
			if !c.Known() {
				continue
			}
			if (c == domain.Land) != mask.Land(lat, lon) {
				p.errorf("cell (%d, %d) sampled %s", lat, lon, c)
			}
		}
	}
	return p
}

// validateAggregation checks the target divides the base grid and that the
// aggregated land fraction stays close to the base fraction.
func validateAggregation(mask domain.Mask, target domain.Shape) *phase {
	p := &phase{name: "Phase 5: Aggregation to " + target.String()}

	agg, err := domain.Aggregate(mask, target)
	if err != nil {
		p.errorf("%v", err)
		return p
	}
	if agg.Shape() != target {
		p.errorf("aggregated shape %s, want %s", agg.Shape(), target)
	}

	base := float64(mask.LandCount()) / float64(mask.Shape().Rows*mask.Shape().Cols)
	got := float64(agg.LandCount()) / float64(target.Rows*target.Cols)
	if math.Abs(base-got) > 0.05 {
		p.errorf("aggregated land fraction %.3f drifts from base %.3f", got, base)
	}
	return p
}

// missingMaskError names the resolutions the store does hold, so a wrong
// -resolution flag is easy to spot.
func missingMaskError(ctx context.Context, store *sqlite.Store, resolution int) error {
	stored, err := store.Resolutions(ctx)
	if err != nil {
		return fmt.Errorf("no base mask stored for resolution %d (listing stored resolutions: %w)", resolution, err)
	}
	if len(stored) == 0 {
		return fmt.Errorf("no base mask stored for resolution %d: store is empty", resolution)
	}
	return fmt.Errorf("no base mask stored for resolution %d: store holds %v", resolution, stored)
}

func parseShape(s string) (domain.Shape, error) {
	rows, cols, ok := strings.Cut(s, "x")
	if !ok {
		return domain.Shape{}, fmt.Errorf("shape %q: want ROWSxCOLS", s)
	}
	r, err := strconv.Atoi(rows)
	if err != nil {
		return domain.Shape{}, fmt.Errorf("shape %q: %w", s, err)
	}
	c, err := strconv.Atoi(cols)
	if err != nil {
		return domain.Shape{}, fmt.Errorf("shape %q: %w", s, err)
	}
	return domain.Shape{Rows: r, Cols: c}, nil
}
