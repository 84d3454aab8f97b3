// Command ask runs a single action locally against the configured datasets
// and prints the messages the dialogue engine would receive.
//
// Usage:
//
//	go run ./cmd/ask -action action_find_nearby_facilities -location 10243
//	go run ./cmd/ask -action action_flood_risk_assessment \
//	  -severity high -water-level knee -injuries yes -trapped no -seed 7
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/couchcryptid/flood-aid-actions/internal/actions"
	"github.com/couchcryptid/flood-aid-actions/internal/adapter/mapbox"
	"github.com/couchcryptid/flood-aid-actions/internal/config"
	"github.com/couchcryptid/flood-aid-actions/internal/dataset"
	"github.com/couchcryptid/flood-aid-actions/internal/domain"
	"github.com/couchcryptid/flood-aid-actions/internal/observability"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	action := flag.String("action", string(actions.Fallback), "action name to run")
	sender := flag.String("sender", "local", "sender id attached to the request")
	location := flag.String("location", "", "location slot (city or postcode)")
	severity := flag.String("severity", "", "severity slot (low, medium, high)")
	waterLevel := flag.String("water-level", "", "water_level slot (ankle, knee, waist, above)")
	injuries := flag.String("injuries", "", "injuries slot: yes, no, or empty for unknown")
	trapped := flag.String("trapped", "", "trapped slot: yes, no, or empty for unknown")
	seed := flag.Uint64("seed", 0, "random seed for reproducible sampling (0 uses real entropy)")
	geocode := flag.Bool("geocode", cfg.MapboxEnabled, "resolve the location through Mapbox")
	verbose := flag.Bool("v", false, "log to stderr")
	flag.Parse()

	slots := domain.Slots{
		Location:   *location,
		Severity:   *severity,
		WaterLevel: *waterLevel,
	}
	if slots.Injuries, err = parseFlag(*injuries); err != nil {
		fmt.Fprintf(os.Stderr, "-injuries: %v\n", err)
		os.Exit(2)
	}
	if slots.Trapped, err = parseFlag(*trapped); err != nil {
		fmt.Fprintf(os.Stderr, "-trapped: %v\n", err)
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if *verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	metrics := observability.NewMetricsForTesting()

	opts := []actions.Option{}
	switch {
	case *seed != 0:
		opts = append(opts, actions.WithRand(actions.NewSeededRand(*seed)))
	case cfg.RandomSeed != nil:
		opts = append(opts, actions.WithRand(actions.NewSeededRand(*cfg.RandomSeed)))
	}
	if *geocode {
		if cfg.MapboxToken == "" {
			fmt.Fprintln(os.Stderr, "-geocode requires MAPBOX_TOKEN")
			os.Exit(2)
		}
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxCountry, cfg.MapboxTimeout, metrics, logger)
		opts = append(opts, actions.WithGeocoder(client))
	}

	loader := dataset.NewLoader(dataset.Paths{
		Facilities: cfg.FacilitiesPath,
		FloodInfo:  cfg.FloodInfoPath,
		Guidance:   cfg.GuidancePath,
	})
	registry := actions.New(loader, logger, metrics, opts...)

	if err := run(context.Background(), os.Stdout, registry, actions.Request{
		Action:   actions.Name(*action),
		SenderID: *sender,
		Slots:    slots,
	}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, w io.Writer, registry *actions.Registry, req actions.Request) error {
	msgs, err := registry.Run(ctx, req)
	if err != nil {
		names := make([]string, 0, len(registry.Names()))
		for _, n := range registry.Names() {
			names = append(names, string(n))
		}
		return fmt.Errorf("%w (known: %s)", err, strings.Join(names, ", "))
	}
	for i, m := range msgs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, m.Text)
	}
	return nil
}

// parseFlag maps yes/no style input onto a tri-state slot value.
func parseFlag(s string) (*bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return nil, nil
	case "yes", "y", "true":
		return domain.Bool(true), nil
	case "no", "n", "false":
		return domain.Bool(false), nil
	default:
		return nil, fmt.Errorf("want yes or no, got %q", s)
	}
}
