package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/chrissnell/lunarday/internal/log"
	"github.com/chrissnell/lunarday/pkg/config"
	"github.com/chrissnell/lunarday/pkg/lunar"
	"github.com/chrissnell/lunarday/pkg/moonrise"
)

var (
	dateStr   string
	lat, lon  float64
	tz        string
	ephemeris string
	asJSON    bool
	debug     bool

	engine *lunar.Engine
	loc    *time.Location
	date   time.Time
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:               "moon-phase",
		Short:             "Describe the moon and its lunar days for a calendar date",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			log.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot := engine.Info(date, lunar.Coordinate{Latitude: lat, Longitude: lon})
			if asJSON {
				return printJSON(snapshot)
			}
			printSnapshot(snapshot)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&dateStr, "date", "", "calendar date, YYYY-MM-DD (default today in --tz)")
	pf.Float64Var(&lat, "lat", 0, "observer latitude in decimal degrees, north positive")
	pf.Float64Var(&lon, "lon", 0, "observer longitude in decimal degrees, east positive")
	pf.StringVar(&tz, "tz", "UTC", "IANA time zone the date is interpreted in")
	pf.StringVar(&ephemeris, "ephemeris", moonrise.NameMeeus, fmt.Sprintf("moon rise/set solver %v", moonrise.Names()))
	pf.BoolVar(&asJSON, "json", false, "print JSON instead of text")
	pf.BoolVar(&debug, "debug", false, "turn on debugging output")

	root.AddCommand(rangeCmd())
	return root
}

// setup validates the shared flags and builds the engine
func setup(cmd *cobra.Command, args []string) error {
	if err := log.Init(debug); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := config.ValidateCoordinate(lat, lon); err != nil {
		return fmt.Errorf("invalid location: %w", err)
	}

	var err error
	loc, err = time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("invalid time zone: %w", err)
	}

	date = time.Now().In(loc)
	if dateStr != "" {
		date, err = time.ParseInLocation(time.DateOnly, dateStr, loc)
		if err != nil {
			return fmt.Errorf("error parsing date: %w", err)
		}
	}

	solver, err := moonrise.New(ephemeris)
	if err != nil {
		return err
	}
	engine = lunar.NewEngine(solver, lunar.WithLogger(log.GetSugaredLogger()))
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printSnapshot(s lunar.Snapshot) {
	fmt.Printf("Moon for %s at %s\n", s.Date.Format(time.DateOnly), s.Location)
	fmt.Printf("  Phase:      %s\n", s.Phase)
	fmt.Printf("  Trajectory: %s\n", s.Trajectory)
	fmt.Printf("  Age:        %.2f days\n", lunar.AgeOf(s.Date))
	direction := "waning"
	if s.Illumination.Waxing {
		direction = "waxing"
	}
	fmt.Printf("  Lit:        %.1f%% (%s, elongation %.1f°)\n", s.Illumination.Fraction*100, direction, s.Illumination.Elongation)
	for i, seg := range s.Segments {
		fmt.Printf("  Lunar day %d (segment %d): %s, rise %s, set %s\n",
			seg.Age, i+1, seg.Zodiac, formatEvent(seg.Rise, loc), formatEvent(seg.Set, loc))
	}
}

// formatEvent renders a resolved event in the observer's time zone
func formatEvent(e lunar.Event, loc *time.Location) string {
	if !e.Resolved() {
		return e.String()
	}
	return e.Time.In(loc).Format("15:04:05 MST")
}
