package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/chrissnell/lunarday/pkg/lunar"
)

func rangeCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "range",
		Short: "Print one line per day starting at --date",
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 1 {
				return fmt.Errorf("--days must be at least 1")
			}

			snapshots := engine.Range(date, days, lunar.Coordinate{Latitude: lat, Longitude: lon})
			if asJSON {
				return printJSON(snapshots)
			}

			for _, s := range snapshots {
				ages := make([]string, 0, len(s.Segments))
				for _, seg := range s.Segments {
					ages = append(ages, fmt.Sprintf("%d/%s", seg.Age, seg.Zodiac))
				}
				fmt.Printf("%s  %-15s %-11s %s\n", s.Date.Format(time.DateOnly), s.Phase, s.Trajectory, strings.Join(ages, " "))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 30, "number of days to print")
	return cmd
}
