package main

import (
	"fmt"
	"time"

	go_json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/eemil100/tcx-converter/internal/health"
)

type sessionSummary struct {
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	ActivityType  string    `json:"activity_type"`
	TotalDistance float64   `json:"total_distance"`
	TotalCalories float64   `json:"total_calories"`
}

type archiveSummary struct {
	Sessions         []sessionSummary `json:"sessions"`
	HeartRateSamples int              `json:"heart_rate_samples"`
}

func inspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "List the workout sessions found in a health archive",
		Long:  "Extracts the archive and prints its workout sessions and heart-rate sample count as JSON, to help pick the right archive before converting.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			xmlDir, _ := cmd.Flags().GetString("xml-dir")

			workouts, samples, err := health.ExtractDir(xmlDir)
			if err != nil {
				return err
			}

			summary := archiveSummary{
				Sessions:         make([]sessionSummary, 0, len(workouts)),
				HeartRateSamples: len(samples),
			}
			for _, w := range workouts {
				summary.Sessions = append(summary.Sessions, sessionSummary{
					Start:         w.Start,
					End:           w.End,
					ActivityType:  w.ActivityType,
					TotalDistance: w.TotalDistance,
					TotalCalories: w.TotalCalories,
				})
			}

			data, err := go_json.MarshalIndent(summary, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode summary: %w", err)
			}
			fmt.Println(string(data))
			return nil
		},
	}
	cmd.Flags().String("xml-dir", "", "directory containing the health archive XML files")
	_ = cmd.MarkFlagRequired("xml-dir")
	return cmd
}
