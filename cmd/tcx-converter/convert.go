package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/eemil100/tcx-converter/internal/activity"
	"github.com/eemil100/tcx-converter/internal/config"
	"github.com/eemil100/tcx-converter/internal/gpx"
	"github.com/eemil100/tcx-converter/internal/health"
	"github.com/eemil100/tcx-converter/internal/tcx"
	"github.com/eemil100/tcx-converter/internal/xerrors"
	"github.com/eemil100/tcx-converter/internal/xslog"
)

func addConvertFlags(cmd *cobra.Command) {
	cmd.Flags().String("xml-dir", "", "directory containing the health archive XML files")
	cmd.Flags().String("gpx", "", "GPX track log file")
	cmd.Flags().String("output", "", "output TCX path (default from TCX_OUTPUT, else "+config.DefaultOutput+")")
	_ = cmd.MarkFlagRequired("xml-dir")
	_ = cmd.MarkFlagRequired("gpx")
}

func runConvert(cmd *cobra.Command, _ []string) error {
	xmlDir, _ := cmd.Flags().GetString("xml-dir")
	gpxPath, _ := cmd.Flags().GetString("gpx")
	output, _ := cmd.Flags().GetString("output")

	cfg, err := config.Read()
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if output == "" {
		output = cfg.Output
	}

	logger := xslog.FromContext(cmd.Context()).With(xslog.RunID(uuid.NewString()))
	started := time.Now()

	workouts, samples, err := health.ExtractDir(xmlDir)
	if err != nil {
		return err
	}
	logger.Info("extracted health archive",
		xslog.Path(xmlDir),
		xslog.Count(len(workouts)),
	)
	logger.Debug("heart-rate samples", xslog.Count(len(samples)))

	track, err := gpx.Load(gpxPath)
	if err != nil {
		return err
	}
	logger.Info("loaded track",
		xslog.Path(gpxPath),
		xslog.Count(len(track.Points)),
		xslog.Start(track.Start()),
		xslog.DistanceMeters(track.TotalDistance()),
	)

	workout, ok := activity.Match(workouts, track.Start())
	if !ok {
		return xerrors.NoMatch(xerrors.WithMessage(
			fmt.Sprintf("no workout session contains the track start time %s", track.Start()),
		))
	}
	logger.Info("matched workout session",
		xslog.ActivityType(workout.ActivityType),
		xslog.Start(workout.Start),
		xslog.End(workout.End),
	)

	merged := activity.MergeHeartRate(track.Points, samples, workout, cfg.HRTolerance)

	if err := tcx.WriteFile(output, tcx.Document(workout, merged)); err != nil {
		logger.Error("failed to write TCX", xslog.Path(output), xslog.Error(err))
		return err
	}
	logger.Info("wrote TCX", xslog.Path(output), xslog.Duration(time.Since(started)))
	fmt.Printf("Written TCX: %s\n", output)
	return nil
}
