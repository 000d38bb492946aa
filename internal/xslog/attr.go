package xslog

import (
	"log/slog"
	"time"
)

func Error(err error) slog.Attr {
	const errorKey = "error"
	return slog.String(errorKey, err.Error())
}

func Path(path string) slog.Attr {
	const pathKey = "path"
	return slog.String(pathKey, path)
}

func Count(count int) slog.Attr {
	const countKey = "count"
	return slog.Int(countKey, count)
}

func Start(t time.Time) slog.Attr {
	const startKey = "start"
	return slog.Time(startKey, t)
}

func End(t time.Time) slog.Attr {
	const endKey = "end"
	return slog.Time(endKey, t)
}

func Duration(duration time.Duration) slog.Attr {
	const durationKey = "duration"
	return slog.Duration(durationKey, duration)
}

func RunID(id string) slog.Attr {
	const runIDKey = "run_id"
	return slog.String(runIDKey, id)
}

func ActivityType(activityType string) slog.Attr {
	const activityTypeKey = "activity_type"
	return slog.String(activityTypeKey, activityType)
}

func DistanceMeters(meters float64) slog.Attr {
	const distanceKey = "distance_meters"
	return slog.Float64(distanceKey, meters)
}
