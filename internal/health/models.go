package health

import "time"

// Workout is one recorded exercise session from the archive: a time window
// plus the exporter's summary metrics. Immutable once extracted.
type Workout struct {
	Start         time.Time
	End           time.Time
	ActivityType  string
	TotalDistance float64
	TotalCalories float64
	// Attributes holds every attribute of the source element, including the
	// ones already lifted into typed fields.
	Attributes map[string]string
}

// Duration is the length of the session window.
func (w Workout) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Contains reports whether t falls inside the session window, inclusive on
// both ends.
func (w Workout) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// HeartRateSample is one heart-rate reading. Samples are collected in file
// order and carry no sortedness guarantee.
type HeartRateSample struct {
	Time time.Time
	BPM  float64
}
