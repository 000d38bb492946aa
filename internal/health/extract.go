package health

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/eemil100/tcx-converter/internal/timeutil"
	"github.com/eemil100/tcx-converter/internal/xerrors"
)

const heartRateRecordType = "HKQuantityTypeIdentifierHeartRate"

type archiveDocument struct {
	XMLName  xml.Name         `xml:"HealthData"`
	Workouts []workoutElement `xml:"Workout"`
	Records  []recordElement  `xml:"Record"`
}

// workoutElement keeps the raw attribute bag so the extracted session can
// carry every exporter attribute, not just the ones lifted into fields.
type workoutElement struct {
	Attrs []xml.Attr `xml:",any,attr"`
}

type recordElement struct {
	Type      string `xml:"type,attr"`
	StartDate string `xml:"startDate,attr"`
	Value     string `xml:"value,attr"`
}

// ExtractDir reads every *.xml file under dir and returns all workout
// sessions and heart-rate samples found across them. Files are visited in
// lexical path order so extraction is deterministic. Any malformed file
// aborts the whole extraction.
func ExtractDir(dir string) ([]Workout, []HeartRateSample, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.xml"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list archive files: %w", err)
	}
	sort.Strings(paths)

	var (
		workouts []Workout
		samples  []HeartRateSample
	)
	for _, path := range paths {
		w, s, err := extractFile(path)
		if err != nil {
			return nil, nil, err
		}
		workouts = append(workouts, w...)
		samples = append(samples, s...)
	}
	return workouts, samples, nil
}

func extractFile(path string) ([]Workout, []HeartRateSample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open archive file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var doc archiveDocument
	if err := xml.NewDecoder(f).Decode(&doc); err != nil {
		return nil, nil, xerrors.Parse(
			xerrors.WithMessage("malformed health archive"),
			xerrors.WithSource(path),
			xerrors.WithCause(err),
		)
	}

	workouts := make([]Workout, 0, len(doc.Workouts))
	for _, el := range doc.Workouts {
		w, err := el.toWorkout()
		if err != nil {
			return nil, nil, xerrors.Parse(
				xerrors.WithMessage("malformed workout entry"),
				xerrors.WithSource(path),
				xerrors.WithCause(err),
			)
		}
		workouts = append(workouts, w)
	}

	var samples []HeartRateSample
	for _, el := range doc.Records {
		if el.Type != heartRateRecordType {
			continue
		}
		t, err := timeutil.ParseUTC(el.StartDate)
		if err != nil {
			return nil, nil, xerrors.Parse(
				xerrors.WithMessage("malformed heart-rate record"),
				xerrors.WithSource(path),
				xerrors.WithCause(err),
			)
		}
		bpm, err := parseFloat(el.Value)
		if err != nil {
			return nil, nil, xerrors.Parse(
				xerrors.WithMessage("malformed heart-rate record"),
				xerrors.WithSource(path),
				xerrors.WithCause(err),
			)
		}
		samples = append(samples, HeartRateSample{Time: t, BPM: bpm})
	}
	return workouts, samples, nil
}

func (el workoutElement) toWorkout() (Workout, error) {
	attrs := make(map[string]string, len(el.Attrs))
	for _, a := range el.Attrs {
		attrs[a.Name.Local] = a.Value
	}

	start, err := timeutil.ParseUTC(attrs["startDate"])
	if err != nil {
		return Workout{}, fmt.Errorf("startDate: %w", err)
	}
	end, err := timeutil.ParseUTC(attrs["endDate"])
	if err != nil {
		return Workout{}, fmt.Errorf("endDate: %w", err)
	}
	if end.Before(start) {
		return Workout{}, fmt.Errorf("workout ends (%s) before it starts (%s)", attrs["endDate"], attrs["startDate"])
	}
	distance, err := parseFloat(attrs["totalDistance"])
	if err != nil {
		return Workout{}, fmt.Errorf("totalDistance: %w", err)
	}
	calories, err := parseFloat(attrs["totalEnergyBurned"])
	if err != nil {
		return Workout{}, fmt.Errorf("totalEnergyBurned: %w", err)
	}

	return Workout{
		Start:         start,
		End:           end,
		ActivityType:  attrs["workoutActivityType"],
		TotalDistance: distance,
		TotalCalories: calories,
		Attributes:    attrs,
	}, nil
}

// parseFloat treats a missing attribute as 0.
func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
