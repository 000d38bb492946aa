// Package tcx serializes a merged activity into a Training Center Database
// (TCX v2) document.
package tcx

import (
	"encoding/xml"
	"fmt"
	"os"
	"time"

	"github.com/eemil100/tcx-converter/internal/activity"
	"github.com/eemil100/tcx-converter/internal/health"
)

const (
	namespace    = "http://www.garmin.com/xmlschemas/TrainingCenterDatabase/v2"
	xsiNamespace = "http://www.w3.org/2001/XMLSchema-instance"

	sportOther      = "Other"
	intensityActive = "Active"
	triggerManual   = "Manual"
)

type TrainingCenterDatabase struct {
	XMLName    xml.Name   `xml:"TrainingCenterDatabase"`
	Xmlns      string     `xml:"xmlns,attr"`
	XmlnsXsi   string     `xml:"xmlns:xsi,attr"`
	Activities Activities `xml:"Activities"`
}

type Activities struct {
	Activity Activity `xml:"Activity"`
}

type Activity struct {
	Sport string `xml:"Sport,attr"`
	ID    string `xml:"Id"`
	Lap   Lap    `xml:"Lap"`
}

type Lap struct {
	StartTime        string  `xml:"StartTime,attr"`
	TotalTimeSeconds float64 `xml:"TotalTimeSeconds"`
	DistanceMeters   float64 `xml:"DistanceMeters"`
	Calories         int     `xml:"Calories"`
	Intensity        string  `xml:"Intensity"`
	TriggerMethod    string  `xml:"TriggerMethod"`
	Track            Track   `xml:"Track"`
}

type Track struct {
	Trackpoints []Trackpoint `xml:"Trackpoint"`
}

type Trackpoint struct {
	Time           string        `xml:"Time"`
	Position       Position      `xml:"Position"`
	AltitudeMeters float64       `xml:"AltitudeMeters"`
	DistanceMeters float64       `xml:"DistanceMeters"`
	HeartRateBpm   *HeartRateBpm `xml:"HeartRateBpm,omitempty"`
}

type Position struct {
	LatitudeDegrees  float64 `xml:"LatitudeDegrees"`
	LongitudeDegrees float64 `xml:"LongitudeDegrees"`
}

type HeartRateBpm struct {
	Value int `xml:"Value"`
}

// Document builds the TCX tree for one matched session and its merged track
// points. The lap reports the session's own summary distance, not the
// recomputed track distance; per-point DistanceMeters stays cumulative
// track distance.
func Document(w health.Workout, points []activity.Point) *TrainingCenterDatabase {
	trackpoints := make([]Trackpoint, 0, len(points))
	for _, pt := range points {
		tp := Trackpoint{
			Time: pt.Time.Format(time.RFC3339),
			Position: Position{
				LatitudeDegrees:  pt.Lat,
				LongitudeDegrees: pt.Lon,
			},
			AltitudeMeters: pt.Elevation,
			DistanceMeters: pt.Distance,
		}
		if pt.HeartRate != nil {
			tp.HeartRateBpm = &HeartRateBpm{Value: int(*pt.HeartRate)}
		}
		trackpoints = append(trackpoints, tp)
	}

	startISO := w.Start.Format(time.RFC3339)
	return &TrainingCenterDatabase{
		Xmlns:    namespace,
		XmlnsXsi: xsiNamespace,
		Activities: Activities{
			Activity: Activity{
				Sport: sportOther,
				ID:    startISO,
				Lap: Lap{
					StartTime:        startISO,
					TotalTimeSeconds: w.Duration().Seconds(),
					DistanceMeters:   w.TotalDistance,
					Calories:         int(w.TotalCalories),
					Intensity:        intensityActive,
					TriggerMethod:    triggerManual,
					Track:            Track{Trackpoints: trackpoints},
				},
			},
		},
	}
}

// WriteFile writes doc to path with an XML declaration and indentation,
// overwriting any existing file.
func WriteFile(path string, doc *TrainingCenterDatabase) error {
	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize TCX: %w", err)
	}
	out := append([]byte(xml.Header), data...)
	out = append(out, '\n')
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("failed to write TCX file: %w", err)
	}
	return nil
}
