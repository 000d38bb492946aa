// Package gpx loads a GPX track log into an ordered point sequence with
// cumulative great-circle distance.
package gpx

import (
	"encoding/xml"
	"fmt"
	"os"
	"time"

	"github.com/eemil100/tcx-converter/internal/geo"
	"github.com/eemil100/tcx-converter/internal/timeutil"
	"github.com/eemil100/tcx-converter/internal/xerrors"
)

type document struct {
	XMLName xml.Name `xml:"gpx"`
	Tracks  []struct {
		Name     string `xml:"name"`
		Segments []struct {
			Points []rawPoint `xml:"trkpt"`
		} `xml:"trkseg"`
	} `xml:"trk"`
}

type rawPoint struct {
	Lat       float64  `xml:"lat,attr"`
	Lon       float64  `xml:"lon,attr"`
	Elevation *float64 `xml:"ele"`
	Time      string   `xml:"time"`
}

// Point is one GPS fix, timestamps in UTC. Distance is the cumulative
// great-circle distance in meters from the start of the track; elevation
// never contributes to it.
type Point struct {
	Time      time.Time
	Lat       float64
	Lon       float64
	Elevation float64
	Distance  float64
}

type Track struct {
	Name   string
	Points []Point
}

// Start returns the timestamp of the first point.
func (t *Track) Start() time.Time {
	return t.Points[0].Time
}

// TotalDistance returns the cumulative distance at the last point.
func (t *Track) TotalDistance() float64 {
	return t.Points[len(t.Points)-1].Distance
}

// Load parses a GPX file into a Track. Points from all tracks and segments
// are flattened in document order. A track with no points at all is a
// validation failure rather than a parse failure.
func Load(path string) (*Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open track log: %w", err)
	}
	defer func() { _ = f.Close() }()

	var doc document
	if err := xml.NewDecoder(f).Decode(&doc); err != nil {
		return nil, xerrors.Parse(
			xerrors.WithMessage("malformed GPX document"),
			xerrors.WithSource(path),
			xerrors.WithCause(err),
		)
	}
	if len(doc.Tracks) == 0 {
		return nil, xerrors.Parse(
			xerrors.WithMessage("GPX document has no tracks"),
			xerrors.WithSource(path),
		)
	}

	track := &Track{Name: doc.Tracks[0].Name}
	cumulative := 0.0
	var prev *Point
	for _, trk := range doc.Tracks {
		for _, seg := range trk.Segments {
			for _, raw := range seg.Points {
				pt, err := raw.toPoint()
				if err != nil {
					return nil, xerrors.Parse(
						xerrors.WithMessage("malformed track point"),
						xerrors.WithSource(path),
						xerrors.WithCause(err),
					)
				}
				if prev != nil {
					cumulative += geo.Haversine(prev.Lat, prev.Lon, pt.Lat, pt.Lon)
				}
				pt.Distance = cumulative
				track.Points = append(track.Points, pt)
				prev = &track.Points[len(track.Points)-1]
			}
		}
	}

	if len(track.Points) == 0 {
		return nil, xerrors.Validation(
			xerrors.WithMessage("track has no points"),
			xerrors.WithSource(path),
		)
	}
	return track, nil
}

func (raw rawPoint) toPoint() (Point, error) {
	t, err := timeutil.ParseUTC(raw.Time)
	if err != nil {
		return Point{}, fmt.Errorf("point at (%v, %v): %w", raw.Lat, raw.Lon, err)
	}
	elevation := 0.0
	if raw.Elevation != nil {
		elevation = *raw.Elevation
	}
	return Point{Time: t, Lat: raw.Lat, Lon: raw.Lon, Elevation: elevation}, nil
}
