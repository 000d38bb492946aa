package gpx

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/eemil100/tcx-converter/internal/geo"
	"github.com/eemil100/tcx-converter/internal/xerrors"
)

const trackFixture = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test">
  <trk>
    <name>Morning run</name>
    <trkseg>
      <trkpt lat="60.1699" lon="24.9384">
        <ele>12.5</ele>
        <time>2024-05-01T10:00:00Z</time>
      </trkpt>
      <trkpt lat="60.1710" lon="24.9400">
        <ele>13.0</ele>
        <time>2024-05-01T10:00:30Z</time>
      </trkpt>
      <trkpt lat="60.1725" lon="24.9425">
        <time>2024-05-01T10:01:00+00:00</time>
      </trkpt>
    </trkseg>
  </trk>
</gpx>
`

func writeTrack(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "track.gpx")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	track, err := Load(writeTrack(t, trackFixture))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if track.Name != "Morning run" {
		t.Errorf("Name = %q, want %q", track.Name, "Morning run")
	}
	if len(track.Points) != 3 {
		t.Fatalf("got %d points, want 3", len(track.Points))
	}

	wantStart := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	if !track.Start().Equal(wantStart) {
		t.Errorf("Start() = %v, want %v", track.Start(), wantStart)
	}

	// elevation is optional and defaults to 0
	if track.Points[2].Elevation != 0 {
		t.Errorf("Elevation = %v, want 0 for point without <ele>", track.Points[2].Elevation)
	}
}

func TestLoadCumulativeDistance(t *testing.T) {
	t.Parallel()

	track, err := Load(writeTrack(t, trackFixture))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if track.Points[0].Distance != 0 {
		t.Errorf("first point Distance = %v, want 0", track.Points[0].Distance)
	}

	// each point's cumulative distance is the prefix sum of consecutive
	// haversine distances, and never decreases
	sum := 0.0
	for i := 1; i < len(track.Points); i++ {
		prev, cur := track.Points[i-1], track.Points[i]
		sum += geo.Haversine(prev.Lat, prev.Lon, cur.Lat, cur.Lon)
		if math.Abs(cur.Distance-sum) > 1e-9 {
			t.Errorf("point %d Distance = %v, want prefix sum %v", i, cur.Distance, sum)
		}
		if cur.Distance < prev.Distance {
			t.Errorf("point %d Distance = %v decreased from %v", i, cur.Distance, prev.Distance)
		}
	}
	if track.TotalDistance() != track.Points[len(track.Points)-1].Distance {
		t.Errorf("TotalDistance() = %v, want last point's Distance", track.TotalDistance())
	}
}

func TestLoadSpansSegments(t *testing.T) {
	t.Parallel()

	track, err := Load(writeTrack(t, `<gpx>
  <trk>
    <trkseg>
      <trkpt lat="60.0" lon="24.0"><time>2024-05-01T10:00:00Z</time></trkpt>
    </trkseg>
    <trkseg>
      <trkpt lat="60.1" lon="24.0"><time>2024-05-01T10:05:00Z</time></trkpt>
    </trkseg>
  </trk>
</gpx>`))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(track.Points) != 2 {
		t.Fatalf("got %d points, want 2", len(track.Points))
	}
	// distance accumulates across the segment boundary
	if track.Points[1].Distance <= 0 {
		t.Errorf("Distance = %v after segment boundary, want > 0", track.Points[1].Distance)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		wantKind xerrors.Kind
	}{
		{
			name:     "not xml",
			content:  "not a gpx file",
			wantKind: xerrors.KindParse,
		},
		{
			name:     "no tracks",
			content:  `<gpx version="1.1"></gpx>`,
			wantKind: xerrors.KindParse,
		},
		{
			name:     "track with no points",
			content:  `<gpx><trk><trkseg></trkseg></trk></gpx>`,
			wantKind: xerrors.KindValidation,
		},
		{
			name:     "point without timestamp",
			content:  `<gpx><trk><trkseg><trkpt lat="60.0" lon="24.0"/></trkseg></trk></gpx>`,
			wantKind: xerrors.KindParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(writeTrack(t, tt.content))
			if err == nil {
				t.Fatal("Load() succeeded, want error")
			}
			if !xerrors.IsKind(err, tt.wantKind) {
				t.Errorf("error = %v, want kind %q", err, tt.wantKind)
			}
		})
	}
}
