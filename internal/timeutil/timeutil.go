// Package timeutil normalizes the timestamp dialects found in health
// archives and GPX logs to UTC at the ingestion boundary, so nothing
// downstream depends on ambient time-zone state.
package timeutil

import (
	"fmt"
	"strings"
	"time"
)

var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
}

// ParseUTC parses a timestamp, accepting RFC 3339 and the space-separated
// form health exporters emit. A trailing "Z" is rewritten to an explicit
// zero offset before parsing. The result is always in UTC; layouts without
// an offset are taken as UTC.
func ParseUTC(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	if strings.HasSuffix(s, "Z") {
		s = strings.TrimSuffix(s, "Z") + "+00:00"
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
