// Package datetime handles the wire format for stay dates. The console
// writes "2006-01-02 15:04:05"; reads accept anything ISO-parseable so
// records created by other tooling still load.
package datetime

import (
	"fmt"
	"time"
)

const WireFormat = "2006-01-02 15:04:05"

var readLayouts = []string{
	WireFormat,
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func Format(t time.Time) string {
	return t.Format(WireFormat)
}

func Parse(s string) (time.Time, error) {
	for _, layout := range readLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized datetime %q", s)
}
