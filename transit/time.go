package transit

import (
	"fmt"
	"strings"
	"time"
)

// slZone is the zone SL timestamps without an offset are interpreted in.
var slZone = mustLoadZone()

func mustLoadZone() *time.Location {
	loc, err := time.LoadLocation("Europe/Stockholm")
	if err != nil {
		// tzdata missing on the host; CET is close enough for display.
		return time.FixedZone("CET", 1*60*60)
	}
	return loc
}

// LocalTime decodes the timestamp formats the SL APIs emit: RFC 3339 with an
// offset, or a bare "2006-01-02T15:04:05" local time which is taken to be in
// Europe/Stockholm.
type LocalTime struct {
	time.Time
}

const bareLayout = "2006-01-02T15:04:05"

func (t *LocalTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339, s); err == nil {
		t.Time = parsed
		return nil
	}
	parsed, err := time.ParseInLocation(bareLayout, s, slZone)
	if err != nil {
		return fmt.Errorf("transit: parse time %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}

func (t LocalTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(time.RFC3339) + `"`), nil
}
