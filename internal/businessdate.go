package internal

import "time"

// Orders placed before the morning cutoff belong to the previous
// business day's batch, the way operations staff group them.
const businessCutoffHour = 10

const (
	bucketLayout  = "2006-01-02"
	SelectionAll  = "all"
	AllDatesLabel = "all-dates"
)

// gulfZone is the reference timezone for all business-date math (UTC+4).
var gulfZone = time.FixedZone("GST", 4*60*60)

// BusinessDate maps a creation instant to its business-date bucket.
// The zero instant is the invalid marker and reports false; such
// records are excluded from date-bucketed views, never defaulted.
func BusinessDate(t time.Time) (string, bool) {
	if t.IsZero() {
		return "", false
	}

	local := t.In(gulfZone)
	if local.Hour() < businessCutoffHour {
		local = local.AddDate(0, 0, -1)
	}
	return local.Format(bucketLayout), true
}

// ParseInstant parses an ISO-8601 creation instant. An empty or
// unparseable value yields the zero time and false.
func ParseInstant(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
