package logging

import "time"

const (
	consoleTimestampLayout = "2006-01-02 15:04:05"
	jsonTimestampLayout    = "2006-01-02T15:04:05.000Z07:00"
)

// formatTimestamp renders console timestamps in local time.
func formatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		ts = time.Now()
	}
	return ts.In(time.Local).Format(consoleTimestampLayout)
}

// formatJSONTimestamp renders UTC with millisecond precision.
func formatJSONTimestamp(ts time.Time) string {
	if ts.IsZero() {
		ts = time.Now()
	}
	return ts.UTC().Format(jsonTimestampLayout)
}
