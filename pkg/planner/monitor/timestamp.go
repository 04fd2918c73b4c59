package monitor

import "time"

// timestampLayouts are the accepted forms: RFC 3339 with a Z suffix or a
// numeric offset, with or without sub-second precision, plus the common
// offset-without-colon variant.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05Z0700",
}

// ParseTimestamp parses an evaluation timestamp. The second return value
// reports whether parsing succeeded; an empty or malformed input yields
// (zero, false) rather than an error, since "no timestamp" is a normal
// decision input, not a failure.
func ParseTimestamp(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
