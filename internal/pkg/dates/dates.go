package dates

import "time"

// Layout is the wire format for human-readable timestamps: DD-MM-YYYY HH:MM:SS.
const Layout = "02-01-2006 15:04:05"

// Format renders t in the API's wire format.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// FormatPtr renders an optional timestamp, returning "" for nil.
func FormatPtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return Format(*t)
}
