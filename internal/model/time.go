package model

import (
	"strconv"
	"time"
)

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
}

// ParseTime accepts the timestamp shapes the POS API emits, including offsets
// without a colon ("+0000").
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// BusinessDate renders t as the integer YYYYMMDD key.
func BusinessDate(t time.Time) int {
	n, _ := strconv.Atoi(t.Format("20060102"))
	return n
}

// ISOTime formats t the way the API expects date range parameters.
func ISOTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
