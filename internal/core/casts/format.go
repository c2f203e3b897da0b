package casts

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// TimestampLayout renders e.g. "Mar 5, 2024, 2:07 PM"
const TimestampLayout = "Jan 2, 2006, 3:04 PM"

// countLocale fixes the grouping rule for engagement counts regardless of the host locale
var countLocale = language.AmericanEnglish

// FormatTimestamp renders t in loc using TimestampLayout
func FormatTimestamp(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(TimestampLayout)
}

// FormatCount renders n with thousands separators, e.g. 12345 -> "12,345"
func FormatCount(n int) string {
	return message.NewPrinter(countLocale).Sprintf("%d", n)
}

// formatDuration renders a video duration in seconds as m:ss or h:mm:ss
func formatDuration(seconds float64) string {
	if seconds <= 0 {
		return ""
	}
	total := int(math.Round(seconds))
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
