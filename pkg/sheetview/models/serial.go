package models

import (
	"math"
	"time"
)

// serialEpoch is the spreadsheet serial date origin. The nominal epoch
// is 1900-01-00, but the format carries the fictitious 1900-02-29, so
// day arithmetic uses the conventional two-day-shifted origin.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// SerialToTime converts a serial day number (fractional days allowed)
// to a time. Whole days are added via calendar arithmetic so the full
// serial range up to 9999-12-31 converts without Duration overflow.
func SerialToTime(serial float64) time.Time {
	days := math.Floor(serial)
	frac := serial - days
	return serialEpoch.AddDate(0, 0, int(days)).
		Add(time.Duration(frac * 24 * float64(time.Hour)))
}
