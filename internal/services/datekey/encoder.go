// Package datekey converts wall-clock time into the coarse integer day
// bucket used to deduplicate daily-challenge completions.
package datekey

import (
	"time"

	"github.com/mindmatch/memoryledger/internal/model"
)

const (
	secondsPerDay = 86400
	daysPerYear   = 365
	daysPerMonth  = 30
	epochYear     = 1970
)

// Encode derives the day bucket for t as year*10000 + month*100 + day.
//
// The calendar here is intentionally approximate: every year is 365 days
// and every month is 30 days. It is not a Gregorian calendar and must not
// be read as a real date; late-year day numbers land in a thirteenth
// month, and buckets drift against real month boundaries. What matters is
// that the mapping is stable, so all completions within the same bucket
// collide into one daily-challenge slot. Changing the arithmetic would
// shift which completions share a slot, so it stays as is.
func Encode(t time.Time) model.DateKey {
	secs := t.Unix()
	if secs < 0 {
		secs = 0
	}

	days := uint64(secs) / secondsPerDay
	year := epochYear + days/daysPerYear
	dayOfYear := days % daysPerYear
	month := dayOfYear/daysPerMonth + 1
	day := dayOfYear%daysPerMonth + 1

	return model.DateKey(year*10000 + month*100 + day)
}
