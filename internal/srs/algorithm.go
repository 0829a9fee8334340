package srs

import (
	"math"
	"time"

	"github.com/studyflowhq/studyflow/internal/models"
)

// Quality bounds for a self-reported recall score.
// 1 = forgot entirely, 5 = perfect recall.
const (
	MinQuality = 1
	MaxQuality = 5
)

// Scores at or above this threshold count as remembered.
const rememberedThreshold = 3

// ValidQuality reports whether q is an acceptable recall score.
func ValidQuality(q int) bool {
	return q >= MinQuality && q <= MaxQuality
}

// Apply computes the next scheduling state from a prior state and a recall
// quality using the SM-2 update.
//
// Remembered (quality >= 3): repetitions increments; the interval is 1 day
// after the first success, 6 after the second, then round(interval * ease);
// the ease factor is adjusted by 0.1 - (5-q)*(0.08 + (5-q)*0.02).
// Forgot (quality < 3): repetitions and interval reset and the ease factor
// drops by 0.2. The ease factor never goes below 1.3.
//
// Callers must validate quality with ValidQuality first; Apply assumes it.
func Apply(prior models.ReviewState, quality int, now time.Time) models.ReviewState {
	next := prior
	if quality >= rememberedThreshold {
		next.Repetitions = prior.Repetitions + 1
		switch next.Repetitions {
		case 1:
			next.IntervalDays = 1
		case 2:
			next.IntervalDays = 6
		default:
			next.IntervalDays = int(math.Round(float64(prior.IntervalDays) * prior.EaseFactor))
		}
		miss := float64(5 - quality)
		next.EaseFactor = prior.EaseFactor + (0.1 - miss*(0.08+miss*0.02))
	} else {
		next.Repetitions = 0
		next.IntervalDays = 1
		next.EaseFactor = prior.EaseFactor - 0.2
	}
	if next.EaseFactor < models.MinEaseFactor {
		next.EaseFactor = models.MinEaseFactor
	}
	next.NextReview = now.AddDate(0, 0, next.IntervalDays)
	return next
}
