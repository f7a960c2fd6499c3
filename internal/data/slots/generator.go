// Package slots generates the bookable availability grid for a speaker.
package slots

import (
	"fmt"
	"math/rand"
	"time"

	"speaker-booking/internal/data/entity"
	"speaker-booking/pkg/utils"

	"github.com/google/uuid"
)

// Generate produces the hourly slot grid for one speaker: WindowDays
// calendar days starting at from (inclusive), one slot per hour from
// StartHour to EndHour-1 (the last slot ends at EndHour). Slot IDs are
// derived from speaker+date+start, so regenerating the same window yields
// the same IDs.
//
// The initial booked pattern is drawn from a source seeded by the speaker
// ID, so a speaker's demo availability is stable across runs. BookedRatio
// is the probability a slot starts out booked.
func Generate(speakerID uuid.UUID, from time.Time, cfg utils.SlotConfig) []*entity.TimeSlot {
	rng := rand.New(rand.NewSource(seedFor(speakerID)))
	now := time.Now()

	var out []*entity.TimeSlot
	for day := 0; day < cfg.WindowDays; day++ {
		date := from.AddDate(0, 0, day).Format(entity.DateLayout)

		for hour := cfg.StartHour; hour < cfg.EndHour; hour++ {
			start := fmt.Sprintf("%02d:00", hour)
			end := fmt.Sprintf("%02d:00", hour+1)

			out = append(out, &entity.TimeSlot{
				BaseSimple: entity.BaseSimple{
					ID:        utils.SlotID(speakerID, date, start),
					CreatedAt: now,
				},
				SpeakerID: speakerID,
				Date:      date,
				StartTime: start,
				EndTime:   end,
				IsBooked:  rng.Float64() < cfg.BookedRatio,
			})
		}
	}

	return out
}

func seedFor(speakerID uuid.UUID) int64 {
	var seed int64
	for _, b := range speakerID {
		seed = seed*31 + int64(b)
	}
	return seed
}
