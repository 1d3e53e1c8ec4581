package holiday

import (
	"sort"
	"time"
)

// Upcoming lists every holiday occurrence on the days dates starting at from, ordered by date
// then name. A recurring holiday dated Feb 29 only occurs in leap years.
func Upcoming(holidays []Holiday, from time.Time, days int) []NextOccurrence {
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)

	out := []NextOccurrence{}
	for i := 0; i < days; i++ {
		day := from.AddDate(0, 0, i)
		for _, h := range holidays {
			if !h.Matches(day) {
				continue
			}
			out = append(out, NextOccurrence{
				ID:        h.ID,
				Name:      h.Name,
				Date:      day.Format("2006-01-02"),
				Recurring: h.Recurring,
				DaysAway:  i,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DaysAway != out[j].DaysAway {
			return out[i].DaysAway < out[j].DaysAway
		}
		return out[i].Name < out[j].Name
	})
	return out
}
