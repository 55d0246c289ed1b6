package service

import (
	"sort"
	"time"
	_ "time/tzdata" // location timezones on minimal images

	"github.com/tableside/api/internal/database"
)

// ResolveServicePeriod returns the period covering now in the location's
// timezone, or nil. Times are "HH:MM" and compared as strings over
// [start, end); the first match in sort_order wins.
func ResolveServicePeriod(periods []database.ServicePeriod, now time.Time, timezone string) *database.ServicePeriod {
	loc, err := time.LoadLocation(timezone)
	if err != nil || timezone == "" {
		loc = time.UTC
	}
	hhmm := now.In(loc).Format("15:04")

	ordered := make([]database.ServicePeriod, len(periods))
	copy(ordered, periods)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].SortOrder != ordered[j].SortOrder {
			return ordered[i].SortOrder < ordered[j].SortOrder
		}
		return ordered[i].StartTime < ordered[j].StartTime
	})

	for i := range ordered {
		p := ordered[i]
		if p.StartTime <= hhmm && hhmm < p.EndTime {
			return &p
		}
	}
	return nil
}
