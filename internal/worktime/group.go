package worktime

import (
	"sort"
	"time"
)

// DateKeyLayout formats a DateGroup key as DD.MM.YYYY.
const DateKeyLayout = "02.01.2006"

// DateGroup holds the work-times that fall on one calendar date.
type DateGroup struct {
	Key       string
	Date      time.Time
	WorkTimes []WorkTime
}

// GroupByDate partitions items by calendar date. Groups are returned in ascending date order;
// items keep their input order within a group. The input is not modified.
func GroupByDate(items []WorkTime) []DateGroup {
	index := make(map[string]int)
	groups := make([]DateGroup, 0)

	for _, wt := range items {
		y, m, d := wt.Date.Date()
		key := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Format(DateKeyLayout)

		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, DateGroup{
				Key:  key,
				Date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
			})
		}
		groups[i].WorkTimes = append(groups[i].WorkTimes, wt)
	}

	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].Date.Before(groups[b].Date)
	})

	return groups
}
