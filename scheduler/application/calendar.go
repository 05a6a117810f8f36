package application

import (
	"time"

	"github.com/socialsched/goscheduler/scheduler/domain"
)

// GridDays is the fixed size of the calendar grid: six full weeks, so a
// month view renders the same 6x7 layout regardless of month length.
const GridDays = 42

// DaysInGrid produces the 42 consecutive dates backing a month view.
// It starts from the most recent Sunday on or before the first of
// anchor's month; leading and trailing days belong to adjacent months
// and are kept so the caller can gray them out rather than drop them.
func DaysInGrid(anchor time.Time) []time.Time {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	start := first.AddDate(0, 0, -int(first.Weekday()))

	days := make([]time.Time, 0, GridDays)
	for i := 0; i < GridDays; i++ {
		days = append(days, start.AddDate(0, 0, i))
	}

	return days
}

// PostsOnDate returns the posts scheduled for exactly the given
// calendar day, in their original sequence order.
func PostsOnDate(posts []domain.Post, day time.Time) []domain.Post {
	key := day.Format(domain.DateLayout)

	matched := []domain.Post{}
	for _, post := range posts {
		if post.ScheduledDate == key {
			matched = append(matched, post)
		}
	}

	return matched
}

// GridCell is one day of the month view: its date, whether it falls in
// the anchor month, and the posts bucketed onto it.
type GridCell struct {
	Date    string        `json:"date"`
	InMonth bool          `json:"inMonth"`
	Posts   []domain.Post `json:"posts"`
}

// MonthGrid buckets posts onto the 42-cell grid for anchor's month.
func MonthGrid(anchor time.Time, posts []domain.Post) []GridCell {
	cells := make([]GridCell, 0, GridDays)
	for _, day := range DaysInGrid(anchor) {
		cells = append(cells, GridCell{
			Date:    day.Format(domain.DateLayout),
			InMonth: day.Month() == anchor.Month(),
			Posts:   PostsOnDate(posts, day),
		})
	}

	return cells
}
