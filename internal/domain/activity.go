package domain

import "time"

// Activity is a daily-limited character interaction.
type Activity string

const (
	ActivityGame Activity = "game"
	ActivityPet  Activity = "pet"
	ActivityFeed Activity = "feed"
)

// Activities lists every daily activity.
var Activities = []Activity{ActivityGame, ActivityPet, ActivityFeed}

// DailyCaps is the number of times each activity may be performed per calendar day.
var DailyCaps = map[Activity]int{
	ActivityGame: 3,
	ActivityPet:  3,
	ActivityFeed: 3,
}

// AllCompleteBonus is the experience granted once a day when every activity is exhausted.
const AllCompleteBonus int64 = 20

// DailyCounter tracks how often an activity was performed on LastDate.
type DailyCounter struct {
	Count    int        `json:"count"`
	LastDate *time.Time `json:"last_date,omitempty"`
}

// Date truncates t to its calendar date. The result is midnight UTC so it
// compares equal to dates scanned from a postgres DATE column.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDate reports whether d is set and falls on the calendar date of day.
func SameDate(d *time.Time, day time.Time) bool {
	if d == nil {
		return false
	}
	y1, m1, d1 := d.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// TryConsume performs one unit of kind for today. The counter is reset when
// its last date is not today. It returns how many units remain today.
func (a *Account) TryConsume(kind Activity, today time.Time) (int, error) {
	limit, ok := DailyCaps[kind]
	if !ok {
		return 0, ErrInvalidItem
	}
	a.ensureDaily()

	c := a.Daily[kind]
	if !SameDate(c.LastDate, today) {
		d := Date(today)
		c = DailyCounter{Count: 0, LastDate: &d}
	}
	if c.Count >= limit {
		return 0, ErrDailyLimitExceeded
	}
	c.Count++
	a.Daily[kind] = c
	return limit - c.Count, nil
}

// CanConsume reports whether kind still has a unit left today without mutating the account.
func (a *Account) CanConsume(kind Activity, today time.Time) bool {
	return a.Remaining(kind, today) > 0
}

// Remaining returns how many units of kind are left today.
func (a *Account) Remaining(kind Activity, today time.Time) int {
	limit := DailyCaps[kind]
	c, ok := a.Daily[kind]
	if !ok || !SameDate(c.LastDate, today) {
		return limit
	}
	if c.Count >= limit {
		return 0
	}
	return limit - c.Count
}

// DailyCount returns how many units of kind were performed today.
func (a *Account) DailyCount(kind Activity, today time.Time) int {
	c, ok := a.Daily[kind]
	if !ok || !SameDate(c.LastDate, today) {
		return 0
	}
	return c.Count
}

func (a *Account) completedToday(kind Activity, today time.Time) bool {
	c, ok := a.Daily[kind]
	return ok && SameDate(c.LastDate, today) && c.Count >= DailyCaps[kind]
}

// CheckAllComplete grants the all-complete bonus at most once per calendar
// day. It returns the bonus experience, or 0 when nothing is granted.
func (a *Account) CheckAllComplete(today time.Time) int64 {
	for _, kind := range Activities {
		if !a.completedToday(kind, today) {
			return 0
		}
	}
	if SameDate(a.LastBonusDate, today) {
		return 0
	}
	d := Date(today)
	a.LastBonusDate = &d
	return AllCompleteBonus
}
