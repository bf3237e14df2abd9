// Package markethours knows the US equity trading calendar. The scanner
// uses it to flag runs on closed days, where every fetched bar is from a
// prior session.
package markethours

import (
	"fmt"
	"time"
)

// ET is the US Eastern location. Falls back to a fixed UTC-5 zone when
// the tz database is unavailable, which is close enough for a daily
// staleness check.
var ET = loadET()

func loadET() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return time.FixedZone("ET", -5*3600)
	}
	return loc
}

// Regular session hours in ET.
const (
	OpenHour    = 9
	OpenMinute  = 30
	CloseHour   = 16
	CloseMinute = 0
)

// IsMarketOpen returns true if t falls within the regular NYSE/Nasdaq
// session (9:30 AM – 4:00 PM ET, Mon–Fri, excluding holidays).
func IsMarketOpen(t time.Time) bool {
	et := t.In(ET)
	if !IsTradingDay(et) {
		return false
	}
	hm := et.Hour()*60 + et.Minute()
	return hm >= OpenHour*60+OpenMinute && hm < CloseHour*60+CloseMinute
}

// IsWeekday returns true if t is Mon–Fri in ET.
func IsWeekday(t time.Time) bool {
	wd := t.In(ET).Weekday()
	return wd >= time.Monday && wd <= time.Friday
}

// IsTradingDay returns true if t is a weekday and not an exchange
// holiday.
func IsTradingDay(t time.Time) bool {
	et := t.In(ET)
	return IsWeekday(et) && !IsHoliday(et)
}

// NextOpen returns the next session open (9:30 AM ET on the next trading
// day). If t is before today's open on a trading day, returns today's
// open.
func NextOpen(t time.Time) time.Time {
	et := t.In(ET)

	todayOpen := time.Date(et.Year(), et.Month(), et.Day(), OpenHour, OpenMinute, 0, 0, ET)
	if et.Before(todayOpen) && IsTradingDay(et) {
		return todayOpen
	}

	d := et.AddDate(0, 0, 1)
	for i := 0; i < 10; i++ { // holidays + weekends never span 10 days
		if IsTradingDay(d) {
			return time.Date(d.Year(), d.Month(), d.Day(), OpenHour, OpenMinute, 0, 0, ET)
		}
		d = d.AddDate(0, 0, 1)
	}
	return time.Date(et.Year(), et.Month(), et.Day()+1, OpenHour, OpenMinute, 0, 0, ET)
}

// StatusString returns a human-readable market status.
func StatusString(t time.Time) string {
	if IsMarketOpen(t) {
		return "Market Open"
	}
	next := NextOpen(t)
	return fmt.Sprintf("Market Closed — opens %s %s ET",
		next.Weekday().String()[:3], next.Format("15:04"))
}
