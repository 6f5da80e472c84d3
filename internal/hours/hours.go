// Package hours evaluates the store's weekly operating schedule.
package hours

import (
	"fmt"
	"time"
)

// DayNames are indexed by time.Weekday (0 = Sunday).
var DayNames = [7]string{"Domingo", "Segunda", "Terça", "Quarta", "Quinta", "Sexta", "Sábado"}

const (
	ClosedMessage = "Estamos fechados no momento. Confira nossos horários de funcionamento."
	dateLayout    = "2006-01-02"
)

// Entry is the opening window of one weekday. Open and Close are HH:MM in
// store local time.
type Entry struct {
	Day     int    `json:"day"     yaml:"day"     validate:"min=0,max=6"`
	Open    string `json:"open"    yaml:"open"    validate:"required,hhmm"`
	Close   string `json:"close"   yaml:"close"   validate:"required,hhmm"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
}

// Schedule is the weekly list of entries; days without an entry are closed.
type Schedule []Entry

// Closure is a calendar date on which the store stays closed.
type Closure struct {
	Date   string `json:"date"             yaml:"date"`
	Reason string `json:"reason,omitempty" yaml:"reason"`
}

// Calendar is a schedule plus its special closures.
type Calendar struct {
	Schedule Schedule
	Closures []Closure
}

// Opening is the next moment the store opens.
type Opening struct {
	Day      time.Weekday
	Time     string
	Today    bool
	Tomorrow bool
}

// IsOpen reports whether now falls inside today's enabled window. Both ends
// are inclusive.
func IsOpen(s Schedule, now time.Time) bool {
	return Calendar{Schedule: s}.IsOpen(now)
}

// NextOpeningMessage describes when the store opens next.
func NextOpeningMessage(s Schedule, now time.Time) string {
	return Calendar{Schedule: s}.NextOpeningMessage(now)
}

// ParseClock parses HH:MM (or HH:MM:SS) into seconds since midnight.
func ParseClock(s string) (int, bool) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.Hour()*3600 + t.Minute()*60 + t.Second(), true
		}
	}
	return 0, false
}

// IsOpen reports whether the store is open at now. A closure on now's date
// wins over the schedule. Windows whose close precedes open are never open.
func (c Calendar) IsOpen(now time.Time) bool {
	if c.closedOn(now) {
		return false
	}
	e, ok := c.Schedule.entry(now.Weekday())
	if !ok {
		return false
	}
	open, okOpen := ParseClock(e.Open)
	closing, okClose := ParseClock(e.Close)
	if !okOpen || !okClose {
		return false
	}
	sec := now.Hour()*3600 + now.Minute()*60 + now.Second()
	return open <= sec && sec <= closing
}

// NextOpening finds today's opening if it is still ahead, otherwise the
// first enabled day within the following week.
func (c Calendar) NextOpening(now time.Time) (Opening, bool) {
	if e, ok := c.Schedule.entry(now.Weekday()); ok && !c.closedOn(now) {
		sec := now.Hour()*3600 + now.Minute()*60 + now.Second()
		if open, ok := ParseClock(e.Open); ok && sec < open {
			return Opening{Day: now.Weekday(), Time: e.Open, Today: true}, true
		}
	}
	for i := 1; i <= 7; i++ {
		day := now.AddDate(0, 0, i)
		e, ok := c.Schedule.entry(day.Weekday())
		if !ok || c.closedOn(day) {
			continue
		}
		if _, ok := ParseClock(e.Open); !ok {
			continue
		}
		return Opening{Day: day.Weekday(), Time: e.Open, Tomorrow: i == 1}, true
	}
	return Opening{}, false
}

// NextOpeningMessage renders NextOpening for the storefront.
func (c Calendar) NextOpeningMessage(now time.Time) string {
	o, ok := c.NextOpening(now)
	if !ok {
		return ClosedMessage
	}
	switch {
	case o.Today:
		return fmt.Sprintf("Abrimos hoje às %s", o.Time)
	case o.Tomorrow:
		return fmt.Sprintf("Abrimos amanhã às %s", o.Time)
	}
	return fmt.Sprintf("Abrimos %s às %s", DayNames[o.Day], o.Time)
}

func (c Calendar) closedOn(t time.Time) bool {
	d := t.Format(dateLayout)
	for _, cl := range c.Closures {
		if cl.Date == d {
			return true
		}
	}
	return false
}

// entry returns the first enabled entry for the weekday.
func (s Schedule) entry(day time.Weekday) (Entry, bool) {
	for _, e := range s {
		if e.Day == int(day) && e.Enabled {
			return e, true
		}
	}
	return Entry{}, false
}
