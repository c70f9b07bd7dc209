package model

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Date is a calendar day in YYYY-MM-DD form. Values that do not parse are
// kept verbatim so historical rows survive a load/save cycle.
type Date string

func NewDate(t time.Time) Date { return Date(t.Format(DateLayout)) }

// ParseDate validates raw and returns it in canonical form.
func ParseDate(raw string) (Date, bool) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	return NewDate(t), true
}

func (d Date) IsZero() bool { return strings.TrimSpace(string(d)) == "" }

func (d Date) Time() (time.Time, bool) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(string(d)))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (d Date) String() string { return string(d) }
