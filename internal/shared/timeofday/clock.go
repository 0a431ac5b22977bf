// Package timeofday models wall-clock times without a date.
// Values are kept as minutes since midnight; "HH:mm" only appears at the
// storage and JSON boundaries.
package timeofday

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const MinutesPerDay = 24 * 60

type Clock struct {
	minutes int
}

func New(hour, minute int) Clock {
	return Clock{minutes: ((hour*60+minute)%MinutesPerDay + MinutesPerDay) % MinutesPerDay}
}

// Parse accepts "HH:mm" and "HH:mm:ss" (seconds are dropped).
func Parse(v string) (Clock, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, v); err == nil {
			return New(t.Hour(), t.Minute()), nil
		}
	}
	return Clock{}, fmt.Errorf("timeofday: invalid time %q, expected HH:mm", v)
}

func MustParse(v string) Clock {
	c, err := Parse(v)
	if err != nil {
		panic(err)
	}
	return c
}

// FromTime takes the wall clock of t in its own location.
func FromTime(t time.Time) Clock {
	return New(t.Hour(), t.Minute())
}

func (c Clock) Minutes() int { return c.minutes }

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.minutes/60, c.minutes%60)
}

func (c Clock) Before(other Clock) bool { return c.minutes < other.minutes }

func (c Clock) After(other Clock) bool { return c.minutes > other.minutes }

func (c Clock) Value() (driver.Value, error) {
	return c.String(), nil
}

func (c *Clock) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return c.parseInto(v)
	case []byte:
		return c.parseInto(string(v))
	case time.Time:
		*c = FromTime(v)
		return nil
	default:
		return fmt.Errorf("timeofday: cannot scan %T", src)
	}
}

func (c *Clock) parseInto(v string) error {
	parsed, err := Parse(v)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Clock) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return c.parseInto(s)
}

// Ptr formats an optional clock for responses.
func Ptr(c *Clock) *string {
	if c == nil {
		return nil
	}
	s := c.String()
	return &s
}
