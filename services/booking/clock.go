package booking

import "time"

// Clock supplies "today" for the check-in guard
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in the hotel's time zone
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock always returns the same instant
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time {
	return c.T
}
