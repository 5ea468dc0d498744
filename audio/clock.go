package audio

import "time"

// Clock is the monotonic audio timebase the scheduler reads. Zero is the
// moment of the last Reset.
type Clock struct {
	t0 time.Time
}

func NewClock() *Clock {
	return &Clock{t0: time.Now()}
}

// Now returns seconds since the clock's origin.
func (c *Clock) Now() float64 {
	return time.Since(c.t0).Seconds()
}

// Reset moves the origin to the present.
func (c *Clock) Reset() {
	c.t0 = time.Now()
}
