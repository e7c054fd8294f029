package field

import "time"

// Clock is the shared simulation clock. All namespaces of one simulation
// advance the same clock, exactly once per completed step.
type Clock struct {
	start   time.Time
	dt      float64 // seconds
	step    int
	elapsed float64 // seconds since start
}

// NewClock builds a clock starting at start with a fixed step of dt seconds.
func NewClock(start time.Time, dt float64) *Clock {
	return &Clock{start: start, dt: dt}
}

// Now returns the current simulation time.
func (c *Clock) Now() time.Time {
	return c.start.Add(time.Duration(c.elapsed * float64(time.Second)))
}

// Dt returns the step length in seconds.
func (c *Clock) Dt() float64 { return c.dt }

// Step returns the number of completed steps.
func (c *Clock) Step() int { return c.step }

// Elapsed returns seconds since the start of the run.
func (c *Clock) Elapsed() float64 { return c.elapsed }

// Advance moves the clock forward by one step.
func (c *Clock) Advance() {
	c.step++
	c.elapsed += c.dt
}

// Reset rewinds the clock to its start time.
func (c *Clock) Reset() {
	c.step = 0
	c.elapsed = 0
}
