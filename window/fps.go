package window

import "time"

// TimerInterval is how often the title is refreshed. FPS is reported as the
// frames counted in one interval scaled up to a second, not a measured rate.
const TimerInterval = 250 * time.Millisecond

// FPSCounter counts rendered frames between timer ticks.
//
// The first tick after Arm only resets the count; every later tick reports.
type FPSCounter struct {
	frames   uint
	next     time.Time
	armed    bool
	reported bool
}

// Arm schedules the first tick delay after now.
func (c *FPSCounter) Arm(now time.Time, delay time.Duration) {
	c.next = now.Add(delay)
	c.armed = true
	c.reported = false
}

// Frame records one rendered frame.
func (c *FPSCounter) Frame() {
	c.frames++
}

// Frames returns the frames counted since the last tick.
func (c *FPSCounter) Frames() uint {
	return c.frames
}

// Tick fires the timer if it is due at now. When it fires, the frame count
// is reset and the timer re-armed for TimerInterval after now. ok is false
// if the timer did not fire or fired for the first time since Arm.
func (c *FPSCounter) Tick(now time.Time) (fps uint, ok bool) {
	if !c.armed || now.Before(c.next) {
		return 0, false
	}

	fps = c.frames * uint(time.Second/TimerInterval)
	ok = c.reported
	c.reported = true

	c.frames = 0
	c.next = now.Add(TimerInterval)
	return fps, ok
}
