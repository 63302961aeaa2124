package app

import "time"

// Clock schedules one-shot callbacks. It exists so tests can drive the countdown by hand.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is the handle returned by Clock.AfterFunc.
type Timer interface {
	Stop() bool
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// countdown chains one-shot timers into a ticking sequence. Every arm and cancel bumps
// the epoch; a tick carrying an older epoch must be ignored by the caller.
// It is not safe for concurrent use; the owning session serializes access.
type countdown struct {
	clock    Clock
	interval time.Duration
	onTick   func(epoch uint64)
	timer    Timer
	epoch    uint64
}

func newCountdown(clock Clock, interval time.Duration) *countdown {
	if clock == nil {
		clock = realClock{}
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &countdown{clock: clock, interval: interval}
}

// start cancels any running countdown and schedules the first tick of a new one.
func (c *countdown) start(onTick func(epoch uint64)) uint64 {
	c.cancel()
	c.onTick = onTick
	c.schedule(c.epoch)
	return c.epoch
}

// next schedules the following tick if epoch is still current.
func (c *countdown) next(epoch uint64) {
	if !c.current(epoch) {
		return
	}
	c.schedule(epoch)
}

func (c *countdown) schedule(epoch uint64) {
	onTick := c.onTick
	c.timer = c.clock.AfterFunc(c.interval, func() { onTick(epoch) })
}

// cancel stops the pending tick. Calling it on a stopped countdown only advances the epoch.
func (c *countdown) cancel() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.epoch++
}

func (c *countdown) current(epoch uint64) bool {
	return c.timer != nil && epoch == c.epoch
}
