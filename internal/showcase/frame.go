package showcase

import (
	"fmt"
	"runtime/debug"

	"go.uber.org/zap"
)

// breaker stops drawing after repeated frame failures and retries once the
// cooldown has elapsed. Cooldown is measured in frame time, not wall time.
type breaker struct {
	max      int
	cooldown float64

	failures  int
	open      bool
	remaining float64
	probing   bool
}

// Stats are render loop counters for the stats overlay.
type Stats struct {
	Frames      uint64
	Drawn       uint64
	Skipped     uint64
	Halts       uint64
	Consecutive int
	Open        bool
	LastError   error
}

// Stats returns a copy of the render loop counters.
func (c *Controller) Stats() Stats {
	s := c.stats
	s.Consecutive = c.breaker.failures
	s.Open = c.breaker.open
	return s
}

// Frame runs one render loop iteration: poll the model load, advance
// timelines, tick per-frame work of the current section, then draw.
//
// A failing frame is logged and skipped (ErrFrameSkipped). After
// MaxConsecutiveFailures in a row Frame returns ErrRenderHalted without
// drawing until FailureCooldown has elapsed, then tries a single frame.
func (c *Controller) Frame(dt float64) error {
	c.stats.Frames++

	if c.breaker.open {
		c.breaker.remaining -= dt
		if c.breaker.remaining > 0 {
			return ErrRenderHalted
		}
		c.breaker.open = false
		c.breaker.probing = true
		c.log.Info("render retrying after cooldown")
	}

	err := c.step(dt)
	if err == nil {
		if c.breaker.probing {
			c.log.Info("render recovered", zap.Int("failures", c.breaker.failures))
		}
		c.breaker.failures = 0
		c.breaker.probing = false
		c.stats.Drawn++
		return nil
	}

	c.breaker.failures++
	c.stats.LastError = err

	if c.breaker.failures >= c.breaker.max {
		c.breaker.open = true
		c.breaker.probing = false
		c.breaker.remaining = c.breaker.cooldown
		c.stats.Halts++
		c.log.Error("render halted",
			zap.Int("consecutive_failures", c.breaker.failures),
			zap.Float64("cooldown_seconds", c.breaker.cooldown),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %w", ErrRenderHalted, err)
	}

	c.stats.Skipped++
	c.log.Warn("frame skipped", zap.Int("consecutive_failures", c.breaker.failures), zap.Error(err))
	return fmt.Errorf("%w: %w", ErrFrameSkipped, err)
}

func (c *Controller) step(dt float64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Debug("frame panic", zap.ByteString("stack", debug.Stack()))
			err = fmt.Errorf("frame panic: %v", r)
		}
	}()

	c.pollModel()
	c.sched.Advance(dt)
	for _, p := range c.scene.Planes {
		p.Tick()
	}
	return c.drawer.Draw(c.scene, c.Viewer())
}
