package theme

import (
	"log/slog"
	"sync"
	"time"

	"github.com/Zachkp/portfolio/internal/clock"
)

// Default animation timings.
const (
	DefaultDuration    = 1000 * time.Millisecond
	DefaultSettleDelay = 50 * time.Millisecond
	DefaultFrame       = 16 * time.Millisecond
)

// Options tunes a Controller. Zero values take the defaults; a negative
// SettleDelay ends the animation on the completing frame.
type Options struct {
	Duration    time.Duration
	SettleDelay time.Duration
	Logger      *slog.Logger
}

// Controller holds one session's theme selection and drives its reveal animation.
// Toggle and Tick are the only mutators.
type Controller struct {
	mu     sync.Mutex
	themes ThemeSet
	clock  clock.Clock
	logger *slog.Logger

	duration time.Duration
	settle   time.Duration

	index     int
	animating bool
	origin    Point
	radius    float64
	target    float64
	progress  float64
	start     time.Time

	completed   bool
	completedAt time.Time

	subs       map[int]chan State
	nextSub    int
	subsClosed bool
}

// NewController creates an idle controller showing the first theme.
func NewController(themes ThemeSet, clk clock.Clock, opts Options) *Controller {
	if clk == nil {
		clk = clock.Real()
	}
	if opts.Duration <= 0 {
		opts.Duration = DefaultDuration
	}
	if opts.SettleDelay < 0 {
		opts.SettleDelay = 0
	} else if opts.SettleDelay == 0 {
		opts.SettleDelay = DefaultSettleDelay
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Controller{
		themes:   themes,
		clock:    clk,
		logger:   opts.Logger,
		duration: opts.Duration,
		settle:   opts.SettleDelay,
		subs:     make(map[int]chan State),
	}
}

// Themes returns the controller's theme set.
func (c *Controller) Themes() ThemeSet {
	return c.themes
}

// Toggle advances to the next theme and starts a reveal centred on click.
// It returns false without changing anything if an animation is in flight.
func (c *Controller) Toggle(click Point, vp Viewport) bool {
	if c.themes.Len() == 0 {
		panic("theme: toggle with an empty theme set")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.animating {
		c.logger.Debug("theme toggle ignored, animation in flight",
			"origin", click, "radius", c.radius)
		return false
	}

	c.origin = click
	c.radius = 0
	c.progress = 0
	c.animating = true
	c.completed = false
	c.index = c.themes.Next(c.index)
	c.target = TargetRadius(vp)
	c.start = c.clock.Now()

	c.logger.Debug("theme toggled",
		"index", c.index,
		"color", c.themes.At(c.index),
		"target_radius", c.target)

	c.publishLocked()
	return true
}

// Tick advances the expansion to now and reports whether more frames are needed.
func (c *Controller) Tick(now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.animating {
		return false
	}

	if c.completed {
		if now.Sub(c.completedAt) < c.settle {
			return true
		}
		c.animating = false
		c.logger.Debug("theme animation settled", "index", c.index)
		c.publishLocked()
		return false
	}

	p := Progress(now.Sub(c.start), c.duration)
	r := c.target * EaseOutCubic(p)
	if p >= 1 {
		r = c.target
		c.completed = true
		c.completedAt = now
	}
	// Frames may arrive out of order under a real ticker; never shrink.
	if r > c.radius {
		c.radius = r
	}
	if p > c.progress {
		c.progress = p
	}

	if c.completed && c.settle == 0 {
		c.animating = false
	}
	c.publishLocked()
	return c.animating
}

// Animating reports whether an expansion is in flight.
func (c *Controller) Animating() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.animating
}

// CurrentThemeColor returns the active theme's color.
func (c *Controller) CurrentThemeColor() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.themes.At(c.index)
}

// State returns a snapshot of the animation.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe returns a channel that always holds the latest published state.
// The current state is available immediately. cancel closes the channel.
// After CloseSubscriptions the channel carries the current state and is
// already closed.
func (c *Controller) Subscribe() (<-chan State, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan State, 1)
	ch <- c.snapshotLocked()
	if c.subsClosed {
		close(ch)
		return ch, func() {}
	}

	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if _, ok := c.subs[id]; ok {
				delete(c.subs, id)
				close(ch)
			}
		})
	}
	return ch, cancel
}

// CloseSubscriptions closes every subscriber channel and makes later
// subscriptions end after their first value.
func (c *Controller) CloseSubscriptions() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.subsClosed = true
	for id, ch := range c.subs {
		delete(c.subs, id)
		close(ch)
	}
}

func (c *Controller) snapshotLocked() State {
	s := State{
		ActiveThemeIndex: c.index,
		IsAnimating:      c.animating,
		Origin:           c.origin,
		Radius:           c.radius,
		TargetRadius:     c.target,
		Progress:         c.progress,
	}
	if c.themes.Len() > 0 {
		prev := c.index
		if c.animating {
			prev = c.index - 1
		}
		s.Color = c.themes.At(c.index)
		s.PreviousColor = c.themes.At(prev)
	}
	return s
}

func (c *Controller) publishLocked() {
	s := c.snapshotLocked()
	for _, ch := range c.subs {
		// Drop the stale value so the send below cannot block.
		select {
		case <-ch:
		default:
		}
		ch <- s
	}
}
