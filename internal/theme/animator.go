package theme

import (
	"sync"
	"time"

	"github.com/Zachkp/portfolio/internal/clock"
)

// Animator feeds frame ticks from a clock into a Controller while an
// expansion is in flight. At most one frame loop runs per Animator.
type Animator struct {
	ctrl  *Controller
	clock clock.Clock
	frame time.Duration

	mu      sync.Mutex
	running bool
	closed  bool
	stop    chan struct{}
	wg      sync.WaitGroup
}

// NewAnimator returns an Animator for ctrl. A zero frame uses DefaultFrame.
func NewAnimator(ctrl *Controller, clk clock.Clock, frame time.Duration) *Animator {
	if ctrl == nil {
		panic("theme: NewAnimator requires a controller")
	}
	if clk == nil {
		clk = ctrl.clock
	}
	if frame <= 0 {
		frame = DefaultFrame
	}
	return &Animator{
		ctrl:  ctrl,
		clock: clk,
		frame: frame,
		stop:  make(chan struct{}),
	}
}

// Controller returns the driven controller.
func (a *Animator) Controller() *Controller {
	return a.ctrl
}

// Toggle forwards to the controller and starts the frame loop when the toggle
// is accepted. It returns false after Close.
func (a *Animator) Toggle(click Point, vp Viewport) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return false
	}
	if !a.ctrl.Toggle(click, vp) {
		return false
	}
	if !a.running {
		a.running = true
		// Created here so the first deadline is anchored to the toggle.
		t := a.clock.NewTicker(a.frame)
		a.wg.Add(1)
		go a.run(t)
	}
	return true
}

func (a *Animator) run(t clock.Ticker) {
	defer a.wg.Done()
	defer t.Stop()

	for {
		select {
		case <-a.stop:
			a.mu.Lock()
			a.running = false
			a.mu.Unlock()
			return
		case now := <-t.C():
			if a.ctrl.Tick(now) {
				continue
			}
			a.mu.Lock()
			// A toggle may have been accepted between Tick and Lock.
			if a.ctrl.Animating() {
				a.mu.Unlock()
				continue
			}
			a.running = false
			a.mu.Unlock()
			return
		}
	}
}

// Running reports whether the frame loop is active.
func (a *Animator) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.running
}

// Close stops the frame loop and waits for it to exit.
func (a *Animator) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	close(a.stop)
	a.mu.Unlock()

	a.wg.Wait()
}
