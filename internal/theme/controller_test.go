package theme

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/clock"
)

var (
	t0       = time.Date(2025, 11, 13, 9, 0, 0, 0, time.UTC)
	viewport = Viewport{Width: 1000, Height: 800}
	click    = Point{X: 120, Y: 40}
)

func newTestController(t *testing.T) (*Controller, *clock.Mock) {
	t.Helper()
	set, err := NewThemeSet("#aaaaaa", "#bbbbbb")
	require.NoError(t, err)
	clk := clock.NewMock(t0)
	return NewController(set, clk, Options{}), clk
}

// runToIdle ticks one frame at a time until the controller goes idle.
func runToIdle(t *testing.T, c *Controller, from time.Time) time.Time {
	t.Helper()
	now := from
	for i := 0; i < 1000; i++ {
		now = now.Add(DefaultFrame)
		if !c.Tick(now) {
			return now
		}
	}
	t.Fatal("animation did not settle")
	return now
}

func TestController_InitialState(t *testing.T) {
	c, _ := newTestController(t)

	s := c.State()
	assert.Equal(t, 0, s.ActiveThemeIndex)
	assert.False(t, s.IsAnimating)
	assert.Equal(t, 0.0, s.Radius)
	assert.Equal(t, "#aaaaaa", s.Color)
	assert.Equal(t, "#aaaaaa", c.CurrentThemeColor())
}

func TestController_ToggleSwapsThemeImmediately(t *testing.T) {
	c, _ := newTestController(t)

	require.True(t, c.Toggle(click, viewport))

	s := c.State()
	assert.Equal(t, 1, s.ActiveThemeIndex)
	assert.Equal(t, "#bbbbbb", s.Color)
	assert.Equal(t, "#aaaaaa", s.PreviousColor)
	assert.True(t, s.IsAnimating)
	assert.Equal(t, click, s.Origin)
	assert.Equal(t, 0.0, s.Radius)
	assert.InDelta(t, 1414.21, s.TargetRadius, 0.01)
}

func TestController_ABExample(t *testing.T) {
	c, clk := newTestController(t)

	require.True(t, c.Toggle(click, viewport))
	assert.Equal(t, "#bbbbbb", c.CurrentThemeColor())
	clk.Set(runToIdle(t, c, t0))

	require.True(t, c.Toggle(click, viewport))
	assert.Equal(t, 0, c.State().ActiveThemeIndex)
	assert.Equal(t, "#aaaaaa", c.CurrentThemeColor())
}

func TestController_HalfwayRadius(t *testing.T) {
	c, _ := newTestController(t)
	require.True(t, c.Toggle(click, viewport))

	c.Tick(t0.Add(500 * time.Millisecond))

	s := c.State()
	assert.Equal(t, 0.5, s.Progress)
	assert.InDelta(t, 0.875*s.TargetRadius, s.Radius, 1e-9)
}

func TestController_RadiusMonotoneUntilIdle(t *testing.T) {
	c, _ := newTestController(t)
	require.True(t, c.Toggle(click, viewport))
	assert.Equal(t, 0.0, c.State().Radius)

	prev := 0.0
	now := t0
	for c.Animating() {
		now = now.Add(7 * time.Millisecond)
		c.Tick(now)
		r := c.State().Radius
		require.GreaterOrEqual(t, r, prev)
		prev = r
	}
	assert.Equal(t, TargetRadius(viewport), prev)
}

func TestController_LateFrameDoesNotShrink(t *testing.T) {
	c, _ := newTestController(t)
	require.True(t, c.Toggle(click, viewport))

	c.Tick(t0.Add(600 * time.Millisecond))
	r := c.State().Radius
	c.Tick(t0.Add(300 * time.Millisecond))
	assert.Equal(t, r, c.State().Radius)
}

func TestController_CompletesAtTargetThenSettles(t *testing.T) {
	c, _ := newTestController(t)
	require.True(t, c.Toggle(click, viewport))

	assert.True(t, c.Tick(t0.Add(time.Second)))
	s := c.State()
	assert.Equal(t, s.TargetRadius, s.Radius)
	assert.Equal(t, 1.0, s.Progress)
	assert.True(t, s.IsAnimating, "still locked during settle delay")

	assert.True(t, c.Tick(t0.Add(time.Second+49*time.Millisecond)))
	assert.True(t, c.Animating())

	assert.False(t, c.Tick(t0.Add(time.Second+50*time.Millisecond)))
	s = c.State()
	assert.False(t, s.IsAnimating)
	assert.InDelta(t, 1414.2135, s.Radius, 1e-3)
}

func TestController_ToggleIgnoredWhileAnimating(t *testing.T) {
	c, clk := newTestController(t)
	require.True(t, c.Toggle(click, viewport))
	c.Tick(t0.Add(200 * time.Millisecond))
	before := c.State()

	clk.Add(300 * time.Millisecond)
	assert.False(t, c.Toggle(Point{X: 900, Y: 700}, Viewport{Width: 4000, Height: 3000}))

	after := c.State()
	assert.Equal(t, before, after)
}

func TestController_ToggleIgnoredDuringSettle(t *testing.T) {
	c, _ := newTestController(t)
	require.True(t, c.Toggle(click, viewport))
	c.Tick(t0.Add(time.Second))

	assert.False(t, c.Toggle(click, viewport))
	assert.Equal(t, 1, c.State().ActiveThemeIndex)
}

func TestController_IndexAfterNToggles(t *testing.T) {
	set, err := NewThemeSet("#000", "#111", "#222")
	require.NoError(t, err)
	clk := clock.NewMock(t0)
	c := NewController(set, clk, Options{})

	for n := 1; n <= 7; n++ {
		require.True(t, c.Toggle(click, viewport))
		assert.Equal(t, n%3, c.State().ActiveThemeIndex)
		clk.Set(runToIdle(t, c, clk.Now()))
	}
}

func TestController_NegativeSettleEndsOnCompletingFrame(t *testing.T) {
	c := NewController(DefaultThemeSet(), clock.NewMock(t0), Options{
		Duration:    100 * time.Millisecond,
		SettleDelay: -1,
	})
	require.True(t, c.Toggle(click, viewport))

	assert.True(t, c.Tick(t0.Add(50*time.Millisecond)))
	assert.False(t, c.Tick(t0.Add(100*time.Millisecond)))
	assert.False(t, c.Animating())
}

func TestController_TickWhenIdleIsNoop(t *testing.T) {
	c, _ := newTestController(t)
	assert.False(t, c.Tick(t0.Add(time.Second)))
	assert.Equal(t, State{Color: "#aaaaaa", PreviousColor: "#aaaaaa"}, c.State())
}

func TestController_EmptyThemeSetPanics(t *testing.T) {
	c := NewController(ThemeSet{}, clock.NewMock(t0), Options{})
	assert.Panics(t, func() { c.Toggle(click, viewport) })
}

func TestController_Subscribe(t *testing.T) {
	c, _ := newTestController(t)

	ch, cancel := c.Subscribe()
	initial := <-ch
	assert.False(t, initial.IsAnimating)

	require.True(t, c.Toggle(click, viewport))
	c.Tick(t0.Add(250 * time.Millisecond))
	c.Tick(t0.Add(500 * time.Millisecond))

	// Only the latest state is buffered.
	latest := <-ch
	assert.Equal(t, 0.5, latest.Progress)
	assert.Len(t, ch, 0)

	cancel()
	cancel()
	_, ok := <-ch
	assert.False(t, ok)

	// Publishing after cancel must not panic.
	c.Tick(t0.Add(600 * time.Millisecond))
}

func TestController_CloseSubscriptions(t *testing.T) {
	c, _ := newTestController(t)

	ch, cancel := c.Subscribe()
	<-ch
	c.CloseSubscriptions()

	_, ok := <-ch
	assert.False(t, ok)
	cancel()

	// Late subscribers still see the current state once.
	late, lateCancel := c.Subscribe()
	defer lateCancel()
	st, ok := <-late
	require.True(t, ok)
	assert.Equal(t, 0, st.ActiveThemeIndex)
	_, ok = <-late
	assert.False(t, ok)

	require.True(t, c.Toggle(click, viewport))
}
