package theme

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/clock"
)

const waitFor = 2 * time.Second

func TestAnimator_RunsToIdle(t *testing.T) {
	clk := clock.NewMock(t0)
	a := NewAnimator(NewController(DefaultThemeSet(), clk, Options{}), clk, 0)
	defer a.Close()

	require.True(t, a.Toggle(click, viewport))
	assert.True(t, a.Running())

	clk.Add(500 * time.Millisecond)
	require.Eventually(t, func() bool {
		return a.Controller().State().Progress > 0
	}, waitFor, time.Millisecond)

	clk.Add(time.Second)
	require.Eventually(t, func() bool {
		return a.Controller().State().Radius == TargetRadius(viewport)
	}, waitFor, time.Millisecond)

	clk.Add(100 * time.Millisecond)
	require.Eventually(t, func() bool {
		return !a.Controller().Animating() && !a.Running() && clk.Tickers() == 0
	}, waitFor, time.Millisecond)
}

func TestAnimator_SingleFlight(t *testing.T) {
	clk := clock.NewMock(t0)
	a := NewAnimator(NewController(DefaultThemeSet(), clk, Options{}), clk, 0)
	defer a.Close()

	require.True(t, a.Toggle(click, viewport))
	assert.False(t, a.Toggle(click, viewport))
	assert.Equal(t, 1, clk.Tickers())
	assert.Equal(t, 1, a.Controller().State().ActiveThemeIndex)
}

func TestAnimator_ToggleAgainAfterSettle(t *testing.T) {
	clk := clock.NewMock(t0)
	a := NewAnimator(NewController(DefaultThemeSet(), clk, Options{}), clk, 0)
	defer a.Close()

	require.True(t, a.Toggle(click, viewport))
	clk.Add(2 * time.Second)
	require.Eventually(t, func() bool { return a.Controller().State().Progress == 1 }, waitFor, time.Millisecond)
	clk.Add(time.Second)
	require.Eventually(t, func() bool { return !a.Running() }, waitFor, time.Millisecond)

	require.True(t, a.Toggle(click, viewport))
	assert.Equal(t, 0, a.Controller().State().ActiveThemeIndex)
	assert.True(t, a.Running())
}

func TestAnimator_CloseStopsLoop(t *testing.T) {
	clk := clock.NewMock(t0)
	a := NewAnimator(NewController(DefaultThemeSet(), clk, Options{}), clk, 0)

	require.True(t, a.Toggle(click, viewport))
	a.Close()
	a.Close()

	assert.False(t, a.Running())
	assert.Equal(t, 0, clk.Tickers())
	assert.False(t, a.Toggle(click, viewport))
}

func TestNewAnimator_NilControllerPanics(t *testing.T) {
	assert.Panics(t, func() { NewAnimator(nil, nil, 0) })
}
