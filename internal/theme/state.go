package theme

import (
	"math"
	"time"
)

// Point is a screen position in pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Viewport is the size of the surface being covered.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// State is a snapshot of the animation as seen by renderers.
type State struct {
	ActiveThemeIndex int     `json:"active_theme_index"`
	IsAnimating      bool    `json:"is_animating"`
	Origin           Point   `json:"origin"`
	Radius           float64 `json:"radius"`
	TargetRadius     float64 `json:"target_radius"`
	Progress         float64 `json:"progress"`
	Color            string  `json:"color"`
	PreviousColor    string  `json:"previous_color"`
}

// Phase names the two states of the animation.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseExpanding Phase = "expanding"
)

// Phase reports which state the snapshot was taken in.
func (s State) Phase() Phase {
	if s.IsAnimating {
		return PhaseExpanding
	}
	return PhaseIdle
}

// Covers reports whether p lies inside the revealed circle.
func (s State) Covers(p Point) bool {
	dx, dy := p.X-s.Origin.X, p.Y-s.Origin.Y
	return dx*dx+dy*dy <= s.Radius*s.Radius
}

// TargetRadius is the radius that covers the viewport from any origin on it.
func TargetRadius(vp Viewport) float64 {
	return math.Sqrt2 * max(vp.Width, vp.Height)
}

// EaseOutCubic maps linear progress in [0,1] to 1-(1-p)^3.
func EaseOutCubic(p float64) float64 {
	q := 1 - p
	return 1 - q*q*q
}

// Progress returns elapsed/duration clamped to [0,1].
func Progress(elapsed, duration time.Duration) float64 {
	if duration <= 0 || elapsed >= duration {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	return float64(elapsed) / float64(duration)
}
