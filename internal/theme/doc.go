// Package theme owns the active theme selection and the circular-reveal
// animation that masks a theme change.
//
// A toggle swaps the theme immediately and then expands a circle from the
// click point until it covers the whole viewport:
//
//	radius(t) = sqrt(2) * max(w, h) * (1 - (1 - min(t/duration, 1))^3)
//
// Only one expansion runs at a time. Toggles that arrive while a circle is
// still expanding, or during the short settle delay after it completes, are
// dropped.
package theme
