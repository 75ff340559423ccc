package content

var (
	SiteTitle = `Frontend Journey`

	AboutMe = `A frontend developer's notebook in pictures. The gallery collects
	moments from the road so far, and the cards below trace the stages of a
	learning path from language fundamentals to architecture.`

	ThemeHint = `Click anywhere on the page to switch between the dark and sand themes.`
)
