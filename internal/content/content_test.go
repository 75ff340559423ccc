package content

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImages(t *testing.T) {
	imgs := Images()
	require.Len(t, imgs, 24)

	for i, img := range imgs {
		assert.Equal(t, i+1, img.ID)
		assert.NotEmpty(t, img.URL)
		assert.NotEmpty(t, img.ThumbURL)
	}
	assert.Equal(t, "https://origin.picgo.net/2025/11/13/96a1f7658e3610ed7.jpeg", imgs[0].URL)
}

func TestImages_ReturnsCopy(t *testing.T) {
	imgs := Images()
	imgs[0].URL = "changed"
	assert.NotEqual(t, "changed", Images()[0].URL)
}

func TestHeroOf(t *testing.T) {
	imgs := []Image{{ID: 1}, {ID: 2, IsHero: true}, {ID: 3, IsHero: true}}
	hero, ok := HeroOf(imgs)
	require.True(t, ok)
	assert.Equal(t, 2, hero.ID)

	hero, ok = HeroOf(imgs[:1])
	require.True(t, ok)
	assert.Equal(t, 1, hero.ID)

	_, ok = HeroOf(nil)
	assert.False(t, ok)
}

func TestHeroOf_FallsBackToFirst(t *testing.T) {
	hero, ok := HeroOf(Images())
	require.True(t, ok)
	assert.Equal(t, 1, hero.ID)
}

func TestImageGrid(t *testing.T) {
	g := ImageGrid()
	require.Len(t, g.Rows, 4)

	var widths []int
	for _, r := range g.Rows {
		widths = append(widths, len(r))
	}
	assert.Equal(t, []int{5, 4, 3, 4}, widths)

	require.NotNil(t, g.Rows[0][0])
	assert.Nil(t, g.Rows[0][1])
	assert.Equal(t, "https://origin.picgo.net/2025/11/13/119948602d06c30ddd.png", *g.Rows[0][0])
}

func TestStages(t *testing.T) {
	s := Stages()
	require.Len(t, s, 13)
	assert.Equal(t, "TypeScript", s[2].Director)
	for _, st := range s {
		assert.NotEmpty(t, st.Name)
		assert.NotEmpty(t, st.Location)
	}
}

func TestStatic_Providers(t *testing.T) {
	var ip ImageProvider = Static{}
	var sp StageProvider = Static{}

	imgs, err := ip.ListImages(context.Background())
	require.NoError(t, err)
	assert.Len(t, imgs, 24)

	stages, err := sp.ListStages(context.Background())
	require.NoError(t, err)
	assert.Len(t, stages, 13)
}
