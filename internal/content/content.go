// Package content holds the portfolio's static display data: gallery images,
// the second-screen image grid and the career stage cards.
//
// The tables are compiled into the binary as YAML and decoded once. Callers
// that may later switch to another source should depend on ImageProvider and
// StageProvider instead of the package-level accessors.
package content

import (
	"context"
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Image is one gallery entry.
type Image struct {
	ID       int    `yaml:"id" json:"id"`
	ThumbURL string `yaml:"thumb_url" json:"thumb_url"`
	URL      string `yaml:"url" json:"url"`
	IsHero   bool   `yaml:"is_hero" json:"is_hero"`
}

// Grid is the second-screen layout. A nil cell is an empty slot.
type Grid struct {
	Rows [][]*string `yaml:"rows" json:"rows"`
}

// Stage is a career stage card.
type Stage struct {
	Name     string `yaml:"name" json:"name"`
	Director string `yaml:"director" json:"director"`
	Location string `yaml:"location" json:"location"`
}

// ImageProvider lists gallery images.
type ImageProvider interface {
	ListImages(ctx context.Context) ([]Image, error)
}

// StageProvider lists career stages.
type StageProvider interface {
	ListStages(ctx context.Context) ([]Stage, error)
}

var (
	loadOnce sync.Once
	loadErr  error
	images   []Image
	grid     Grid
	stages   []Stage
)

func load() error {
	loadOnce.Do(func() {
		if loadErr = decode("data/images.yaml", &images); loadErr != nil {
			return
		}
		if loadErr = decode("data/grid.yaml", &grid); loadErr != nil {
			return
		}
		loadErr = decode("data/stages.yaml", &stages)
	})
	return loadErr
}

func decode(name string, v any) error {
	data, err := dataFS.ReadFile(name)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func mustLoad() {
	if err := load(); err != nil {
		panic("content: embedded data is corrupt: " + err.Error())
	}
}

// Images returns a copy of the gallery.
func Images() []Image {
	mustLoad()
	return append([]Image(nil), images...)
}

// HeroOf returns the image flagged as hero, or the first image if none is.
func HeroOf(imgs []Image) (Image, bool) {
	for _, img := range imgs {
		if img.IsHero {
			return img, true
		}
	}
	if len(imgs) == 0 {
		return Image{}, false
	}
	return imgs[0], true
}

// ImageGrid returns a copy of the second-screen grid.
func ImageGrid() Grid {
	mustLoad()
	rows := make([][]*string, len(grid.Rows))
	for i, r := range grid.Rows {
		rows[i] = append([]*string(nil), r...)
	}
	return Grid{Rows: rows}
}

// Stages returns a copy of the career stage cards.
func Stages() []Stage {
	mustLoad()
	return append([]Stage(nil), stages...)
}

// Static serves the compiled-in tables through the provider interfaces.
type Static struct{}

// ListImages implements ImageProvider.
func (Static) ListImages(ctx context.Context) ([]Image, error) {
	if err := load(); err != nil {
		return nil, err
	}
	return Images(), nil
}

// ListStages implements StageProvider.
func (Static) ListStages(ctx context.Context) ([]Stage, error) {
	if err := load(); err != nil {
		return nil, err
	}
	return Stages(), nil
}
