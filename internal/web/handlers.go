package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/theme"
)

func (s *server) index(c *gin.Context) {
	sess, ok := s.mustSession(c)
	if !ok {
		return
	}

	images, err := s.deps.Images.ListImages(c.Request.Context())
	if err != nil {
		s.logger.Error("failed to load images", "error", err)
		c.String(http.StatusInternalServerError, "failed to load gallery")
		return
	}
	stages, err := s.deps.Stages.ListStages(c.Request.Context())
	if err != nil {
		s.logger.Error("failed to load stages", "error", err)
		c.String(http.StatusInternalServerError, "failed to load stages")
		return
	}
	hero, _ := content.HeroOf(images)

	c.HTML(http.StatusOK, "index.html", gin.H{
		"title":  content.SiteTitle,
		"about":  content.AboutMe,
		"hint":   content.ThemeHint,
		"theme":  sess.Controller().State(),
		"hero":   hero,
		"images": images,
		"grid":   content.ImageGrid(),
		"stages": stages,
	})
}

func (s *server) listImages(c *gin.Context) {
	images, err := s.deps.Images.ListImages(c.Request.Context())
	if err != nil {
		s.logger.Error("failed to load images", "error", err)
		errorJSON(c, http.StatusInternalServerError, "failed to load images")
		return
	}
	c.JSON(http.StatusOK, gin.H{"images": images})
}

func (s *server) heroImage(c *gin.Context) {
	images, err := s.deps.Images.ListImages(c.Request.Context())
	if err != nil {
		s.logger.Error("failed to load images", "error", err)
		errorJSON(c, http.StatusInternalServerError, "failed to load images")
		return
	}
	hero, ok := content.HeroOf(images)
	if !ok {
		errorJSON(c, http.StatusNotFound, "no images")
		return
	}
	c.JSON(http.StatusOK, hero)
}

func (s *server) imageGrid(c *gin.Context) {
	c.JSON(http.StatusOK, content.ImageGrid())
}

func (s *server) listStages(c *gin.Context) {
	stages, err := s.deps.Stages.ListStages(c.Request.Context())
	if err != nil {
		s.logger.Error("failed to load stages", "error", err)
		errorJSON(c, http.StatusInternalServerError, "failed to load stages")
		return
	}
	c.JSON(http.StatusOK, gin.H{"stages": stages})
}

func (s *server) themeState(c *gin.Context) {
	sess, ok := s.mustSession(c)
	if !ok {
		return
	}
	ctrl := sess.Controller()
	c.JSON(http.StatusOK, gin.H{
		"state":  ctrl.State(),
		"themes": ctrl.Themes().Colors(),
	})
}

// toggleRequest carries the click point and the client's viewport size.
type toggleRequest struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width" binding:"required,gt=0"`
	Height float64 `json:"height" binding:"required,gt=0"`
}

func (s *server) toggleTheme(c *gin.Context) {
	sess, ok := s.mustSession(c)
	if !ok {
		return
	}

	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}

	accepted := sess.Animator.Toggle(
		theme.Point{X: req.X, Y: req.Y},
		theme.Viewport{Width: req.Width, Height: req.Height},
	)
	c.JSON(http.StatusOK, gin.H{
		"accepted": accepted,
		"state":    sess.Controller().State(),
	})
}

// streamTheme pushes one "frame" event per published animation state. With
// ?until=idle the stream ends after the first frame with no animation in flight.
func (s *server) streamTheme(c *gin.Context) {
	sess, ok := s.mustSession(c)
	if !ok {
		return
	}
	untilIdle := c.Query("until") == "idle"

	frames, cancel := sess.Controller().Subscribe()
	defer cancel()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case st, ok := <-frames:
			if !ok {
				return
			}
			c.SSEvent("frame", st)
			c.Writer.Flush()
			if untilIdle && !st.IsAnimating {
				return
			}
		}
	}
}
