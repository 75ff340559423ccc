// Package web serves the portfolio over HTTP with gin: the gallery page, a
// JSON API for the display tables, and the per-session theme animation.
package web

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/clock"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/session"
	"github.com/Zachkp/portfolio/internal/store"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Deps are the collaborators the router is wired from.
// Sessions, Images and Stages are required.
type Deps struct {
	Sessions *session.Manager
	Images   content.ImageProvider
	Stages   content.StageProvider

	// Store enables visitor tracking and the admin API when set.
	Store         *store.Store
	TrackVisitors bool
	Admin         AdminCredentials

	// SessionMaxAge is the session cookie lifetime.
	SessionMaxAge time.Duration

	Clock  clock.Clock
	Logger *slog.Logger
}

// AdminCredentials guard the admin API.
type AdminCredentials struct {
	Username string
	Password string
}

type server struct {
	deps   Deps
	logger *slog.Logger
	admin  *adminAuth
}

// NewRouter builds the gin engine. It panics when a required dependency is
// missing so wiring mistakes surface at startup.
func NewRouter(deps Deps) *gin.Engine {
	if deps.Sessions == nil {
		panic("web: NewRouter requires a session manager")
	}
	if deps.Images == nil || deps.Stages == nil {
		panic("web: NewRouter requires image and stage providers")
	}
	if deps.Clock == nil {
		deps.Clock = clock.Real()
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.SessionMaxAge <= 0 {
		deps.SessionMaxAge = 30 * time.Minute
	}

	s := &server{deps: deps, logger: deps.Logger}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.SetHTMLTemplate(template.Must(
		template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html"),
	))

	if deps.Store != nil && deps.TrackVisitors {
		r.Use(s.visitorTrackingMiddleware())
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": deps.Sessions.Len()})
	})

	site := r.Group("/")
	site.Use(s.sessionMiddleware())
	{
		site.GET("/", s.index)

		api := site.Group("/api")
		api.GET("/images", s.listImages)
		api.GET("/images/hero", s.heroImage)
		api.GET("/images/grid", s.imageGrid)
		api.GET("/stages", s.listStages)

		api.GET("/theme", s.themeState)
		api.POST("/theme/toggle", s.toggleTheme)
		api.GET("/theme/stream", s.streamTheme)
	}

	if deps.Store != nil {
		s.admin = newAdminAuth(deps.Admin)
		s.setupAdminRoutes(r)
	}

	return r
}

var templateFuncs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
	"cell": func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	},
}

func errorJSON(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
