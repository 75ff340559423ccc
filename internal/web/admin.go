package web

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/store"
)

type adminAuth struct {
	creds AdminCredentials
	token string
}

func newAdminAuth(creds AdminCredentials) *adminAuth {
	return &adminAuth{creds: creds, token: generateAdminToken()}
}

func generateAdminToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("web: failed to generate admin token: " + err.Error())
	}
	return hex.EncodeToString(b)
}

func (a *adminAuth) check(username, password string) bool {
	return a.creds.Username != "" && username == a.creds.Username && password == a.creds.Password
}

// statsResponse adds human-readable fields to the raw statistics.
type statsResponse struct {
	Stats        *store.Stats `json:"stats"`
	LastVisitAgo string       `json:"last_visit_ago"`
	Sessions     int          `json:"live_sessions"`
}

func (s *server) setupAdminRoutes(r *gin.Engine) {
	r.POST("/admin/login", func(c *gin.Context) {
		if !s.admin.check(c.PostForm("username"), c.PostForm("password")) {
			s.logger.Warn("failed admin login attempt", "from", s.deps.Store.HashIP(c.ClientIP()))
			errorJSON(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		c.SetCookie(adminCookie, s.admin.token, 3600*24, "/admin", "", false, true)
		s.logger.Info("admin login", "from", s.deps.Store.HashIP(c.ClientIP()))
		c.JSON(http.StatusOK, gin.H{"message": "logged in"})
	})

	r.POST("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		c.JSON(http.StatusOK, gin.H{"message": "logged out"})
	})

	admin := r.Group("/admin")
	admin.Use(s.adminAuthMiddleware())

	admin.GET("/api/stats", func(c *gin.Context) {
		resp, err := s.stats(c)
		if err != nil {
			s.logger.Error("failed to load admin stats", "error", err)
			errorJSON(c, http.StatusInternalServerError, "failed to load statistics")
			return
		}
		c.JSON(http.StatusOK, resp)
	})

	admin.GET("/api/visitors", func(c *gin.Context) {
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "200"))
		if err != nil || limit <= 0 {
			errorJSON(c, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		visits, err := s.deps.Store.RecentVisits(c.Request.Context(), limit)
		if err != nil {
			errorJSON(c, http.StatusInternalServerError, "failed to load visitors")
			return
		}
		c.JSON(http.StatusOK, gin.H{"visitors": visits})
	})

	// Privacy cleanup; ?older_than=720h overrides the 12 month default.
	admin.POST("/api/prune", func(c *gin.Context) {
		age := 365 * 24 * time.Hour
		if v := c.Query("older_than"); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil || d <= 0 {
				errorJSON(c, http.StatusBadRequest, "older_than must be a positive duration")
				return
			}
			age = d
		}
		n, err := s.deps.Store.PruneVisits(c.Request.Context(), s.deps.Clock.Now().Add(-age))
		if err != nil {
			errorJSON(c, http.StatusInternalServerError, "prune failed")
			return
		}
		c.JSON(http.StatusOK, gin.H{"removed": n})
	})

	admin.GET("/export/stats", func(c *gin.Context) {
		resp, err := s.stats(c)
		if err != nil {
			errorJSON(c, http.StatusInternalServerError, err.Error())
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		s.logger.Info("admin stats exported", "from", s.deps.Store.HashIP(c.ClientIP()))
		c.JSON(http.StatusOK, resp)
	})
}

func (s *server) stats(c *gin.Context) (*statsResponse, error) {
	now := s.deps.Clock.Now()
	stats, err := s.deps.Store.Stats(c.Request.Context(), now, 50)
	if err != nil {
		return nil, err
	}

	ago := "never"
	if !stats.LastVisit.IsZero() {
		ago = humanize.RelTime(stats.LastVisit, now, "ago", "from now")
	}
	return &statsResponse{
		Stats:        stats,
		LastVisitAgo: ago,
		Sessions:     s.deps.Sessions.Len(),
	}, nil
}
