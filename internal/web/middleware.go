package web

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/session"
)

const (
	sessionCookie = "portfolio_session"
	sessionKey    = "portfolio.session"
	adminCookie   = "admin_token"
)

// sessionMiddleware attaches the caller's session, starting one when the
// cookie is missing or refers to an expired session.
func (s *server) sessionMiddleware() gin.HandlerFunc {
	maxAge := int(s.deps.SessionMaxAge.Seconds())

	return func(c *gin.Context) {
		var sess *session.Session
		if id, err := c.Cookie(sessionCookie); err == nil {
			sess, _ = s.deps.Sessions.Get(id)
		}
		if sess == nil {
			var err error
			sess, err = s.deps.Sessions.Start()
			if err != nil {
				s.logger.Error("failed to start session", "error", err)
				errorJSON(c, http.StatusServiceUnavailable, "session unavailable")
				return
			}
		}

		c.SetCookie(sessionCookie, sess.ID, maxAge, "/", "", false, true)
		c.Set(sessionKey, sess)
		c.Next()
	}
}

// sessionFrom returns the session attached by sessionMiddleware.
func sessionFrom(c *gin.Context) (*session.Session, error) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, session.ErrNotInitialized
	}
	sess, ok := v.(*session.Session)
	if !ok || sess == nil {
		return nil, session.ErrNotInitialized
	}
	return sess, nil
}

// mustSession writes the not_initialized error when no session is attached.
func (s *server) mustSession(c *gin.Context) (*session.Session, bool) {
	sess, err := sessionFrom(c)
	if err != nil {
		if errors.Is(err, session.ErrNotInitialized) {
			s.logger.Error("theme state requested outside a session", "path", c.Request.URL.Path)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": "not_initialized",
		})
		return nil, false
	}
	return sess, true
}

// visitorTrackingMiddleware records page views with hashed addresses.
func (s *server) visitorTrackingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/admin/") ||
			strings.HasPrefix(path, "/api/theme/stream") ||
			strings.HasPrefix(path, "/favicon") ||
			path == "/healthz" {
			return
		}
		if c.GetHeader("DNT") == "1" {
			return
		}
		if c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		err := s.deps.Store.RecordVisit(c.Request.Context(),
			c.ClientIP(), c.GetHeader("User-Agent"), path, s.deps.Clock.Now())
		if err != nil {
			s.logger.Warn("failed to record visitor", "error", err)
		}
	}
}

// adminAuthMiddleware checks the admin token cookie.
func (s *server) adminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(s.admin.token)) != 1 {
			errorJSON(c, http.StatusUnauthorized, "admin login required")
			return
		}
		c.Next()
	}
}
