package auth

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// Context keys for user data
const (
	ContextKeyUserID   = "auth_user_id"
	ContextKeyUsername = "auth_username"
	ContextKeyUser     = "auth_user"
)

// DefaultUserID is set for requests to public routes.
const DefaultUserID = uint(0)

const defaultRealm = "bookshelf"

// Middleware enforces HTTP basic authentication on every route not listed as public.
type Middleware struct {
	service      *Service
	rateLimiter  *RateLimiter
	audit        *audit.Service
	realm        string
	publicRoutes map[string]bool
}

// NewMiddleware creates a new authentication middleware. rateLimiter and
// auditService may be nil.
func NewMiddleware(service *Service, rateLimiter *RateLimiter, auditService *audit.Service, cfg config.Auth) *Middleware {
	realm := cfg.Realm
	if realm == "" {
		realm = defaultRealm
	}

	publicRoutes := map[string]bool{
		routeKey(http.MethodGet, "/health"):     true,
		routeKey(http.MethodGet, "/ping"):       true,
		routeKey(http.MethodPost, "/api/users"): true,
		routeKey(http.MethodPost, "/api/books"): true,
	}

	return &Middleware{
		service:      service,
		rateLimiter:  rateLimiter,
		audit:        auditService,
		realm:        realm,
		publicRoutes: publicRoutes,
	}
}

func routeKey(method, path string) string {
	return method + " " + path
}

// Handler returns a Gin middleware handler that authenticates requests.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.isPublicRoute(c.Request.Method, c.Request.URL.Path) {
			c.Set(ContextKeyUserID, DefaultUserID)
			c.Next()
			return
		}

		username, password, ok := c.Request.BasicAuth()
		if !ok {
			m.challenge(c, http.StatusUnauthorized, "authentication required")
			return
		}

		attempt := LoginAttempt{IP: c.ClientIP(), Username: username}
		if m.rateLimiter != nil {
			if retryAfter, ok := m.rateLimiter.Check(attempt); !ok {
				c.Header("Retry-After", fmt.Sprintf("%d", int(retryAfter.Seconds())))
				abortJSON(c, http.StatusTooManyRequests, "too many login attempts")
				return
			}
		}

		user, err := m.service.Authenticate(username, password)
		if err != nil {
			if !errors.Is(err, entities.ErrInvalidCredentials) {
				log.Printf("Authentication error for %q: %v", username, err)
				abortJSON(c, http.StatusInternalServerError, "internal server error")
				return
			}
			if m.rateLimiter != nil {
				m.rateLimiter.Fail(attempt)
			}
			m.audit.LogAuth(c.Request.Context(), 0, username, false)
			m.challenge(c, http.StatusUnauthorized, err.Error())
			return
		}

		if m.rateLimiter != nil {
			m.rateLimiter.Succeed(attempt)
		}
		m.setUserContext(c, user)
		c.Next()
	}
}

// isPublicRoute checks if a request may pass without credentials.
func (m *Middleware) isPublicRoute(method, path string) bool {
	path = strings.TrimSuffix(path, "/")
	if path == "" {
		path = "/"
	}
	return m.publicRoutes[routeKey(method, path)]
}

func (m *Middleware) challenge(c *gin.Context, status int, message string) {
	c.Header("WWW-Authenticate", fmt.Sprintf(`Basic realm=%q, charset="UTF-8"`, m.realm))
	abortJSON(c, status, message)
}

// setUserContext stores user information in the Gin context and the request context.
func (m *Middleware) setUserContext(c *gin.Context, user *entities.User) {
	c.Set(ContextKeyUserID, user.ID)
	c.Set(ContextKeyUsername, user.Username)
	c.Set(ContextKeyUser, user)

	actor := audit.ActorFrom(c.Request.Context())
	actor.UserID = user.ID
	if actor.IPAddress == "" {
		actor.IPAddress = c.ClientIP()
	}
	c.Request = c.Request.WithContext(audit.WithActor(c.Request.Context(), actor))
}

func abortJSON(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"message":   message,
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Helper functions to extract auth data from Gin context

// GetUserID retrieves the authenticated user's ID from the context.
// Returns DefaultUserID (0) on public routes.
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextKeyUserID); exists {
		if userID, ok := id.(uint); ok {
			return userID
		}
	}
	return DefaultUserID
}

// GetUsername retrieves the authenticated user's username from the context.
func GetUsername(c *gin.Context) string {
	if name, exists := c.Get(ContextKeyUsername); exists {
		if username, ok := name.(string); ok {
			return username
		}
	}
	return ""
}

// GetUser retrieves the authenticated user loaded by the middleware, or nil.
func GetUser(c *gin.Context) *entities.User {
	if u, exists := c.Get(ContextKeyUser); exists {
		if user, ok := u.(*entities.User); ok {
			return user
		}
	}
	return nil
}
