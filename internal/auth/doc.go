// Package auth provides HTTP basic authentication for the API.
//
// Every route requires credentials except the public ones: GET /health,
// GET /ping, POST /api/users and POST /api/books. Credentials are checked
// against the bcrypt hash stored on entities.User.Password.
//
// # Configuration
//
//	AUTH_REALM=bookshelf            # Realm sent in WWW-Authenticate
//	AUTH_BCRYPT_COST=12             # bcrypt cost factor
//	AUTH_MIN_PASSWORD_LENGTH=8      # Enforced when hashing new passwords
//	AUTH_MAX_LOGIN_ATTEMPTS=5       # Failed attempts per IP+username before lockout
//	AUTH_RATE_LIMIT_WINDOW=15m
//	AUTH_LOCKOUT_DURATION=30m
//
// # Usage
//
// Initialize authentication in entrypoint:
//
//	authService := auth.NewService(usersRepo)
//	limiter := auth.NewRateLimiter(auth.RateLimitConfigFrom(cfg.Auth))
//	authMiddleware := auth.NewMiddleware(authService, limiter, auditService, cfg.Auth)
//	router.Use(authMiddleware.Handler())
//
// Extract user in handlers:
//
//	userID := auth.GetUserID(c)  // Returns DefaultUserID on public routes
//	user := auth.GetUser(c)      // nil on public routes
package auth
