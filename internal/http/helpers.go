package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// dateLayout is the wire format for birth dates and date filters.
const dateLayout = "2006-01-02"

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Message   string `json:"message"`
	Status    int    `json:"status"`
	Timestamp string `json:"timestamp"`
}

// --- Error Response Helpers ---

// respondError sends an error response with the given status code.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{
		Message:   message,
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	respondError(c, http.StatusBadRequest, message)
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	respondError(c, http.StatusInternalServerError, "internal server error")
}

// respondDomainError maps an error returned by the library services onto a status code.
// IntegrationError is matched first: it may wrap a ValidationError.
func respondDomainError(c *gin.Context, err error, context string) {
	var (
		integrationErr *entities.IntegrationError
		notFoundErr    *entities.NotFoundError
		mismatchErr    *entities.IDMismatchError
		validationErr  *entities.ValidationError
	)

	switch {
	case errors.As(err, &integrationErr):
		log.Printf("Integration error (%s): %v", context, err)
		respondError(c, http.StatusBadGateway, integrationErr.Error())
	case errors.As(err, &notFoundErr):
		respondError(c, http.StatusNotFound, notFoundErr.Error())
	case errors.As(err, &mismatchErr):
		respondBadRequest(c, mismatchErr.Error())
	case errors.As(err, &validationErr):
		respondBadRequest(c, validationErr.Error())
	case errors.Is(err, entities.ErrAlreadyOwned), errors.Is(err, entities.ErrNotOwned):
		respondBadRequest(c, err.Error())
	case errors.Is(err, entities.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, entities.ErrDuplicate):
		respondError(c, http.StatusConflict, err.Error())
	default:
		respondInternalError(c, err, context)
	}
}

// --- Parameter Parsing ---

// parseIDParam extracts a signed integer ID from URL parameters.
// Negative ids parse fine; the services answer them with a not-found error.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(paramName), 10, 64)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return id, true
}

// parsePageRequest reads page, size, sortBy and sortOrder from the query string.
// Defaults and the sort column whitelist are applied by the repositories.
func parsePageRequest(c *gin.Context) (database.PageRequest, bool) {
	var req database.PageRequest

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			respondBadRequest(c, "page is invalid")
			return req, false
		}
		req.Page = page
	}
	if raw := c.Query("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			respondBadRequest(c, "size is invalid")
			return req, false
		}
		req.PageSize = size
	}
	req.SortBy = c.Query("sortBy")
	req.SortOrder = database.SortOrder(c.Query("sortOrder"))

	return req, true
}

// parseDateQuery parses an optional YYYY-MM-DD query parameter.
func parseDateQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		respondBadRequest(c, name+" is invalid")
		return nil, false
	}
	return &t, true
}
