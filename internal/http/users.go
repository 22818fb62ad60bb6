package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/auth"
	"github.com/mrlokans/bookshelf/internal/database/users"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// UsersController handles the /api/users endpoints.
type UsersController struct {
	users UserService
}

func NewUsersController(users UserService) *UsersController {
	return &UsersController{users: users}
}

// UserRequest is the body of POST and PUT /api/users.
// Password is plaintext on the wire and is hashed before storage.
type UserRequest struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	BirthDate string `json:"birth_date"` // YYYY-MM-DD
	Password  string `json:"password"`
}

func (r UserRequest) toEntity() (*entities.User, error) {
	user := &entities.User{
		ID:       r.ID,
		Username: strings.TrimSpace(r.Username),
		Name:     strings.TrimSpace(r.Name),
	}
	if r.BirthDate != "" {
		birthDate, err := time.Parse(dateLayout, r.BirthDate)
		if err != nil {
			return nil, entities.NewInvalidFieldError("birth_date")
		}
		user.BirthDate = birthDate
	}
	return user, nil
}

// ListUsers handles GET /api/users
// ?userName= returns that single user. Otherwise returns a page filtered by
// name substring and the inclusive from/to birth date range.
func (uc *UsersController) ListUsers(c *gin.Context) {
	ctx := c.Request.Context()

	if username := c.Query("userName"); username != "" {
		user, err := uc.users.GetByUsername(ctx, username)
		if err != nil {
			respondDomainError(c, err, "get user by username")
			return
		}
		c.JSON(http.StatusOK, user)
		return
	}

	page, ok := parsePageRequest(c)
	if !ok {
		return
	}
	from, ok := parseDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "to")
	if !ok {
		return
	}

	filter := users.Filter{
		Name:       c.Query("name"),
		BornAfter:  from,
		BornBefore: to,
	}

	result, err := uc.users.List(ctx, filter, page)
	if err != nil {
		respondDomainError(c, err, "list users")
		return
	}
	c.JSON(http.StatusOK, result)
}

// CreateUser handles POST /api/users
func (uc *UsersController) CreateUser(c *gin.Context) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	user, err := req.toEntity()
	if err != nil {
		respondDomainError(c, err, "create user")
		return
	}

	created, err := uc.users.Create(c.Request.Context(), user, req.Password)
	if err != nil {
		respondDomainError(c, err, "create user")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetUser handles GET /api/users/:id
func (uc *UsersController) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := uc.users.Get(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err, "get user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser handles PUT /api/users/:id
// An empty password keeps the current one.
func (uc *UsersController) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	user, err := req.toEntity()
	if err != nil {
		respondDomainError(c, err, "update user")
		return
	}

	updated, err := uc.users.Update(c.Request.Context(), id, user, req.Password)
	if err != nil {
		respondDomainError(c, err, "update user")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteUser handles DELETE /api/users/:id
func (uc *UsersController) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := uc.users.Delete(c.Request.Context(), id); err != nil {
		respondDomainError(c, err, "delete user")
		return
	}
	c.Status(http.StatusNoContent)
}

// AddBook handles PUT /api/users/:id/books/:bookId
func (uc *UsersController) AddBook(c *gin.Context) {
	uc.changeOwnership(c, "add book", uc.users.AddBook)
}

// RemoveBook handles DELETE /api/users/:id/books/:bookId
func (uc *UsersController) RemoveBook(c *gin.Context) {
	uc.changeOwnership(c, "remove book", uc.users.RemoveBook)
}

func (uc *UsersController) changeOwnership(
	c *gin.Context,
	op string,
	change func(ctx context.Context, userID, bookID int64) (*entities.User, error),
) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	bookID, ok := parseIDParam(c, "bookId")
	if !ok {
		return
	}

	user, err := change(c.Request.Context(), userID, bookID)
	if err != nil {
		respondDomainError(c, err, op)
		return
	}
	c.JSON(http.StatusOK, user)
}

// CurrentUser handles GET /api/users/current-user
// Returns the user whose credentials authenticated the request.
func (uc *UsersController) CurrentUser(c *gin.Context) {
	username := auth.GetUsername(c)
	if username == "" {
		respondError(c, http.StatusUnauthorized, entities.ErrInvalidCredentials.Error())
		return
	}

	user, err := uc.users.GetByUsername(c.Request.Context(), username)
	if err != nil {
		respondDomainError(c, err, "current user")
		return
	}
	c.JSON(http.StatusOK, user)
}
