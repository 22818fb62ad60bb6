package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookshelf/internal/auth"
	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/database/users"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/library"
)

const (
	testUsername = "reader"
	testPassword = "correct-horse"
)

func setupTestDB(t *testing.T) *database.Database {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"), logger.Silent)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})
	return db
}

// stubLookup answers ISBN lookups with a fixed result.
type stubLookup struct {
	book *entities.Book
	err  error
}

func (s *stubLookup) LookupByISBN(_ context.Context, _ string) (*entities.Book, error) {
	return s.book, s.err
}

type testApp struct {
	db     *database.Database
	router *gin.Engine
	books  *library.BookService
	users  *library.UserService
	lookup *stubLookup
}

// newTestApp wires the real services over a fresh database. With withAuth the
// router requires basic auth and a user testUsername/testPassword exists.
func newTestApp(t *testing.T, withAuth bool) *testApp {
	t.Helper()
	db := setupTestDB(t)

	bookRepo := books.NewRepository(db.DB)
	userRepo := users.NewRepository(db.DB)
	hasher := auth.NewPasswordHasher(4, auth.DefaultMinPasswordLength)
	lookup := &stubLookup{}

	app := &testApp{
		db:     db,
		books:  library.NewBookService(bookRepo, lookup, nil),
		users:  library.NewUserService(userRepo, bookRepo, hasher, nil),
		lookup: lookup,
	}

	cfg := RouterConfig{
		Books:    app.books,
		Users:    app.users,
		Database: db,
		Version:  "test",
	}
	if withAuth {
		_, err := app.users.Create(context.Background(), &entities.User{
			Username:  testUsername,
			Name:      "Test Reader",
			BirthDate: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		}, testPassword)
		require.NoError(t, err)

		cfg.AuthMiddleware = auth.NewMiddleware(auth.NewService(userRepo), nil, nil, config.Auth{Realm: "test"})
	}

	app.router = NewRouter(cfg)
	return app
}

// do sends a request with an optional JSON body, authenticating as the test user.
func (a *testApp) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	req := newJSONRequest(t, method, path, body)
	req.SetBasicAuth(testUsername, testPassword)
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func newJSONRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func sampleBook(isbn string) entities.Book {
	return entities.Book{
		Title:     "Dune",
		Subtitle:  "Deluxe Edition",
		Author:    "Frank Herbert",
		Genre:     "Science Fiction",
		Publisher: "Chilton Books",
		Year:      "1965",
		Pages:     999,
		ISBN:      isbn,
		Image:     "https://covers.example/dune.jpg",
	}
}
