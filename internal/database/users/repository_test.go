package users

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *database.Database) {
	dbPath := "./test_users_" + t.Name() + ".db"
	db, err := database.Open(dbPath, logger.Silent)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
		os.Remove(dbPath)
	})
	return NewRepository(db.DB), db
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func newUser(username, name string, born time.Time) *entities.User {
	return &entities.User{
		Username:  username,
		Name:      name,
		BirthDate: born,
		Password:  "$2a$04$hash",
	}
}

func createBook(t *testing.T, db *database.Database, isbn string) entities.Book {
	book := entities.Book{
		Title: "Title " + isbn, Subtitle: "Sub", Author: "Author", Publisher: "Pub",
		Year: "2000", Pages: 10, ISBN: isbn, Image: "img",
	}
	require.NoError(t, db.DB.Create(&book).Error)
	return book
}

func TestRepository_CreateUser(t *testing.T) {
	repo, _ := setupTestDB(t)

	user := newUser("ada", "Ada Lovelace", date(1815, time.December, 10))
	require.NoError(t, repo.CreateUser(user))
	assert.NotZero(t, user.ID)

	found, err := repo.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada", found.Username)
	assert.Equal(t, "$2a$04$hash", found.Password)
	assert.True(t, found.BirthDate.Equal(user.BirthDate))
	assert.Empty(t, found.Books)
}

func TestRepository_CreateUser_DuplicateUsername(t *testing.T) {
	repo, _ := setupTestDB(t)

	require.NoError(t, repo.CreateUser(newUser("ada", "Ada", date(1990, 1, 1))))
	err := repo.CreateUser(newUser("ada", "Other Ada", date(1991, 1, 1)))

	assert.ErrorIs(t, err, entities.ErrDuplicate)
}

func TestRepository_GetUser_NotFound(t *testing.T) {
	repo, _ := setupTestDB(t)

	_, err := repo.GetUserByID(99)
	assert.EqualError(t, err, "User Not Found")

	_, err = repo.GetUserByUsername("ghost")
	var notFound *entities.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestRepository_SaveUser(t *testing.T) {
	repo, _ := setupTestDB(t)

	user := newUser("ada", "Ada", date(1990, 1, 1))
	require.NoError(t, repo.CreateUser(user))

	user.Name = "Augusta Ada King"
	require.NoError(t, repo.SaveUser(user))

	found, err := repo.GetUserByUsername("ada")
	require.NoError(t, err)
	assert.Equal(t, "Augusta Ada King", found.Name)
}

func TestRepository_ReplaceBooks(t *testing.T) {
	repo, db := setupTestDB(t)

	first := createBook(t, db, "1")
	second := createBook(t, db, "2")
	user := newUser("ada", "Ada", date(1990, 1, 1))
	require.NoError(t, repo.CreateUser(user))

	require.NoError(t, user.AddBook(first))
	require.NoError(t, user.AddBook(second))
	require.NoError(t, repo.ReplaceBooks(user))

	found, err := repo.GetUserByID(user.ID)
	require.NoError(t, err)
	require.Len(t, found.Books, 2)
	assert.Equal(t, first.ID, found.Books[0].ID)
	assert.Equal(t, second.ID, found.Books[1].ID)

	require.NoError(t, found.RemoveBook(first))
	require.NoError(t, repo.ReplaceBooks(found))

	found, err = repo.GetUserByID(user.ID)
	require.NoError(t, err)
	require.Len(t, found.Books, 1)
	assert.Equal(t, second.ID, found.Books[0].ID)

	var books int64
	require.NoError(t, db.DB.Model(&entities.Book{}).Count(&books).Error)
	assert.Equal(t, int64(2), books, "removing ownership never deletes the book")
}

func TestRepository_DeleteUser(t *testing.T) {
	repo, db := setupTestDB(t)

	book := createBook(t, db, "1")
	user := newUser("ada", "Ada", date(1990, 1, 1))
	require.NoError(t, repo.CreateUser(user))
	require.NoError(t, user.AddBook(book))
	require.NoError(t, repo.ReplaceBooks(user))

	require.NoError(t, repo.DeleteUser(user.ID))

	_, err := repo.GetUserByID(user.ID)
	var notFound *entities.NotFoundError
	assert.ErrorAs(t, err, &notFound)

	var links int64
	require.NoError(t, db.DB.Table("user_books").Where("user_id = ?", user.ID).Count(&links).Error)
	assert.Zero(t, links)

	assert.ErrorAs(t, repo.DeleteUser(user.ID), &notFound)
}

func TestRepository_ListUsers(t *testing.T) {
	repo, db := setupTestDB(t)

	book := createBook(t, db, "1")
	ada := newUser("ada", "Ada Lovelace", date(1815, 12, 10))
	alan := newUser("alan", "Alan Turing", date(1912, 6, 23))
	grace := newUser("grace", "Grace Hopper", date(1906, 12, 9))
	for _, u := range []*entities.User{ada, alan, grace} {
		require.NoError(t, repo.CreateUser(u))
	}
	require.NoError(t, ada.AddBook(book))
	require.NoError(t, repo.ReplaceBooks(ada))

	t.Run("all with books preloaded", func(t *testing.T) {
		page, err := repo.ListUsers(Filter{}, database.PageRequest{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), page.Total)
		require.Len(t, page.Content, 3)
		assert.Len(t, page.Content[0].Books, 1)
	})

	t.Run("name substring is case insensitive", func(t *testing.T) {
		page, err := repo.ListUsers(Filter{Name: "a"}, database.PageRequest{SortBy: "name"})
		require.NoError(t, err)
		assert.Equal(t, int64(3), page.Total)

		page, err = repo.ListUsers(Filter{Name: "TURING"}, database.PageRequest{})
		require.NoError(t, err)
		require.Len(t, page.Content, 1)
		assert.Equal(t, "alan", page.Content[0].Username)
	})

	t.Run("birth date range", func(t *testing.T) {
		from := date(1900, 1, 1)
		to := date(1910, 1, 1)
		page, err := repo.ListUsers(Filter{BornAfter: &from, BornBefore: &to}, database.PageRequest{})
		require.NoError(t, err)
		require.Len(t, page.Content, 1)
		assert.Equal(t, "grace", page.Content[0].Username)
	})

	t.Run("sorted by birth date desc", func(t *testing.T) {
		page, err := repo.ListUsers(Filter{}, database.PageRequest{SortBy: "birthDate", SortOrder: database.SortDesc})
		require.NoError(t, err)
		require.Len(t, page.Content, 3)
		assert.Equal(t, "alan", page.Content[0].Username)
	})
}
