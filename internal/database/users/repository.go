// Package users provides database operations for user management and book ownership.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.GetUserByUsername("ada")
//	_ = user.AddBook(*book)
//	err = repo.ReplaceBooks(user)
package users

import (
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// SortColumns lists the keys accepted as sortBy for user listings.
var SortColumns = database.SortColumns{
	"id":        "users.id",
	"username":  "users.username",
	"name":      "users.name",
	"birthDate": "users.birth_date",
}

// Filter narrows ListUsers. Zero fields are ignored; the birth-date bounds are inclusive.
type Filter struct {
	Name       string
	BornAfter  *time.Time
	BornBefore *time.Time
}

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func preloadBooks(db *gorm.DB) *gorm.DB {
	return db.Preload("Books", func(db *gorm.DB) *gorm.DB {
		return db.Order("books.id ASC")
	})
}

// CreateUser inserts a user. Password must already be hashed.
// Owned books are not written here; use ReplaceBooks.
func (r *Repository) CreateUser(user *entities.User) error {
	user.ID = 0
	err := r.db.Omit(clause.Associations).Create(user).Error
	return database.TranslateError(err, entities.ResourceUser)
}

// SaveUser overwrites the scalar columns of an existing user.
func (r *Repository) SaveUser(user *entities.User) error {
	err := r.db.Omit(clause.Associations).Save(user).Error
	return database.TranslateError(err, entities.ResourceUser)
}

// GetUserByID retrieves a user with owned books.
func (r *Repository) GetUserByID(id uint) (*entities.User, error) {
	var user entities.User
	if err := r.db.Scopes(preloadBooks).First(&user, id).Error; err != nil {
		return nil, database.TranslateError(err, entities.ResourceUser)
	}
	return &user, nil
}

// GetUserByUsername retrieves a user with owned books.
func (r *Repository) GetUserByUsername(username string) (*entities.User, error) {
	var user entities.User
	err := r.db.Scopes(preloadBooks).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, database.TranslateError(err, entities.ResourceUser)
	}
	return &user, nil
}

// ReplaceBooks rewrites the user_books rows of user to match user.Books.
func (r *Repository) ReplaceBooks(user *entities.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM user_books WHERE user_id = ?", user.ID).Error; err != nil {
			return err
		}
		for _, book := range user.Books {
			err := tx.Exec("INSERT INTO user_books (user_id, book_id) VALUES (?, ?)", user.ID, book.ID).Error
			if err != nil {
				return database.TranslateError(err, entities.ResourceBook)
			}
		}
		return nil
	})
}

// DeleteUser removes the user and its ownership rows.
func (r *Repository) DeleteUser(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var user entities.User
		if err := tx.First(&user, id).Error; err != nil {
			return database.TranslateError(err, entities.ResourceUser)
		}
		if err := tx.Exec("DELETE FROM user_books WHERE user_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}

// ListUsers returns one page of users matching filter, each with owned books.
func (r *Repository) ListUsers(filter Filter, page database.PageRequest) (database.Page[entities.User], error) {
	query := r.db.Model(&entities.User{})
	if n := strings.TrimSpace(filter.Name); n != "" {
		query = query.Where("LOWER(users.name) LIKE ?", "%"+strings.ToLower(n)+"%")
	}
	if filter.BornAfter != nil {
		query = query.Where("users.birth_date >= ?", *filter.BornAfter)
	}
	if filter.BornBefore != nil {
		query = query.Where("users.birth_date <= ?", *filter.BornBefore)
	}
	return database.Paginate[entities.User](query, page, SortColumns, preloadBooks)
}

// CountUsers returns the number of stored users.
func (r *Repository) CountUsers() (int64, error) {
	var count int64
	err := r.db.Model(&entities.User{}).Count(&count).Error
	return count, err
}
