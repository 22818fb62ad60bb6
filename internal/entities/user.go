package entities

import (
	"slices"
	"strings"
	"time"
)

// User is a library member. Books is the owning side of the user_books join table;
// Book has no way to change who owns it.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Name      string    `gorm:"size:256;not null" json:"name"`
	BirthDate time.Time `gorm:"not null" json:"birth_date"`
	Password  string    `gorm:"size:255;not null" json:"-"` // bcrypt hash
	Books     []Book    `gorm:"many2many:user_books;" json:"books"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// OwnsBook reports whether a book with the given id is in the user's collection.
func (u *User) OwnsBook(bookID uint) bool {
	return slices.ContainsFunc(u.Books, func(b Book) bool {
		return b.ID == bookID
	})
}

// AddBook appends book to the owned collection.
// Returns ErrAlreadyOwned, leaving the collection untouched, if the user already has it.
func (u *User) AddBook(book Book) error {
	if u.OwnsBook(book.ID) {
		return ErrAlreadyOwned
	}
	u.Books = append(u.Books, book)
	return nil
}

// RemoveBook drops book from the owned collection.
// Returns ErrNotOwned, leaving the collection untouched, if the user does not have it.
func (u *User) RemoveBook(book Book) error {
	idx := slices.IndexFunc(u.Books, func(b Book) bool {
		return b.ID == book.ID
	})
	if idx < 0 {
		return ErrNotOwned
	}
	u.Books = slices.Delete(u.Books, idx, idx+1)
	return nil
}

// Validate checks the scalar columns. The birth date must lie strictly before now.
func (u *User) Validate(now time.Time) error {
	if strings.TrimSpace(u.Username) == "" {
		return NewRequiredFieldError("username")
	}
	if strings.TrimSpace(u.Name) == "" {
		return NewRequiredFieldError("name")
	}
	if u.BirthDate.IsZero() {
		return NewRequiredFieldError("birth_date")
	}
	if !u.BirthDate.Before(now) {
		return NewInvalidFieldError("birth_date")
	}
	return nil
}
