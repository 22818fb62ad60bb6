package entities

import (
	"strings"
	"time"
	"unicode"
)

type Book struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"index;size:512;not null" json:"title"`
	Subtitle  string    `gorm:"size:512;not null" json:"subtitle"`
	Author    string    `gorm:"index;size:256;not null" json:"author"`
	Genre     string    `gorm:"index;size:100" json:"genre,omitempty"`
	Publisher string    `gorm:"index;size:256;not null" json:"publisher"`
	Year      string    `gorm:"index;size:50;not null" json:"year"`
	Pages     int       `gorm:"not null" json:"pages"`
	ISBN      string    `gorm:"uniqueIndex;size:20;not null" json:"isbn"`
	Image     string    `gorm:"size:2048;not null" json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}

// NormalizeISBN strips hyphens and whitespace so that one ISBN has one stored form.
func NormalizeISBN(isbn string) string {
	return strings.Join(strings.FieldsFunc(isbn, func(r rune) bool {
		return r == '-' || unicode.IsSpace(r)
	}), "")
}

// Validate checks that every column except genre carries a value.
func (b *Book) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"title", b.Title},
		{"subtitle", b.Subtitle},
		{"author", b.Author},
		{"publisher", b.Publisher},
		{"year", b.Year},
		{"isbn", b.ISBN},
		{"image", b.Image},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return NewRequiredFieldError(r.field)
		}
	}
	if b.Pages <= 0 {
		return NewInvalidFieldError("pages")
	}
	return nil
}
