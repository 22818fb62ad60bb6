package library

import (
	"context"
	"time"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/database/users"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// mockBookStore keeps books in memory and counts every call.
type mockBookStore struct {
	books  map[uint]*entities.Book
	nextID uint
	calls  []string
}

func newMockBookStore(seed ...entities.Book) *mockBookStore {
	m := &mockBookStore{books: map[uint]*entities.Book{}}
	for i := range seed {
		b := seed[i]
		m.books[b.ID] = &b
		if b.ID > m.nextID {
			m.nextID = b.ID
		}
	}
	return m
}

func (m *mockBookStore) CreateBook(book *entities.Book) error {
	m.calls = append(m.calls, "CreateBook")
	for _, b := range m.books {
		if b.ISBN == book.ISBN {
			return entities.ErrDuplicate
		}
	}
	m.nextID++
	book.ID = m.nextID
	stored := *book
	m.books[book.ID] = &stored
	return nil
}

func (m *mockBookStore) SaveBook(book *entities.Book) error {
	m.calls = append(m.calls, "SaveBook")
	stored := *book
	m.books[book.ID] = &stored
	return nil
}

func (m *mockBookStore) GetBookByID(id uint) (*entities.Book, error) {
	m.calls = append(m.calls, "GetBookByID")
	b, ok := m.books[id]
	if !ok {
		return nil, entities.NewNotFoundError(entities.ResourceBook)
	}
	copied := *b
	return &copied, nil
}

func (m *mockBookStore) FindBooksByTitle(title string) ([]entities.Book, error) {
	m.calls = append(m.calls, "FindBooksByTitle")
	result := []entities.Book{}
	for _, b := range m.books {
		if b.Title == title {
			result = append(result, *b)
		}
	}
	return result, nil
}

func (m *mockBookStore) FindFirstByAuthor(author string) (*entities.Book, error) {
	m.calls = append(m.calls, "FindFirstByAuthor")
	return nil, entities.NewNotFoundError(entities.ResourceBook)
}

func (m *mockBookStore) ListBooks(filter books.Filter, page database.PageRequest) (database.Page[entities.Book], error) {
	m.calls = append(m.calls, "ListBooks")
	return database.Page[entities.Book]{}, nil
}

func (m *mockBookStore) GetOwners(bookID uint) ([]entities.User, error) {
	m.calls = append(m.calls, "GetOwners")
	return []entities.User{}, nil
}

func (m *mockBookStore) DeleteBook(id uint) error {
	m.calls = append(m.calls, "DeleteBook")
	if _, ok := m.books[id]; !ok {
		return entities.NewNotFoundError(entities.ResourceBook)
	}
	delete(m.books, id)
	return nil
}

// mockUserStore keeps users in memory; ReplaceBooks snapshots the owned ids.
type mockUserStore struct {
	users    map[uint]*entities.User
	owned    map[uint][]uint
	nextID   uint
	calls    []string
	listSeen users.Filter
}

func newMockUserStore(seed ...entities.User) *mockUserStore {
	m := &mockUserStore{users: map[uint]*entities.User{}, owned: map[uint][]uint{}}
	for i := range seed {
		u := seed[i]
		m.users[u.ID] = &u
		if u.ID > m.nextID {
			m.nextID = u.ID
		}
	}
	return m
}

func (m *mockUserStore) CreateUser(user *entities.User) error {
	m.calls = append(m.calls, "CreateUser")
	for _, u := range m.users {
		if u.Username == user.Username {
			return entities.ErrDuplicate
		}
	}
	m.nextID++
	user.ID = m.nextID
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserStore) SaveUser(user *entities.User) error {
	m.calls = append(m.calls, "SaveUser")
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserStore) GetUserByID(id uint) (*entities.User, error) {
	m.calls = append(m.calls, "GetUserByID")
	u, ok := m.users[id]
	if !ok {
		return nil, entities.NewNotFoundError(entities.ResourceUser)
	}
	copied := *u
	copied.Books = append([]entities.Book(nil), u.Books...)
	return &copied, nil
}

func (m *mockUserStore) GetUserByUsername(username string) (*entities.User, error) {
	m.calls = append(m.calls, "GetUserByUsername")
	for _, u := range m.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, entities.NewNotFoundError(entities.ResourceUser)
}

func (m *mockUserStore) ListUsers(filter users.Filter, page database.PageRequest) (database.Page[entities.User], error) {
	m.calls = append(m.calls, "ListUsers")
	m.listSeen = filter
	return database.Page[entities.User]{}, nil
}

func (m *mockUserStore) ReplaceBooks(user *entities.User) error {
	m.calls = append(m.calls, "ReplaceBooks")
	ids := make([]uint, 0, len(user.Books))
	for _, b := range user.Books {
		ids = append(ids, b.ID)
	}
	m.owned[user.ID] = ids
	m.users[user.ID].Books = append([]entities.Book(nil), user.Books...)
	return nil
}

func (m *mockUserStore) DeleteUser(id uint) error {
	m.calls = append(m.calls, "DeleteUser")
	delete(m.users, id)
	delete(m.owned, id)
	return nil
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) {
	if len(password) < 8 {
		return "", &entities.ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	return "hashed:" + password, nil
}

type stubLookup struct {
	book *entities.Book
	err  error
	isbn string
}

func (s *stubLookup) LookupByISBN(ctx context.Context, isbn string) (*entities.Book, error) {
	s.isbn = isbn
	return s.book, s.err
}

func sampleBook(id uint, isbn string) entities.Book {
	return entities.Book{
		ID:        id,
		Title:     "Dune",
		Subtitle:  "Book One",
		Author:    "Frank Herbert",
		Publisher: "Chilton",
		Year:      "1965",
		Pages:     412,
		ISBN:      isbn,
		Image:     "dune.jpg",
	}
}

func sampleUser(id uint, username string) entities.User {
	return entities.User{
		ID:        id,
		Username:  username,
		Name:      "Paul Atreides",
		BirthDate: time.Date(1990, time.March, 1, 0, 0, 0, 0, time.UTC),
		Password:  "hashed:original",
	}
}
