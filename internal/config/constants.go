package config

const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./bookshelf.db"

	// DefaultOpenLibraryBaseURL is the public Open Library API host
	DefaultOpenLibraryBaseURL = "https://openlibrary.org"
)
