package database

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookshelf/internal/entities"
)

func setupTestDB(t *testing.T) *Database {
	dbPath := "./test_" + t.Name() + ".db"
	db, err := Open(dbPath, logger.Silent)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
		os.Remove(dbPath)
	})
	return db
}

func seedBooks(t *testing.T, db *Database, n int) {
	for i := 1; i <= n; i++ {
		book := entities.Book{
			Title:     "Title " + string(rune('A'+i-1)),
			Subtitle:  "Subtitle",
			Author:    "Author",
			Publisher: "Publisher",
			Year:      "2001",
			Pages:     100 + i,
			ISBN:      "isbn-" + string(rune('a'+i-1)),
			Image:     "cover.jpg",
		}
		require.NoError(t, db.DB.Create(&book).Error)
	}
}

func TestOpen_MigratesTables(t *testing.T) {
	db := setupTestDB(t)

	for _, table := range []string{"books", "users", "user_books", "audit_events"} {
		assert.True(t, db.DB.Migrator().HasTable(table), table)
	}
	assert.NoError(t, db.Ping())
}

func TestPageRequest_Normalize(t *testing.T) {
	columns := SortColumns{"id": "id", "title": "title"}

	tests := []struct {
		name    string
		req     PageRequest
		want    PageRequest
		wantErr string
	}{
		{
			name: "defaults",
			req:  PageRequest{},
			want: PageRequest{Page: 0, PageSize: DefaultPageSize, SortBy: "id", SortOrder: SortAsc},
		},
		{
			name: "desc order is case insensitive",
			req:  PageRequest{Page: 2, PageSize: 5, SortBy: "title", SortOrder: "DESC"},
			want: PageRequest{Page: 2, PageSize: 5, SortBy: "title", SortOrder: SortDesc},
		},
		{
			name: "page size capped",
			req:  PageRequest{PageSize: 1000},
			want: PageRequest{PageSize: MaxPageSize, SortBy: "id", SortOrder: SortAsc},
		},
		{
			name:    "unknown sort column",
			req:     PageRequest{SortBy: "password"},
			wantErr: "sortBy is invalid",
		},
		{
			name:    "unknown sort order",
			req:     PageRequest{SortOrder: "sideways"},
			wantErr: "sortOrder is invalid",
		},
		{
			name:    "negative page",
			req:     PageRequest{Page: -1},
			wantErr: "page is invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.req.Normalize(columns)
			if tt.wantErr != "" {
				var validationErr *entities.ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPaginate(t *testing.T) {
	db := setupTestDB(t)
	seedBooks(t, db, 7)
	columns := SortColumns{"id": "id", "pages": "pages"}

	t.Run("first page", func(t *testing.T) {
		page, err := Paginate[entities.Book](db.DB.Model(&entities.Book{}), PageRequest{PageSize: 3}, columns)
		require.NoError(t, err)
		assert.Equal(t, int64(7), page.Total)
		assert.Equal(t, 3, page.TotalPages)
		require.Len(t, page.Content, 3)
		assert.Equal(t, uint(1), page.Content[0].ID)
	})

	t.Run("last partial page", func(t *testing.T) {
		page, err := Paginate[entities.Book](db.DB.Model(&entities.Book{}), PageRequest{Page: 2, PageSize: 3}, columns)
		require.NoError(t, err)
		require.Len(t, page.Content, 1)
		assert.Equal(t, uint(7), page.Content[0].ID)
	})

	t.Run("sorted desc", func(t *testing.T) {
		page, err := Paginate[entities.Book](db.DB.Model(&entities.Book{}), PageRequest{SortBy: "pages", SortOrder: SortDesc}, columns)
		require.NoError(t, err)
		require.Len(t, page.Content, 7)
		assert.Equal(t, 107, page.Content[0].Pages)
	})

	t.Run("beyond last page is empty", func(t *testing.T) {
		page, err := Paginate[entities.Book](db.DB.Model(&entities.Book{}), PageRequest{Page: 9}, columns)
		require.NoError(t, err)
		assert.NotNil(t, page.Content)
		assert.Empty(t, page.Content)
		assert.Equal(t, int64(7), page.Total)
	})
}
