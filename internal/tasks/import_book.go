package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// BookLookup resolves and stores a book by ISBN.
type BookLookup interface {
	LookupByISBN(ctx context.Context, isbn string) (*entities.Book, error)
}

// ImportBookTask runs an Open Library lookup for one ISBN in the background.
type ImportBookTask struct {
	ISBN      string `json:"isbn"`
	RequestID string `json:"request_id,omitempty"`
	UserID    uint   `json:"user_id,omitempty"`
}

// Config returns the queue configuration for ISBN import tasks.
// Lookups are never retried.
func (t ImportBookTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "import_book",
		MaxAttempts: 1,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// ImportBookProcessor creates a processor function for ImportBookTask.
func ImportBookProcessor(lookup BookLookup) backlite.QueueProcessor[ImportBookTask] {
	return func(ctx context.Context, task ImportBookTask) error {
		if lookup == nil {
			return fmt.Errorf("isbn lookup not configured")
		}

		ctx = audit.WithActor(ctx, audit.Actor{UserID: task.UserID, RequestID: task.RequestID})
		book, err := lookup.LookupByISBN(ctx, task.ISBN)
		if err != nil {
			return fmt.Errorf("import isbn %s: %w", task.ISBN, err)
		}

		if book.ID == 0 {
			log.Printf("[TASK] ISBN %s already in the library", task.ISBN)
		} else {
			log.Printf("[TASK] Imported book %d (%s) for ISBN %s", book.ID, book.Title, task.ISBN)
		}
		return nil
	}
}

// NewImportBookQueue creates a backlite queue for ISBN import tasks.
func NewImportBookQueue(lookup BookLookup) backlite.Queue {
	return backlite.NewQueue(ImportBookProcessor(lookup))
}

func actorTask(ctx context.Context, isbn string) ImportBookTask {
	actor := audit.ActorFrom(ctx)
	return ImportBookTask{ISBN: isbn, RequestID: actor.RequestID, UserID: actor.UserID}
}
