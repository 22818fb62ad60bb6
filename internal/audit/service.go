package audit

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mrlokans/bookshelf/internal/database/audit"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// Actor identifies who triggered an audited operation.
type Actor struct {
	UserID    uint
	RequestID string
	IPAddress string
}

type actorKey struct{}

// WithActor attaches actor to ctx.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFrom returns the actor stored in ctx, or a zero Actor for anonymous calls.
func ActorFrom(ctx context.Context) Actor {
	actor, _ := ctx.Value(actorKey{}).(Actor)
	return actor
}

// Service provides high-level audit logging functionality.
// A nil *Service drops every event, so callers may run without auditing.
type Service struct {
	repo *audit.Repository
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	if s == nil {
		return nil
	}
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	if s == nil {
		return
	}
	go func() {
		if err := s.repo.LogEvent(event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

func newEvent(ctx context.Context, eventType entities.AuditEventType, action string) *entities.AuditEvent {
	actor := ActorFrom(ctx)
	return &entities.AuditEvent{
		UserID:    actor.UserID,
		RequestID: actor.RequestID,
		IPAddress: actor.IPAddress,
		EventType: eventType,
		Action:    action,
		Status:    entities.AuditStatusSuccess,
	}
}

func withOutcome(event *entities.AuditEvent, err error) *entities.AuditEvent {
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}
	return event
}

func entityAction(entityType, verb string) string {
	switch entityType {
	case entities.ResourceBook:
		return "book_" + verb
	case entities.ResourceUser:
		return "user_" + verb
	default:
		return verb
	}
}

// LogCreate records the creation of a book or user.
func (s *Service) LogCreate(ctx context.Context, entityType string, entityID uint, description string) {
	event := newEvent(ctx, entities.AuditEventCreate, entityAction(entityType, "create"))
	event.EntityType = entityType
	event.EntityID = &entityID
	event.Description = truncate(description, 500)
	s.LogAsync(event)
}

// LogUpdate records a full-replace update of a book or user.
func (s *Service) LogUpdate(ctx context.Context, entityType string, entityID uint, description string) {
	event := newEvent(ctx, entities.AuditEventUpdate, entityAction(entityType, "update"))
	event.EntityType = entityType
	event.EntityID = &entityID
	event.Description = truncate(description, 500)
	s.LogAsync(event)
}

// LogDelete records a deletion event.
func (s *Service) LogDelete(ctx context.Context, entityType string, entityID uint, entityName string) {
	event := newEvent(ctx, entities.AuditEventDelete, entityAction(entityType, "delete"))
	event.EntityType = entityType
	event.EntityID = &entityID
	event.Description = truncate("Deleted "+entityType+": "+entityName, 500)
	s.LogAsync(event)
}

// LogOwnership records a book being added to or removed from a user's collection.
func (s *Service) LogOwnership(ctx context.Context, action string, userID, bookID uint, err error) {
	event := newEvent(ctx, entities.AuditEventOwnership, action)
	event.EntityType = entities.ResourceUser
	event.EntityID = &userID
	event.Description = fmt.Sprintf("user %d, book %d", userID, bookID)
	s.LogAsync(withOutcome(event, err))
}

// LogLookup records an ISBN lookup. bookID is zero when nothing was stored.
func (s *Service) LogLookup(ctx context.Context, isbn string, bookID uint, err error) {
	event := newEvent(ctx, entities.AuditEventLookup, "isbn_lookup")
	event.EntityType = entities.ResourceBook
	if bookID > 0 {
		event.EntityID = &bookID
	}
	event.Description = "ISBN " + isbn
	s.LogAsync(withOutcome(event, err))
}

// LogAuth records an authentication attempt.
func (s *Service) LogAuth(ctx context.Context, userID uint, username string, success bool) {
	event := newEvent(ctx, entities.AuditEventAuth, "login")
	event.UserID = userID
	event.Description = truncate("basic auth as "+username, 500)
	if !success {
		event.Status = entities.AuditStatusFailed
	}
	s.LogAsync(event)
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(q audit.Query) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(q)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(cutoff)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
