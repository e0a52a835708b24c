package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"clubhouse/internal/cache"
	"clubhouse/internal/model"
	"clubhouse/internal/repository"
)

const (
	authorCacheTTL  = 5 * time.Minute
	timestampLayout = "2006-01-02 15:04"
	displayTimezone = "America/New_York"
	unknownAuthor   = "Unknown"
)

// ErrMissingContent is returned when a message has an empty title or body
// after trimming.
var ErrMissingContent = errors.New("title and body are required")

// MessageView is a message joined with its author's display name and a
// human-readable timestamp, ready for rendering.
type MessageView struct {
	ID        uint
	Title     string
	Body      string
	FirstName string
	LastName  string
	CreatedAt string
}

// authorName is the cached slice of a user needed for list rendering.
type authorName struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// MessageService handles the message board operations.
type MessageService interface {
	List(ctx context.Context) ([]MessageView, error)
	Create(ctx context.Context, title, body string, authorID uint) error
	Delete(ctx context.Context, id uint) error
}

type messageService struct {
	messages repository.MessageRepository
	users    repository.UserRepository
	cache    *cache.Client
	loc      *time.Location
}

// NewMessageService creates a new message service.
func NewMessageService(messages repository.MessageRepository, users repository.UserRepository, cache *cache.Client) MessageService {
	loc, err := time.LoadLocation(displayTimezone)
	if err != nil {
		loc = time.UTC
	}
	return &messageService{
		messages: messages,
		users:    users,
		cache:    cache,
		loc:      loc,
	}
}

// List returns all messages with author names resolved per message. The
// per-message lookup goes through the cache to soften the N+1 pattern on a
// busy board.
func (s *messageService) List(ctx context.Context) ([]MessageView, error) {
	messages, err := s.messages.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	views := make([]MessageView, 0, len(messages))
	for _, m := range messages {
		author := s.resolveAuthor(ctx, m.UserID)
		views = append(views, MessageView{
			ID:        m.ID,
			Title:     m.Title,
			Body:      m.Body,
			FirstName: author.FirstName,
			LastName:  author.LastName,
			CreatedAt: m.CreatedAt.In(s.loc).Format(timestampLayout),
		})
	}
	return views, nil
}

// Create stores a new message authored by authorID. Title and body must be
// non-empty after trimming; the timestamp is assigned at insert time.
func (s *messageService) Create(ctx context.Context, title, body string, authorID uint) error {
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	if title == "" || body == "" {
		return ErrMissingContent
	}

	message := &model.Message{
		Title:     title,
		Body:      body,
		UserID:    authorID,
		CreatedAt: time.Now(),
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}

// Delete removes a message by id, unconditionally.
func (s *messageService) Delete(ctx context.Context, id uint) error {
	if err := s.messages.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}

func (s *messageService) authorCacheKey(id uint) string {
	return fmt.Sprintf("author:%d", id)
}

// resolveAuthor looks up the display name for a user id, caching hits.
// A missing user renders as "Unknown" rather than failing the list.
func (s *messageService) resolveAuthor(ctx context.Context, id uint) authorName {
	if data, _ := s.cache.Get(ctx, s.authorCacheKey(id)); data != nil {
		var cached authorName
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached
		}
	}

	// Both a deleted author and a storage hiccup degrade to the
	// placeholder name; the list itself already loaded.
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return authorName{FirstName: unknownAuthor, LastName: unknownAuthor}
	}

	author := authorName{FirstName: user.Firstname, LastName: user.Lastname}
	if payload, err := json.Marshal(author); err == nil {
		_ = s.cache.Set(ctx, s.authorCacheKey(id), payload, authorCacheTTL)
	}
	return author
}
