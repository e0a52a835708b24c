package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"clubhouse/internal/model"
)

// MockSessionRepository is a mock implementation of repository.SessionRepository.
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session *model.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) Find(ctx context.Context, sid string) (*model.Session, error) {
	args := m.Called(ctx, sid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockSessionRepository) Touch(ctx context.Context, sid string, expire time.Time) error {
	args := m.Called(ctx, sid, expire)
	return args.Error(0)
}

func (m *MockSessionRepository) Delete(ctx context.Context, sid string) error {
	args := m.Called(ctx, sid)
	return args.Error(0)
}

func TestSessionStore_EstablishAndResolve(t *testing.T) {
	repo := new(MockSessionRepository)
	store := NewSessionStore(repo)

	var stored *model.Session
	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Session")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*model.Session)
		}).Return(nil)

	sid, err := store.Establish(context.Background(), 7)
	assert.NoError(t, err)
	assert.NotEmpty(t, sid)
	assert.Equal(t, sid, stored.SID)
	assert.JSONEq(t, `{"user_id":7}`, stored.Sess)
	assert.True(t, stored.Expire.After(time.Now().Add(SessionTTL-time.Minute)))

	repo.On("Find", mock.Anything, sid).Return(stored, nil)
	repo.On("Touch", mock.Anything, sid, mock.AnythingOfType("time.Time")).Return(nil)

	userID, err := store.Resolve(context.Background(), sid)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), userID)

	repo.AssertExpectations(t)
}

func TestSessionStore_ResolveMissing(t *testing.T) {
	repo := new(MockSessionRepository)
	store := NewSessionStore(repo)

	repo.On("Find", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	_, err := store.Resolve(context.Background(), "ghost")
	assert.Equal(t, ErrNoSession, err)
	repo.AssertExpectations(t)
}

func TestSessionStore_ResolveExpired(t *testing.T) {
	repo := new(MockSessionRepository)
	store := NewSessionStore(repo)

	repo.On("Find", mock.Anything, "stale").Return(&model.Session{
		SID:    "stale",
		Sess:   `{"user_id":7}`,
		Expire: time.Now().Add(-time.Minute),
	}, nil)
	// Expired rows are removed on lookup.
	repo.On("Delete", mock.Anything, "stale").Return(nil)

	_, err := store.Resolve(context.Background(), "stale")
	assert.Equal(t, ErrNoSession, err)
	repo.AssertExpectations(t)
}

func TestSessionStore_DestroyIdempotent(t *testing.T) {
	repo := new(MockSessionRepository)
	store := NewSessionStore(repo)

	repo.On("Delete", mock.Anything, "gone").Return(nil).Twice()

	assert.NoError(t, store.Destroy(context.Background(), "gone"))
	assert.NoError(t, store.Destroy(context.Background(), "gone"))
	repo.AssertExpectations(t)
}
