package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"clubhouse/internal/model"
)

// SessionRepository defines session persistence operations.
type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	Find(ctx context.Context, sid string) (*model.Session, error)
	Touch(ctx context.Context, sid string, expire time.Time) error
	Delete(ctx context.Context, sid string) error
}

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository builds a GORM-backed repository.
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *model.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepository) Find(ctx context.Context, sid string) (*model.Session, error) {
	var session model.Session
	if err := r.db.WithContext(ctx).Where("sid = ?", sid).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// Touch slides the expiry of an existing session forward.
func (r *sessionRepository) Touch(ctx context.Context, sid string, expire time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Session{}).
		Where("sid = ?", sid).
		Update("expire", expire).Error
}

// Delete removes a session row. Deleting a missing sid is not an error,
// which keeps logout idempotent.
func (r *sessionRepository) Delete(ctx context.Context, sid string) error {
	return r.db.WithContext(ctx).Where("sid = ?", sid).Delete(&model.Session{}).Error
}
