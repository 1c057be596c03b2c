package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"skillloop/internal/domain"
)

type SessionRepo struct{ db *gorm.DB }

func (r *SessionRepo) Create(ctx context.Context, s *domain.Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SessionRepo) FindByID(ctx context.Context, id string) (*domain.Session, error) {
	var s domain.Session
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepo) ListByUser(ctx context.Context, userID string) ([]domain.Session, error) {
	var out []domain.Session
	err := r.db.WithContext(ctx).
		Where("mentor_id = ? OR learner_id = ?", userID, userID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

func (r *SessionRepo) ListRecent(ctx context.Context, limit int) ([]domain.Session, error) {
	var out []domain.Session
	err := r.db.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&out).Error
	return out, err
}

func (r *SessionRepo) Update(ctx context.Context, s *domain.Session) error {
	return r.db.WithContext(ctx).Save(s).Error
}
