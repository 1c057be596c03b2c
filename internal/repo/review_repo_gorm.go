package repo

import (
	"context"

	"gorm.io/gorm"

	"skillloop/internal/domain"
)

type ReviewRepo struct{ db *gorm.DB }

func (r *ReviewRepo) ListByReviewee(ctx context.Context, userID string) ([]domain.Review, error) {
	var out []domain.Review
	err := r.db.WithContext(ctx).
		Where("reviewee_id = ?", userID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

func (r *ReviewRepo) Create(ctx context.Context, rv *domain.Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}
