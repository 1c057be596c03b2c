package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"skillloop/internal/domain"
)

type SkillRepo struct{ db *gorm.DB }

func (r *SkillRepo) List(ctx context.Context) ([]domain.Skill, error) {
	var out []domain.Skill
	err := r.db.WithContext(ctx).Order("id asc").Find(&out).Error
	return out, err
}

func (r *SkillRepo) FindByID(ctx context.Context, id string) (*domain.Skill, error) {
	var s domain.Skill
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SkillRepo) Create(ctx context.Context, s *domain.Skill) error {
	return r.db.WithContext(ctx).Create(s).Error
}
