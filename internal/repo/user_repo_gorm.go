package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"skillloop/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

// FindByID 未命中返回 (nil, nil)，调用方自行决定是不是错误。
func (r *UserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).Preload("Skills").First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).Preload("Skills").First(&u, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// List 按创建时间升序返回全量用户池，顺序稳定是 fallback 匹配确定性的前提。
func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).Preload("Skills").Order("created_at asc, id asc").Find(&users).Error
	return users, err
}

func (r *UserRepo) TopByPoints(ctx context.Context, limit int) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).
		Where("banned = ?", false).
		Order("total_points desc").
		Limit(limit).
		Find(&users).Error
	return users, err
}

func (r *UserRepo) Update(ctx context.Context, u *domain.User) error {
	// Save 会级联 Skills 关联，技能替换走 ReplaceSkills，这里排除掉
	return r.db.WithContext(ctx).Omit("Skills").Save(u).Error
}

// ReplaceSkills 整组替换技能条目（onboarding 提交的就是完整集合）。
func (r *UserRepo) ReplaceSkills(ctx context.Context, userID string, skills []domain.UserSkill) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&domain.UserSkill{}).Error; err != nil {
			return err
		}
		if len(skills) == 0 {
			return nil
		}
		return tx.Create(&skills).Error
	})
}
