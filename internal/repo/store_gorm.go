package repo

import (
	"context"

	"gorm.io/gorm"

	"skillloop/internal/domain"
)

// Store 基于 gorm 的聚合仓储实现。
type Store struct {
	db *gorm.DB

	users    *UserRepo
	skills   *SkillRepo
	sessions *SessionRepo
	reviews  *ReviewRepo
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:       db,
		users:    &UserRepo{db: db},
		skills:   &SkillRepo{db: db},
		sessions: &SessionRepo{db: db},
		reviews:  &ReviewRepo{db: db},
	}
}

func (s *Store) Users() domain.UserRepository       { return s.users }
func (s *Store) Skills() domain.SkillRepository     { return s.skills }
func (s *Store) Sessions() domain.SessionRepository { return s.sessions }
func (s *Store) Reviews() domain.ReviewRepository   { return s.reviews }

// Transact 包一层 gorm 事务，fn 里拿到的是绑定事务连接的新 Store。
func (s *Store) Transact(ctx context.Context, fn func(domain.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// DB 暴露底层连接给不走仓储的统计类查询（admin）。
func (s *Store) DB() *gorm.DB { return s.db }
