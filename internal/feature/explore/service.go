package explore

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"skillloop/internal/core/cache"
	"skillloop/internal/domain"
)

const (
	leaderboardTTL  = 5 * time.Minute
	leaderboardSize = 10
)

type Service struct {
	store domain.Store
	cache *cache.Cache // nil 表示不缓存（单测）
	log   *zap.Logger
}

func NewService(store domain.Store, c *cache.Cache, l *zap.Logger) *Service {
	return &Service{store: store, cache: c, log: l}
}

// Catalog 技能目录，前端下拉框数据源。
func (s *Service) Catalog(ctx context.Context) ([]domain.Skill, error) {
	return s.store.Skills().List(ctx)
}

// Mentors 导师目录：未封禁且至少登记一条 CAN_TEACH。
// skillID 和 query 过滤可叠加。
func (s *Service) Mentors(ctx context.Context, skillID, query string) ([]domain.User, error) {
	all, err := s.store.Users().List(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]domain.User, 0, len(all))
	for _, u := range all {
		if u.Banned || !u.IsMentor() {
			continue
		}
		if skillID != "" && u.TeachSkill(skillID) == nil {
			continue
		}
		if query != "" && !mentorMatches(&u, query) {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func mentorMatches(u *domain.User, q string) bool {
	if strings.Contains(strings.ToLower(u.Name), q) ||
		strings.Contains(strings.ToLower(u.Branch), q) {
		return true
	}
	for _, sk := range u.Skills {
		if sk.Type == domain.SkillTypeCanTeach && strings.Contains(strings.ToLower(sk.Name), q) {
			return true
		}
	}
	return false
}

// Leaderboard 积分榜前十，redis 缓存 + singleflight 合并回源。
func (s *Service) Leaderboard(ctx context.Context) ([]domain.User, error) {
	if s.cache == nil {
		return s.store.Users().TopByPoints(ctx, leaderboardSize)
	}
	return cache.GetOrLoadJSON(s.cache, ctx, cache.KeyLeaderboard, leaderboardTTL,
		func(ctx context.Context) ([]domain.User, error) {
			return s.store.Users().TopByPoints(ctx, leaderboardSize)
		})
}
