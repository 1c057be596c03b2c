package admin

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"skillloop/internal/domain"
)

// Stats 运营看板数字。
type Stats struct {
	TotalUsers        int64        `json:"totalUsers"`
	ActiveSessions    int64        `json:"activeSessions"` // REQUESTED + CONFIRMED
	CompletedSessions int64        `json:"completedSessions"`
	PointsTraded      int64        `json:"pointsTraded"`
	TopSkills         []SkillCount `json:"topSkills"`
}

type SkillCount struct {
	SkillName string `json:"skillName"`
	Sessions  int64  `json:"sessions"`
}

type Service struct {
	store domain.Store
	db    *gorm.DB // 聚合统计直接下 SQL，不绕仓库接口
	log   *zap.Logger
}

func NewService(store domain.Store, db *gorm.DB, l *zap.Logger) *Service {
	return &Service{store: store, db: db, log: l}
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	var out Stats
	db := s.db.WithContext(ctx)

	if err := db.Model(&domain.User{}).Count(&out.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&domain.Session{}).
		Where("status IN ?", []domain.SessionStatus{domain.StatusRequested, domain.StatusConfirmed}).
		Count(&out.ActiveSessions).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&domain.Session{}).
		Where("status = ?", domain.StatusCompleted).
		Count(&out.CompletedSessions).Error; err != nil {
		return nil, err
	}
	// 只有完成的会话才算成交积分
	if err := db.Model(&domain.Session{}).
		Where("status = ?", domain.StatusCompleted).
		Select("COALESCE(SUM(points), 0)").
		Scan(&out.PointsTraded).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&domain.Session{}).
		Select("skill_name AS skill_name, COUNT(*) AS sessions").
		Group("skill_name").
		Order("sessions DESC").
		Limit(5).
		Scan(&out.TopSkills).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// Users 用户列表，search 同时匹配姓名和邮箱。
func (s *Service) Users(ctx context.Context, search string) ([]domain.User, error) {
	all, err := s.store.Users().List(ctx)
	if err != nil {
		return nil, err
	}
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return all, nil
	}
	out := make([]domain.User, 0, len(all))
	for _, u := range all {
		if strings.Contains(strings.ToLower(u.Name), search) ||
			strings.Contains(strings.ToLower(u.Email), search) {
			out = append(out, u)
		}
	}
	return out, nil
}

// SetBanned 封禁/解封开关。只翻标记不删行：
// 封禁用户必须继续存在，匹配排除和历史会话都要还能引用到。
func (s *Service) SetBanned(ctx context.Context, uid string, banned bool) (*domain.User, error) {
	u, err := s.store.Users().FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if u.Banned == banned {
		return u, nil
	}
	u.Banned = banned
	if err := s.store.Users().Update(ctx, u); err != nil {
		return nil, err
	}
	s.log.Info("ban flag changed", zap.String("uid", uid), zap.Bool("banned", banned))
	return u, nil
}
