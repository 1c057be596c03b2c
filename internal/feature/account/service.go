package account

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"skillloop/internal/core/auth"
	"skillloop/internal/domain"
	"skillloop/pkg/utils"
)

type Service struct {
	store         domain.Store
	jwter         *auth.JWTer
	campusDomain  string
	initialPoints int
	log           *zap.Logger
}

func NewService(store domain.Store, jwter *auth.JWTer, campusDomain string, initialPoints int, l *zap.Logger) *Service {
	return &Service{
		store:         store,
		jwter:         jwter,
		campusDomain:  campusDomain,
		initialPoints: initialPoints,
		log:           l,
	}
}

// Signup 注册：先校验校园域名，再校验唯一性（顺序有测试锁定）。
// 成功即发放初始积分并直接登录。
func (s *Service) Signup(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)

	existing, err := s.store.Users().FindByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if err := domain.ValidateSignupEmail(email, s.campusDomain, existing != nil); err != nil {
		return nil, "", err
	}

	u := &domain.User{
		ID:           utils.NewID(),
		Email:        email,
		PasswordHash: utils.HashPassword(password),
		Name:         name,
		Year:         1,
		AvatarURL:    fmt.Sprintf("https://picsum.photos/seed/%s/200", url.PathEscape(name)),
		TotalPoints:  s.initialPoints,
		Role:         domain.RoleStudent,
	}
	if err := s.store.Users().Create(ctx, u); err != nil {
		return nil, "", err
	}

	tok, err := s.jwter.Issue(u.ID, u.Role)
	if err != nil {
		return nil, "", err
	}
	s.log.Info("user signed up", zap.String("uid", u.ID))
	return u, tok, nil
}

// Login 未知邮箱和密码错误统一返回 ErrInvalidCredential，不泄露哪个错了；
// 封禁检查在凭证通过之后。
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.store.Users().FindByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return nil, "", domain.ErrInvalidCredential
	}
	if u.Banned {
		return nil, "", domain.ErrAccountBanned
	}

	tok, err := s.jwter.Issue(u.ID, u.Role)
	if err != nil {
		return nil, "", err
	}
	return u, tok, nil
}

func (s *Service) Profile(ctx context.Context, uid string) (*domain.User, error) {
	u, err := s.store.Users().FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

// SkillInput onboarding 提交的技能条目，名字以目录为准做快照。
type SkillInput struct {
	SkillID string            `json:"skillId" binding:"required"`
	Type    domain.SkillType  `json:"type" binding:"required"`
	Level   domain.SkillLevel `json:"level" binding:"required"`
}

// NormalizeSkillEntry 校验条目并用目录名覆盖 Name 快照。
// /me/skills 的单条增改复用它，规则与 onboarding 一致。
func (s *Service) NormalizeSkillEntry(ctx context.Context, e *domain.UserSkill) error {
	if !e.Type.IsValid() || !e.Level.IsValid() {
		return fmt.Errorf("skill %q: %w", e.SkillID, domain.ErrInvalidSkillEntry)
	}
	sk, err := s.store.Skills().FindByID(ctx, e.SkillID)
	if err != nil {
		return err
	}
	if sk == nil {
		return fmt.Errorf("unknown skill %q: %w", e.SkillID, domain.ErrInvalidSkillEntry)
	}
	e.Name = sk.Name
	return nil
}

// CompleteOnboarding 更新档案并整组替换技能。
// 同一 (skillId, type) 重复提交时保留第一条。
func (s *Service) CompleteOnboarding(ctx context.Context, uid, branch string, year int, bio, availability string, skills []SkillInput) (*domain.User, error) {
	u, err := s.store.Users().FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}

	catalog, err := s.store.Skills().List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(catalog))
	for _, sk := range catalog {
		names[sk.ID] = sk.Name
	}

	seen := map[string]struct{}{}
	entries := make([]domain.UserSkill, 0, len(skills))
	for _, in := range skills {
		if !in.Type.IsValid() || !in.Level.IsValid() {
			return nil, fmt.Errorf("skill %q: %w", in.SkillID, domain.ErrInvalidSkillEntry)
		}
		name, ok := names[in.SkillID]
		if !ok {
			return nil, fmt.Errorf("unknown skill %q: %w", in.SkillID, domain.ErrInvalidSkillEntry)
		}
		key := in.SkillID + "|" + string(in.Type)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		entries = append(entries, domain.UserSkill{
			ID:      utils.NewID(),
			UserID:  uid,
			SkillID: in.SkillID,
			Name:    name,
			Type:    in.Type,
			Level:   in.Level,
		})
	}

	u.Branch = branch
	u.Year = year
	u.Bio = bio
	u.Availability = availability
	if err := s.store.Users().Update(ctx, u); err != nil {
		return nil, err
	}
	if err := s.store.Users().ReplaceSkills(ctx, uid, entries); err != nil {
		return nil, err
	}
	u.Skills = entries
	return u, nil
}
