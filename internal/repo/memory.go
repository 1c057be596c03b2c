package repo

import (
	"context"
	"sort"
	"sync"

	"skillloop/internal/domain"
)

// MemStore 内存版 Store，服务层单测用，不依赖数据库。
// 没有真实回滚：服务层约定先校验后写入，Transact 只是顺序执行。
type MemStore struct {
	mu        sync.Mutex
	UsersByID map[string]*domain.User
	Sess      map[string]*domain.Session
	SkillsCat []domain.Skill
	Revs      []domain.Review
	order     []string // 用户插入顺序，保证 List 确定性
}

func NewMemStore() *MemStore {
	return &MemStore{
		UsersByID: map[string]*domain.User{},
		Sess:      map[string]*domain.Session{},
	}
}

func (m *MemStore) Users() domain.UserRepository       { return memUsers{m} }
func (m *MemStore) Skills() domain.SkillRepository     { return memSkills{m} }
func (m *MemStore) Sessions() domain.SessionRepository { return memSessions{m} }
func (m *MemStore) Reviews() domain.ReviewRepository   { return memReviews{m} }

func (m *MemStore) Transact(_ context.Context, fn func(domain.Store) error) error {
	return fn(m)
}

// AddUser 测试夹具入口。
func (m *MemStore) AddUser(u domain.User) *domain.User {
	cp := u
	m.UsersByID[cp.ID] = &cp
	m.order = append(m.order, cp.ID)
	return &cp
}

type memUsers struct{ s *MemStore }

func (r memUsers) Create(_ context.Context, u *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *u
	r.s.UsersByID[u.ID] = &cp
	r.s.order = append(r.s.order, u.ID)
	return nil
}

func (r memUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.s.UsersByID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, id := range r.s.order {
		if u := r.s.UsersByID[id]; u != nil && u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memUsers) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.s.order))
	for _, id := range r.s.order {
		if u := r.s.UsersByID[id]; u != nil {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r memUsers) TopByPoints(ctx context.Context, limit int) ([]domain.User, error) {
	all, _ := r.List(ctx)
	filtered := all[:0]
	for _, u := range all {
		if !u.Banned {
			filtered = append(filtered, u)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].TotalPoints > filtered[j].TotalPoints
	})
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return filtered, nil
}

func (r memUsers) Update(_ context.Context, u *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *u
	r.s.UsersByID[u.ID] = &cp
	return nil
}

func (r memUsers) ReplaceSkills(_ context.Context, userID string, skills []domain.UserSkill) error {
	u, ok := r.s.UsersByID[userID]
	if !ok {
		return nil
	}
	u.Skills = append([]domain.UserSkill(nil), skills...)
	return nil
}

type memSessions struct{ s *MemStore }

func (r memSessions) Create(_ context.Context, sess *domain.Session) error {
	cp := *sess
	r.s.Sess[sess.ID] = &cp
	return nil
}

func (r memSessions) FindByID(_ context.Context, id string) (*domain.Session, error) {
	sess, ok := r.s.Sess[id]
	if !ok {
		return nil, nil
	}
	cp := *sess
	return &cp, nil
}

func (r memSessions) ListByUser(_ context.Context, userID string) ([]domain.Session, error) {
	var out []domain.Session
	for _, sess := range r.s.Sess {
		if sess.IsParticipant(userID) {
			out = append(out, *sess)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r memSessions) ListRecent(_ context.Context, limit int) ([]domain.Session, error) {
	var out []domain.Session
	for _, sess := range r.s.Sess {
		out = append(out, *sess)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r memSessions) Update(_ context.Context, sess *domain.Session) error {
	cp := *sess
	r.s.Sess[sess.ID] = &cp
	return nil
}

type memSkills struct{ s *MemStore }

func (r memSkills) List(_ context.Context) ([]domain.Skill, error) {
	return append([]domain.Skill(nil), r.s.SkillsCat...), nil
}

func (r memSkills) FindByID(_ context.Context, id string) (*domain.Skill, error) {
	for i := range r.s.SkillsCat {
		if r.s.SkillsCat[i].ID == id {
			cp := r.s.SkillsCat[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memSkills) Create(_ context.Context, sk *domain.Skill) error {
	r.s.SkillsCat = append(r.s.SkillsCat, *sk)
	return nil
}

type memReviews struct{ s *MemStore }

func (r memReviews) ListByReviewee(_ context.Context, userID string) ([]domain.Review, error) {
	var out []domain.Review
	for _, rv := range r.s.Revs {
		if rv.RevieweeID == userID {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (r memReviews) Create(_ context.Context, rv *domain.Review) error {
	r.s.Revs = append(r.s.Revs, *rv)
	return nil
}
