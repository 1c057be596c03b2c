package match

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"skillloop/internal/ai"
	"skillloop/internal/core/cache"
	"skillloop/internal/domain"
)

const (
	suggestionTTL = 10 * time.Minute

	suggestSystem = "You are a peer-tutoring matchmaker for a campus skill exchange. " +
		"Reply with a JSON array only, no prose."
	searchSystem = "You rank campus mentors by relevance to a search query. " +
		"Reply with a JSON array of user ids only, best match first."
)

type Service struct {
	store domain.Store
	gen   ai.Generator // nil 表示未配置，直接走本地匹配
	cache *cache.Cache // nil 表示不缓存（单测）
	log   *zap.Logger
}

func NewService(store domain.Store, gen ai.Generator, c *cache.Cache, l *zap.Logger) *Service {
	return &Service{store: store, gen: gen, cache: c, log: l}
}

// Suggest 给学员算推荐导师。结果按学员缓存在 redis，TTL 内复用。
func (s *Service) Suggest(ctx context.Context, learnerID string) ([]domain.MatchSuggestion, error) {
	if s.cache == nil {
		return s.compute(ctx, learnerID)
	}
	return cache.GetOrLoadJSON(s.cache, ctx, cache.KeySuggestions+learnerID, suggestionTTL,
		func(ctx context.Context) ([]domain.MatchSuggestion, error) {
			return s.compute(ctx, learnerID)
		})
}

func (s *Service) compute(ctx context.Context, learnerID string) ([]domain.MatchSuggestion, error) {
	learner, err := s.store.Users().FindByID(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	if learner == nil {
		return nil, domain.ErrUserNotFound
	}

	// 没有想学的技能就没有匹配空间，不浪费一次生成调用
	wants := learner.WantSkills()
	if len(wants) == 0 {
		return []domain.MatchSuggestion{}, nil
	}

	pool, err := s.store.Users().List(ctx)
	if err != nil {
		return nil, err
	}

	if s.gen == nil {
		return FallbackMatch(learner, pool), nil
	}

	raw, err := s.gen.Generate(ctx, suggestSystem, buildSuggestPrompt(learner, wants, pool))
	if err != nil {
		s.log.Warn("suggestion source failed, using local match",
			zap.String("uid", learnerID), zap.Error(err))
		return FallbackMatch(learner, pool), nil
	}
	got := parseSuggestions(raw, learner, pool)
	if len(got) == 0 {
		s.log.Warn("suggestion source returned nothing usable", zap.String("uid", learnerID))
		return FallbackMatch(learner, pool), nil
	}
	return got, nil
}

func buildSuggestPrompt(learner *domain.User, wants []domain.UserSkill, pool []domain.User) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Learner %s (branch %s, year %d) wants to learn:\n", learner.ID, learner.Branch, learner.Year)
	for _, w := range wants {
		fmt.Fprintf(&b, "- %s (id %s)\n", w.Name, w.SkillID)
	}
	b.WriteString("\nAvailable mentors:\n")
	for i := range pool {
		u := &pool[i]
		if u.ID == learner.ID || u.Banned || !u.IsMentor() {
			continue
		}
		fmt.Fprintf(&b, "- %s: %s, branch %s, teaches", u.ID, u.Name, u.Branch)
		for _, sk := range u.Skills {
			if sk.Type == domain.SkillTypeCanTeach {
				fmt.Fprintf(&b, " %s (id %s, %s);", sk.Name, sk.SkillID, sk.Level)
			}
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nReturn up to %d objects with fields mentorId, skillId, skillName, score (0..1), reason, compatibilityTag.", suggestionLimit)
	return b.String()
}

// parseSuggestions 解析生成结果并过滤幻觉：mentorId 必须指向池里
// 真实、未封禁、非学员本人的用户。解析失败返回空，调用方走兜底。
func parseSuggestions(raw string, learner *domain.User, pool []domain.User) []domain.MatchSuggestion {
	var parsed []domain.MatchSuggestion
	if err := json.Unmarshal([]byte(ai.StripJSONFence(raw)), &parsed); err != nil {
		return nil
	}
	byID := make(map[string]*domain.User, len(pool))
	for i := range pool {
		byID[pool[i].ID] = &pool[i]
	}
	out := make([]domain.MatchSuggestion, 0, suggestionLimit)
	for _, sug := range parsed {
		mentor, ok := byID[sug.MentorID]
		if !ok || mentor.Banned || mentor.ID == learner.ID {
			continue
		}
		sug.LearnerID = learner.ID
		if sug.Score < 0 || sug.Score > 1 {
			sug.Score = 0.8
		}
		out = append(out, sug)
		if len(out) == suggestionLimit {
			break
		}
	}
	return out
}

// Search 导师搜索。有生成服务时做语义排序，失败或未配置时
// 退化成大小写无关的子串过滤（姓名/院系/技能名）。
func (s *Service) Search(ctx context.Context, query string) ([]domain.User, error) {
	all, err := s.store.Users().List(ctx)
	if err != nil {
		return nil, err
	}
	mentors := make([]domain.User, 0, len(all))
	for _, u := range all {
		if !u.Banned && u.IsMentor() {
			mentors = append(mentors, u)
		}
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return mentors, nil
	}

	if s.gen != nil {
		if ranked, ok := s.rankMentors(ctx, query, mentors); ok {
			return ranked, nil
		}
	}
	return substringFilter(query, mentors), nil
}

func (s *Service) rankMentors(ctx context.Context, query string, mentors []domain.User) ([]domain.User, bool) {
	var b strings.Builder
	fmt.Fprintf(&b, "Query: %q\nMentors:\n", query)
	for i := range mentors {
		u := &mentors[i]
		fmt.Fprintf(&b, "- %s: %s, branch %s, bio %q, teaches", u.ID, u.Name, u.Branch, u.Bio)
		for _, sk := range u.Skills {
			if sk.Type == domain.SkillTypeCanTeach {
				fmt.Fprintf(&b, " %s;", sk.Name)
			}
		}
		b.WriteString("\n")
	}
	b.WriteString("\nReturn only the ids of relevant mentors, ordered by relevance.")

	raw, err := s.gen.Generate(ctx, searchSystem, b.String())
	if err != nil {
		s.log.Warn("mentor ranking failed, using substring filter", zap.Error(err))
		return nil, false
	}
	var ids []string
	if err := json.Unmarshal([]byte(ai.StripJSONFence(raw)), &ids); err != nil {
		return nil, false
	}
	byID := make(map[string]*domain.User, len(mentors))
	for i := range mentors {
		byID[mentors[i].ID] = &mentors[i]
	}
	out := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			out = append(out, *u)
			delete(byID, id) // 同一 id 只取一次
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

func substringFilter(query string, mentors []domain.User) []domain.User {
	q := strings.ToLower(query)
	out := make([]domain.User, 0, len(mentors))
	for _, u := range mentors {
		if strings.Contains(strings.ToLower(u.Name), q) ||
			strings.Contains(strings.ToLower(u.Branch), q) {
			out = append(out, u)
			continue
		}
		for _, sk := range u.Skills {
			if sk.Type == domain.SkillTypeCanTeach && strings.Contains(strings.ToLower(sk.Name), q) {
				out = append(out, u)
				break
			}
		}
	}
	return out
}
