package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"skillloop/internal/ai"
	"skillloop/internal/domain"
)

// 兜底文案。生成服务抽风时用户看到的就是这些，措辞保持友好。
const (
	fallbackRoadmap = "Complete 3 peer sessions to level up your mastery."
	fallbackPulse   = "Technical skills are the top trade this week."
	fallbackAgenda  = "Review fundamentals, Live Demo, Q&A."
	fallbackAdvice  = "Ready for your next skill swap?"

	personaSystem = "You write short learner personas for a campus skill exchange. " +
		"Reply with a JSON object {\"title\": string, \"description\": string}, no prose."
	textSystem = "You are a friendly study advisor for a campus peer-tutoring app. " +
		"Reply with one short plain-text answer, no markdown."
)

var fallbackPersona = Persona{
	Title:       "Knowledge Pioneer",
	Description: "Passionate about sharing and learning.",
}

type Persona struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Service 纯装饰性文案，每个方法只返回值不返回错误：
// 任何失败（查库、生成、解析）都落到静态兜底。
type Service struct {
	store domain.Store
	gen   ai.Generator
	log   *zap.Logger
}

func NewService(store domain.Store, gen ai.Generator, l *zap.Logger) *Service {
	return &Service{store: store, gen: gen, log: l}
}

// PersonaFor 两句话的学习者画像。
func (s *Service) PersonaFor(ctx context.Context, uid string) Persona {
	u := s.user(ctx, uid)
	if u == nil {
		return fallbackPersona
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Student %s, branch %s, year %d.", u.Name, u.Branch, u.Year)
	for _, sk := range u.Skills {
		fmt.Fprintf(&b, " %s: %s.", sk.Type, sk.Name)
	}
	raw := ai.GenerateOr(ctx, s.gen, personaSystem, b.String(), "")
	if raw == "" {
		return fallbackPersona
	}
	var p Persona
	if err := json.Unmarshal([]byte(ai.StripJSONFence(raw)), &p); err != nil || p.Title == "" || p.Description == "" {
		return fallbackPersona
	}
	return p
}

// Roadmap 指定技能的三步进阶路线。
func (s *Service) Roadmap(ctx context.Context, skillName string) string {
	prompt := fmt.Sprintf("Give a 3-step learning roadmap for %q, one sentence per step.", skillName)
	return ai.GenerateOr(ctx, s.gen, textSystem, prompt, fallbackRoadmap)
}

// Pulse 全站本周交换趋势一句话。
func (s *Service) Pulse(ctx context.Context) string {
	recent, err := s.store.Sessions().ListRecent(ctx, 50)
	if err != nil {
		s.log.Warn("pulse: recent sessions unavailable", zap.Error(err))
		return fallbackPulse
	}
	var b strings.Builder
	b.WriteString("Recent session skills this week:")
	for _, sess := range recent {
		fmt.Fprintf(&b, " %s;", sess.SkillName)
	}
	b.WriteString(" Summarize the campus trend in one sentence.")
	return ai.GenerateOr(ctx, s.gen, textSystem, b.String(), fallbackPulse)
}

// Agenda 给会话生成一份简短议程。
func (s *Service) Agenda(ctx context.Context, sessionID, uid string) string {
	sess, err := s.store.Sessions().FindByID(ctx, sessionID)
	if err != nil || sess == nil || !sess.IsParticipant(uid) {
		return fallbackAgenda
	}
	prompt := fmt.Sprintf("Draft a short agenda for a %d-minute %s mentoring session on %q.",
		sess.DurationMinutes, strings.ToLower(string(sess.Mode)), sess.SkillName)
	return ai.GenerateOr(ctx, s.gen, textSystem, prompt, fallbackAgenda)
}

// Advice 首页的一句鼓励。
func (s *Service) Advice(ctx context.Context, uid string) string {
	u := s.user(ctx, uid)
	if u == nil {
		return fallbackAdvice
	}
	prompt := fmt.Sprintf("Student %s has %d points. Give one short nudge to book their next session.",
		u.Name, u.TotalPoints)
	return ai.GenerateOr(ctx, s.gen, textSystem, prompt, fallbackAdvice)
}

func (s *Service) user(ctx context.Context, uid string) *domain.User {
	u, err := s.store.Users().FindByID(ctx, uid)
	if err != nil {
		s.log.Warn("advisor: user load failed", zap.String("uid", uid), zap.Error(err))
		return nil
	}
	return u
}
