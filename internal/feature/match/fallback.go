package match

import "skillloop/internal/domain"

const suggestionLimit = 5

// FallbackMatch 本地确定性匹配，生成服务不可用时的兜底。
// 遍历顺序固定：按学员 WANT_TO_LEARN 的登记顺序，再按候选池顺序，
// 同样的输入永远给同样的结果。按技能名对齐而不是 ID，
// 教的人和想学的人引用的可能是目录里不同版本的条目。
func FallbackMatch(learner *domain.User, pool []domain.User) []domain.MatchSuggestion {
	out := make([]domain.MatchSuggestion, 0, suggestionLimit)
	for _, want := range learner.WantSkills() {
		for i := range pool {
			cand := &pool[i]
			if cand.ID == learner.ID || cand.Banned {
				continue
			}
			if !cand.TeachesByName(want.Name) {
				continue
			}
			out = append(out, domain.MatchSuggestion{
				LearnerID:        learner.ID,
				MentorID:         cand.ID,
				SkillID:          want.SkillID,
				SkillName:        want.Name,
				Score:            0.8,
				Reason:           "Manual match",
				CompatibilityTag: "Skill Match",
			})
			if len(out) == suggestionLimit {
				return out
			}
		}
	}
	return out
}
