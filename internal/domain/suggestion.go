package domain

// MatchSuggestion 导师推荐，临时数据：随取随算，只进 redis 不落库。
type MatchSuggestion struct {
	LearnerID        string  `json:"learnerId"`
	MentorID         string  `json:"mentorId"`
	SkillID          string  `json:"skillId"`
	SkillName        string  `json:"skillName"`
	Score            float64 `json:"score"`
	Reason           string  `json:"reason,omitempty"`
	CompatibilityTag string  `json:"compatibilityTag,omitempty"`
}
