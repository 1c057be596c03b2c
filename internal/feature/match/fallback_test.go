package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"skillloop/internal/domain"
)

func want(skillID, name string) domain.UserSkill {
	return domain.UserSkill{SkillID: skillID, Name: name, Type: domain.SkillTypeWantToLearn, Level: domain.LevelBeginner}
}

func teach(skillID, name string) domain.UserSkill {
	return domain.UserSkill{SkillID: skillID, Name: name, Type: domain.SkillTypeCanTeach, Level: domain.LevelAdvanced}
}

func TestFallbackMatch_Deterministic(t *testing.T) {
	learner := &domain.User{ID: "L", Skills: []domain.UserSkill{want("s1", "Python"), want("s2", "Guitar")}}
	pool := []domain.User{
		{ID: "L", Skills: []domain.UserSkill{teach("s1", "Python")}}, // 本人，跳过
		{ID: "A", Skills: []domain.UserSkill{teach("s1", "Python")}},
		{ID: "B", Skills: []domain.UserSkill{teach("s2", "Guitar")}},
		{ID: "C", Skills: []domain.UserSkill{teach("s1", "Python"), teach("s2", "Guitar")}},
	}

	first := FallbackMatch(learner, pool)
	second := FallbackMatch(learner, pool)
	assert.Equal(t, first, second, "same input must give same output")

	// 顺序：想学的技能在先，池内顺序在后
	ids := make([]string, 0, len(first))
	for _, s := range first {
		ids = append(ids, s.MentorID+"/"+s.SkillName)
	}
	assert.Equal(t, []string{"A/Python", "C/Python", "B/Guitar", "C/Guitar"}, ids)

	for _, s := range first {
		assert.Equal(t, "L", s.LearnerID)
		assert.Equal(t, 0.8, s.Score)
		assert.Equal(t, "Manual match", s.Reason)
		assert.Equal(t, "Skill Match", s.CompatibilityTag)
	}
}

func TestFallbackMatch_CapsAtFive(t *testing.T) {
	learner := &domain.User{ID: "L", Skills: []domain.UserSkill{want("s1", "Python")}}
	var pool []domain.User
	for _, id := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		pool = append(pool, domain.User{ID: id, Skills: []domain.UserSkill{teach("s1", "Python")}})
	}
	got := FallbackMatch(learner, pool)
	assert.Len(t, got, 5)
	assert.Equal(t, "E", got[4].MentorID)
}

func TestFallbackMatch_ExcludesBannedAndSelf(t *testing.T) {
	learner := &domain.User{ID: "L", Skills: []domain.UserSkill{
		teach("s1", "Python"), // 自己也教，不算
		want("s1", "Python"),
	}}
	pool := []domain.User{
		*learner,
		{ID: "X", Banned: true, Skills: []domain.UserSkill{teach("s1", "Python")}},
		{ID: "Y", Skills: []domain.UserSkill{teach("s1", "Python")}},
	}
	got := FallbackMatch(learner, pool)
	assert.Len(t, got, 1)
	assert.Equal(t, "Y", got[0].MentorID)
}

func TestFallbackMatch_MatchesByNameNotID(t *testing.T) {
	// 想学条目引用 s9，但导师按 "Python" 名字登记在 s1 下，仍要匹配上
	learner := &domain.User{ID: "L", Skills: []domain.UserSkill{want("s9", "Python")}}
	pool := []domain.User{
		{ID: "A", Skills: []domain.UserSkill{teach("s1", "Python")}},
	}
	got := FallbackMatch(learner, pool)
	assert.Len(t, got, 1)
	assert.Equal(t, "s9", got[0].SkillID, "suggestion carries the learner's skill reference")
	assert.Equal(t, "Python", got[0].SkillName)
}

func TestFallbackMatch_NoWantsNoMatches(t *testing.T) {
	learner := &domain.User{ID: "L"}
	pool := []domain.User{{ID: "A", Skills: []domain.UserSkill{teach("s1", "Python")}}}
	assert.Empty(t, FallbackMatch(learner, pool))
}
