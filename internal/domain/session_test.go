package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCostForDuration_Bands(t *testing.T) {
	cases := map[int]int{
		30:  5,
		60:  10,
		90:  15,
		120: 20,
	}
	for minutes, want := range cases {
		assert.Equal(t, want, CostForDuration(minutes), "duration %d", minutes)
		assert.True(t, DurationAllowed(minutes))
	}
}

func TestCostForDuration_CeilFormula(t *testing.T) {
	// 非档位时长不可预约，但计价公式对任意分钟数都成立
	assert.Equal(t, 1, CostForDuration(1))
	assert.Equal(t, 8, CostForDuration(45))  // ceil(7.5)
	assert.Equal(t, 13, CostForDuration(75)) // ceil(12.5)
	assert.Equal(t, 25, CostForDuration(150))
	assert.Equal(t, 0, CostForDuration(0))
}

func TestDurationAllowed_RejectsOddBands(t *testing.T) {
	for _, minutes := range []int{0, 15, 45, 61, 121, -30} {
		assert.False(t, DurationAllowed(minutes), "duration %d", minutes)
	}
}

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to SessionStatus }{
		{StatusRequested, StatusConfirmed},
		{StatusRequested, StatusCancelled},
		{StatusConfirmed, StatusCompleted},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	rejected := []struct{ from, to SessionStatus }{
		{StatusRequested, StatusCompleted}, // 未确认不能直接完成
		{StatusConfirmed, StatusCancelled}, // CONFIRMED 没有取消路径
		{StatusConfirmed, StatusRequested},
		{StatusCompleted, StatusCancelled},
		{StatusCompleted, StatusConfirmed},
		{StatusCancelled, StatusConfirmed},
		{StatusCancelled, StatusCompleted},
		{StatusRequested, StatusRequested},
	}
	for _, tc := range rejected {
		assert.False(t, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusRequested.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
}

func TestValidateSignupEmail(t *testing.T) {
	const campus = "@krce.ac.in"

	assert.NoError(t, ValidateSignupEmail("x@krce.ac.in", campus, false))
	assert.ErrorIs(t, ValidateSignupEmail("x@other.edu", campus, false), ErrDomainRejected)
	assert.ErrorIs(t, ValidateSignupEmail("x@krce.ac.in", campus, true), ErrEmailTaken)
	// 域名不合法且已占用：域名错误优先
	assert.ErrorIs(t, ValidateSignupEmail("x@other.edu", campus, true), ErrDomainRejected)
}

func TestUserSkillHelpers(t *testing.T) {
	u := User{
		ID: "u1",
		Skills: []UserSkill{
			{SkillID: "s7", Name: "React Development", Type: SkillTypeCanTeach, Level: LevelAdvanced},
			{SkillID: "s8", Name: "Financial Literacy", Type: SkillTypeWantToLearn, Level: LevelBeginner},
			{SkillID: "s4", Name: "Python", Type: SkillTypeWantToLearn, Level: LevelBeginner},
		},
	}

	assert.True(t, u.IsMentor())
	assert.True(t, u.TeachesByName("React Development"))
	assert.False(t, u.TeachesByName("Python"))
	assert.NotNil(t, u.TeachSkill("s7"))
	assert.Nil(t, u.TeachSkill("s8")) // WANT_TO_LEARN 不算教学条目

	wants := u.WantSkills()
	assert.Len(t, wants, 2)
	// 保持登记顺序
	assert.Equal(t, "Financial Literacy", wants[0].Name)
	assert.Equal(t, "Python", wants[1].Name)
}
