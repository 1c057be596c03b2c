package explore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"skillloop/internal/domain"
	"skillloop/internal/repo"
)

func exploreFixture() *repo.MemStore {
	store := repo.NewMemStore()
	teach := func(id, name string) domain.UserSkill {
		return domain.UserSkill{SkillID: id, Name: name, Type: domain.SkillTypeCanTeach, Level: domain.LevelAdvanced}
	}
	store.AddUser(domain.User{ID: "a", Name: "Alice", Branch: "CSE", TotalPoints: 50,
		Skills: []domain.UserSkill{teach("s1", "React Development")}})
	store.AddUser(domain.User{ID: "b", Name: "Bob", Branch: "ECE", TotalPoints: 30,
		Skills: []domain.UserSkill{teach("s4", "Python")}})
	store.AddUser(domain.User{ID: "c", Name: "Cara", TotalPoints: 99, Banned: true,
		Skills: []domain.UserSkill{teach("s4", "Python")}})
	store.AddUser(domain.User{ID: "d", Name: "Dan", TotalPoints: 70}) // 只学不教
	return store
}

func TestMentors_FiltersBannedAndNonTeachers(t *testing.T) {
	svc := NewService(exploreFixture(), nil, zap.NewNop())

	got, err := svc.Mentors(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
}

func TestMentors_SkillAndSearchFilters(t *testing.T) {
	svc := NewService(exploreFixture(), nil, zap.NewNop())
	ctx := context.Background()

	bySkill, err := svc.Mentors(ctx, "s4", "")
	require.NoError(t, err)
	require.Len(t, bySkill, 1)
	assert.Equal(t, "b", bySkill[0].ID)

	bySearch, err := svc.Mentors(ctx, "", "react")
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "a", bySearch[0].ID)

	both, err := svc.Mentors(ctx, "s4", "alice")
	require.NoError(t, err)
	assert.Empty(t, both, "filters are conjunctive")
}

func TestLeaderboard_OrderedAndExcludesBanned(t *testing.T) {
	svc := NewService(exploreFixture(), nil, zap.NewNop())

	got, err := svc.Leaderboard(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"d", "a", "b"}, []string{got[0].ID, got[1].ID, got[2].ID})
}
