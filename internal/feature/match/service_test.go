package match

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"skillloop/internal/domain"
	"skillloop/internal/repo"
)

// stubGen 可编程生成桩，记录调用次数。
type stubGen struct {
	out   string
	err   error
	calls int
}

func (g *stubGen) Generate(context.Context, string, string) (string, error) {
	g.calls++
	return g.out, g.err
}

func matchFixture() *repo.MemStore {
	store := repo.NewMemStore()
	store.AddUser(domain.User{ID: "L", Skills: []domain.UserSkill{want("s1", "Python")}})
	store.AddUser(domain.User{ID: "A", Name: "Asel", Branch: "CSE", Skills: []domain.UserSkill{teach("s1", "Python")}})
	store.AddUser(domain.User{ID: "B", Name: "Bex", Branch: "ECE", Skills: []domain.UserSkill{teach("s2", "Guitar")}})
	return store
}

func TestSuggest_NoWantsSkipsGenerator(t *testing.T) {
	store := matchFixture()
	store.AddUser(domain.User{ID: "empty"})
	gen := &stubGen{out: "[]"}
	svc := NewService(store, gen, nil, zap.NewNop())

	got, err := svc.Suggest(context.Background(), "empty")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, gen.calls, "no wants means the source must not be called")
}

func TestSuggest_GeneratorErrorFallsBack(t *testing.T) {
	svc := NewService(matchFixture(), &stubGen{err: errors.New("timeout")}, nil, zap.NewNop())

	got, err := svc.Suggest(context.Background(), "L")
	require.NoError(t, err, "source failures never surface")
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].MentorID)
	assert.Equal(t, "Manual match", got[0].Reason)
}

func TestSuggest_UnparseableFallsBack(t *testing.T) {
	svc := NewService(matchFixture(), &stubGen{out: "sure! here are your matches:"}, nil, zap.NewNop())

	got, err := svc.Suggest(context.Background(), "L")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Skill Match", got[0].CompatibilityTag)
}

func TestSuggest_ParsesAndSanitizes(t *testing.T) {
	// 生成结果里混入幻觉 mentor 和学员本人，都要被过滤
	raw := "```json\n" + `[
		{"mentorId":"A","skillId":"s1","skillName":"Python","score":0.95,"reason":"Strong overlap","compatibilityTag":"AI Match"},
		{"mentorId":"ghost","skillId":"s1","skillName":"Python","score":0.9},
		{"mentorId":"L","skillId":"s1","skillName":"Python","score":0.9}
	]` + "\n```"
	svc := NewService(matchFixture(), &stubGen{out: raw}, nil, zap.NewNop())

	got, err := svc.Suggest(context.Background(), "L")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].MentorID)
	assert.Equal(t, "L", got[0].LearnerID, "learner id is stamped server-side")
	assert.Equal(t, 0.95, got[0].Score)
}

func TestSuggest_UnknownLearner(t *testing.T) {
	svc := NewService(matchFixture(), nil, nil, zap.NewNop())
	_, err := svc.Suggest(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestSearch_SubstringFallback(t *testing.T) {
	svc := NewService(matchFixture(), nil, nil, zap.NewNop())
	ctx := context.Background()

	byName, err := svc.Search(ctx, "asel")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "A", byName[0].ID)

	bySkill, err := svc.Search(ctx, "guitar")
	require.NoError(t, err)
	require.Len(t, bySkill, 1)
	assert.Equal(t, "B", bySkill[0].ID)

	all, err := svc.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2, "empty query lists every mentor")
}

func TestSearch_SemanticRanking(t *testing.T) {
	svc := NewService(matchFixture(), &stubGen{out: `["B","A","B","nobody"]`}, nil, zap.NewNop())

	got, err := svc.Search(context.Background(), "music")
	require.NoError(t, err)
	require.Len(t, got, 2, "duplicates and unknown ids are dropped")
	assert.Equal(t, "B", got[0].ID)
	assert.Equal(t, "A", got[1].ID)
}

func TestSearch_RankingErrorFallsBack(t *testing.T) {
	svc := NewService(matchFixture(), &stubGen{err: errors.New("503")}, nil, zap.NewNop())

	got, err := svc.Search(context.Background(), "cse")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].ID)
}

func TestSearch_ExcludesBannedAndNonMentors(t *testing.T) {
	store := matchFixture()
	store.AddUser(domain.User{ID: "banned", Banned: true, Skills: []domain.UserSkill{teach("s1", "Python")}})
	store.AddUser(domain.User{ID: "learnerOnly", Skills: []domain.UserSkill{want("s1", "Python")}})
	svc := NewService(store, nil, nil, zap.NewNop())

	got, err := svc.Search(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
