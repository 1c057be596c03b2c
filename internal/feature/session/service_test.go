package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"skillloop/internal/domain"
	"skillloop/internal/repo"
)

func fixture() (*repo.MemStore, *Service) {
	store := repo.NewMemStore()
	store.AddUser(domain.User{
		ID: "learner", Email: "l@krce.ac.in", TotalPoints: 12,
	})
	store.AddUser(domain.User{
		ID: "mentor", Email: "m@krce.ac.in", TotalPoints: 30,
		Skills: []domain.UserSkill{
			{SkillID: "s4", Name: "Python", Type: domain.SkillTypeCanTeach, Level: domain.LevelAdvanced},
		},
	})
	store.AddUser(domain.User{ID: "bystander", Email: "b@krce.ac.in", TotalPoints: 7})
	return store, NewService(store, zap.NewNop())
}

func request(t *testing.T, svc *Service, minutes int) *domain.Session {
	t.Helper()
	sess, err := svc.Request(context.Background(), RequestInput{
		LearnerID: "learner", MentorID: "mentor", SkillID: "s4",
		DurationMinutes: minutes, Mode: domain.ModeOnline,
	})
	require.NoError(t, err)
	return sess
}

func TestRequest_CreatesRequestedSession(t *testing.T) {
	_, svc := fixture()
	before := time.Now()

	sess := request(t, svc, 60)

	assert.Equal(t, domain.StatusRequested, sess.Status)
	assert.Equal(t, 10, sess.Points)
	assert.Equal(t, "Python (Advanced)", sess.SkillName)
	// 未指定时间时默认 24h 后
	assert.WithinDuration(t, before.Add(24*time.Hour), sess.ScheduledAt, time.Minute)
}

func TestRequest_NoBalanceMovement(t *testing.T) {
	store, svc := fixture()
	request(t, svc, 60)

	learner, _ := store.Users().FindByID(context.Background(), "learner")
	mentor, _ := store.Users().FindByID(context.Background(), "mentor")
	assert.Equal(t, 12, learner.TotalPoints, "request must not touch balances")
	assert.Equal(t, 30, mentor.TotalPoints)
}

func TestRequest_InsufficientPoints(t *testing.T) {
	store, svc := fixture()
	store.UsersByID["learner"].TotalPoints = 4

	_, err := svc.Request(context.Background(), RequestInput{
		LearnerID: "learner", MentorID: "mentor", SkillID: "s4",
		DurationMinutes: 30, Mode: domain.ModeOnline,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientPoints)
	assert.Empty(t, store.Sess, "no session may be created on failure")
}

func TestRequest_BalanceEqualsCostSucceeds(t *testing.T) {
	store, svc := fixture()
	store.UsersByID["learner"].TotalPoints = 5

	sess, err := svc.Request(context.Background(), RequestInput{
		LearnerID: "learner", MentorID: "mentor", SkillID: "s4",
		DurationMinutes: 30, Mode: domain.ModeOnline,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, sess.Points)
}

func TestRequest_SelfSession(t *testing.T) {
	_, svc := fixture()
	_, err := svc.Request(context.Background(), RequestInput{
		LearnerID: "mentor", MentorID: "mentor", SkillID: "s4",
		DurationMinutes: 60,
	})
	assert.ErrorIs(t, err, domain.ErrSelfSession)
}

func TestRequest_InvalidDuration(t *testing.T) {
	_, svc := fixture()
	for _, minutes := range []int{0, 45, 150, -60} {
		_, err := svc.Request(context.Background(), RequestInput{
			LearnerID: "learner", MentorID: "mentor", SkillID: "s4",
			DurationMinutes: minutes,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidDuration, "duration %d", minutes)
	}
}

func TestRequest_SkillNotTaught(t *testing.T) {
	_, svc := fixture()
	_, err := svc.Request(context.Background(), RequestInput{
		LearnerID: "learner", MentorID: "mentor", SkillID: "s1",
		DurationMinutes: 60,
	})
	assert.ErrorIs(t, err, domain.ErrSkillNotTaught)
}

func TestComplete_TransfersPoints(t *testing.T) {
	// 场景：余额 12 的学员约 60 分钟（成本 10），完成后 12-10=2，导师 +10
	store, svc := fixture()
	ctx := context.Background()
	sess := request(t, svc, 60)

	_, err := svc.UpdateStatus(ctx, sess.ID, domain.StatusConfirmed, "mentor")
	require.NoError(t, err)
	out, err := svc.UpdateStatus(ctx, sess.ID, domain.StatusCompleted, "learner")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, out.Status)

	learner, _ := store.Users().FindByID(ctx, "learner")
	mentor, _ := store.Users().FindByID(ctx, "mentor")
	bystander, _ := store.Users().FindByID(ctx, "bystander")
	assert.Equal(t, 2, learner.TotalPoints)
	assert.Equal(t, 40, mentor.TotalPoints)
	assert.Equal(t, 7, bystander.TotalPoints, "unrelated balances must not move")
}

func TestCancel_OnlyStatusChanges(t *testing.T) {
	store, svc := fixture()
	ctx := context.Background()
	sess := request(t, svc, 60)

	out, err := svc.UpdateStatus(ctx, sess.ID, domain.StatusCancelled, "learner")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, out.Status)

	learner, _ := store.Users().FindByID(ctx, "learner")
	mentor, _ := store.Users().FindByID(ctx, "mentor")
	assert.Equal(t, 12, learner.TotalPoints)
	assert.Equal(t, 30, mentor.TotalPoints)
}

func TestUpdateStatus_EnforcesTransitionTable(t *testing.T) {
	_, svc := fixture()
	ctx := context.Background()

	// REQUESTED 不能直接 COMPLETED
	sess := request(t, svc, 60)
	_, err := svc.UpdateStatus(ctx, sess.ID, domain.StatusCompleted, "learner")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// CONFIRMED 没有取消路径
	_, err = svc.UpdateStatus(ctx, sess.ID, domain.StatusConfirmed, "mentor")
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, sess.ID, domain.StatusCancelled, "mentor")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestUpdateStatus_TerminalIsImmutable(t *testing.T) {
	_, svc := fixture()
	ctx := context.Background()

	sess := request(t, svc, 60)
	_, err := svc.UpdateStatus(ctx, sess.ID, domain.StatusCancelled, "learner")
	require.NoError(t, err)

	for _, next := range []domain.SessionStatus{
		domain.StatusRequested, domain.StatusConfirmed,
		domain.StatusCompleted, domain.StatusCancelled,
	} {
		_, err := svc.UpdateStatus(ctx, sess.ID, next, "mentor")
		assert.ErrorIs(t, err, domain.ErrInvalidTransition, "terminal -> %s", next)
	}
}

func TestUpdateStatus_SessionNotFound(t *testing.T) {
	_, svc := fixture()
	_, err := svc.UpdateStatus(context.Background(), "missing", domain.StatusConfirmed, "mentor")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestUpdateStatus_ActorPermissions(t *testing.T) {
	_, svc := fixture()
	ctx := context.Background()
	sess := request(t, svc, 60)

	// 学员不能替导师确认
	_, err := svc.UpdateStatus(ctx, sess.ID, domain.StatusConfirmed, "learner")
	assert.ErrorIs(t, err, domain.ErrNotParticipant)

	// 局外人完全无权操作
	_, err = svc.UpdateStatus(ctx, sess.ID, domain.StatusCancelled, "bystander")
	assert.ErrorIs(t, err, domain.ErrNotParticipant)
}

func TestComplete_ParticipantMissing(t *testing.T) {
	store, svc := fixture()
	ctx := context.Background()
	sess := request(t, svc, 60)
	_, err := svc.UpdateStatus(ctx, sess.ID, domain.StatusConfirmed, "mentor")
	require.NoError(t, err)

	// 导师记录消失：完成必须整体失败，状态和余额都不动
	delete(store.UsersByID, "mentor")
	_, err = svc.UpdateStatus(ctx, sess.ID, domain.StatusCompleted, "learner")
	assert.ErrorIs(t, err, domain.ErrParticipantMissing)

	got, _ := store.Sessions().FindByID(ctx, sess.ID)
	assert.Equal(t, domain.StatusConfirmed, got.Status)
	learner, _ := store.Users().FindByID(ctx, "learner")
	assert.Equal(t, 12, learner.TotalPoints)
}

func TestComplete_AllowsNegativeBalance(t *testing.T) {
	// 请求后余额被其他途径扣减：完成仍然照转，允许转负（显式决策）
	store, svc := fixture()
	ctx := context.Background()
	store.UsersByID["learner"].TotalPoints = 20
	sess := request(t, svc, 120) // 成本 20
	_, err := svc.UpdateStatus(ctx, sess.ID, domain.StatusConfirmed, "mentor")
	require.NoError(t, err)

	store.UsersByID["learner"].TotalPoints = 5 // 模拟竞态扣减
	_, err = svc.UpdateStatus(ctx, sess.ID, domain.StatusCompleted, "mentor")
	require.NoError(t, err)

	learner, _ := store.Users().FindByID(ctx, "learner")
	assert.Equal(t, -15, learner.TotalPoints)
}
