package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"skillloop/internal/domain"
	"skillloop/pkg/utils"
)

// Service 会话生命周期管理：状态机 + 积分转账是这里的全部职责。
type Service struct {
	store domain.Store
	log   *zap.Logger
	now   func() time.Time
}

func NewService(store domain.Store, l *zap.Logger) *Service {
	return &Service{store: store, log: l, now: time.Now}
}

type RequestInput struct {
	LearnerID       string
	MentorID        string
	SkillID         string
	DurationMinutes int
	Mode            domain.SessionMode
	Note            string
	ScheduledAt     time.Time // 零值时默认 now+24h
}

// Request 创建 REQUESTED 会话。只校验余额，不冻结积分——
// 转账一律发生在完成时。
func (s *Service) Request(ctx context.Context, in RequestInput) (*domain.Session, error) {
	if in.LearnerID == in.MentorID {
		return nil, domain.ErrSelfSession
	}
	if !domain.DurationAllowed(in.DurationMinutes) {
		return nil, domain.ErrInvalidDuration
	}
	if !in.Mode.IsValid() {
		in.Mode = domain.ModeOnline
	}
	cost := domain.CostForDuration(in.DurationMinutes)

	learner, err := s.store.Users().FindByID(ctx, in.LearnerID)
	if err != nil {
		return nil, err
	}
	if learner == nil {
		return nil, domain.ErrUserNotFound
	}
	mentor, err := s.store.Users().FindByID(ctx, in.MentorID)
	if err != nil {
		return nil, err
	}
	if mentor == nil {
		return nil, domain.ErrUserNotFound
	}

	teach := mentor.TeachSkill(in.SkillID)
	if teach == nil {
		return nil, domain.ErrSkillNotTaught
	}

	// 边界：余额恰好等于成本时放行
	if learner.TotalPoints < cost {
		return nil, domain.ErrInsufficientPoints
	}

	scheduled := in.ScheduledAt
	if scheduled.IsZero() {
		scheduled = s.now().Add(24 * time.Hour)
	}

	sess := &domain.Session{
		ID:              utils.NewID(),
		MentorID:        in.MentorID,
		LearnerID:       in.LearnerID,
		SkillID:         in.SkillID,
		SkillName:       teach.Name + " (" + string(teach.Level) + ")",
		Status:          domain.StatusRequested,
		Mode:            in.Mode,
		ScheduledAt:     scheduled,
		DurationMinutes: in.DurationMinutes,
		Points:          cost,
		Note:            in.Note,
		CreatedAt:       s.now(),
	}
	if err := s.store.Sessions().Create(ctx, sess); err != nil {
		return nil, err
	}
	s.log.Info("session requested",
		zap.String("session", sess.ID),
		zap.String("learner", in.LearnerID),
		zap.String("mentor", in.MentorID),
		zap.Int("points", cost),
	)
	return sess, nil
}

// canAct 操作权限：确认只能导师来，取消双方都行，完成双方都行。
func canAct(sess *domain.Session, next domain.SessionStatus, actorID string) bool {
	switch next {
	case domain.StatusConfirmed:
		return actorID == sess.MentorID
	case domain.StatusCancelled, domain.StatusCompleted:
		return sess.IsParticipant(actorID)
	}
	return false
}

// UpdateStatus 应用一次状态变更。COMPLETED 在同一事务里完成
// 积分转账；任一参与者消失则整体失败，绝不悄悄跳过转账。
func (s *Service) UpdateStatus(ctx context.Context, sessionID string, next domain.SessionStatus, actorID string) (*domain.Session, error) {
	if !next.IsValid() {
		return nil, domain.ErrInvalidTransition
	}

	var out *domain.Session
	err := s.store.Transact(ctx, func(tx domain.Store) error {
		sess, err := tx.Sessions().FindByID(ctx, sessionID)
		if err != nil {
			return err
		}
		if sess == nil {
			return domain.ErrSessionNotFound
		}
		if !domain.CanTransition(sess.Status, next) {
			return domain.ErrInvalidTransition
		}
		if !canAct(sess, next, actorID) {
			return domain.ErrNotParticipant
		}

		if next == domain.StatusCompleted {
			mentor, err := tx.Users().FindByID(ctx, sess.MentorID)
			if err != nil {
				return err
			}
			learner, err := tx.Users().FindByID(ctx, sess.LearnerID)
			if err != nil {
				return err
			}
			// 先全部校验再写入，保证失败时零副作用
			if mentor == nil || learner == nil {
				return domain.ErrParticipantMissing
			}

			// 学员余额允许转负：请求后被别的会话扣掉的情况按约定照转
			mentor.TotalPoints += sess.Points
			learner.TotalPoints -= sess.Points
			if err := tx.Users().Update(ctx, mentor); err != nil {
				return err
			}
			if err := tx.Users().Update(ctx, learner); err != nil {
				return err
			}
		}

		sess.Status = next
		if err := tx.Sessions().Update(ctx, sess); err != nil {
			return err
		}
		out = sess
		return nil
	})
	if err != nil {
		return nil, err
	}

	if next == domain.StatusCompleted {
		s.log.Info("session completed",
			zap.String("session", out.ID),
			zap.Int("points", out.Points),
		)
	}
	return out, nil
}

func (s *Service) ListMine(ctx context.Context, userID string) ([]domain.Session, error) {
	return s.store.Sessions().ListByUser(ctx, userID)
}
