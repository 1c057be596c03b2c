package domain

import "context"

// Store 聚合所有仓储，并提供唯一的事务边界。
// 会话完成时的积分转账必须整体落在一个 Transact 里。
type Store interface {
	Users() UserRepository
	Skills() SkillRepository
	Sessions() SessionRepository
	Reviews() ReviewRepository

	// Transact 在事务内执行 fn；fn 返回错误则整体回滚。
	Transact(ctx context.Context, fn func(Store) error) error
}
