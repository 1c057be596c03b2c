package domain

import "errors"

// 领域错误统一定义在这里，handler 层负责映射成响应码。
// 所有业务失败都是返回值，不允许 panic。
var (
	ErrDomainRejected     = errors.New("email outside campus domain")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredential  = errors.New("invalid email or password")
	ErrAccountBanned      = errors.New("account has been deactivated")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidSkillEntry  = errors.New("invalid skill entry")
	ErrSelfSession        = errors.New("cannot book a session with yourself")
	ErrInvalidDuration    = errors.New("duration not in allowed bands")
	ErrSkillNotTaught     = errors.New("mentor does not teach this skill")
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrSessionNotFound    = errors.New("session not found")
	ErrInvalidTransition  = errors.New("invalid session status transition")
	ErrNotParticipant     = errors.New("not a participant of this session")
	ErrParticipantMissing = errors.New("session participant no longer exists")
)
