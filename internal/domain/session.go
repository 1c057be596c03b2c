package domain

import (
	"context"
	"time"
)

type SessionStatus string

const (
	StatusRequested SessionStatus = "REQUESTED"
	StatusConfirmed SessionStatus = "CONFIRMED"
	StatusCompleted SessionStatus = "COMPLETED"
	StatusCancelled SessionStatus = "CANCELLED"
)

func (s SessionStatus) IsValid() bool {
	switch s {
	case StatusRequested, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal 终态会话不可再变更。
func (s SessionStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// transitions 显式状态机：
//
//	REQUESTED --confirm--> CONFIRMED --complete--> COMPLETED
//	REQUESTED --cancel---> CANCELLED
//
// CONFIRMED 没有取消路径，终态拒绝一切变更。
var transitions = map[SessionStatus][]SessionStatus{
	StatusRequested: {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted},
}

// CanTransition 校验状态边是否在状态机里。
func CanTransition(from, to SessionStatus) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

type SessionMode string

const (
	ModeOnline  SessionMode = "Online"
	ModeOffline SessionMode = "Offline"
)

func (m SessionMode) IsValid() bool {
	return m == ModeOnline || m == ModeOffline
}

// PointsPerHour 平台唯一货币的计价基准。
const PointsPerHour = 10

// AllowedDurations 可预约的时长档位（分钟）。
var AllowedDurations = []int{30, 60, 90, 120}

func DurationAllowed(minutes int) bool {
	for _, d := range AllowedDurations {
		if d == minutes {
			return true
		}
	}
	return false
}

// CostForDuration 积分成本 = ceil(minutes / 60 * 10)，整数运算避免浮点。
func CostForDuration(minutes int) int {
	return (minutes*PointsPerHour + 59) / 60
}

// Session 一次师徒会话。除 Status 外创建后不可变；
// Points 在创建时按 CostForDuration 固化。
type Session struct {
	ID              string        `gorm:"primaryKey;size:32" json:"id"`
	MentorID        string        `gorm:"size:32;index" json:"mentorId"`
	LearnerID       string        `gorm:"size:32;index" json:"learnerId"`
	SkillID         string        `gorm:"size:32" json:"skillId"`
	SkillName       string        `gorm:"size:80" json:"skillName"`
	Status          SessionStatus `gorm:"size:16;index" json:"status"`
	Mode            SessionMode   `gorm:"size:16" json:"mode"`
	ScheduledAt     time.Time     `json:"scheduledAt"`
	DurationMinutes int           `json:"durationMinutes"`
	Points          int           `json:"points"`
	Note            string        `gorm:"size:1024" json:"note,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
}

func (Session) TableName() string { return "sessions" }

func (s *Session) IsParticipant(userID string) bool {
	return s.MentorID == userID || s.LearnerID == userID
}

type SessionRepository interface {
	Create(ctx context.Context, s *Session) error
	FindByID(ctx context.Context, id string) (*Session, error)
	ListByUser(ctx context.Context, userID string) ([]Session, error)
	ListRecent(ctx context.Context, limit int) ([]Session, error)
	Update(ctx context.Context, s *Session) error
}
