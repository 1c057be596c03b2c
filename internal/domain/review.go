package domain

import (
	"context"
	"time"
)

// Review 会话后的互评。当前版本只读：没有创建入口，
// 数据来自种子或历史导入。
type Review struct {
	ID         string    `gorm:"primaryKey;size:32" json:"id"`
	SessionID  string    `gorm:"size:32;index" json:"sessionId"`
	ReviewerID string    `gorm:"size:32" json:"reviewerId"`
	RevieweeID string    `gorm:"size:32;index" json:"revieweeId"`
	Rating     int       `json:"rating"` // 1-5
	Comment    string    `gorm:"size:512" json:"comment,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (Review) TableName() string { return "reviews" }

type ReviewRepository interface {
	ListByReviewee(ctx context.Context, userID string) ([]Review, error)
	Create(ctx context.Context, r *Review) error
}
