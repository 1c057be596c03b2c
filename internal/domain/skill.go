package domain

import "context"

// Skill 技能目录条目，只读参考数据，不归属任何用户。
type Skill struct {
	ID   string `gorm:"primaryKey;size:32" json:"id"`
	Name string `gorm:"uniqueIndex;size:64" json:"name"`
}

func (Skill) TableName() string { return "skills" }

type SkillRepository interface {
	List(ctx context.Context) ([]Skill, error)
	FindByID(ctx context.Context, id string) (*Skill, error)
	Create(ctx context.Context, s *Skill) error
}
