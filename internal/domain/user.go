package domain

import (
	"context"
	"strings"
	"time"
)

const (
	RoleStudent = "STUDENT"
	RoleAdmin   = "ADMIN"
)

type SkillType string

const (
	SkillTypeCanTeach    SkillType = "CAN_TEACH"
	SkillTypeWantToLearn SkillType = "WANT_TO_LEARN"
)

type SkillLevel string

const (
	LevelBeginner     SkillLevel = "Beginner"
	LevelIntermediate SkillLevel = "Intermediate"
	LevelAdvanced     SkillLevel = "Advanced"
)

func (t SkillType) IsValid() bool {
	return t == SkillTypeCanTeach || t == SkillTypeWantToLearn
}

func (l SkillLevel) IsValid() bool {
	return l == LevelBeginner || l == LevelIntermediate || l == LevelAdvanced
}

// User 校园用户。TotalPoints 即积分账本本体：
// 只在注册发放和会话完成转账两处变动，其余代码一律只读。
type User struct {
	ID           string      `gorm:"primaryKey;size:32" json:"id"`
	Email        string      `gorm:"uniqueIndex;size:191" json:"email"`
	PasswordHash string      `gorm:"size:191" json:"-"`
	Name         string      `gorm:"size:64" json:"name"`
	Branch       string      `gorm:"size:64" json:"branch"`
	Year         int         `json:"year"`
	Bio          string      `gorm:"size:512" json:"bio"`
	Availability string      `gorm:"size:191" json:"availability"`
	AvatarURL    string      `gorm:"size:255" json:"avatarUrl"`
	TotalPoints  int         `json:"totalPoints"`
	RatingAvg    float64     `json:"ratingAverage"`
	RatingCount  int         `json:"ratingCount"`
	Role         string      `gorm:"size:16;default:STUDENT" json:"role"`
	Banned       bool        `json:"isBanned"`
	Skills       []UserSkill `gorm:"foreignKey:UserID" json:"skills"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"-"`
}

func (User) TableName() string { return "users" }

// UserSkill 用户技能条目，归属唯一的用户。
// 同一 (skillId, type) 只允许一条：教和学是两条独立记录。
type UserSkill struct {
	ID      string     `gorm:"primaryKey;size:32" json:"-"`
	UserID  string     `gorm:"size:32;index;uniqueIndex:uniq_user_skill_type,priority:1" json:"-"`
	SkillID string     `gorm:"size:32;uniqueIndex:uniq_user_skill_type,priority:2" json:"skillId"`
	Name    string     `gorm:"size:64" json:"name"`
	Type    SkillType  `gorm:"size:16;uniqueIndex:uniq_user_skill_type,priority:3" json:"type"`
	Level   SkillLevel `gorm:"size:16" json:"level"`
}

func (UserSkill) TableName() string { return "user_skills" }

// TeachSkill 返回该用户以 CAN_TEACH 登记的指定技能条目。
func (u *User) TeachSkill(skillID string) *UserSkill {
	for i := range u.Skills {
		if u.Skills[i].SkillID == skillID && u.Skills[i].Type == SkillTypeCanTeach {
			return &u.Skills[i]
		}
	}
	return nil
}

// TeachesByName 按技能名匹配。fallback 匹配按名字对齐，不按 ID。
func (u *User) TeachesByName(name string) bool {
	for i := range u.Skills {
		if u.Skills[i].Type == SkillTypeCanTeach && u.Skills[i].Name == name {
			return true
		}
	}
	return false
}

// WantSkills 返回 WANT_TO_LEARN 条目，保持登记顺序。
func (u *User) WantSkills() []UserSkill {
	var out []UserSkill
	for i := range u.Skills {
		if u.Skills[i].Type == SkillTypeWantToLearn {
			out = append(out, u.Skills[i])
		}
	}
	return out
}

func (u *User) IsMentor() bool {
	for i := range u.Skills {
		if u.Skills[i].Type == SkillTypeCanTeach {
			return true
		}
	}
	return false
}

// ValidateSignupEmail 先验域名后验唯一性；两者都不满足时以域名错误为准。
func ValidateSignupEmail(email, campusDomain string, taken bool) error {
	if !strings.HasSuffix(email, campusDomain) {
		return ErrDomainRejected
	}
	if taken {
		return ErrEmailTaken
	}
	return nil
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	TopByPoints(ctx context.Context, limit int) ([]User, error)
	Update(ctx context.Context, u *User) error
	ReplaceSkills(ctx context.Context, userID string, skills []UserSkill) error
}
